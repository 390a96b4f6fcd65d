package imop

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestBlend_Modes(t *testing.T) {
	assert := assert.New(t)

	op := NewBlend()
	assert.Error(op.Set("dissolve"))
	assert.Empty(op.Get())

	tests := []struct {
		mode   string
		cs, cb float64
		exp    float64
	}{
		{Normal, 0.2, 0.8, 0.2},
		{Darken, 0.2, 0.8, 0.2},
		{Lighten, 0.2, 0.8, 0.8},
		{Multiply, 0.5, 0.5, 0.25},
		{Screen, 0.5, 0.5, 0.75},
		{Overlay, 0.5, 0.25, 0.25},
		{Overlay, 0.5, 0.75, 0.75},
	}
	for _, tt := range tests {
		assert.NoError(op.Set(tt.mode))
		assert.Equal(tt.mode, op.Get())
		assert.InDelta(tt.exp, op.Apply(tt.cs, tt.cb), 1e-9, tt.mode)
	}
}

func TestComposite_Set(t *testing.T) {
	op := InitOp()
	assert.Equal(t, SrcOver, op.Get())
	assert.NoError(t, op.Set(Xor))
	assert.Equal(t, Xor, op.Get())
	assert.Error(t, op.Set("plus"))
	assert.Equal(t, Xor, op.Get())
}

func TestComposite_Draw(t *testing.T) {
	assert := assert.New(t)

	red := color.NRGBA{R: 0xff, A: 0xff}
	blue := color.NRGBA{B: 0xff, A: 0xff}
	dst := newImage(2, 2, blue)
	src := newImage(1, 1, red)

	op := InitOp()
	res := op.Draw(dst, src, nil)
	assert.Equal(red, res.NRGBAAt(0, 0))
	assert.Equal(blue, res.NRGBAAt(1, 1))
	assert.Equal(blue, dst.NRGBAAt(0, 0))

	assert.NoError(op.Set(DstOver))
	res = op.Draw(dst, src, nil)
	assert.Equal(blue, res.NRGBAAt(0, 0))

	assert.NoError(op.Set(Xor))
	res = op.Draw(dst, src, nil)
	assert.Equal(uint8(0), res.NRGBAAt(0, 0).A)

	// a transparent source keeps the backdrop
	assert.NoError(op.Set(SrcOver))
	res = op.Draw(dst, newImage(2, 2, color.NRGBA{}), &Blend{OpType: Multiply})
	assert.Equal(blue, res.NRGBAAt(1, 0))

	// multiplying with white keeps the source color
	white := newImage(1, 1, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	res = op.Draw(white, src, &Blend{OpType: Multiply})
	assert.Equal(red, res.NRGBAAt(0, 0))
}
