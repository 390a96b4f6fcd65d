package seamcarve

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

// newStepImage returns an image with a black left half and a white right half.
func newStepImage(w, h int) *image.NRGBA {
	img := newUniformImage(w, h, color.Black)
	draw.Draw(img, image.Rect(w/2, 0, w, h), &image.Uniform{color.White}, image.Point{}, draw.Src)
	return img
}

func TestSobel_Kernels(t *testing.T) {
	tests := []struct {
		aperture int
		deriv    kernel
		smooth   kernel
	}{
		{1, kernel{-1, 0, 1}, kernel{1}},
		{3, kernel{-1, 0, 1}, kernel{1, 2, 1}},
		{5, kernel{-1, -2, 0, 2, 1}, kernel{1, 4, 6, 4, 1}},
		{7, kernel{-1, -4, -5, 0, 5, 4, 1}, kernel{1, 6, 15, 20, 15, 6, 1}},
	}
	for _, tt := range tests {
		deriv, smooth, err := sobelKernels(tt.aperture)
		assert.NoError(t, err)
		assert.Equal(t, tt.deriv, deriv, "aperture %d", tt.aperture)
		assert.Equal(t, tt.smooth, smooth, "aperture %d", tt.aperture)
	}

	for _, aperture := range []int{-1, 0, 2, 4, 9} {
		_, _, err := sobelKernels(aperture)
		assert.ErrorIs(t, err, ErrInvalidAperture)
	}
}

func TestSobel_Reflect(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1, reflect(-1, 5))
	assert.Equal(2, reflect(-2, 5))
	assert.Equal(3, reflect(5, 5))
	assert.Equal(2, reflect(6, 5))
	assert.Equal(4, reflect(4, 5))
	assert.Equal(0, reflect(-3, 1))
	assert.Equal(1, reflect(-1, 2))
	assert.Equal(0, reflect(2, 2))
}

func TestEnergy_Grayscale(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 0})
	img.SetNRGBA(3, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	assert.Equal(t, []uint8{76, 150, 29, 255}, grayscale(img))
}

func TestEnergy_UniformImageHasNoEnergy(t *testing.T) {
	img := newUniformImage(imgWidth, imgHeight, color.NRGBA{R: 0x20, G: 0x80, B: 0xc0, A: 0xff})

	for _, aperture := range []int{1, 3, 5, 7} {
		p := &Processor{Aperture: aperture}
		e, err := p.ComputeEnergy(img, nil)
		assert.NoError(t, err)
		assert.Equal(t, imgWidth, e.Width)
		assert.Equal(t, imgHeight, e.Height)
		assert.Zero(t, e.Max(), "aperture %d", aperture)
	}
}

func TestEnergy_DetectEdge(t *testing.T) {
	img := newStepImage(8, 4)

	for _, aperture := range []int{1, 3} {
		p := &Processor{Aperture: aperture}
		e, err := p.ComputeEnergy(img, nil)
		assert.NoError(t, err)

		for y := 0; y < e.Height; y++ {
			for x := 0; x < e.Width; x++ {
				exp := 0.0
				if x == 3 || x == 4 {
					exp = 127.5
				}
				assert.Equal(t, exp, e.At(x, y), "aperture %d, pixel (%d, %d)", aperture, x, y)
			}
		}
	}
}

func TestEnergy_Threshold(t *testing.T) {
	img := newStepImage(8, 4)

	p := &Processor{SobelThreshold: 200}
	e, err := p.ComputeEnergy(img, nil)
	assert.NoError(t, err)
	assert.Zero(t, e.Max())

	p.SobelThreshold = 100
	e, err = p.ComputeEnergy(img, nil)
	assert.NoError(t, err)
	assert.Equal(t, 127.5, e.Max())
}

func TestEnergy_BlurWidensEdge(t *testing.T) {
	img := newStepImage(8, 4)

	p := &Processor{}
	e, err := p.ComputeEnergy(img, nil)
	assert.NoError(t, err)
	assert.Zero(t, e.At(2, 0))

	p.BlurRadius = 1
	e, err = p.ComputeEnergy(img, nil)
	assert.NoError(t, err)
	assert.Greater(t, e.At(2, 0), 0.0)
	// the source image is not blurred in place
	assert.Equal(t, uint8(0), img.Pix[0])
	assert.Equal(t, uint8(255), img.NRGBAAt(4, 0).R)
}

func TestEnergy_MaskBias(t *testing.T) {
	assert := assert.New(t)

	img := newStepImage(8, 4)
	mask := image.NewGray(img.Bounds())
	mask.SetGray(1, 1, color.Gray{Y: 40})
	mask.SetGray(3, 2, color.Gray{Y: MaxBias})

	e, err := NewEnergyMap(img, mask)
	assert.NoError(err)
	assert.Equal(40.0, e.At(1, 1))
	assert.Equal(127.5+255, e.At(3, 2))
	assert.Equal(127.5, e.At(3, 1))
	assert.Zero(e.At(0, 0))
}

func TestEnergy_Errors(t *testing.T) {
	img := newStepImage(8, 4)

	_, err := NewEnergyMap(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewEnergyMap(img, image.NewGray(image.Rect(0, 0, 4, 4)))
	assert.ErrorIs(t, err, ErrMaskSize)

	p := &Processor{Aperture: 4}
	_, err = p.ComputeEnergy(img, nil)
	assert.ErrorIs(t, err, ErrInvalidAperture)
}

func TestEnergy_Image(t *testing.T) {
	e := &EnergyMap{Width: 3, Height: 1, Pix: []float64{0, 50, 100}}
	assert.Equal(t, 100.0, e.Max())
	assert.Equal(t, []uint8{0, 127, 255}, e.Image().Pix)

	e.Set(2, 0, 0)
	e.Set(1, 0, 0)
	assert.Equal(t, []uint8{0, 0, 0}, e.Image().Pix)
}
