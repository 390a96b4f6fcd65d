package seamcarve

import (
	"image"
	"image/color"

	"github.com/esimov/seamcarve/imop"
)

var (
	// DebugColor is the tint of the protected areas in debug mode.
	DebugColor = color.NRGBA{R: 0xff, G: 0x33, B: 0x33, A: 0xb0}
	// SeamColor is the color used to draw the seams.
	SeamColor = color.NRGBA{R: 0xff, A: 0xff}
)

// DebugOverlay tints the image pixels protected by the mask. The tint is
// multiplied with the image colors and its opacity follows the mask bias.
func DebugOverlay(img *image.NRGBA, mask *image.Gray, tint color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	layer := image.NewNRGBA(b)
	for y := 0; y < b.Dy() && y < mask.Bounds().Dy(); y++ {
		for x := 0; x < b.Dx() && x < mask.Bounds().Dx(); x++ {
			v := mask.Pix[y*mask.Stride+x]
			if v == 0 {
				continue
			}
			c := tint
			c.A = uint8(uint32(tint.A) * uint32(v) / 0xff)
			layer.SetNRGBA(b.Min.X+x, b.Min.Y+y, c)
		}
	}

	blend := &imop.Blend{OpType: imop.Multiply}
	return imop.InitOp().Draw(img, layer, blend)
}

// DrawSeam draws the seam over a copy of the image.
func DrawSeam(img image.Image, seam Seam, dir Direction, c color.Color) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	for y := 0; y < dst.Bounds().Dy(); y++ {
		for x := 0; x < dst.Bounds().Dx(); x++ {
			dst.Set(x, y, img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y))
		}
	}
	for _, pt := range seam.Points(dir) {
		if pt.In(dst.Bounds()) {
			dst.Set(pt.X, pt.Y, c)
		}
	}
	return dst
}
