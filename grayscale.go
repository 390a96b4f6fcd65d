package seamcarve

import (
	"image"
	"math"
)

// grayscale converts the image to grayscale mode and returns the
// luminance values as a one dimensional, row-major array.
// The alpha channel is ignored.
func grayscale(src *image.NRGBA) []uint8 {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	gray := make([]uint8, width*height)

	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+width*4]
		for x := 0; x < width; x++ {
			r, g, b := row[x*4], row[x*4+1], row[x*4+2]
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			gray[y*width+x] = uint8(math.Min(math.Round(lum), 255))
		}
	}
	return gray
}
