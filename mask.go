package seamcarve

import (
	"image"
	"image/color"
	"image/draw"
)

// MaxBias is the highest protection a mask pixel can hold.
const MaxBias = 0xff

// MaskFromRects rasterizes the rectangles (e.g. detected faces) into a
// protection mask of the given bounds. The rectangles are clipped to the
// bounds, the ones falling outside are ignored.
func MaskFromRects(bounds image.Rectangle, rects []image.Rectangle, bias uint8) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for _, r := range rects {
		r = r.Sub(bounds.Min).Intersect(mask.Bounds())
		if r.Empty() {
			continue
		}
		draw.Draw(mask, r, &image.Uniform{color.Gray{Y: bias}}, image.Point{}, draw.Src)
	}
	return mask
}

// MaskFromImage converts an image to a protection mask using its luminance.
func MaskFromImage(img image.Image) *image.Gray {
	b := img.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(mask, mask.Bounds(), img, b.Min, draw.Src)
	return mask
}

// MergeMasks combines two masks of the same size keeping the highest bias of each pixel.
func MergeMasks(a, b *image.Gray) *image.Gray {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	dst := cloneGray(a)
	for i, v := range b.Pix {
		if v > dst.Pix[i] {
			dst.Pix[i] = v
		}
	}
	return dst
}

func cloneGray(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[y*src.Stride:y*src.Stride+b.Dx()])
	}
	return dst
}

// nrgbaToGray keeps the red channel of a grayscale image stored as NRGBA.
func nrgbaToGray(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = src.Pix[y*src.Stride+x*4]
		}
	}
	return dst
}
