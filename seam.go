package seamcarve

import (
	"image"

	"github.com/pkg/errors"
)

// RemoveSeam returns a new image with the seam pixels excised. For a vertical
// seam every row loses the pixel at the seam offset and the pixels on its
// right move one position to the left; horizontal seams work the same way
// on the columns. The source image is left untouched.
func RemoveSeam(img *image.NRGBA, seam Seam, dir Direction) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidInput
	}
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	pix, w, h, err := removeSeam(img.Pix, img.Stride, dx, dy, 4, seam, dir)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}, nil
}

// RemoveMaskSeam applies the seam removal to the protection mask, keeping
// it aligned with the image the same seam has been removed from.
func RemoveMaskSeam(mask *image.Gray, seam Seam, dir Direction) (*image.Gray, error) {
	if mask == nil || mask.Bounds().Empty() {
		return nil, ErrInvalidInput
	}
	dx, dy := mask.Bounds().Dx(), mask.Bounds().Dy()
	pix, w, h, err := removeSeam(mask.Pix, mask.Stride, dx, dy, 1, seam, dir)
	if err != nil {
		return nil, err
	}
	return &image.Gray{Pix: pix, Stride: w, Rect: image.Rect(0, 0, w, h)}, nil
}

// removeSeam works on a raw pixel buffer having bpp bytes per pixel and
// returns a newly allocated, tightly packed buffer with its dimensions.
func removeSeam(src []uint8, stride, width, height, bpp int, seam Seam, dir Direction) ([]uint8, int, int, error) {
	length, limit := height, width
	if dir == Horizontal {
		length, limit = width, height
	}
	if len(seam) != length {
		return nil, 0, 0, errors.Wrapf(ErrInvalidSeam, "seam length %d, expected %d", len(seam), length)
	}
	if limit < 2 {
		return nil, 0, 0, errors.Wrapf(ErrInvalidSeam, "cannot remove a %s seam from a %dx%d grid", dir, width, height)
	}
	for i, v := range seam {
		if v < 0 || v >= limit {
			return nil, 0, 0, errors.Wrapf(ErrInvalidSeam, "offset %d at position %d out of range", v, i)
		}
	}

	switch dir {
	case Vertical:
		nw := width - 1
		dst := make([]uint8, nw*height*bpp)
		for y := 0; y < height; y++ {
			row := src[y*stride : y*stride+width*bpp]
			out := dst[y*nw*bpp : (y+1)*nw*bpp]
			cut := seam[y] * bpp
			copy(out, row[:cut])
			copy(out[cut:], row[cut+bpp:])
		}
		return dst, nw, height, nil
	default:
		nh := height - 1
		dst := make([]uint8, width*nh*bpp)
		for x := 0; x < width; x++ {
			for y := 0; y < nh; y++ {
				sy := y
				if y >= seam[x] {
					sy++
				}
				copy(dst[(y*width+x)*bpp:(y*width+x+1)*bpp], src[sy*stride+x*bpp:sy*stride+(x+1)*bpp])
			}
		}
		return dst, width, nh, nil
	}
}
