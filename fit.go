package seamcarve

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

// Mode selects the resize algorithm used by Resize.
type Mode string

const (
	// ModeSeam scales the image preserving its aspect ratio, then removes seams
	// until the requested size is reached.
	ModeSeam Mode = "seam"
	// ModeResize fits the image into the requested size and pads the
	// remaining area with the background color.
	ModeResize Mode = "resize"
	// ModeCrop scales the image to cover the requested size and crops out the center.
	ModeCrop Mode = "crop"
)

// ParseMode converts a mode name to Mode.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(name)); m {
	case "", ModeSeam:
		return ModeSeam, nil
	case ModeResize, ModeCrop:
		return m, nil
	}
	return "", fmt.Errorf("unsupported resize mode: %q", name)
}

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// ParseFilter returns the resampling filter registered under the name.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		return imaging.Lanczos, nil
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unsupported resampling filter: %q", name)
	}
	return f, nil
}

// fitSize returns the aspect ratio preserving size which covers the target
// on both axes, so that only seam removal is needed afterwards.
// The candidates are (tw, tw*h/w) and (th*w/h, th); the first one is
// chosen when its height does not fall below the target height.
func fitSize(w, h, tw, th int) (int, int) {
	if tw*h >= th*w {
		h1 := int(math.Round(float64(tw) * float64(h) / float64(w)))
		return tw, h1
	}
	w2 := int(math.Round(float64(th) * float64(w) / float64(h)))
	return w2, th
}

// rescale scales the image and the mask to the given size using the same filter.
// An owned copy is returned even if no scaling is needed.
func (p *Processor) rescale(img *image.NRGBA, mask *image.Gray, w, h int) (*image.NRGBA, *image.Gray) {
	if img.Bounds().Dx() == w && img.Bounds().Dy() == h {
		img = imaging.Clone(img)
		if mask != nil {
			mask = cloneGray(mask)
		}
		return img, mask
	}
	img = imaging.Resize(img, w, h, p.filter())
	if mask != nil {
		mask = nrgbaToGray(imaging.Resize(mask, w, h, p.filter()))
	}
	return img, mask
}

func (p *Processor) filter() imaging.ResampleFilter {
	if p.Filter.Kernel == nil {
		return imaging.Lanczos
	}
	return p.Filter
}

// Letterbox fits the image into a w x h canvas preserving its aspect ratio
// and fills the uncovered area with the background color.
func Letterbox(img image.Image, w, h int, bg color.Color, filter imaging.ResampleFilter) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidInput
	}
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidSize
	}
	if bg == nil {
		bg = color.Black
	}
	sw, sh := img.Bounds().Dx(), img.Bounds().Dy()
	fw, fh := w, int(math.Round(float64(w)*float64(sh)/float64(sw)))
	if fh > h {
		fw, fh = int(math.Round(float64(h)*float64(sw)/float64(sh))), h
	}
	fw, fh = max(fw, 1), max(fh, 1)

	fitted := imaging.Resize(img, fw, fh, filter)
	return imaging.PasteCenter(imaging.New(w, h, bg), fitted), nil
}

// CropFill scales the image to cover the w x h area and crops out its center.
func CropFill(img image.Image, w, h int, filter imaging.ResampleFilter) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidInput
	}
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidSize
	}
	return imaging.Fill(img, w, h, imaging.Center, filter), nil
}
