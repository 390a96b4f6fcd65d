package seamcarve

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// EnergyMap holds the importance score of every pixel of the working image.
// The higher the value, the more expensive it is to remove the pixel.
type EnergyMap struct {
	Width  int
	Height int
	Pix    []float64
}

// At returns the energy of the pixel at (x, y).
func (e *EnergyMap) At(x, y int) float64 {
	return e.Pix[y*e.Width+x]
}

// Set updates the energy of the pixel at (x, y).
func (e *EnergyMap) Set(x, y int, v float64) {
	e.Pix[y*e.Width+x] = v
}

// Max returns the highest energy value of the map.
func (e *EnergyMap) Max() float64 {
	if len(e.Pix) == 0 {
		return 0
	}
	return floats.Max(e.Pix)
}

// Image renders the energy map as a grayscale image, normalized to the full 8 bit range.
func (e *EnergyMap) Image() *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, e.Width, e.Height))
	peak := e.Max()
	if peak == 0 {
		return dst
	}
	for i, v := range e.Pix {
		dst.Pix[i] = uint8(v / peak * 255)
	}
	return dst
}

// NewEnergyMap builds the energy map of the image with the default Sobel aperture.
// The mask, when not nil, is added pointwise to the gradient magnitude.
func NewEnergyMap(img *image.NRGBA, mask *image.Gray) (*EnergyMap, error) {
	p := &Processor{}
	return p.ComputeEnergy(img, mask)
}

// ComputeEnergy builds the energy map of the image: the grayscale image is
// run through the Sobel operator and the absolute horizontal and vertical
// gradients are mixed with equal weights. The protection mask biases the
// result, but it does not exclude the masked pixels from being removed.
func (p *Processor) ComputeEnergy(img *image.NRGBA, mask *image.Gray) (*EnergyMap, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidInput
	}
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	if mask != nil && (mask.Bounds().Dx() != dx || mask.Bounds().Dy() != dy) {
		return nil, errors.Wrapf(ErrMaskSize, "mask %v, image %v", mask.Bounds().Size(), img.Bounds().Size())
	}

	src := img
	if p.BlurRadius > 0 {
		src = imaging.Blur(img, p.BlurRadius)
	}

	gx, gy, err := sobel(grayscale(src), dx, dy, p.aperture())
	if err != nil {
		return nil, err
	}

	e := &EnergyMap{Width: dx, Height: dy, Pix: gx}
	floats.Scale(0.5, e.Pix)
	floats.AddScaled(e.Pix, 0.5, gy)

	if p.SobelThreshold > 0 {
		threshold := float64(p.SobelThreshold)
		for i, v := range e.Pix {
			if v <= threshold {
				e.Pix[i] = 0
			}
		}
	}

	if mask != nil {
		for y := 0; y < dy; y++ {
			row := mask.Pix[y*mask.Stride : y*mask.Stride+dx]
			for x, v := range row {
				e.Pix[y*dx+x] += float64(v)
			}
		}
	}
	return e, nil
}

func (p *Processor) aperture() int {
	if p.Aperture == 0 {
		return DefaultAperture
	}
	return p.Aperture
}
