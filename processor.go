package seamcarve

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/seamcarve/utils"
	"github.com/pkg/errors"
)

// Resizer is implemented by the types able to resize an image to a predefined size.
type Resizer interface {
	Resize(image.Image) (*image.NRGBA, error)
}

var _ Resizer = (*Processor)(nil)

// State describes the progress of a carving operation.
type State int

const (
	Idle State = iota
	Scaling
	Carving
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scaling:
		return "scaling"
	case Carving:
		return "carving"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Step records a single seam removal.
type Step struct {
	Direction Direction
	Seam      Seam
	Cost      float64
}

// Stats holds the information gathered during the last carving operation.
type Stats struct {
	SourceWidth     int
	SourceHeight    int
	ScaledWidth     int
	ScaledHeight    int
	VerticalSeams   int
	HorizontalSeams int
	// Steps is filled only in debug mode.
	Steps []Step
}

// Iterations returns the number of removed seams.
func (s Stats) Iterations() int {
	return s.VerticalSeams + s.HorizontalSeams
}

// Processor options
type Processor struct {
	NewWidth       int
	NewHeight      int
	Aperture       int     // Sobel kernel size, defaults to 3
	SobelThreshold int     // energies not exceeding the threshold are zeroed
	BlurRadius     float64 // gaussian blur sigma applied before the edge detection
	Filter         imaging.ResampleFilter
	Mode           Mode
	Background     color.Color // padding color used by ModeResize
	Mask           *image.Gray // protection mask, same size as the source image
	FaceDetector   *FaceDetector
	Quality        int // encoding quality of the lossy output formats
	Percentage     bool
	Square         bool
	Debug          bool

	state     State
	stats     Stats
	debugMask *image.Gray
}

// State returns the state reached by the last carving operation.
// A Processor must not be used by more than one goroutine at a time.
func (p *Processor) State() State {
	return p.state
}

// Stats returns the statistics of the last carving operation.
func (p *Processor) Stats() Stats {
	return p.stats
}

// Resize resizes the image with the algorithm selected by the processor mode.
func (p *Processor) Resize(img image.Image) (*image.NRGBA, error) {
	return p.resize(img, p.Mask)
}

func (p *Processor) resize(img image.Image, mask *image.Gray) (*image.NRGBA, error) {
	switch p.Mode {
	case "", ModeSeam:
		return p.carveWithMask(img, mask)
	case ModeResize, ModeCrop:
		if img == nil || img.Bounds().Empty() {
			return nil, ErrInvalidInput
		}
		tw, th := p.targetSize(img.Bounds().Dx(), img.Bounds().Dy())
		if p.Mode == ModeResize {
			return Letterbox(img, tw, th, p.Background, p.filter())
		}
		return CropFill(img, tw, th, p.filter())
	}
	return nil, fmt.Errorf("unsupported resize mode: %q", p.Mode)
}

// Carve is the main entry point for the content aware image resize operation.
// The image (and the mask, if provided) is first scaled down preserving its
// aspect ratio to the smallest size covering the target, then seams are
// removed one by one until the target size is reached. On each iteration
// the direction with more remaining pixels is carved first.
//
// The source image and the mask are never modified.
func (p *Processor) Carve(img image.Image) (*image.NRGBA, error) {
	return p.carveWithMask(img, p.Mask)
}

func (p *Processor) carveWithMask(img image.Image, mask *image.Gray) (*image.NRGBA, error) {
	p.state, p.stats, p.debugMask = Idle, Stats{}, nil

	res, err := p.carve(img, mask)
	if err != nil {
		p.state = Failed
		return nil, err
	}
	p.state = Done
	return res, nil
}

func (p *Processor) carve(img image.Image, srcMask *image.Gray) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidInput
	}
	w0, h0 := img.Bounds().Dx(), img.Bounds().Dy()
	tw, th := p.targetSize(w0, h0)

	if tw <= 0 || th <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "requested %dx%d", tw, th)
	}
	if tw > w0 || th > h0 {
		return nil, errors.Wrapf(ErrUnsupportedEnlargement, "requested %dx%d, image is %dx%d", tw, th, w0, h0)
	}
	if _, _, err := sobelKernels(p.aperture()); err != nil {
		return nil, errors.Wrapf(err, "aperture %d", p.Aperture)
	}
	if srcMask != nil && (srcMask.Bounds().Dx() != w0 || srcMask.Bounds().Dy() != h0) {
		return nil, errors.Wrapf(ErrMaskSize, "mask %v, image %v", srcMask.Bounds().Size(), img.Bounds().Size())
	}
	p.stats.SourceWidth, p.stats.SourceHeight = w0, h0

	p.state = Scaling
	sw, sh := fitSize(w0, h0, tw, th)
	cur, mask := p.rescale(imgToNRGBA(img), srcMask, sw, sh)
	p.stats.ScaledWidth, p.stats.ScaledHeight = sw, sh

	p.state = Carving
	for {
		dw, dh := cur.Bounds().Dx()-tw, cur.Bounds().Dy()-th
		if dw == 0 && dh == 0 {
			break
		}
		dir := Horizontal
		if dw > dh {
			dir = Vertical
		}

		energy, err := p.ComputeEnergy(cur, mask)
		if err != nil {
			return nil, err
		}
		seam, cost, err := FindSeam(energy, dir, MinEnergy)
		if err != nil {
			return nil, err
		}
		if cur, err = RemoveSeam(cur, seam, dir); err != nil {
			return nil, err
		}
		if mask != nil {
			if mask, err = RemoveMaskSeam(mask, seam, dir); err != nil {
				return nil, err
			}
		}

		if dir == Vertical {
			p.stats.VerticalSeams++
		} else {
			p.stats.HorizontalSeams++
		}
		if p.Debug {
			p.stats.Steps = append(p.stats.Steps, Step{Direction: dir, Seam: seam, Cost: cost})
		}
	}
	if p.Debug {
		p.debugMask = mask
	}
	return cur, nil
}

// targetSize returns the requested image size in pixels, resolving the
// percentage and square options against the source size.
func (p *Processor) targetSize(w, h int) (int, int) {
	tw, th := p.NewWidth, p.NewHeight
	if p.Percentage {
		tw = int(math.Round(float64(w) * float64(p.NewWidth) / 100))
		th = int(math.Round(float64(h) * float64(p.NewHeight) / 100))
	}
	if p.Square {
		side := utils.Min(tw, th)
		tw, th = side, side
	}
	return tw, th
}
