package imop

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
)

const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// factors returns the Fa and Fb coefficients of the Porter-Duff equations
// co = as*Fa*cs + ab*Fb*cb and ao = as*Fa + ab*Fb.
var factors = map[string]func(as, ab float64) (float64, float64){
	Copy:    func(as, ab float64) (float64, float64) { return 1, 0 },
	SrcOver: func(as, ab float64) (float64, float64) { return 1, 1 - as },
	DstOver: func(as, ab float64) (float64, float64) { return 1 - ab, 1 },
	SrcIn:   func(as, ab float64) (float64, float64) { return ab, 0 },
	DstIn:   func(as, ab float64) (float64, float64) { return 0, as },
	SrcOut:  func(as, ab float64) (float64, float64) { return 1 - ab, 0 },
	DstOut:  func(as, ab float64) (float64, float64) { return 0, 1 - as },
	SrcAtop: func(as, ab float64) (float64, float64) { return ab, 1 - as },
	DstAtop: func(as, ab float64) (float64, float64) { return 1 - ab, as },
	Xor:     func(as, ab float64) (float64, float64) { return 1 - ab, 1 - as },
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
}

// InitOp initializes a new composition, defaulting to the source-over operation.
func InitOp() *Composite {
	return &Composite{current: SrcOver}
}

// Set activates one of the supported composite operations.
func (op *Composite) Set(cop string) error {
	if _, ok := factors[cop]; !ok {
		return fmt.Errorf("unsupported composite operation: %v", cop)
	}
	op.current = cop
	return nil
}

// Get returns the currently active composite operation.
func (op *Composite) Get() string {
	return op.current
}

// Draw composes the src image over the dst backdrop and returns the result
// as a new image. The blend mode, when not nil, mixes the source colors with
// the backdrop before the composition. Only the overlapping area is drawn.
func (op *Composite) Draw(dst, src *image.NRGBA, blend *Blend) *image.NRGBA {
	rect := dst.Bounds().Intersect(src.Bounds())
	out := image.NewNRGBA(dst.Bounds())
	draw.Draw(out, out.Bounds(), dst, dst.Bounds().Min, draw.Src)

	fn := factors[op.current]
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			s := src.NRGBAAt(x, y)
			b := dst.NRGBAAt(x, y)
			as, ab := float64(s.A)/255, float64(b.A)/255
			fa, fb := fn(as, ab)

			mix := func(cs, cb uint8) uint8 {
				ns, nb := float64(cs)/255, float64(cb)/255
				if blend != nil {
					ns = (1-ab)*ns + ab*blend.Apply(ns, nb)
				}
				ao := as*fa + ab*fb
				if ao == 0 {
					return 0
				}
				co := (as*fa*ns + ab*fb*nb) / ao
				return uint8(math.Round(math.Min(math.Max(co, 0), 1) * 255))
			}
			out.SetNRGBA(x, y, color.NRGBA{
				R: mix(s.R, b.R),
				G: mix(s.G, b.G),
				B: mix(s.B, b.B),
				A: uint8(math.Round((as*fa + ab*fb) * 255)),
			})
		}
	}
	return out
}
