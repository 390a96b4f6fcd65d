// Package imop implements the Porter-Duff composition operations and a few
// separable blend modes used for mixing a graphic element with its backdrop.
// The image/draw core package implements only the source-over-destination
// and source operations.
//
// It is mainly used to debug the carving operation: the protection mask
// is tinted over the resized image, so the protected areas become visible.
package imop

import (
	"fmt"
	"math"

	"github.com/esimov/seamcarve/utils"
)

const (
	Normal   = "normal"
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

var blendModes = []string{Normal, Darken, Lighten, Multiply, Screen, Overlay}

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	if !utils.Contains(blendModes, opType) {
		return fmt.Errorf("unsupported blend mode: %v", opType)
	}
	o.OpType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// Apply mixes the normalized source color cs with the backdrop color cb.
func (o *Blend) Apply(cs, cb float64) float64 {
	switch o.OpType {
	case Darken:
		return math.Min(cs, cb)
	case Lighten:
		return math.Max(cs, cb)
	case Multiply:
		return cs * cb
	case Screen:
		return cs + cb - cs*cb
	case Overlay:
		if cb <= 0.5 {
			return 2 * cs * cb
		}
		return 1 - 2*(1-cs)*(1-cb)
	}
	return cs
}
