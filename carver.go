package seamcarve

import (
	"fmt"
	"image"
	"math"
	"strings"
)

// Direction is the carving direction.
type Direction int

const (
	// Vertical seams run from top to bottom; removing one shrinks the width by one.
	Vertical Direction = iota
	// Horizontal seams run from left to right; removing one shrinks the height by one.
	Horizontal
)

func (d Direction) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	return "unknown"
}

// ParseDirection converts a direction name to Direction.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(name) {
	case "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unsupported seam direction: %q", name)
}

// Objective tells the seam solver whether to look for the least or the most important seam.
type Objective int

const (
	MinEnergy Objective = iota
	MaxEnergy
)

// Seam holds one pixel offset per row for vertical seams (indexed top to
// bottom) or one per column for horizontal seams (indexed left to right).
// Adjacent offsets differ by at most one.
type Seam []int

// Points converts the seam offsets to image coordinates.
func (s Seam) Points(dir Direction) []image.Point {
	points := make([]image.Point, len(s))
	for i, v := range s {
		if dir == Vertical {
			points[i] = image.Pt(v, i)
		} else {
			points[i] = image.Pt(i, v)
		}
	}
	return points
}

// DPTable is the dynamic programming table of the cumulative seam energies.
// It is laid out along the carving direction: each step corresponds to a
// row for vertical seams and to a column for horizontal seams, and holds
// one entry per pixel across the seam axis.
type DPTable struct {
	size   int // entries per step (seam axis)
	steps  int // number of steps (scan axis)
	dir    Direction
	obj    Objective
	cost   []float64
	parent []int
}

// NewDPTable computes the cumulative energy table of the energy map using the following logic:
//   - the first step copies the energy values;
//   - every following entry sums up its own energy with the best cumulative
//     energy of its (up to three) neighbors from the previous step.
//
// Neighbors are evaluated in the -1, 0, +1 order and on equal values the
// first one wins, which favors the left (or upper) predecessor.
func NewDPTable(e *EnergyMap, dir Direction, obj Objective) *DPTable {
	t := &DPTable{dir: dir, obj: obj}
	if dir == Vertical {
		t.size, t.steps = e.Width, e.Height
	} else {
		t.size, t.steps = e.Height, e.Width
	}
	t.cost = make([]float64, t.size*t.steps)
	t.parent = make([]int, t.size*t.steps)

	for i := 0; i < t.size; i++ {
		t.set(i, 0, t.energy(e, i, 0), i)
	}

	for j := 1; j < t.steps; j++ {
		for i := 0; i < t.size; i++ {
			best, from := math.NaN(), -1
			for k := i - 1; k <= i+1; k++ {
				// Do not compute edge cases: the neighbor is outside the grid.
				if k < 0 || k >= t.size {
					continue
				}
				if c := t.Cost(k, j-1); from < 0 || t.better(c, best) {
					best, from = c, k
				}
			}
			t.set(i, j, t.energy(e, i, j)+best, from)
		}
	}
	return t
}

// energy returns the energy of the i-th entry of the j-th step.
func (t *DPTable) energy(e *EnergyMap, i, j int) float64 {
	if t.dir == Vertical {
		return e.At(i, j)
	}
	return e.At(j, i)
}

func (t *DPTable) set(i, j int, cost float64, parent int) {
	idx := j*t.size + i
	t.cost[idx] = cost
	t.parent[idx] = parent
}

func (t *DPTable) better(a, b float64) bool {
	if t.obj == MaxEnergy {
		return a > b
	}
	return a < b
}

// Cost returns the cumulative energy of the i-th entry of the j-th step.
func (t *DPTable) Cost(i, j int) float64 {
	return t.cost[j*t.size+i]
}

// Parent returns the index of the entry of step j-1 from which the
// cumulative energy of the i-th entry of step j has been reached.
func (t *DPTable) Parent(i, j int) int {
	return t.parent[j*t.size+i]
}

// Seam selects the best entry of the last step (the lowest index wins on
// equal values) and walks back the parent links up to the first step.
// It returns the seam together with its total energy.
func (t *DPTable) Seam() (Seam, float64) {
	last := t.steps - 1
	px := 0
	for i := 1; i < t.size; i++ {
		if t.better(t.Cost(i, last), t.Cost(px, last)) {
			px = i
		}
	}
	total := t.Cost(px, last)

	seam := make(Seam, t.steps)
	for j := last; j >= 0; j-- {
		seam[j] = px
		px = t.Parent(px, j)
	}
	return seam, total
}

// FindSeam returns the lowest (or highest) energy seam of the map in the requested direction.
func FindSeam(e *EnergyMap, dir Direction, obj Objective) (Seam, float64, error) {
	if e == nil || e.Width <= 0 || e.Height <= 0 || len(e.Pix) != e.Width*e.Height {
		return nil, 0, ErrInvalidInput
	}
	seam, cost := NewDPTable(e, dir, obj).Seam()
	return seam, cost, nil
}
