package seamcarve

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	imgWidth  = 10
	imgHeight = 10
)

func newEnergyMap(rows [][]float64) *EnergyMap {
	e := &EnergyMap{Width: len(rows[0]), Height: len(rows)}
	for _, row := range rows {
		e.Pix = append(e.Pix, row...)
	}
	return e
}

func newUniformImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func TestCarver_DPTableTrace(t *testing.T) {
	assert := assert.New(t)

	e := newEnergyMap([][]float64{
		{1, 2, 3, 4},
		{2, 1, 4, 3},
		{3, 4, 1, 2},
		{4, 3, 2, 1},
	})
	table := NewDPTable(e, Vertical, MinEnergy)

	expCost := [][]float64{
		{1, 2, 3, 4},
		{3, 2, 6, 6},
		{5, 6, 3, 8},
		{9, 6, 5, 4},
	}
	expParent := [][]int{
		{0, 1, 2, 3},
		{0, 0, 1, 2},
		{1, 1, 1, 2},
		{0, 2, 2, 2},
	}
	for j := range expCost {
		for i := range expCost[j] {
			assert.Equal(expCost[j][i], table.Cost(i, j), "cost at row %d, column %d", j, i)
			assert.Equal(expParent[j][i], table.Parent(i, j), "parent at row %d, column %d", j, i)
		}
	}

	seam, cost := table.Seam()
	assert.Equal(Seam{0, 1, 2, 3}, seam)
	assert.Equal(4.0, cost)

	seam, cost, err := FindSeam(e, Vertical, MinEnergy)
	assert.NoError(err)
	assert.Equal(Seam{0, 1, 2, 3}, seam)
	assert.Equal(4.0, cost)
}

func TestCarver_HorizontalIsTransposedVertical(t *testing.T) {
	assert := assert.New(t)

	// The transpose of the map used above.
	e := newEnergyMap([][]float64{
		{1, 2, 3, 4},
		{2, 1, 4, 3},
		{3, 4, 1, 2},
		{4, 3, 2, 1},
	})
	seam, cost, err := FindSeam(e, Horizontal, MinEnergy)
	assert.NoError(err)
	// The map is symmetric, so the horizontal seam follows the same diagonal.
	assert.Equal(Seam{0, 1, 2, 3}, seam)
	assert.Equal(4.0, cost)

	e = newEnergyMap([][]float64{
		{9, 9, 9},
		{1, 9, 9},
		{9, 1, 1},
	})
	seam, cost, err = FindSeam(e, Horizontal, MinEnergy)
	assert.NoError(err)
	assert.Equal(Seam{1, 2, 2}, seam)
	assert.Equal(3.0, cost)
}

func TestCarver_TieBreakFavorsLowestIndex(t *testing.T) {
	assert := assert.New(t)

	e := &EnergyMap{Width: imgWidth, Height: imgHeight, Pix: make([]float64, imgWidth*imgHeight)}
	for _, dir := range []Direction{Vertical, Horizontal} {
		seam, cost, err := FindSeam(e, dir, MinEnergy)
		assert.NoError(err)
		assert.Equal(make(Seam, 10), seam)
		assert.Zero(cost)
	}

	// Two equally cheap columns: the left one wins.
	e = newEnergyMap([][]float64{
		{5, 1, 5, 1},
		{5, 1, 5, 1},
		{5, 1, 5, 1},
	})
	seam, cost, err := FindSeam(e, Vertical, MinEnergy)
	assert.NoError(err)
	assert.Equal(Seam{1, 1, 1}, seam)
	assert.Equal(3.0, cost)
}

func TestCarver_MaxEnergy(t *testing.T) {
	assert := assert.New(t)

	e := newEnergyMap([][]float64{
		{1, 2, 3, 4},
		{2, 1, 4, 3},
		{3, 4, 1, 2},
		{4, 3, 2, 1},
	})
	seam, cost, err := FindSeam(e, Vertical, MaxEnergy)
	assert.NoError(err)
	assert.Equal(seamEnergy(e, seam, Vertical), cost)
	assert.Equal(bruteForce(e, Vertical, MaxEnergy), cost)
	assertConnected(t, seam, 4)
}

func TestCarver_SeamIsOptimal(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for n := 0; n < 50; n++ {
		w, h := 2+rnd.Intn(4), 2+rnd.Intn(4)
		e := &EnergyMap{Width: w, Height: h, Pix: make([]float64, w*h)}
		for i := range e.Pix {
			e.Pix[i] = float64(rnd.Intn(10))
		}

		for _, dir := range []Direction{Vertical, Horizontal} {
			for _, obj := range []Objective{MinEnergy, MaxEnergy} {
				seam, cost, err := FindSeam(e, dir, obj)
				assert.NoError(t, err)

				size, length := w, h
				if dir == Horizontal {
					size, length = h, w
				}
				assert.Len(t, seam, length)
				assertConnected(t, seam, size)
				assert.Equal(t, seamEnergy(e, seam, dir), cost)
				assert.Equal(t, bruteForce(e, dir, obj), cost, "map %dx%d %v", w, h, dir)
			}
		}
	}
}

func TestCarver_DegenerateGeometry(t *testing.T) {
	assert := assert.New(t)

	// A single column: the vertical seam is the column itself.
	e := newEnergyMap([][]float64{{3}, {1}, {2}})
	seam, cost, err := FindSeam(e, Vertical, MinEnergy)
	assert.NoError(err)
	assert.Equal(Seam{0, 0, 0}, seam)
	assert.Equal(6.0, cost)

	// A single row: every horizontal seam offset is zero.
	e = newEnergyMap([][]float64{{3, 1, 2}})
	seam, cost, err = FindSeam(e, Horizontal, MinEnergy)
	assert.NoError(err)
	assert.Equal(Seam{0, 0, 0}, seam)
	assert.Equal(6.0, cost)

	// Crossing a single row picks the cheapest pixel.
	seam, cost, err = FindSeam(e, Vertical, MinEnergy)
	assert.NoError(err)
	assert.Equal(Seam{1}, seam)
	assert.Equal(1.0, cost)
}

func TestCarver_InvalidEnergyMap(t *testing.T) {
	for _, e := range []*EnergyMap{
		nil,
		{},
		{Width: 2, Height: 2, Pix: make([]float64, 3)},
	} {
		_, _, err := FindSeam(e, Vertical, MinEnergy)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCarver_SeamAvoidsProtectedRegion(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		rect image.Rectangle
	}{
		{"vertical", Vertical, image.Rect(0, 3, 6, 7)},
		{"horizontal", Horizontal, image.Rect(3, 0, 9, 5)},
	}

	img := newUniformImage(16, 12, color.Gray{Y: 0x80})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEnergyMap(img, nil)
			assert.NoError(t, err)
			seam, _, err := FindSeam(e, tt.dir, MinEnergy)
			assert.NoError(t, err)
			// Without protection the seam runs along the first row or column.
			assert.True(t, intersects(seam, tt.dir, tt.rect))

			mask := MaskFromRects(img.Bounds(), []image.Rectangle{tt.rect}, MaxBias)
			e, err = NewEnergyMap(img, mask)
			assert.NoError(t, err)
			seam, cost, err := FindSeam(e, tt.dir, MinEnergy)
			assert.NoError(t, err)
			assert.False(t, intersects(seam, tt.dir, tt.rect))
			assert.Zero(t, cost)
		})
	}
}

func TestCarver_ParseDirection(t *testing.T) {
	assert := assert.New(t)

	for name, exp := range map[string]Direction{
		"vertical": Vertical, "V": Vertical, "horizontal": Horizontal, "h": Horizontal,
	} {
		dir, err := ParseDirection(name)
		assert.NoError(err)
		assert.Equal(exp, dir)
	}
	_, err := ParseDirection("diagonal")
	assert.Error(err)

	assert.Equal("vertical", Vertical.String())
	assert.Equal("horizontal", Horizontal.String())
}

func TestCarver_SeamPoints(t *testing.T) {
	seam := Seam{2, 1, 1}
	assert.Equal(t, []image.Point{{2, 0}, {1, 1}, {1, 2}}, seam.Points(Vertical))
	assert.Equal(t, []image.Point{{0, 2}, {1, 1}, {2, 1}}, seam.Points(Horizontal))
}

func BenchmarkCarver_FindSeam(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	e := &EnergyMap{Width: 400, Height: 300, Pix: make([]float64, 400*300)}
	for i := range e.Pix {
		e.Pix[i] = rnd.Float64() * 255
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		FindSeam(e, Vertical, MinEnergy)
	}
}

func seamEnergy(e *EnergyMap, seam Seam, dir Direction) float64 {
	var sum float64
	for _, pt := range seam.Points(dir) {
		sum += e.At(pt.X, pt.Y)
	}
	return sum
}

// bruteForce enumerates every connected seam and returns the best total energy.
func bruteForce(e *EnergyMap, dir Direction, obj Objective) float64 {
	size, steps := e.Width, e.Height
	at := func(i, j int) float64 { return e.At(i, j) }
	if dir == Horizontal {
		size, steps = e.Height, e.Width
		at = func(i, j int) float64 { return e.At(j, i) }
	}

	best := math.Inf(1)
	if obj == MaxEnergy {
		best = math.Inf(-1)
	}
	var walk func(i, j int, sum float64)
	walk = func(i, j int, sum float64) {
		sum += at(i, j)
		if j == steps-1 {
			if (obj == MinEnergy && sum < best) || (obj == MaxEnergy && sum > best) {
				best = sum
			}
			return
		}
		for k := i - 1; k <= i+1; k++ {
			if k >= 0 && k < size {
				walk(k, j+1, sum)
			}
		}
	}
	for i := 0; i < size; i++ {
		walk(i, 0, 0)
	}
	return best
}

func assertConnected(t *testing.T, seam Seam, size int) {
	t.Helper()
	for i, v := range seam {
		assert.True(t, v >= 0 && v < size, "offset %d out of range", v)
		if i > 0 {
			d := v - seam[i-1]
			assert.True(t, d >= -1 && d <= 1, "seam is not connected at %d", i)
		}
	}
}

func intersects(seam Seam, dir Direction, r image.Rectangle) bool {
	for _, pt := range seam.Points(dir) {
		if pt.In(r) {
			return true
		}
	}
	return false
}
