package city

import (
	"math"
	"reflect"
	"testing"
)

func TestSquarifyBaseCases(t *testing.T) {
	rect := Rect{X: 1, Z: 2, Width: 10, Depth: 5}

	if got := Squarify(nil, rect); len(got) != 0 {
		t.Fatalf("Squarify(nil) = %v, want empty", got)
	}
	if got := Squarify([]float64{42}, rect); len(got) != 1 || got[0] != rect {
		t.Fatalf("Squarify(single) = %v, want [%v]", got, rect)
	}
	if got := Squarify([]float64{0, 0}, rect); got != nil {
		t.Fatalf("Squarify(zero total) = %v, want nil", got)
	}
}

func TestSquarifyAreaConservation(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		rect    Rect
	}{
		{"Equal4", []float64{100, 100, 100, 100}, Rect{0, 0, 80, 80}},
		{"Skewed", []float64{1000, 10, 10, 10}, Rect{0, 0, 40, 20}},
		{"Tall", []float64{7, 3, 9, 1, 5}, Rect{5, 5, 10, 60}},
		{"Many", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, Rect{0, 0, 33, 21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := Squarify(tt.weights, tt.rect)
			if len(cells) != len(tt.weights) {
				t.Fatalf("got %d cells, want %d", len(cells), len(tt.weights))
			}

			var total float64
			for _, w := range tt.weights {
				total += w
			}

			var covered float64
			for i, c := range cells {
				want := tt.weights[i] / total * tt.rect.Area()
				if math.Abs(c.Area()-want) > 1e-9*tt.rect.Area() {
					t.Errorf("cell %d area = %g, want %g", i, c.Area(), want)
				}
				covered += c.Area()
				checkInside(t, c, tt.rect)
			}
			if math.Abs(covered-tt.rect.Area()) > 1e-9*tt.rect.Area() {
				t.Errorf("covered area = %g, want %g", covered, tt.rect.Area())
			}
		})
	}
}

func TestSquarifyNonOverlap(t *testing.T) {
	weights := []float64{5, 1, 8, 2, 2, 13, 3, 1}
	cells := Squarify(weights, Rect{0, 0, 64, 48})

	for i := range cells {
		for j := i + 1; j < len(cells); j++ {
			if cells[i].Intersects(cells[j]) {
				t.Errorf("cells %d and %d overlap: %+v vs %+v", i, j, cells[i], cells[j])
			}
		}
	}
}

func TestSquarifyPreservesOrder(t *testing.T) {
	// No descending-weight pre-sort: the first supplied weight's cell starts
	// at the rectangle origin regardless of its size.
	weights := []float64{1, 100, 50}
	cells := Squarify(weights, Rect{0, 0, 80, 40})

	if cells[0].X != 0 || cells[0].Z != 0 {
		t.Errorf("first cell = %+v, want origin placement", cells[0])
	}
}

func TestSquarifyDeterminism(t *testing.T) {
	weights := []float64{12, 7, 7, 30, 2, 19}
	rect := Rect{3, 4, 55, 70}

	a := Squarify(weights, rect)
	b := Squarify(weights, rect)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated calls differ:\n%v\n%v", a, b)
	}
}

func TestSquarifyEqualWeightsNearSquare(t *testing.T) {
	// Four equal weights in a square should split into four near-square
	// cells of half the side each way.
	cells := Squarify([]float64{100, 100, 100, 100}, Rect{0, 0, 80, 80})

	for i, c := range cells {
		if math.Abs(c.Width-40) > 1e-9 || math.Abs(c.Depth-40) > 1e-9 {
			t.Errorf("cell %d = %gx%g, want 40x40", i, c.Width, c.Depth)
		}
	}
}

func TestSquarifyRowsAlongLongerSide(t *testing.T) {
	// Wide rectangle: rows are vertical strips advancing along X.
	cells := Squarify([]float64{1, 1}, Rect{0, 0, 100, 10})
	if cells[0].Depth != 10 {
		t.Errorf("wide rect: first cell depth = %g, want full 10", cells[0].Depth)
	}

	// Deep rectangle: rows are horizontal strips advancing along Z.
	cells = Squarify([]float64{1, 1}, Rect{0, 0, 10, 100})
	if cells[0].Width != 10 {
		t.Errorf("deep rect: first cell width = %g, want full 10", cells[0].Width)
	}
}

// checkInside fails if inner is not contained in outer (with float slack).
func checkInside(t *testing.T, inner, outer Rect) {
	t.Helper()
	const eps = 1e-9
	if inner.X < outer.X-eps || inner.Z < outer.Z-eps ||
		inner.X+inner.Width > outer.X+outer.Width+eps ||
		inner.Z+inner.Depth > outer.Z+outer.Depth+eps {
		t.Errorf("rect %+v escapes %+v", inner, outer)
	}
}
