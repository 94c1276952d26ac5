package grid

import (
	"math"
	"testing"
)

func TestFarField1DPlacementOrder(t *testing.T) {
	g, err := NewFarField1D(-math.Pi/2, math.Pi/2, 5)
	if err != nil {
		t.Fatalf("NewFarField1D: %v", err)
	}

	if shape := g.Shape(); len(shape) != 1 || shape[0] != 5 {
		t.Fatalf("shape mismatch: got %v want [5]", shape)
	}

	p := g.Placement()
	want := []float64{-math.Pi / 2, -math.Pi / 4, 0, math.Pi / 4, math.Pi / 2}
	for i, w := range want {
		if got := p.At(i, 0); math.Abs(got-w) > 1e-12 {
			t.Fatalf("point %d mismatch: got %f want %f", i, got, w)
		}
	}
}

func TestFarField2DPlacementOrder(t *testing.T) {
	g, err := NewFarField2D(-1, 1, 3, 0, 0.5, 2)
	if err != nil {
		t.Fatalf("NewFarField2D: %v", err)
	}

	if shape := g.Shape(); shape[0] != 3 || shape[1] != 2 {
		t.Fatalf("shape mismatch: got %v want [3 2]", shape)
	}

	// Row-major: the elevation axis varies fastest.
	p := g.Placement()
	want := [][2]float64{
		{-1, 0}, {-1, 0.5},
		{0, 0}, {0, 0.5},
		{1, 0}, {1, 0.5},
	}
	for i, w := range want {
		if az := p.At(i, 0); math.Abs(az-w[0]) > 1e-12 {
			t.Fatalf("azimuth %d mismatch: got %f want %f", i, az, w[0])
		}
		if el := p.At(i, 1); math.Abs(el-w[1]) > 1e-12 {
			t.Fatalf("elevation %d mismatch: got %f want %f", i, el, w[1])
		}
	}
}

func TestFarFieldRefinedAtInterior(t *testing.T) {
	g, err := NewFarField1D(-math.Pi/2, math.Pi/2, 5)
	if err != nil {
		t.Fatalf("NewFarField1D: %v", err)
	}

	sub := g.RefinedAt([]int{2}, 10)

	// Interior window spans one parent step on each side: two cells of ten
	// points each, plus the shared endpoint.
	if shape := sub.Shape(); shape[0] != 21 {
		t.Fatalf("refined shape mismatch: got %v want [21]", shape)
	}

	p := sub.Placement()
	if got := p.At(0, 0); math.Abs(got-(-math.Pi/4)) > 1e-12 {
		t.Fatalf("refined start mismatch: got %f want %f", got, -math.Pi/4)
	}
	if got := p.At(20, 0); math.Abs(got-math.Pi/4) > 1e-12 {
		t.Fatalf("refined stop mismatch: got %f want %f", got, math.Pi/4)
	}
	if got := p.At(10, 0); math.Abs(got) > 1e-12 {
		t.Fatalf("refined center mismatch: got %f want 0", got)
	}

	parentStep := math.Pi / 4
	wantStep := parentStep / 10
	if got := p.At(1, 0) - p.At(0, 0); math.Abs(got-wantStep) > 1e-12 {
		t.Fatalf("refined step mismatch: got %g want %g", got, wantStep)
	}
}

func TestFarFieldRefinedAtBoundary(t *testing.T) {
	g, err := NewFarField1D(-math.Pi/2, math.Pi/2, 5)
	if err != nil {
		t.Fatalf("NewFarField1D: %v", err)
	}

	// The window at the boundary is clipped to a single parent cell.
	sub := g.RefinedAt([]int{0}, 10)
	if shape := sub.Shape(); shape[0] != 11 {
		t.Fatalf("boundary refined shape mismatch: got %v want [11]", shape)
	}

	p := sub.Placement()
	if got := p.At(0, 0); math.Abs(got-(-math.Pi/2)) > 1e-12 {
		t.Fatalf("boundary refined start mismatch: got %f want %f", got, -math.Pi/2)
	}
	if got := p.At(10, 0); math.Abs(got-(-math.Pi/4)) > 1e-12 {
		t.Fatalf("boundary refined stop mismatch: got %f want %f", got, -math.Pi/4)
	}
}

func TestFarFieldRefinedAtSinglePointAxis(t *testing.T) {
	g, err := NewFarField2D(-1, 1, 5, 0.25, 0.25, 1)
	if err != nil {
		t.Fatalf("NewFarField2D: %v", err)
	}

	sub := g.RefinedAt([]int{2, 0}, 4)
	shape := sub.Shape()
	if shape[0] != 9 || shape[1] != 1 {
		t.Fatalf("refined shape mismatch: got %v want [9 1]", shape)
	}
	if got := sub.Placement().At(0, 1); got != 0.25 {
		t.Fatalf("single-point axis mismatch: got %f want 0.25", got)
	}
}

func TestFarFieldValidation(t *testing.T) {
	if _, err := NewFarField1D(0, 1, 0); err != ErrAxisCount {
		t.Fatalf("n=0 error mismatch: got %v want %v", err, ErrAxisCount)
	}
	if _, err := NewFarField1D(1, 0, 5); err != ErrAxisOrder {
		t.Fatalf("reversed axis error mismatch: got %v want %v", err, ErrAxisOrder)
	}
}
