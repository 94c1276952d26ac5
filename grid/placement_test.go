package grid

import (
	"math"
	"testing"
)

func TestNewPlacementValidation(t *testing.T) {
	if _, err := NewPlacement(3, []float64{1, 2, 3}); err != ErrDims {
		t.Fatalf("dims=3 error mismatch: got %v want %v", err, ErrDims)
	}

	if _, err := NewPlacement(2, []float64{1, 2, 3}); err != ErrLocationCount {
		t.Fatalf("odd data error mismatch: got %v want %v", err, ErrLocationCount)
	}
}

func TestPlacementAccessors(t *testing.T) {
	p, err := NewPlacement(2, []float64{0.1, 0.2, 0.3, 0.4})
	if err != nil {
		t.Fatalf("NewPlacement: %v", err)
	}

	if p.Len() != 2 {
		t.Fatalf("Len mismatch: got %d want 2", p.Len())
	}
	if p.Dims() != 2 {
		t.Fatalf("Dims mismatch: got %d want 2", p.Dims())
	}
	if got := p.At(1, 0); got != 0.3 {
		t.Fatalf("At(1,0) mismatch: got %f want 0.3", got)
	}

	loc := p.Location(0)
	if loc[0] != 0.1 || loc[1] != 0.2 {
		t.Fatalf("Location(0) mismatch: got %v", loc)
	}
}

func TestPlacementSetLocationMutatesInPlace(t *testing.T) {
	p, err := NewPlacement(1, []float64{0, 1, 2})
	if err != nil {
		t.Fatalf("NewPlacement: %v", err)
	}

	p.SetLocation(1, []float64{0.5})
	if got := p.At(1, 0); got != 0.5 {
		t.Fatalf("SetLocation not reflected: got %f want 0.5", got)
	}
}

func TestPlacementSelect(t *testing.T) {
	p, err := NewPlacement(1, []float64{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("NewPlacement: %v", err)
	}

	sub, err := p.Select([]int{3, 1})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sub.Len() != 2 {
		t.Fatalf("Select len mismatch: got %d want 2", sub.Len())
	}
	if sub.At(0, 0) != 3 || sub.At(1, 0) != 1 {
		t.Fatalf("Select order mismatch: got [%f %f] want [3 1]", sub.At(0, 0), sub.At(1, 0))
	}

	// The selection owns its data; mutating it must not touch the parent.
	sub.SetLocation(0, []float64{9})
	if p.At(3, 0) != 3 {
		t.Fatalf("Select must copy locations: parent mutated to %f", p.At(3, 0))
	}

	if _, err := p.Select([]int{4}); err != ErrIndexRange {
		t.Fatalf("out-of-range error mismatch: got %v want %v", err, ErrIndexRange)
	}
}

func TestPlacementClone(t *testing.T) {
	p, err := NewPlacement(1, []float64{math.Pi / 4, -math.Pi / 4})
	if err != nil {
		t.Fatalf("NewPlacement: %v", err)
	}

	c := p.Clone()
	c.SetLocation(0, []float64{0})
	if p.At(0, 0) != math.Pi/4 {
		t.Fatalf("Clone must copy locations: parent mutated to %f", p.At(0, 0))
	}
}
