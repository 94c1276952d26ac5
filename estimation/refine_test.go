package estimation

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-doa/array"
	"github.com/cwbudde/algo-doa/grid"
)

func TestRefinementConvergesTowardAnalyticMaximum(t *testing.T) {
	design, err := array.NewUniformLinear(8, 0.5)
	if err != nil {
		t.Fatalf("NewUniformLinear: %v", err)
	}

	// Coarse grid with 31 points; the true direction falls inside a cell.
	g, err := grid.NewFarField1D(-math.Pi/2, math.Pi/2, 31)
	if err != nil {
		t.Fatalf("NewFarField1D: %v", err)
	}

	trueDOA := 0.31
	r := idealCovariance(t, design, 1.0, []float64{trueDOA}, 0)

	// The Bartlett spectrum of a noiseless rank-one covariance is unimodal
	// around the source with its analytic maximum exactly at the source.
	fsp, err := Bartlett(r)
	if err != nil {
		t.Fatalf("Bartlett: %v", err)
	}

	est, err := New(design, 1.0, g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	coarse, err := est.Estimate(fsp, 1, Config{})
	if err != nil {
		t.Fatalf("coarse Estimate: %v", err)
	}
	if !coarse.Resolved {
		t.Fatalf("expected resolved coarse result")
	}

	coarseErr := math.Abs(coarse.Estimates.At(0, 0) - trueDOA)
	if coarseErr == 0 {
		t.Fatalf("true direction unexpectedly on the coarse grid")
	}

	for _, density := range []int{5, 10, 20} {
		refined, err := est.Estimate(fsp, 1, Config{
			Refine:            true,
			RefinementDensity: density,
			RefinementIters:   3,
		})
		if err != nil {
			t.Fatalf("refined Estimate (density %d): %v", density, err)
		}
		if !refined.Resolved {
			t.Fatalf("expected resolved refined result (density %d)", density)
		}

		refinedErr := math.Abs(refined.Estimates.At(0, 0) - trueDOA)
		if refinedErr >= coarseErr {
			t.Fatalf("density %d: refinement did not improve: coarse %.6g refined %.6g",
				density, coarseErr, refinedErr)
		}
	}
}

func TestRefinementMutatesEstimatesInPlace(t *testing.T) {
	design, err := array.NewUniformLinear(8, 0.5)
	if err != nil {
		t.Fatalf("NewUniformLinear: %v", err)
	}

	g, err := grid.NewFarField1D(-math.Pi/2, math.Pi/2, 31)
	if err != nil {
		t.Fatalf("NewFarField1D: %v", err)
	}

	r := idealCovariance(t, design, 1.0, []float64{0.31}, 0)
	fsp, err := Bartlett(r)
	if err != nil {
		t.Fatalf("Bartlett: %v", err)
	}

	est, err := New(design, 1.0, g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := est.Estimate(fsp, 1, Config{Refine: true})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if !res.Resolved {
		t.Fatalf("expected resolved result")
	}

	// Refinement must keep the estimate count and report a location that is
	// no longer restricted to the coarse grid points.
	if res.Estimates.Len() != 1 {
		t.Fatalf("estimate count mismatch: got %d want 1", res.Estimates.Len())
	}

	coarseStep := math.Pi / 30
	loc := res.Estimates.At(0, 0)
	onGrid := false
	for i := 0; i < 31; i++ {
		if math.Abs(loc-(-math.Pi/2+float64(i)*coarseStep)) < 1e-12 {
			onGrid = true
		}
	}
	if onGrid {
		t.Fatalf("refined estimate still on the coarse grid: %.6f", loc)
	}
}
