package estimation

import (
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-doa/array"
	"github.com/cwbudde/algo-doa/grid"
)

// refineEstimates iteratively narrows each estimate toward a local optimum.
//
// For each estimate, independently: build a refined sub-grid around its
// coarse coordinate, evaluate fsp on the sub-grid's steering matrix, move the
// estimate to the sub-grid point with the maximum spectrum value, and repeat
// on an even finer sub-grid centered there. The density stays constant per
// round; only the physical extent shrinks, because each sub-grid is built
// from the previous grid's point spacing.
//
// Estimates are mutated in place and never reordered or resized. Two
// ambiguous coarse estimates may converge to the same refined location; that
// is accepted behavior. Errors from fsp or the design abort refinement.
func (e *Estimator) refineEstimates(fsp SpectrumFunc, est *grid.Placement, coords [][]int, density, iters int) error {
	for i := range coords {
		sub := e.grid.RefinedAt(coords[i], density)

		for r := 0; r < iters; r++ {
			a, err := e.design.SteeringMatrix(sub.Placement(), e.wavelength, array.PerturbationsKnown)
			if err != nil {
				return err
			}

			values, err := fsp(a)
			if err != nil {
				return err
			}
			if len(values) != sub.Placement().Len() {
				return ErrSpectrumLength
			}

			// First-occurrence argmax over the flattened sub-grid spectrum.
			iMax := floats.MaxIdx(values)
			est.SetLocation(i, sub.Placement().Location(iMax))

			if r == iters-1 {
				continue
			}
			sub = sub.RefinedAt(UnravelIndex(iMax, sub.Shape()), density)
		}
	}

	return nil
}
