// Package estimation provides spectrum-based direction-of-arrival estimation
// over a search grid.
//
// The generic pipeline evaluates a caller-supplied spectrum function on the
// steering matrix of a search grid, locates the local maxima of the resulting
// spatial spectrum, and reports the k largest peaks as direction estimates:
//
//	spectrum -> peaks -> top-k -> (optional) grid refinement
//
// Estimates are always ordered by ascending flattened grid index, not by peak
// magnitude. Optional iterative refinement re-evaluates the spectrum on
// progressively finer sub-grids around each estimate, keeping a fixed number
// of points per round while the angular extent shrinks.
//
// Concrete spectrum functions are provided for common estimators:
//
//	fsp, _ := estimation.MUSIC(r, 2)
//	est, _ := estimation.New(design, wavelength, searchGrid)
//	res, _ := est.Estimate(fsp, 2, estimation.Config{Refine: true})
//	if res.Resolved {
//	    // res.Estimates holds the directions in grid order.
//	}
//
// Under-resolution (fewer detected peaks than requested sources) is an
// expected outcome in noisy scenarios and is reported through the Resolved
// flag, never as an error.
package estimation
