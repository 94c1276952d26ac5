package estimation

import (
	"errors"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-doa/array"
	"github.com/cwbudde/algo-doa/grid"
)

// Errors returned by estimator construction and estimation.
var (
	ErrNilDesign        = errors.New("estimation: array design is nil")
	ErrNilGrid          = errors.New("estimation: search grid is nil")
	ErrWavelength       = errors.New("estimation: wavelength must be positive")
	ErrSourceCount      = errors.New("estimation: source count must be between 1 and the grid size")
	ErrSpectrumLength   = errors.New("estimation: spectrum length does not match placement size")
	ErrRefinementConfig = errors.New("estimation: refinement density and iterations must be positive")
)

// Default refinement parameters, applied when the corresponding Config
// fields are zero.
const (
	DefaultRefinementDensity = 10
	DefaultRefinementIters   = 3
)

// SpectrumFunc computes a real-valued spectrum from a steering matrix, one
// value per matrix column, in the column order of the matrix.
type SpectrumFunc func(a *mat.CDense) ([]float64, error)

// Estimator runs the generic spectrum-based estimation pipeline for a fixed
// array design, carrier wavelength and search grid.
//
// The design and grid must remain structurally unchanged for the lifetime of
// the estimator when caching is enabled; the estimator does not detect such
// changes.
type Estimator struct {
	design     array.Design
	wavelength float64
	grid       grid.Grid
	peakFinder PeakFinder
	caching    bool

	mu       sync.Mutex
	steering *mat.CDense
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithPeakFinder replaces the default peak finding strategy.
func WithPeakFinder(pf PeakFinder) Option {
	return func(e *Estimator) {
		if pf != nil {
			e.peakFinder = pf
		}
	}
}

// WithCaching enables or disables steering matrix caching. Caching is on by
// default; for dense grids it saves the dominant cost of repeated estimation
// calls, such as Monte Carlo runs.
func WithCaching(enabled bool) Option {
	return func(e *Estimator) {
		e.caching = enabled
	}
}

// New creates an estimator for the given design, wavelength and search grid.
func New(d array.Design, wavelength float64, g grid.Grid, opts ...Option) (*Estimator, error) {
	if d == nil {
		return nil, ErrNilDesign
	}
	if g == nil {
		return nil, ErrNilGrid
	}
	if wavelength <= 0 {
		return nil, ErrWavelength
	}

	e := &Estimator{
		design:     d,
		wavelength: wavelength,
		grid:       g,
		peakFinder: FindPeaks,
		caching:    true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e, nil
}

// steeringMatrix returns the full-grid steering matrix, memoized when caching
// is enabled. The first write is serialized so overlapping Estimate calls on
// the same estimator populate the cache exactly once.
func (e *Estimator) steeringMatrix() (*mat.CDense, error) {
	if !e.caching {
		return e.design.SteeringMatrix(e.grid.Placement(), e.wavelength, array.PerturbationsKnown)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.steering != nil {
		return e.steering, nil
	}

	a, err := e.design.SteeringMatrix(e.grid.Placement(), e.wavelength, array.PerturbationsKnown)
	if err != nil {
		return nil, err
	}
	e.steering = a

	return a, nil
}

// Config holds per-call estimation parameters.
type Config struct {
	// ReturnSpectrum also outputs the reshaped spectrum, for visualization.
	ReturnSpectrum bool

	// Refine enables iterative grid refinement of the estimates.
	Refine bool

	// RefinementDensity is the number of refined points per parent grid
	// cell. Zero means DefaultRefinementDensity.
	RefinementDensity int

	// RefinementIters is the number of refinement rounds per estimate.
	// Zero means DefaultRefinementIters.
	RefinementIters int
}

// Result holds the outcome of a single estimation call.
//
// Resolved does not guarantee that the estimated locations are correct, only
// that enough spectrum peaks were found. When Resolved is false, Estimates
// and Spectrum are nil.
type Result struct {
	Resolved  bool
	Estimates *grid.Placement
	Spectrum  *Spectrum
}

// Estimate runs the pipeline: evaluate fsp on the grid steering matrix, find
// the spectrum peaks, and report the k largest peaks as direction estimates.
//
// Estimates are ordered by ascending flattened grid index, independent of the
// magnitude ranking used to select them. Ties between equal-valued peaks are
// resolved deterministically from the peak finder emission order, preferring
// later-emitted peaks at the selection cut; callers must not depend on a
// particular tie order.
//
// Under-resolution (fewer than k peaks) yields Resolved == false with a nil
// error. Errors from fsp, the design, or a spectrum length mismatch abort the
// call.
func (e *Estimator) Estimate(fsp SpectrumFunc, k int, cfg Config) (Result, error) {
	total := e.grid.Placement().Len()
	if k < 1 || k > total {
		return Result{}, ErrSourceCount
	}

	density := cfg.RefinementDensity
	if density == 0 {
		density = DefaultRefinementDensity
	}
	iters := cfg.RefinementIters
	if iters == 0 {
		iters = DefaultRefinementIters
	}
	if cfg.Refine && (density < 1 || iters < 1) {
		return Result{}, ErrRefinementConfig
	}

	a, err := e.steeringMatrix()
	if err != nil {
		return Result{}, err
	}

	values, err := fsp(a)
	if err != nil {
		return Result{}, err
	}
	if len(values) != total {
		return Result{}, ErrSpectrumLength
	}

	sp := &Spectrum{Values: values, Shape: e.grid.Shape()}

	peaks := e.peakFinder(sp)
	nPeaks := 0
	if len(peaks) > 0 {
		nPeaks = len(peaks[0])
	}
	if nPeaks < k {
		return Result{}, nil
	}

	flat := topKByMagnitude(sp, peaks, k)

	// Ascending flattened order converts the magnitude ranking into the grid
	// position ordering that consumers depend on.
	sort.Ints(flat)

	estimates, err := e.grid.Placement().Select(flat)
	if err != nil {
		return Result{}, err
	}

	if cfg.Refine {
		coords := make([][]int, k)
		for i, f := range flat {
			coords[i] = UnravelIndex(f, sp.Shape)
		}
		if err := e.refineEstimates(fsp, estimates, coords, density, iters); err != nil {
			return Result{}, err
		}
	}

	res := Result{Resolved: true, Estimates: estimates}
	if cfg.ReturnSpectrum {
		res.Spectrum = sp
	}

	return res, nil
}

// topKByMagnitude ranks the detected peaks by spectrum value and returns the
// flattened indices of the k largest. The ascending stable sort makes ties
// deterministic: when equal-valued peaks straddle the selection cut, the
// later-emitted ones are selected.
func topKByMagnitude(sp *Spectrum, peaks [][]int, k int) []int {
	nPeaks := len(peaks[0])
	coord := make([]int, len(peaks))

	values := make([]float64, nPeaks)
	flats := make([]int, nPeaks)
	for p := 0; p < nPeaks; p++ {
		for d := range peaks {
			coord[d] = peaks[d][p]
		}
		flats[p] = RavelIndex(coord, sp.Shape)
		values[p] = sp.Values[flats[p]]
	}

	order := make([]int, nPeaks)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return values[order[i]] < values[order[j]]
	})

	top := make([]int, k)
	for i, src := range order[nPeaks-k:] {
		top[i] = flats[src]
	}

	return top
}
