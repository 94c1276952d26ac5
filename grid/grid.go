package grid

import "errors"

// Errors returned by grid constructors.
var (
	ErrAxisCount = errors.New("grid: axis must have at least one point")
	ErrAxisOrder = errors.New("grid: axis start must be less than stop")
	ErrDensity   = errors.New("grid: refinement density must be positive")
	ErrCoordRank = errors.New("grid: coordinate rank does not match grid rank")
)

// Grid is a shape-bearing collection of candidate directions.
//
// Placement enumerates the grid points in row-major order (the last axis
// varies fastest). This flattened order is stable and is the canonical
// ordering the estimation pipeline uses for tie-breaking and for the final
// estimate ordering.
type Grid interface {
	// Placement returns the flattened candidate directions.
	Placement() *Placement

	// Shape returns the per-axis point counts.
	Shape() []int

	// RefinedAt builds a finer sub-grid centered at the grid point with the
	// given coordinate. The refined window spans one parent step on each side
	// (clipped at the axis boundary) with density points per parent cell.
	RefinedAt(coord []int, density int) Grid
}

// axis is a strictly increasing sequence of candidate values for one
// direction component.
type axis struct {
	points []float64
}

func uniformAxis(start, stop float64, n int) axis {
	pts := make([]float64, n)
	if n == 1 {
		pts[0] = start
		return axis{points: pts}
	}

	step := (stop - start) / float64(n-1)
	for i := range pts {
		pts[i] = start + float64(i)*step
	}
	pts[n-1] = stop

	return axis{points: pts}
}

// refinedAt returns a finer axis around index c. The window covers the parent
// points [max(c-1,0), min(c+1,n-1)] with density points per parent cell, so
// the refined step is the parent step divided by density. Single-point axes
// stay single-point.
func (a axis) refinedAt(c, density int) axis {
	n := len(a.points)
	if n == 1 {
		return axis{points: []float64{a.points[0]}}
	}

	lo := c - 1
	if lo < 0 {
		lo = 0
	}

	hi := c + 1
	if hi > n-1 {
		hi = n - 1
	}

	cells := hi - lo

	return uniformAxis(a.points[lo], a.points[hi], density*cells+1)
}

// FarField is a far-field search grid over one (azimuth) or two
// (azimuth, elevation) uniform angular axes, in radians.
type FarField struct {
	axes      []axis
	shape     []int
	placement *Placement
}

// NewFarField1D creates a far-field azimuth grid with n uniformly spaced
// points from start to stop inclusive. The customary full search range is
// [-pi/2, pi/2].
func NewFarField1D(start, stop float64, n int) (*FarField, error) {
	if n < 1 {
		return nil, ErrAxisCount
	}
	if n > 1 && start >= stop {
		return nil, ErrAxisOrder
	}

	return newFarField([]axis{uniformAxis(start, stop, n)}), nil
}

// NewFarField2D creates a far-field azimuth-elevation grid. Azimuth is the
// first axis, elevation the second; the flattened order varies elevation
// fastest.
func NewFarField2D(azStart, azStop float64, nAz int, elStart, elStop float64, nEl int) (*FarField, error) {
	if nAz < 1 || nEl < 1 {
		return nil, ErrAxisCount
	}
	if nAz > 1 && azStart >= azStop {
		return nil, ErrAxisOrder
	}
	if nEl > 1 && elStart >= elStop {
		return nil, ErrAxisOrder
	}

	return newFarField([]axis{
		uniformAxis(azStart, azStop, nAz),
		uniformAxis(elStart, elStop, nEl),
	}), nil
}

func newFarField(axes []axis) *FarField {
	shape := make([]int, len(axes))
	total := 1
	for i, a := range axes {
		shape[i] = len(a.points)
		total *= len(a.points)
	}

	dims := len(axes)
	locs := make([]float64, 0, total*dims)
	coord := make([]int, dims)

	for flat := 0; flat < total; flat++ {
		for i, a := range axes {
			locs = append(locs, a.points[coord[i]])
		}
		// Row-major odometer: increment the last axis first.
		for i := dims - 1; i >= 0; i-- {
			coord[i]++
			if coord[i] < shape[i] {
				break
			}
			coord[i] = 0
		}
	}

	return &FarField{
		axes:      axes,
		shape:     shape,
		placement: &Placement{dims: dims, locs: locs},
	}
}

// Placement returns the flattened candidate directions in row-major order.
func (g *FarField) Placement() *Placement { return g.placement }

// Shape returns the per-axis point counts.
func (g *FarField) Shape() []int {
	shape := make([]int, len(g.shape))
	copy(shape, g.shape)
	return shape
}

// RefinedAt builds a finer sub-grid centered at coord. Panics if coord does
// not match the grid rank or density is not positive; refinement coordinates
// come from peak detection on this grid, so a mismatch is a programming
// error, not an input condition.
func (g *FarField) RefinedAt(coord []int, density int) Grid {
	if len(coord) != len(g.axes) {
		panic(ErrCoordRank)
	}
	if density < 1 {
		panic(ErrDensity)
	}

	axes := make([]axis, len(g.axes))
	for i, a := range g.axes {
		axes[i] = a.refinedAt(coord[i], density)
	}

	return newFarField(axes)
}
