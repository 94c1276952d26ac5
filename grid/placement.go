package grid

import "errors"

// Errors returned by placement constructors and accessors.
var (
	ErrDims          = errors.New("grid: dims must be 1 or 2")
	ErrLocationCount = errors.New("grid: location data length must be a multiple of dims")
	ErrIndexRange    = errors.New("grid: index out of range")
)

// Placement is an ordered, mutable sequence of far-field directions.
//
// Each location has Dims components in radians: (azimuth) for 1-D placements
// or (azimuth, elevation) for 2-D placements. Azimuth is measured from
// broadside. Locations are stored row-major and may be overwritten in place,
// which is how grid refinement narrows estimates without reallocating.
type Placement struct {
	dims int
	locs []float64
}

// NewPlacement creates a placement from row-major location data.
// The data slice is copied.
func NewPlacement(dims int, locations []float64) (*Placement, error) {
	if dims != 1 && dims != 2 {
		return nil, ErrDims
	}
	if len(locations)%dims != 0 {
		return nil, ErrLocationCount
	}

	locs := make([]float64, len(locations))
	copy(locs, locations)

	return &Placement{dims: dims, locs: locs}, nil
}

// Len returns the number of locations.
func (p *Placement) Len() int { return len(p.locs) / p.dims }

// Dims returns the number of components per location.
func (p *Placement) Dims() int { return p.dims }

// Location returns a view of the i-th location. The returned slice aliases
// the placement's storage; mutating it mutates the placement.
func (p *Placement) Location(i int) []float64 {
	return p.locs[i*p.dims : (i+1)*p.dims]
}

// At returns the given component of the i-th location.
func (p *Placement) At(i, axis int) float64 {
	return p.locs[i*p.dims+axis]
}

// SetLocation overwrites the i-th location in place. loc must hold at least
// Dims values; exactly Dims values are copied.
func (p *Placement) SetLocation(i int, loc []float64) {
	copy(p.locs[i*p.dims:(i+1)*p.dims], loc[:p.dims])
}

// Select returns a new placement holding copies of the locations at the given
// flattened indices, in the given order.
func (p *Placement) Select(indices []int) (*Placement, error) {
	n := p.Len()
	locs := make([]float64, 0, len(indices)*p.dims)

	for _, i := range indices {
		if i < 0 || i >= n {
			return nil, ErrIndexRange
		}
		locs = append(locs, p.Location(i)...)
	}

	return &Placement{dims: p.dims, locs: locs}, nil
}

// Clone returns a deep copy of the placement.
func (p *Placement) Clone() *Placement {
	locs := make([]float64, len(p.locs))
	copy(locs, p.locs)
	return &Placement{dims: p.dims, locs: locs}
}
