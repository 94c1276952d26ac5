// Package array provides sensor array designs and their steering matrices.
//
// A steering matrix encodes, per candidate direction, the expected complex
// response of every array element to a far-field source at that direction:
//
//	A[m][g] = exp(i * 2*pi/lambda * <pos_m, u(dir_g)>)
//
// where pos_m is the m-th element position in meters and u maps a direction
// to a propagation unit vector. Columns follow the placement's iteration
// order; rows follow the element order.
package array

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-doa/grid"
)

// Errors returned by design constructors and steering matrix computation.
var (
	ErrElementCount     = errors.New("array: element count must be positive")
	ErrSpacing          = errors.New("array: element spacing must be positive")
	ErrRadius           = errors.New("array: radius must be positive")
	ErrWavelength       = errors.New("array: wavelength must be positive")
	ErrPerturbationSize = errors.New("array: location error count does not match element count")
	ErrPlacementDims    = errors.New("array: placement dims must be 1 or 2")
)

// PerturbationMode selects how array imperfections enter the steering matrix.
type PerturbationMode int

const (
	// PerturbationsNone computes the steering matrix for the nominal design.
	PerturbationsNone PerturbationMode = iota

	// PerturbationsKnown applies the design's known perturbations, such as
	// calibrated element location errors.
	PerturbationsKnown
)

// Design computes steering matrices for a fixed sensor geometry.
type Design interface {
	// NumElements returns the number of sensor elements.
	NumElements() int

	// SteeringMatrix returns the complex response matrix for the given
	// placement and carrier wavelength. Columns are ordered to match the
	// placement's iteration order.
	SteeringMatrix(p *grid.Placement, wavelength float64, mode PerturbationMode) (*mat.CDense, error)
}

// Array is a sensor array described by explicit element positions in meters.
// It implements Design for 1-D (azimuth) and 2-D (azimuth, elevation)
// far-field placements.
type Array struct {
	name           string
	positions      [][3]float64
	locationErrors [][3]float64
}

// Option configures an Array.
type Option func(*Array)

// WithLocationErrors attaches known per-element position offsets in meters.
// They are applied only under PerturbationsKnown.
func WithLocationErrors(errs [][3]float64) Option {
	return func(a *Array) {
		a.locationErrors = errs
	}
}

// NewArray creates a design from explicit element positions.
func NewArray(name string, positions [][3]float64, opts ...Option) (*Array, error) {
	if len(positions) == 0 {
		return nil, ErrElementCount
	}

	pos := make([][3]float64, len(positions))
	copy(pos, positions)

	a := &Array{name: name, positions: pos}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a, nil
}

// NewUniformLinear creates an n-element uniform linear array along the x-axis
// with the given element spacing in meters. Half-wavelength spacing avoids
// spatial aliasing over the full [-pi/2, pi/2] azimuth range.
func NewUniformLinear(n int, spacing float64, opts ...Option) (*Array, error) {
	if n < 1 {
		return nil, ErrElementCount
	}
	if spacing <= 0 {
		return nil, ErrSpacing
	}

	positions := make([][3]float64, n)
	for i := range positions {
		positions[i][0] = float64(i) * spacing
	}

	return NewArray("ula", positions, opts...)
}

// NewUniformCircular creates an n-element uniform circular array of the given
// radius in meters, in the xy plane, with element 0 on the positive x-axis.
func NewUniformCircular(n int, radius float64, opts ...Option) (*Array, error) {
	if n < 1 {
		return nil, ErrElementCount
	}
	if radius <= 0 {
		return nil, ErrRadius
	}

	positions := make([][3]float64, n)
	for i := range positions {
		phi := 2 * math.Pi * float64(i) / float64(n)
		positions[i][0] = radius * math.Cos(phi)
		positions[i][1] = radius * math.Sin(phi)
	}

	return NewArray("uca", positions, opts...)
}

// Name returns the design name.
func (a *Array) Name() string { return a.name }

// NumElements returns the number of sensor elements.
func (a *Array) NumElements() int { return len(a.positions) }

// SteeringMatrix returns the m-by-g complex response matrix for the placement
// at the given wavelength, where m is the element count and g the placement
// length.
func (a *Array) SteeringMatrix(p *grid.Placement, wavelength float64, mode PerturbationMode) (*mat.CDense, error) {
	if wavelength <= 0 {
		return nil, ErrWavelength
	}
	if p.Dims() != 1 && p.Dims() != 2 {
		return nil, ErrPlacementDims
	}
	if mode == PerturbationsKnown && a.locationErrors != nil && len(a.locationErrors) != len(a.positions) {
		return nil, ErrPerturbationSize
	}

	m := len(a.positions)
	n := p.Len()
	waveNum := 2 * math.Pi / wavelength

	positions := a.positions
	if mode == PerturbationsKnown && a.locationErrors != nil {
		positions = make([][3]float64, m)
		for i, pos := range a.positions {
			pos[0] += a.locationErrors[i][0]
			pos[1] += a.locationErrors[i][1]
			pos[2] += a.locationErrors[i][2]
			positions[i] = pos
		}
	}

	data := make([]complex128, m*n)
	for g := 0; g < n; g++ {
		u := unitVector(p, g)
		for i := 0; i < m; i++ {
			pos := positions[i]
			phase := waveNum * (pos[0]*u[0] + pos[1]*u[1] + pos[2]*u[2])
			data[i*n+g] = complex(math.Cos(phase), math.Sin(phase))
		}
	}

	return mat.NewCDense(m, n, data), nil
}

// unitVector maps the g-th placement location to a propagation unit vector.
// 1-D placements hold a broadside azimuth; 2-D placements hold azimuth and
// elevation.
func unitVector(p *grid.Placement, g int) [3]float64 {
	if p.Dims() == 1 {
		return [3]float64{math.Sin(p.At(g, 0)), 0, 0}
	}

	az := p.At(g, 0)
	el := p.At(g, 1)

	return [3]float64{
		math.Cos(el) * math.Sin(az),
		math.Cos(el) * math.Cos(az),
		math.Sin(el),
	}
}
