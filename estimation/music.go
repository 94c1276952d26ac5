package estimation

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-doa/internal/cmul"
)

// ErrElementMismatch is returned by spectrum functions when the steering
// matrix row count does not match the covariance dimension.
var ErrElementMismatch = errors.New("estimation: steering matrix rows do not match covariance size")

// MUSIC returns a spectrum function implementing the MUSIC pseudospectrum
// for the Hermitian covariance matrix r and k sources:
//
//	P(a) = 1 / ||En^H a||^2
//
// where En is the noise subspace basis of r. Steering vectors orthogonal to
// the noise subspace produce sharp maxima at the source directions. The
// noise subspace is extracted once; the returned function is pure and safe
// for repeated evaluation on sub-grid steering matrices.
func MUSIC(r *mat.CDense, k int) (SpectrumFunc, error) {
	en, err := NoiseSubspace(r, k)
	if err != nil {
		return nil, err
	}

	n, _ := en.Dims()
	enH := en.H()

	return func(a *mat.CDense) ([]float64, error) {
		rows, _ := a.Dims()
		if rows != n {
			return nil, ErrElementMismatch
		}

		b := cmul.Mul(enH, a)

		out := colPowerSums(b)
		for i, v := range out {
			out[i] = 1 / v
		}

		return out, nil
	}, nil
}
