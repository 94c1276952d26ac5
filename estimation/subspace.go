package estimation

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-doa/internal/eigen"
)

// Errors returned by NoiseSubspace.
var (
	ErrNotSquare     = errors.New("estimation: covariance matrix must be square")
	ErrSubspaceOrder = errors.New("estimation: source count must be between 1 and n-1")
)

// NoiseSubspace returns the orthonormal basis of the noise subspace of the
// Hermitian covariance matrix r, assuming k signal sources.
//
// The result is an n-by-(n-k) matrix whose columns are the eigenvectors
// associated with the n-k smallest eigenvalues, relying on the ascending
// eigenvalue order of the underlying decomposition. Decomposition failures
// (non-Hermitian input, no convergence) propagate unchanged.
func NoiseSubspace(r *mat.CDense, k int) (*mat.CDense, error) {
	n, c := r.Dims()
	if n != c {
		return nil, ErrNotSquare
	}
	if k < 1 || k >= n {
		return nil, ErrSubspaceOrder
	}

	_, vecs, err := eigen.Decompose(r)
	if err != nil {
		return nil, err
	}

	en := mat.NewCDense(n, n-k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n-k; j++ {
			en.Set(i, j, vecs.At(i, j))
		}
	}

	return en, nil
}
