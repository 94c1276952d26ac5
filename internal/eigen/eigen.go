// Package eigen provides eigen-decomposition of Hermitian matrices using
// cyclic Jacobi rotations with complex plane rotations.
package eigen

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Errors returned by Decompose.
var (
	ErrNotSquare    = errors.New("eigen: matrix must be square")
	ErrNotHermitian = errors.New("eigen: matrix is not Hermitian")
	ErrNoConverge   = errors.New("eigen: decomposition did not converge")
)

const (
	hermTol   = 1e-8
	offTol    = 1e-14
	maxSweeps = 100
)

// Decompose computes the eigen-decomposition of the Hermitian matrix a.
//
// It returns the eigenvalues in ascending order together with a unitary
// matrix whose columns are the matching eigenvectors. Ascending order is a
// contract: noise-subspace extraction selects the leading columns directly.
func Decompose(a *mat.CDense) ([]float64, *mat.CDense, error) {
	n, c := a.Dims()
	if n != c {
		return nil, nil, ErrNotSquare
	}

	// Working copy, row-major. The diagonal of a Hermitian matrix is real;
	// any residual imaginary part below tolerance is discarded.
	w := make([]complex128, n*n)
	scale := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := a.At(i, j)
			w[i*n+j] = v
			if m := cmplx.Abs(v); m > scale {
				scale = m
			}
		}
	}

	tol := hermTol * (1 + scale)
	for i := 0; i < n; i++ {
		if math.Abs(imag(w[i*n+i])) > tol {
			return nil, nil, ErrNotHermitian
		}
		w[i*n+i] = complex(real(w[i*n+i]), 0)
		for j := i + 1; j < n; j++ {
			if cmplx.Abs(w[i*n+j]-cmplx.Conj(w[j*n+i])) > tol {
				return nil, nil, ErrNotHermitian
			}
		}
	}

	// Eigenvector accumulator, initialized to identity.
	q := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		q[i*n+i] = 1
	}

	if err := jacobi(w, q, n); err != nil {
		return nil, nil, err
	}

	// Sort eigenpairs ascending by eigenvalue.
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = real(w[i*n+i])
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return vals[order[i]] < vals[order[j]]
	})

	sorted := make([]float64, n)
	vecs := make([]complex128, n*n)
	for dst, src := range order {
		sorted[dst] = vals[src]
		for i := 0; i < n; i++ {
			vecs[i*n+dst] = q[i*n+src]
		}
	}

	return sorted, mat.NewCDense(n, n, vecs), nil
}

// jacobi diagonalizes the Hermitian matrix w in place, accumulating the
// applied rotations into q. Each rotation zeroes one off-diagonal pair and is
// unitary, so the columns of q stay orthonormal throughout.
func jacobi(w, q []complex128, n int) error {
	fro := 0.0
	for _, v := range w {
		fro += real(v)*real(v) + imag(v)*imag(v)
	}
	fro = math.Sqrt(fro)
	if fro == 0 {
		return nil
	}

	threshold := offTol * fro

	for sweep := 0; sweep < maxSweeps; sweep++ {
		off := 0.0
		for p := 0; p < n; p++ {
			for r := p + 1; r < n; r++ {
				off += cmplx.Abs(w[p*n+r]) * cmplx.Abs(w[p*n+r])
			}
		}
		if math.Sqrt(off) <= threshold {
			return nil
		}

		for p := 0; p < n; p++ {
			for r := p + 1; r < n; r++ {
				rotate(w, q, n, p, r)
			}
		}
	}

	return ErrNoConverge
}

// rotate applies the complex Jacobi rotation that zeroes w[p][r].
func rotate(w, q []complex128, n, p, r int) {
	apr := w[p*n+r]
	m := cmplx.Abs(apr)
	if m == 0 {
		return
	}

	app := real(w[p*n+p])
	arr := real(w[r*n+r])

	// Rotation angle from the real Jacobi equation t^2 + 2*tau*t - 1 = 0,
	// smaller root for numerical stability; the phase of w[p][r] is folded
	// into the rotation so the 2x2 block reduces to the real symmetric case.
	tau := (arr - app) / (2 * m)
	t := math.Copysign(1/(math.Abs(tau)+math.Sqrt(tau*tau+1)), tau)
	c := 1 / math.Sqrt(t*t+1)
	s := t * c

	phase := apr / complex(m, 0)
	g := complex(s, 0) * phase
	gc := cmplx.Conj(g)
	cc := complex(c, 0)

	// Column update: w <- w * U, q <- q * U.
	for i := 0; i < n; i++ {
		tp, tq := w[i*n+p], w[i*n+r]
		w[i*n+p] = cc*tp - gc*tq
		w[i*n+r] = g*tp + cc*tq

		tp, tq = q[i*n+p], q[i*n+r]
		q[i*n+p] = cc*tp - gc*tq
		q[i*n+r] = g*tp + cc*tq
	}

	// Row update: w <- U^H * w.
	for j := 0; j < n; j++ {
		tp, tq := w[p*n+j], w[r*n+j]
		w[p*n+j] = cc*tp - g*tq
		w[r*n+j] = gc*tp + cc*tq
	}

	// The zeroed pair and the rotated diagonal are analytically real.
	w[p*n+r] = 0
	w[r*n+p] = 0
	w[p*n+p] = complex(real(w[p*n+p]), 0)
	w[r*n+r] = complex(real(w[r*n+r]), 0)
}
