// Package testutil provides shared assertion helpers for complex matrix
// tests.
package testutil

import (
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// RequireOrthonormalColumns fails t if the columns of m do not form an
// orthonormal set up to eps (absolute tolerance on each pairwise inner
// product).
func RequireOrthonormalColumns(t testing.TB, m *mat.CDense, eps float64) {
	t.Helper()

	rows, cols := m.Dims()
	for p := 0; p < cols; p++ {
		for q := p; q < cols; q++ {
			var dot complex128
			for i := 0; i < rows; i++ {
				dot += cmplx.Conj(m.At(i, p)) * m.At(i, q)
			}

			want := complex128(0)
			if p == q {
				want = 1
			}
			if cmplx.Abs(dot-want) > eps {
				t.Fatalf("columns %d,%d not orthonormal: dot = %v", p, q, dot)
			}
		}
	}
}

// RequireEigenpairs fails t unless a*v_j = vals[j]*v_j holds for every
// column v_j of vecs, elementwise up to eps.
func RequireEigenpairs(t testing.TB, a *mat.CDense, vals []float64, vecs *mat.CDense, eps float64) {
	t.Helper()

	n, _ := a.Dims()
	_, cols := vecs.Dims()
	if len(vals) != cols {
		t.Fatalf("eigenvalue count mismatch: %d values for %d columns", len(vals), cols)
	}

	for j := 0; j < cols; j++ {
		for i := 0; i < n; i++ {
			var av complex128
			for l := 0; l < n; l++ {
				av += a.At(i, l) * vecs.At(l, j)
			}
			want := complex(vals[j], 0) * vecs.At(i, j)
			if cmplx.Abs(av-want) > eps {
				t.Fatalf("eigenpair %d mismatch at row %d: got %v want %v", j, i, av, want)
			}
		}
	}
}
