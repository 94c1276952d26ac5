// Package cmul provides complex matrix multiplication for mat.CDense
// operands, implemented the way gonum's real Dense arithmetic is: a single
// cblas128.Gemm call on the operands' raw representations. Implicit
// conjugate-transpose views (mat.CMatrix values produced by H()) are passed
// to BLAS as a transpose flag rather than materialized.
package cmul

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
)

// Mul returns the product a*b as a freshly allocated dense matrix.
func Mul(a, b mat.CMatrix) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		panic(mat.ErrShape)
	}

	c := mat.NewCDense(ar, bc, nil)
	ra, ta := raw(a)
	rb, tb := raw(b)
	cblas128.Gemm(ta, tb, 1, ra, rb, 0, c.RawCMatrix())
	return c
}

// raw extracts the BLAS representation of m together with the transpose
// flag Gemm should apply. Conjugate-transpose views of a *mat.CDense are
// unwrapped to the underlying raw matrix with blas.ConjTrans; any other
// CMatrix is materialized into a dense copy.
func raw(m mat.CMatrix) (cblas128.General, blas.Transpose) {
	if t, ok := m.(mat.ConjTranspose); ok {
		if d, ok := t.CMatrix.(*mat.CDense); ok {
			return d.RawCMatrix(), blas.ConjTrans
		}
	}
	if d, ok := m.(*mat.CDense); ok {
		return d.RawCMatrix(), blas.NoTrans
	}

	r, c := m.Dims()
	d := mat.NewCDense(r, c, nil)
	d.Copy(m)
	return d.RawCMatrix(), blas.NoTrans
}
