package estimation

import (
	"errors"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-doa/internal/cmul"
	"github.com/cwbudde/algo-doa/internal/eigen"
)

// Errors returned by beamforming spectrum functions.
var (
	ErrNotPositiveDefinite = errors.New("estimation: covariance matrix is not positive definite")
	ErrFFTSize             = errors.New("estimation: fft size must be at least the element count")
	ErrNoSnapshots         = errors.New("estimation: snapshot matrix has no columns")
)

// Bartlett returns the conventional (delay-and-sum) beamformer spectrum
// function for the Hermitian covariance matrix r:
//
//	P(a) = a^H R a
func Bartlett(r *mat.CDense) (SpectrumFunc, error) {
	n, c := r.Dims()
	if n != c {
		return nil, ErrNotSquare
	}

	return func(a *mat.CDense) ([]float64, error) {
		rows, cols := a.Dims()
		if rows != n {
			return nil, ErrElementMismatch
		}

		ra := cmul.Mul(r, a)

		out := make([]float64, cols)
		for j := 0; j < cols; j++ {
			sum := 0.0
			for i := 0; i < rows; i++ {
				v := a.At(i, j)
				w := ra.At(i, j)
				// real(conj(v) * w)
				sum += real(v)*real(w) + imag(v)*imag(w)
			}
			out[j] = sum
		}

		return out, nil
	}, nil
}

// Capon returns the minimum variance distortionless response (MVDR)
// beamformer spectrum function for the Hermitian covariance matrix r:
//
//	P(a) = 1 / (a^H R^-1 a)
//
// The inverse is applied through the eigen-decomposition of r, so r must be
// positive definite.
func Capon(r *mat.CDense) (SpectrumFunc, error) {
	n, c := r.Dims()
	if n != c {
		return nil, ErrNotSquare
	}

	vals, vecs, err := eigen.Decompose(r)
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		if v <= 0 {
			return nil, ErrNotPositiveDefinite
		}
	}

	vecsH := vecs.H()

	return func(a *mat.CDense) ([]float64, error) {
		rows, cols := a.Dims()
		if rows != n {
			return nil, ErrElementMismatch
		}

		// y = Q^H a, then a^H R^-1 a = sum_i |y_i|^2 / lambda_i.
		y := cmul.Mul(vecsH, a)

		out := make([]float64, cols)
		for j := 0; j < cols; j++ {
			denom := 0.0
			for i := 0; i < rows; i++ {
				v := y.At(i, j)
				denom += (real(v)*real(v) + imag(v)*imag(v)) / vals[i]
			}
			out[j] = 1 / denom
		}

		return out, nil
	}, nil
}

// BeamscanFFT evaluates the conventional beamformer power of a uniform
// linear array over nfft equally spaced spatial frequencies, using
// zero-padded FFTs of the snapshot columns.
//
// snapshots is an m-by-t matrix of element samples (rows = elements in
// position order, columns = time snapshots). The output is fftshifted so
// index j corresponds to SpatialFrequencies(nfft)[j] cycles per element; a
// frequency f maps to the broadside angle sin(theta) = f * wavelength /
// spacing. Power is averaged over snapshots and normalized by the squared
// element count.
func BeamscanFFT(snapshots *mat.CDense, nfft int) ([]float64, error) {
	m, t := snapshots.Dims()
	if t < 1 {
		return nil, ErrNoSnapshots
	}
	if nfft < m {
		return nil, ErrFFTSize
	}

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return nil, err
	}

	in := make([]complex128, nfft)
	out := make([]complex128, nfft)
	acc := make([]float64, nfft)
	re, im, pw, buf := getScratch(nfft)
	defer putScratch(buf)

	for col := 0; col < t; col++ {
		for i := range in {
			in[i] = 0
		}
		for i := 0; i < m; i++ {
			in[i] = snapshots.At(i, col)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, err
		}

		for i, v := range out {
			re[i] = real(v)
			im[i] = imag(v)
		}
		vecmath.Power(pw, re, im)
		floats.Add(acc, pw)
	}

	scale := 1 / (float64(t) * float64(m) * float64(m))
	for i := range acc {
		acc[i] *= scale
	}

	return fftshift(acc), nil
}

// SpatialFrequencies returns the fftshifted spatial frequency axis for
// BeamscanFFT, in cycles per element, ascending over [-1/2, 1/2).
func SpatialFrequencies(nfft int) []float64 {
	f := make([]float64, nfft)
	half := nfft / 2
	for i := range f {
		f[i] = float64(i-half) / float64(nfft)
	}
	return f
}

// fftshift rotates a spectrum so the negative frequencies come first,
// matching SpatialFrequencies.
func fftshift(v []float64) []float64 {
	n := len(v)
	half := n / 2
	out := make([]float64, n)
	copy(out, v[n-half:])
	copy(out[half:], v[:n-half])
	return out
}
