package estimation

import (
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestBeamscanFFTSingleSource(t *testing.T) {
	const (
		m    = 8
		nfft = 64
	)

	// Half-wavelength spacing and sin(theta) = 0.25 give a spatial
	// frequency of 0.125 cycles per element.
	f := 0.125
	data := make([]complex128, m)
	for i := range data {
		data[i] = cmplx.Exp(complex(0, 2*math.Pi*f*float64(i)))
	}
	snapshots := mat.NewCDense(m, 1, data)

	power, err := BeamscanFFT(snapshots, nfft)
	if err != nil {
		t.Fatalf("BeamscanFFT: %v", err)
	}
	if len(power) != nfft {
		t.Fatalf("power length mismatch: got %d want %d", len(power), nfft)
	}

	peak := floats.MaxIdx(power)
	freqs := SpatialFrequencies(nfft)
	if math.Abs(freqs[peak]-f) > 1e-12 {
		t.Fatalf("peak frequency mismatch: got %f want %f", freqs[peak], f)
	}

	// A fully coherent steering vector reaches the normalized peak power of
	// 1 when the bin is exactly on the source frequency.
	if math.Abs(power[peak]-1) > 1e-9 {
		t.Fatalf("peak power mismatch: got %g want 1", power[peak])
	}
}

func TestSpatialFrequencies(t *testing.T) {
	f := SpatialFrequencies(8)
	if len(f) != 8 {
		t.Fatalf("length mismatch: got %d want 8", len(f))
	}
	if f[0] != -0.5 {
		t.Fatalf("first frequency mismatch: got %f want -0.5", f[0])
	}
	if f[4] != 0 {
		t.Fatalf("center frequency mismatch: got %f want 0", f[4])
	}
	for i := 1; i < len(f); i++ {
		if f[i] <= f[i-1] {
			t.Fatalf("frequencies not ascending: %v", f)
		}
	}
}

func TestBeamscanFFTValidation(t *testing.T) {
	snapshots := mat.NewCDense(8, 1, nil)
	if _, err := BeamscanFFT(snapshots, 4); err != ErrFFTSize {
		t.Fatalf("fft size error mismatch: got %v want %v", err, ErrFFTSize)
	}
}

func TestSampleCovariance(t *testing.T) {
	// Two snapshots of a two-element array.
	x := mat.NewCDense(2, 2, []complex128{
		1, 1i,
		2, 0,
	})

	r, err := SampleCovariance(x)
	if err != nil {
		t.Fatalf("SampleCovariance: %v", err)
	}

	// R = (x0 x0^H + x1 x1^H) / 2 with x0 = [1, 2], x1 = [i, 0].
	want := [][]complex128{
		{1, 1},
		{1, 2},
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got := r.At(i, j); cmplx.Abs(got-want[i][j]) > 1e-12 {
				t.Fatalf("R[%d][%d] mismatch: got %v want %v", i, j, got, want[i][j])
			}
		}
	}
}
