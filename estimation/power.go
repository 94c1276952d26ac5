package estimation

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im, pw []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 3 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n : 2*n], buf.data[2*n : need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// colPowerSums returns, per column of a, the sum of squared magnitudes.
// Scratch buffers are pooled, so in steady state this allocates only the
// output slice.
func colPowerSums(a *mat.CDense) []float64 {
	r, c := a.Dims()
	out := make([]float64, c)
	re, im, pw, buf := getScratch(r)

	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			v := a.At(i, j)
			re[i] = real(v)
			im[i] = imag(v)
		}

		vecmath.Power(pw, re, im)
		out[j] = floats.Sum(pw)
	}

	putScratch(buf)
	return out
}
