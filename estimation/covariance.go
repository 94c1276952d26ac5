package estimation

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-doa/internal/cmul"
)

// SampleCovariance computes the sample covariance R = X X^H / t from an
// m-by-t snapshot matrix (rows = elements, columns = time snapshots).
func SampleCovariance(x *mat.CDense) (*mat.CDense, error) {
	m, t := x.Dims()
	if t < 1 {
		return nil, ErrNoSnapshots
	}

	r := cmul.Mul(x, x.H())

	inv := complex(1/float64(t), 0)
	out := mat.NewCDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			out.Set(i, j, r.At(i, j)*inv)
		}
	}

	return out, nil
}
