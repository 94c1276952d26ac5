package estimation

// PeakFinder locates the local maxima of a spectrum. It returns one
// coordinate slice per grid dimension, all of equal length equal to the
// number of peaks found. Peak order is unspecified with respect to
// magnitude. Zero peaks yields empty slices, not an error.
//
// Any function with this signature may replace the default strategy via
// WithPeakFinder.
type PeakFinder func(sp *Spectrum) [][]int

// FindPeaks is the default peak finding strategy.
//
// For rank-1 spectra a peak is a strict interior local maximum: both
// immediate neighbors must be strictly smaller, and boundary points are never
// reported. For rank >= 2 a point is a peak when it equals the maximum of its
// 3^d neighborhood, with edge replication at the boundaries, so boundary
// points can be peaks when they dominate their truncated neighborhood.
func FindPeaks(sp *Spectrum) [][]int {
	if sp.Rank() == 1 {
		return findPeaks1D(sp.Values)
	}
	return findPeaksND(sp)
}

func findPeaks1D(v []float64) [][]int {
	idx := []int{}
	for i := 1; i < len(v)-1; i++ {
		if v[i] > v[i-1] && v[i] > v[i+1] {
			idx = append(idx, i)
		}
	}
	return [][]int{idx}
}

func findPeaksND(sp *Spectrum) [][]int {
	rank := sp.Rank()
	coords := make([][]int, rank)
	for i := range coords {
		coords[i] = []int{}
	}

	coord := make([]int, rank)
	for flat := range sp.Values {
		if sp.Values[flat] == neighborhoodMax(sp, coord) {
			for i, c := range coord {
				coords[i] = append(coords[i], c)
			}
		}
		incrementCoord(coord, sp.Shape)
	}

	return coords
}

// neighborhoodMax returns the maximum over the 3^d neighborhood of coord,
// clamping out-of-range neighbors to the nearest edge (edge replication).
func neighborhoodMax(sp *Spectrum, coord []int) float64 {
	rank := len(coord)
	offset := make([]int, rank)
	for i := range offset {
		offset[i] = -1
	}

	neighbor := make([]int, rank)
	best := sp.Values[RavelIndex(coord, sp.Shape)]

	for {
		for i := range neighbor {
			c := coord[i] + offset[i]
			if c < 0 {
				c = 0
			}
			if c > sp.Shape[i]-1 {
				c = sp.Shape[i] - 1
			}
			neighbor[i] = c
		}

		if v := sp.Values[RavelIndex(neighbor, sp.Shape)]; v > best {
			best = v
		}

		// Advance the offset odometer over {-1, 0, 1}^d.
		i := rank - 1
		for ; i >= 0; i-- {
			offset[i]++
			if offset[i] <= 1 {
				break
			}
			offset[i] = -1
		}
		if i < 0 {
			return best
		}
	}
}

func incrementCoord(coord, shape []int) {
	for i := len(coord) - 1; i >= 0; i-- {
		coord[i]++
		if coord[i] < shape[i] {
			return
		}
		coord[i] = 0
	}
}
