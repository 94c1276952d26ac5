package estimation

// Spectrum is a real-valued array over a search grid, one value per grid
// point. Values are stored in row-major order matching the grid's flattened
// placement order.
type Spectrum struct {
	Values []float64
	Shape  []int
}

// Rank returns the number of grid dimensions.
func (s *Spectrum) Rank() int { return len(s.Shape) }

// At returns the value at the given multi-dimensional coordinate.
func (s *Spectrum) At(coord []int) float64 {
	return s.Values[RavelIndex(coord, s.Shape)]
}

// RavelIndex converts a multi-dimensional coordinate to a flattened row-major
// index (the last axis varies fastest).
func RavelIndex(coord, shape []int) int {
	flat := 0
	for i, c := range coord {
		flat = flat*shape[i] + c
	}
	return flat
}

// UnravelIndex converts a flattened row-major index back to a
// multi-dimensional coordinate.
func UnravelIndex(flat int, shape []int) []int {
	coord := make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		coord[i] = flat % shape[i]
		flat /= shape[i]
	}
	return coord
}
