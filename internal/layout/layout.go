// Package layout produces reproducible pseudo-random grids for
// illustrative visualizations (e.g. good vs defective dies on a wafer).
//
// Generate is referentially transparent: identical arguments always
// yield an identical grid, and cell i depends only on (seed, i,
// probability). There is no retained generator state; resampling is the
// caller supplying a new seed.
package layout

// Generate returns a boolean grid of cellCount cells where each cell is
// true with the given success probability. probability outside [0, 1] is
// clamped at the boundary. cellCount <= 0 yields an empty grid.
func Generate(seed int64, cellCount int, probability float64) []bool {
	if cellCount <= 0 {
		return nil
	}
	if probability < 0 {
		probability = 0
	}
	if probability > 1 {
		probability = 1
	}

	grid := make([]bool, cellCount)
	for i := range grid {
		grid[i] = Cell(seed, i, probability)
	}
	return grid
}

// Cell returns the value of a single cell without materializing the grid.
func Cell(seed int64, index int, probability float64) bool {
	return unit(uint64(seed), uint64(index)) < probability
}

// unit hashes (seed, index) into a uniform float in [0, 1) using the
// splitmix64 finalizer.
func unit(seed, index uint64) float64 {
	x := seed + (index+1)*0x9e3779b97f4a7c15
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return float64(x>>11) / (1 << 53)
}
