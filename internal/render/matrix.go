package render

// Matrix is the module grid of an encoded QR symbol, without quiet zone.
type Matrix struct {
	size int
	dark []bool
}

// NewMatrix returns an all-light size×size matrix.
func NewMatrix(size int) *Matrix {
	return &Matrix{size: size, dark: make([]bool, size*size)}
}

// MatrixFromBitmap builds a matrix from rows of modules, rows[y][x].
func MatrixFromBitmap(rows [][]bool) *Matrix {
	m := NewMatrix(len(rows))
	for y, row := range rows {
		for x := 0; x < len(row) && x < m.size; x++ {
			m.dark[y*m.size+x] = row[x]
		}
	}
	return m
}

// Size is the number of modules per side.
func (m *Matrix) Size() int { return m.size }

// Dark reports whether the module at (x, y) is dark. Out-of-range
// coordinates are light.
func (m *Matrix) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return false
	}
	return m.dark[y*m.size+x]
}

// Set marks the module at (x, y).
func (m *Matrix) Set(x, y int, dark bool) {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return
	}
	m.dark[y*m.size+x] = dark
}

// ImageSide is the pixel side of the matrix rasterized with scale pixels per
// module and border quiet-zone modules on each side.
func (m *Matrix) ImageSide(scale, border int) int {
	return (m.size + 2*border) * scale
}
