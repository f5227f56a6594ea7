package model

import "math"

// CellAt translates a pixel offset inside the board into grid coordinates
// using floor(offset / cellSize) on each axis. Negative offsets yield
// negative coordinates, which Toggle ignores.
func CellAt(pixelX, pixelY float64, cellSize int) (x, y int) {
	if cellSize <= 0 {
		return -1, -1
	}
	size := float64(cellSize)
	return int(math.Floor(pixelX / size)), int(math.Floor(pixelY / size))
}

// PixelOrigin is the top-left pixel offset of cell (x, y)
func PixelOrigin(x, y, cellSize int) (pixelX, pixelY float64) {
	return float64(x * cellSize), float64(y * cellSize)
}
