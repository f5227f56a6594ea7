package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
)

// LiveCell identifies an alive cell by column (X) and row (Y)
type LiveCell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is a fixed-size board of cells, stored row-major
type Grid struct {
	width  int
	height int
	cells  [][]bool
}

// neighborOffsets are the eight Moore neighborhood offsets as (dx, dy)
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// NewGrid creates a grid with the specified dimensions and every cell dead
func NewGrid(width, height int) *Grid {
	width, height = max(0, width), max(0, height)
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// GetWidth returns the number of columns
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the number of rows
func (g *Grid) GetHeight() int {
	return g.height
}

// Reset resizes the grid and clears every cell. Only pooled grids are reset.
func (g *Grid) Reset(width, height int) {
	g.width = width
	g.height = height

	if len(g.cells) != height {
		g.cells = make([][]bool, height)
	}
	for i := range g.cells {
		if len(g.cells[i]) != width {
			g.cells[i] = make([]bool, width)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear sets every cell dead
func (g *Grid) Clear() {
	for y := range g.height {
		clear(g.cells[y])
	}
}

// InBounds reports whether (x, y) addresses a stored cell
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Set sets a cell to alive (true) or dead (false); out-of-range is ignored
func (g *Grid) Set(x, y int, alive bool) {
	if g.InBounds(x, y) {
		g.cells[y][x] = alive
	}
}

// Get returns the state of a cell; out-of-range cells are dead
func (g *Grid) Get(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y][x]
}

// Toggle flips the cell at (x, y). Out-of-range coordinates are ignored.
func (g *Grid) Toggle(x, y int) {
	if g.InBounds(x, y) {
		g.cells[y][x] = !g.cells[y][x]
	}
}

// CountNeighbors counts living Moore neighbors. There is no wraparound.
func (g *Grid) CountNeighbors(x, y int) int {
	count := 0
	for _, off := range neighborOffsets {
		if g.Get(x+off[0], y+off[1]) {
			count++
		}
	}
	return count
}

// Step returns the next generation as a new grid, leaving g untouched
func (g *Grid) Step() *Grid {
	return g.NextGeneration(nil)
}

// NextGeneration computes the next generation in parallel row bands.
// The result is taken from pool when one is given.
func (g *Grid) NextGeneration(pool *GridPool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.width, g.height)
	} else {
		next = NewGrid(g.width, g.height)
	}
	if g.height == 0 {
		return next
	}

	var (
		eg            errgroup.Group
		numWorkers    = min(runtime.NumCPU(), g.height)
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			for y := startRow; y < endRow; y++ {
				for x := range g.width {
					next.cells[y][x] = rules.Apply(g.CountNeighbors(x, y), g.cells[y][x])
				}
			}
			return nil
		})
	}

	// workers only write disjoint rows and never fail
	_ = eg.Wait()

	return next
}

// LiveCells lists alive cells in row-major order: y ascending, then x
func (g *Grid) LiveCells() []LiveCell {
	cells := make([]LiveCell, 0)
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				cells = append(cells, LiveCell{X: x, Y: y})
			}
		}
	}
	return cells
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Randomize sets every cell alive with probability density, overwriting
// prior state. density is clamped to [0, 1].
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	density = min(max(density, 0), 1)
	for y := range g.height {
		for x := range g.width {
			g.cells[y][x] = rng.Float64() < density
		}
	}
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height)
	for y := range g.height {
		copy(c.cells[y], g.cells[y])
	}
	return c
}

// Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.width != o.width || g.height != o.height {
		return false
	}
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
