package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// DefaultDensity is the share of cells brought to life by Randomize
const DefaultDensity = 0.15

// ErrInvalidDimensions is returned when a board cannot hold a single cell
var ErrInvalidDimensions = errors.New("model: invalid board dimensions")

// BoardConfig fixes the geometry and randomness of a board at construction
type BoardConfig struct {
	Width    int // board width in pixels
	Height   int // board height in pixels
	CellSize int // edge of one cell in pixels
	Density  float64
	Seed     uint64
	UsePool  bool
}

// Board owns a grid and applies every command to it. It is not safe for
// concurrent use; sim.Controller serializes access.
type Board struct {
	grid     *Grid
	cellSize int
	density  float64
	rng      *rand.Rand
	pool     *GridPool
}

// NewBoard creates an empty board with rows = Height/CellSize and
// cols = Width/CellSize
func NewBoard(cfg BoardConfig) (*Board, error) {
	if cfg.CellSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewBoard] cell size must be positive, got %d", cfg.CellSize)
	}
	cols, rows := cfg.Width/cfg.CellSize, cfg.Height/cfg.CellSize
	if cols <= 0 || rows <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewBoard] %dx%d px holds no %d px cell", cfg.Width, cfg.Height, cfg.CellSize)
	}
	if cfg.Density < 0 || cfg.Density > 1 {
		return nil, errors.Errorf("[NewBoard] density must be within [0, 1], got %v", cfg.Density)
	}

	b := &Board{
		grid:     NewGrid(cols, rows),
		cellSize: cfg.CellSize,
		density:  cfg.Density,
		rng:      rand.New(rand.NewPCG(cfg.Seed, 0)),
	}
	if cfg.UsePool {
		b.pool = NewGridPool()
	}
	return b, nil
}

// Rows returns the fixed number of rows
func (b *Board) Rows() int { return b.grid.GetHeight() }

// Cols returns the fixed number of columns
func (b *Board) Cols() int { return b.grid.GetWidth() }

// CellSize returns the pixel edge of one cell
func (b *Board) CellSize() int { return b.cellSize }

// Toggle flips the cell at (x, y); out-of-range coordinates are ignored
func (b *Board) Toggle(x, y int) {
	b.grid.Toggle(x, y)
}

// ToggleAt flips the cell under a pixel offset relative to the board origin
func (b *Board) ToggleAt(pixelX, pixelY float64) {
	x, y := CellAt(pixelX, pixelY, b.cellSize)
	b.grid.Toggle(x, y)
}

// Randomize refills the board using the configured density
func (b *Board) Randomize() {
	b.grid.Randomize(b.rng, b.density)
}

// RandomizeDensity refills the board with the given density
func (b *Board) RandomizeDensity(density float64) {
	b.grid.Randomize(b.rng, density)
}

// Clear kills every cell
func (b *Board) Clear() {
	b.grid.Clear()
}

// Step replaces the board with its next generation
func (b *Board) Step() {
	next := b.grid.NextGeneration(b.pool)
	recycle(b.pool, b.grid)
	b.grid = next
}

// LiveCells lists alive cells in row-major order
func (b *Board) LiveCells() []LiveCell {
	return b.grid.LiveCells()
}

// Population returns the number of alive cells
func (b *Board) Population() int {
	return b.grid.CountLivingCells()
}

// Grid returns a copy of the current generation
func (b *Board) Grid() *Grid {
	return b.grid.Clone()
}

// Load replaces the board contents with src. Cells of src outside the board
// are dropped and board cells outside src are cleared.
func (b *Board) Load(src *Grid) {
	b.grid.Clear()
	for y := range min(src.GetHeight(), b.Rows()) {
		for x := range min(src.GetWidth(), b.Cols()) {
			b.grid.cells[y][x] = src.cells[y][x]
		}
	}
}
