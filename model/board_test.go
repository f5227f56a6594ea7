package model

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func newTestBoard(t *testing.T, cfg BoardConfig) *Board {
	t.Helper()
	b, err := NewBoard(cfg)
	if err != nil {
		t.Fatalf("NewBoard(%+v): %v", cfg, err)
	}
	return b
}

func TestNewBoardDimensions(t *testing.T) {
	b := newTestBoard(t, BoardConfig{Width: 800, Height: 600, CellSize: 5, Density: DefaultDensity})

	if b.Cols() != 160 || b.Rows() != 120 {
		t.Errorf("board is %dx%d, want 160x120", b.Cols(), b.Rows())
	}
	if len(b.LiveCells()) != 0 {
		t.Error("new board is not empty")
	}
}

func TestNewBoardInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  BoardConfig
	}{
		{"zero cell size", BoardConfig{Width: 100, Height: 100, CellSize: 0}},
		{"negative cell size", BoardConfig{Width: 100, Height: 100, CellSize: -5}},
		{"narrower than a cell", BoardConfig{Width: 4, Height: 100, CellSize: 5}},
		{"zero height", BoardConfig{Width: 100, Height: 0, CellSize: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(tt.cfg)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("NewBoard error = %v, want ErrInvalidDimensions", err)
			}
		})
	}

	if _, err := NewBoard(BoardConfig{Width: 10, Height: 10, CellSize: 5, Density: 1.5}); err == nil {
		t.Error("density 1.5 accepted")
	}
}

func TestBoardToggleAt(t *testing.T) {
	b := newTestBoard(t, BoardConfig{Width: 50, Height: 25, CellSize: 5})

	b.ToggleAt(0, 0)
	b.ToggleAt(12.7, 4.99)
	b.ToggleAt(49.9, 24.9)
	b.ToggleAt(-0.5, 3)
	b.ToggleAt(50, 10)

	want := []LiveCell{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 9, Y: 4}}
	if got := b.LiveCells(); !reflect.DeepEqual(got, want) {
		t.Errorf("LiveCells() = %v, want %v", got, want)
	}
}

func TestBoardRandomizeAndClear(t *testing.T) {
	b := newTestBoard(t, BoardConfig{Width: 100, Height: 100, CellSize: 10, Density: 1, Seed: 5})

	b.Randomize()
	if b.Population() != 100 {
		t.Errorf("density 1 board has %d alive, want 100", b.Population())
	}

	b.RandomizeDensity(0)
	if b.Population() != 0 {
		t.Errorf("density 0 board has %d alive, want 0", b.Population())
	}

	b.Randomize()
	b.Clear()
	if len(b.LiveCells()) != 0 {
		t.Error("Clear left live cells")
	}
}

func TestBoardStep(t *testing.T) {
	for _, pooled := range []bool{false, true} {
		b := newTestBoard(t, BoardConfig{Width: 25, Height: 25, CellSize: 5, UsePool: pooled})
		b.Load(MustParseGrid(".....\n..O..\n.O.O.\n..O..\n"))

		b.Step()
		want := []LiveCell{{X: 2, Y: 2}}
		if got := b.LiveCells(); !reflect.DeepEqual(got, want) {
			t.Errorf("pooled=%v: LiveCells() = %v, want %v", pooled, got, want)
		}

		b.Step()
		if b.Population() != 0 {
			t.Errorf("pooled=%v: lone cell survived", pooled)
		}
	}
}

func TestBoardGridIsCopy(t *testing.T) {
	b := newTestBoard(t, BoardConfig{Width: 10, Height: 10, CellSize: 5})
	g := b.Grid()
	g.Set(0, 0, true)

	if b.Population() != 0 {
		t.Error("mutating Grid() leaked into the board")
	}
}

func TestBoardLoadClips(t *testing.T) {
	b := newTestBoard(t, BoardConfig{Width: 10, Height: 10, CellSize: 5})
	b.Toggle(1, 1)
	b.Load(MustParseGrid("O..O\n....\nO...\n"))

	want := []LiveCell{{X: 0, Y: 0}}
	if got := b.LiveCells(); !reflect.DeepEqual(got, want) {
		t.Errorf("LiveCells() = %v, want %v", got, want)
	}
}
