package model

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearScreen = "\033[2J\033[H"

	patternAlive   = 'O'
	patternDead    = '.'
	patternComment = '!'
)

// ErrInvalidPattern is returned for malformed plaintext patterns
var ErrInvalidPattern = errors.New("model: invalid pattern")

// TerminalRenderer draws grids as block characters
type TerminalRenderer struct {
	Out io.Writer
}

// Display renders the grid, one terminal line per row
func (r *TerminalRenderer) Display(g *Grid) {
	var b strings.Builder
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				b.WriteString(gridPosBlock)
			} else {
				b.WriteString(gridPosEmpty)
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(r.Out, b.String())
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	fmt.Fprint(r.Out, clearScreen)
}

// String encodes the grid in plaintext pattern form: 'O' alive, '.' dead
func (g *Grid) String() string {
	var b strings.Builder
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				b.WriteRune(patternAlive)
			} else {
				b.WriteRune(patternDead)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseGrid reads a plaintext pattern. Lines starting with '!' are comments,
// short rows are padded with dead cells, and both '*' and 'O' mark life.
func ParseGrid(r io.Reader) (*Grid, error) {
	var (
		rows  []string
		width int
		line  int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), " \t\r")
		if strings.HasPrefix(text, string(patternComment)) {
			continue
		}
		for i, c := range text {
			switch c {
			case patternAlive, '*', patternDead:
			default:
				return nil, errors.Wrapf(ErrInvalidPattern, "[ParseGrid] line %d col %d: unexpected %q", line, i+1, c)
			}
		}
		rows = append(rows, text)
		width = max(width, len(text))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "[ParseGrid] failed to read pattern")
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 || width == 0 {
		return nil, errors.Wrap(ErrInvalidPattern, "[ParseGrid] pattern has no cells")
	}

	g := NewGrid(width, len(rows))
	for y, row := range rows {
		for x, c := range row {
			g.cells[y][x] = c == patternAlive || c == '*'
		}
	}
	return g, nil
}

// MustParseGrid parses a pattern literal and panics on error. Meant for
// tests and built-in patterns.
func MustParseGrid(pattern string) *Grid {
	g, err := ParseGrid(strings.NewReader(pattern))
	if err != nil {
		panic(err)
	}
	return g
}
