// Package ui is the terminal front end. It only talks to the simulation
// through sim.Controller commands and the snapshots the controller emits.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/sim"
)

const (
	// the board frame starts below the title line
	boardTop  = 1
	boardLeft = 0
	// lines taken by title, frame and the three footer lines
	chromeLines = 6
	chromeCols  = 2

	minInterval = time.Millisecond
	maxInterval = 10 * time.Second
)

// snapshotMsg carries a controller change into the update loop
type snapshotMsg sim.Snapshot

// Model is the bubbletea model of the game screen
type Model struct {
	ctrl    *sim.Controller
	logger  log.Logger
	updates <-chan sim.Snapshot

	snap             sim.Snapshot
	cursorX, cursorY int
	offsetX, offsetY int
	width, height    int

	editing bool
	input   string
	err     error
}

// New builds the screen for ctrl. updates delivers snapshots published by
// the controller; it may be nil when no live feed is wired.
func New(ctrl *sim.Controller, updates <-chan sim.Snapshot, logger log.Logger) Model {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return Model{
		ctrl:    ctrl,
		logger:  logger,
		updates: updates,
		snap:    ctrl.Snapshot(),
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

func waitForSnapshot(updates <-chan sim.Snapshot) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		if msg.Version >= m.snap.Version {
			m.snap = sim.Snapshot(msg)
		}
		return m, waitForSnapshot(m.updates)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scrollToCursor()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg), nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Stop()
		return m, tea.Quit
	case " ", "enter":
		if m.ctrl.Running() {
			m.ctrl.Stop()
		} else {
			m.ctrl.Run()
		}
	case "n":
		m.ctrl.Step()
	case "r":
		m.ctrl.Randomize()
	case "c":
		m.ctrl.Clear()
	case "t":
		m.ctrl.Toggle(m.cursorX, m.cursorY)
	case "+", "=":
		m.scaleInterval(0.5)
	case "-", "_":
		m.scaleInterval(2)
	case "i":
		m.editing = true
		m.input = fmt.Sprint(m.ctrl.State().IntervalMs())
		m.err = nil
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	default:
		return m, nil
	}
	level.Debug(m.logger).Log("msg", "key", "key", msg.String())
	m.snap = m.ctrl.Snapshot()
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.err = m.ctrl.SetIntervalText(m.input)
		m.input = ""
		m.snap = m.ctrl.Snapshot()
	case tea.KeyEsc:
		m.editing, m.input = false, ""
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes:
		// free text, as the interval field accepts; validation happens on enter
		m.input += string(msg.Runes)
	}
	return m
}

// handleMouse toggles the cell under a left click. The terminal cell is
// mapped to its pixel origin so the click goes through the same
// floor(offset / cellSize) translation as any other pointer input.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m
	}
	visW, visH := m.visible()
	col, row := msg.X-boardLeft-1, msg.Y-boardTop-1
	if col < 0 || row < 0 || col >= visW || row >= visH {
		return m
	}
	x, y := col+m.offsetX, row+m.offsetY
	px, py := model.PixelOrigin(x, y, m.snap.CellSize)
	m.ctrl.ToggleAt(px, py)
	m.cursorX, m.cursorY = x, y
	m.snap = m.ctrl.Snapshot()
	return m
}

func (m *Model) scaleInterval(factor float64) {
	d := time.Duration(float64(m.ctrl.State().Interval) * factor)
	d = min(max(d, minInterval), maxInterval)
	m.err = m.ctrl.SetInterval(d)
}

func (m *Model) moveCursor(dx, dy int) {
	m.cursorX = min(max(m.cursorX+dx, 0), max(m.snap.Cols-1, 0))
	m.cursorY = min(max(m.cursorY+dy, 0), max(m.snap.Rows-1, 0))
	m.scrollToCursor()
}

// scrollToCursor moves the viewport so the cursor stays on screen
func (m *Model) scrollToCursor() {
	visW, visH := m.visible()
	if m.cursorX < m.offsetX {
		m.offsetX = m.cursorX
	} else if m.cursorX >= m.offsetX+visW {
		m.offsetX = m.cursorX - visW + 1
	}
	if m.cursorY < m.offsetY {
		m.offsetY = m.cursorY
	} else if m.cursorY >= m.offsetY+visH {
		m.offsetY = m.cursorY - visH + 1
	}
	m.offsetX = min(m.offsetX, max(m.snap.Cols-visW, 0))
	m.offsetY = min(m.offsetY, max(m.snap.Rows-visH, 0))
}

// visible is the part of the board that fits the terminal, in cells
func (m Model) visible() (int, int) {
	return min(m.snap.Cols, max(m.width-chromeCols, 1)), min(m.snap.Rows, max(m.height-chromeLines, 1))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(title.Render("go-life"))
	b.WriteByte('\n')
	b.WriteString(boardFrame.Render(m.renderBoard()))
	b.WriteByte('\n')
	b.WriteString(m.renderStatus())
	b.WriteByte('\n')
	b.WriteString(m.renderControls())
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderBoard() string {
	visW, visH := m.visible()
	alive := make([][]bool, visH)
	for i := range alive {
		alive[i] = make([]bool, visW)
	}
	for _, c := range m.snap.Cells {
		x, y := c.X-m.offsetX, c.Y-m.offsetY
		if x >= 0 && x < visW && y >= 0 && y < visH {
			alive[y][x] = true
		}
	}

	var b strings.Builder
	for y := range visH {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range visW {
			glyph, style := glyphDead, deadCell
			if alive[y][x] {
				glyph, style = glyphAlive, aliveCell
			}
			if x+m.offsetX == m.cursorX && y+m.offsetY == m.cursorY {
				style = cursorCell
			}
			b.WriteString(style.Render(glyph))
		}
	}
	return b.String()
}

func (m Model) renderStatus() string {
	st := m.snap.State
	status := statusStopped.Render("Stopped")
	if st.Running {
		status = statusRunning.Render("Running")
	}
	metric := func(label string, value any) string {
		return metricLabel.Render(label+" ") + metricValue.Render(fmt.Sprint(value))
	}
	return strings.Join([]string{
		status,
		metric("gen", st.Generation),
		metric("alive", m.snap.Population()),
		metric("every", fmt.Sprintf("%dms", st.IntervalMs())),
		metric("cursor", fmt.Sprintf("%d,%d", m.cursorX, m.cursorY)),
	}, "  ")
}

func (m Model) renderControls() string {
	run := "space run"
	if m.snap.State.Running {
		run = "space stop"
	}
	return keyHint.Render(run + " · n step · r random · c clear · t toggle · +/- speed · i interval · q quit")
}

func (m Model) renderFooter() string {
	switch {
	case m.editing:
		return fmt.Sprintf("Update every %s█ msec (enter to apply, esc to cancel)", m.input)
	case m.err != nil:
		return errorMsg.Render(m.err.Error())
	}
	return ""
}
