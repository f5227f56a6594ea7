package sim

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// DefaultInterval is the delay between ticks of a running simulation
const DefaultInterval = 100 * time.Millisecond

// SimulationState is the run state shown next to the board
type SimulationState struct {
	Running    bool
	Interval   time.Duration
	Generation int
}

// IntervalMs returns the interval in whole milliseconds
func (s SimulationState) IntervalMs() int64 {
	return s.Interval.Milliseconds()
}

// Snapshot is everything a presentation layer needs to draw one frame.
// Version grows with every change, so a consumer can drop a snapshot
// that arrives after a newer one.
type Snapshot struct {
	Version    uint64
	State      SimulationState
	Cells      []model.LiveCell
	Cols, Rows int
	CellSize   int
}

// Population is the number of alive cells in the snapshot
func (s Snapshot) Population() int {
	return len(s.Cells)
}

// Grid rebuilds the generation the snapshot was taken from
func (s Snapshot) Grid() *model.Grid {
	g := model.NewGrid(s.Cols, s.Rows)
	for _, cell := range s.Cells {
		g.Set(cell.X, cell.Y, true)
	}
	return g
}

// Option configures a Controller
type Option func(*Controller)

// WithScheduler replaces the wall-clock scheduler
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithLogger sets the logger for state transitions
func WithLogger(l log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithInterval sets the initial tick interval. Non-positive values keep
// the default.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// Controller runs a board through the Stopped/Running state machine.
// Every command and tick is serialized, so a tick sees whatever state the
// commands before it left behind.
type Controller struct {
	mu         sync.Mutex
	board      *model.Board
	sched      Scheduler
	logger     log.Logger
	running    bool
	interval   time.Duration
	generation int
	task       Task
	epoch      uint64
	version    uint64
	observers  []func(Snapshot)
}

// New creates a stopped controller driving board
func New(board *model.Board, opts ...Option) *Controller {
	c := &Controller{
		board:    board,
		sched:    RealScheduler{},
		logger:   log.NewNopLogger(),
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers fn to receive a snapshot after every change. fn runs
// without the controller lock held and may call back into the controller.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Run starts the simulation. The first step is scheduled with no delay and
// each later one after the interval current when the previous tick fired.
// Run on a running simulation does nothing.
func (c *Controller) Run() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.epoch++
	c.scheduleLocked(0)
	level.Debug(c.logger).Log("msg", "simulation started", "interval", c.interval, "generation", c.generation)
	c.commit()
}

// Stop halts the simulation and cancels the pending tick. Stopping a
// stopped simulation does nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.epoch++
	if c.task != nil {
		c.task.Stop()
		c.task = nil
	}
	level.Debug(c.logger).Log("msg", "simulation stopped", "generation", c.generation)
	c.commit()
}

// Running reports whether ticks are being scheduled
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// SetInterval changes the tick interval; the pending tick keeps its delay
func (c *Controller) SetInterval(d time.Duration) error {
	if d <= 0 {
		level.Warn(c.logger).Log("msg", "interval rejected", "interval", d)
		return errors.Wrapf(ErrInvalidInterval, "[SetInterval] interval must be positive, got %v", d)
	}
	c.mu.Lock()
	c.interval = d
	level.Debug(c.logger).Log("msg", "interval changed", "interval", d)
	c.commit()
	return nil
}

// SetIntervalText parses free text as milliseconds, as typed into the
// interval field
func (c *Controller) SetIntervalText(text string) error {
	ms, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		level.Warn(c.logger).Log("msg", "interval rejected", "input", text)
		return errors.Wrapf(ErrInvalidInterval, "[SetIntervalText] %q is not a whole number of milliseconds", text)
	}
	if int64(ms) > math.MaxInt64/int64(time.Millisecond) {
		level.Warn(c.logger).Log("msg", "interval rejected", "input", text)
		return errors.Wrapf(ErrInvalidInterval, "[SetIntervalText] %d ms is out of range", ms)
	}
	return c.SetInterval(time.Duration(ms) * time.Millisecond)
}

// Step advances one generation whether or not the simulation runs
func (c *Controller) Step() {
	c.mu.Lock()
	c.stepLocked()
	c.commit()
}

// Toggle flips the cell at grid coordinates (x, y)
func (c *Controller) Toggle(x, y int) {
	c.mu.Lock()
	c.board.Toggle(x, y)
	c.commit()
}

// ToggleAt flips the cell under a pixel offset from the board origin
func (c *Controller) ToggleAt(pixelX, pixelY float64) {
	c.mu.Lock()
	c.board.ToggleAt(pixelX, pixelY)
	c.commit()
}

// Randomize refills the board and restarts the generation count
func (c *Controller) Randomize() {
	c.mu.Lock()
	c.board.Randomize()
	c.generation = 0
	c.commit()
}

// Clear kills every cell and restarts the generation count
func (c *Controller) Clear() {
	c.mu.Lock()
	c.board.Clear()
	c.generation = 0
	c.commit()
}

// Load replaces the board contents with g
func (c *Controller) Load(g *model.Grid) {
	c.mu.Lock()
	c.board.Load(g)
	c.generation = 0
	c.commit()
}

// State returns the current run state
func (c *Controller) State() SimulationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Snapshot returns the live cells and run state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Grid returns a copy of the current generation
func (c *Controller) Grid() *model.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.Grid()
}

func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	// a tick that fired while Stop or a restart held the lock is stale
	if !c.running || epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	c.stepLocked()
	c.scheduleLocked(c.interval)
	c.commit()
}

func (c *Controller) scheduleLocked(d time.Duration) {
	epoch := c.epoch
	c.task = c.sched.AfterFunc(d, func() { c.tick(epoch) })
}

func (c *Controller) stepLocked() {
	c.board.Step()
	c.generation++
}

func (c *Controller) stateLocked() SimulationState {
	return SimulationState{
		Running:    c.running,
		Interval:   c.interval,
		Generation: c.generation,
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Version:  c.version,
		State:    c.stateLocked(),
		Cells:    c.board.LiveCells(),
		Cols:     c.board.Cols(),
		Rows:     c.board.Rows(),
		CellSize: c.board.CellSize(),
	}
}

// commit releases the lock taken by the caller and notifies observers
func (c *Controller) commit() {
	c.version++
	if len(c.observers) == 0 {
		c.mu.Unlock()
		return
	}
	snap := c.snapshotLocked()
	observers := append([]func(Snapshot){}, c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}
