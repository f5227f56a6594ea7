package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/sim"
)

// Feed hands controller snapshots to the update loop. It keeps only the
// newest snapshot so a slow screen never blocks a tick, and drops any
// snapshot older than one it already accepted.
type Feed struct {
	mu     sync.Mutex
	latest uint64
	ch     chan sim.Snapshot
}

func NewFeed() *Feed {
	return &Feed{ch: make(chan sim.Snapshot, 1)}
}

// Publish replaces any undelivered snapshot with snap
func (f *Feed) Publish(snap sim.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if snap.Version < f.latest {
		return
	}
	f.latest = snap.Version
	for {
		select {
		case f.ch <- snap:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// Updates is the receiving side of the feed
func (f *Feed) Updates() <-chan sim.Snapshot {
	return f.ch
}

// Run shows the interactive screen until the user quits. The simulation
// is stopped on return.
func Run(ctrl *sim.Controller, logger log.Logger, opts ...tea.ProgramOption) error {
	feed := NewFeed()
	ctrl.OnChange(feed.Publish)
	defer ctrl.Stop()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	p := tea.NewProgram(New(ctrl, feed.Updates(), logger), opts...)
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "[ui.Run] terminal program failed")
	}
	return nil
}
