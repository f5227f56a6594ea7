package sim

import (
	"sort"
	"sync"
	"time"
)

// Task is a pending scheduled call
type Task interface {
	// Stop cancels the call. It reports false if the call already ran or
	// was stopped before.
	Stop() bool
}

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// RealScheduler schedules on the wall clock with time.AfterFunc
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// ManualScheduler is a fake clock. Scheduled calls only run from Advance,
// on the goroutine calling it.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	s        *ManualScheduler
	deadline time.Duration
	seq      uint64
	f        func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTask{s: s, deadline: s.now + max(d, 0), seq: s.seq, f: f}
	s.tasks = append(s.tasks, t)
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].deadline != s.tasks[j].deadline {
			return s.tasks[i].deadline < s.tasks[j].deadline
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	return t
}

// Advance moves the clock forward by d, running every call that comes due
// in deadline order, including calls scheduled by those calls
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for len(s.tasks) > 0 && s.tasks[0].deadline <= target {
		t := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.now = t.deadline
		s.mu.Unlock()
		t.f()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

// Now is the time elapsed on the fake clock
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending is the number of calls waiting to run
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i, other := range t.s.tasks {
		if other == t {
			t.s.tasks = append(t.s.tasks[:i], t.s.tasks[i+1:]...)
			return true
		}
	}
	return false
}
