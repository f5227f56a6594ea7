package sim

import (
	"reflect"
	"testing"
	"time"
)

func TestManualSchedulerOrder(t *testing.T) {
	s := NewManualScheduler()
	var fired []string

	s.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })
	s.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	s.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "b") })

	s.Advance(20 * time.Millisecond)
	if want := []string{"a", "b"}; !reflect.DeepEqual(fired, want) {
		t.Fatalf("fired %v, want %v", fired, want)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}

	s.Advance(10 * time.Millisecond)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(fired, want) {
		t.Errorf("fired %v, want %v", fired, want)
	}
	if s.Now() != 30*time.Millisecond {
		t.Errorf("Now() = %v, want 30ms", s.Now())
	}
}

func TestManualSchedulerReschedule(t *testing.T) {
	s := NewManualScheduler()
	count := 0
	var again func()
	again = func() {
		count++
		s.AfterFunc(10*time.Millisecond, again)
	}
	s.AfterFunc(0, again)

	s.Advance(35 * time.Millisecond)
	if count != 4 {
		t.Errorf("callback ran %d times, want 4", count)
	}
}

func TestManualTaskStop(t *testing.T) {
	s := NewManualScheduler()
	ran := false
	task := s.AfterFunc(time.Millisecond, func() { ran = true })

	if !task.Stop() {
		t.Error("first Stop reported false")
	}
	if task.Stop() {
		t.Error("second Stop reported true")
	}

	s.Advance(time.Second)
	if ran {
		t.Error("stopped task ran")
	}
}

func TestRealScheduler(t *testing.T) {
	done := make(chan struct{})
	RealScheduler{}.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("real scheduler never fired")
	}

	task := RealScheduler{}.AfterFunc(time.Hour, func() { t.Error("cancelled call ran") })
	if !task.Stop() {
		t.Error("Stop on pending timer reported false")
	}
}
