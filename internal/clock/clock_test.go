package clock

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSystemClockIsMonotonic(t *testing.T) {
	t.Parallel()

	c := NewSystemClock()
	prev := c.Now()
	for i := 0; i < 1000; i++ {
		now := c.Now()
		if now < prev {
			t.Fatalf("clock went backwards: %v after %v", now, prev)
		}
		prev = now
	}
}

func TestFrameSchedulerFiresOnce(t *testing.T) {
	t.Parallel()

	s := NewFrameScheduler(NewSystemClock(), time.Millisecond)
	fired := make(chan time.Duration, 2)
	s.Schedule(func(now time.Duration) { fired <- now })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback did not fire")
	}

	select {
	case <-fired:
		t.Fatal("callback fired twice")
	case <-time.After(20 * time.Millisecond):
	}
	if n := s.Pending(); n != 0 {
		t.Errorf("expected no pending callbacks, got %d", n)
	}
}

func TestFrameSchedulerCancel(t *testing.T) {
	t.Parallel()

	s := NewFrameScheduler(NewSystemClock(), 5*time.Millisecond)
	var calls atomic.Int32
	h := s.Schedule(func(time.Duration) { calls.Add(1) })
	s.Cancel(h)
	s.Cancel(h)
	s.Cancel(0)

	time.Sleep(30 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("cancelled callback fired %d times", n)
	}
}

func TestManualAdvanceStepsFrames(t *testing.T) {
	t.Parallel()

	m := NewManual(10 * time.Millisecond)

	var ticks []time.Duration
	var tick func(now time.Duration)
	tick = func(now time.Duration) {
		ticks = append(ticks, now)
		m.Schedule(tick)
	}
	m.Schedule(tick)

	m.Advance(35 * time.Millisecond)

	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond, 35 * time.Millisecond}
	if len(ticks) != len(want) {
		t.Fatalf("got %d ticks %v, want %v", len(ticks), ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Errorf("tick %d at %v, want %v", i, ticks[i], want[i])
		}
	}
	if m.Now() != 35*time.Millisecond {
		t.Errorf("Now() = %v, want 35ms", m.Now())
	}
}

func TestManualCancelAndSleep(t *testing.T) {
	t.Parallel()

	m := NewManual(time.Millisecond)
	fired := false
	h := m.Schedule(func(time.Duration) { fired = true })
	m.Cancel(h)
	m.Sleep(time.Second)
	m.Advance(5 * time.Millisecond)

	if fired {
		t.Error("cancelled callback fired")
	}
	if m.Now() != time.Second+5*time.Millisecond {
		t.Errorf("Now() = %v", m.Now())
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}
