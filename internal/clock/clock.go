package clock

import (
	"sync"
	"time"
)

// Clock is a monotonic time source. Readings are only meaningful
// relative to each other.
type Clock interface {
	Now() time.Duration
}

// Handle identifies a scheduled frame callback. The zero Handle
// is never returned by Schedule.
type Handle uint64

// Scheduler runs a callback once on the next frame.
type Scheduler interface {
	Schedule(fn func(now time.Duration)) Handle
	// Cancel is a no-op for fired, cancelled or zero handles.
	Cancel(h Handle)
}

type systemClock struct {
	origin time.Time
}

// NewSystemClock returns a Clock backed by the runtime's monotonic clock.
func NewSystemClock() Clock {
	return systemClock{origin: time.Now()}
}

func (c systemClock) Now() time.Duration {
	return time.Since(c.origin)
}

// FrameScheduler fires callbacks roughly once per interval.
type FrameScheduler struct {
	clock    Clock
	interval time.Duration

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
}

func NewFrameScheduler(clock Clock, interval time.Duration) *FrameScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameScheduler{
		clock:    clock,
		interval: interval,
		timers:   make(map[Handle]*time.Timer),
	}
}

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

func (s *FrameScheduler) Schedule(fn func(now time.Duration)) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	s.timers[h] = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		_, pending := s.timers[h]
		delete(s.timers, h)
		s.mu.Unlock()

		if pending {
			fn(s.clock.Now())
		}
	})
	return h
}

func (s *FrameScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
}

// Pending reports how many callbacks are waiting to fire.
func (s *FrameScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
