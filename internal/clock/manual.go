package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Clock and Scheduler driven by Advance. It is meant for
// tests that need deterministic frames.
type Manual struct {
	step time.Duration

	mu      sync.Mutex
	now     time.Duration
	next    Handle
	pending map[Handle]func(now time.Duration)
}

func NewManual(step time.Duration) *Manual {
	if step <= 0 {
		step = DefaultFrameInterval
	}
	return &Manual{
		step:    step,
		pending: make(map[Handle]func(now time.Duration)),
	}
}

func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Schedule(fn func(now time.Duration)) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	m.pending[m.next] = fn
	return m.next
}

func (m *Manual) Cancel(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, h)
}

// Pending reports how many callbacks are waiting for the next frame.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Advance moves the clock forward by d in frame-sized steps. After each
// step it fires every callback that was pending before the step began.
// Callbacks scheduled while firing run on the following step.
func (m *Manual) Advance(d time.Duration) {
	for d > 0 {
		step := m.step
		if d < step {
			step = d
		}
		d -= step
		m.frame(step)
	}
}

// Sleep moves the clock forward without firing any frames, like a
// process that is not being scheduled.
func (m *Manual) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
}

func (m *Manual) frame(step time.Duration) {
	m.mu.Lock()
	m.now += step
	now := m.now

	handles := make([]Handle, 0, len(m.pending))
	for h := range m.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	m.mu.Unlock()

	for _, h := range handles {
		m.mu.Lock()
		fn, ok := m.pending[h]
		delete(m.pending, h)
		m.mu.Unlock()

		if ok {
			fn(now)
		}
	}
}
