package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/focusflow/internal/clock"
	"github.com/adanyl0v/focusflow/internal/models"
	"github.com/adanyl0v/focusflow/internal/storage"
)

type timerServiceImpl struct {
	logger         zerolog.Logger
	kv             storage.KV
	clock          clock.Clock
	scheduler      clock.Scheduler
	persistTimeout time.Duration

	mu       sync.Mutex
	state    models.TimerState
	lastTick time.Duration
	frame    clock.Handle
	// generation invalidates callbacks that were already firing
	// when their frame got cancelled.
	generation uint64
}

// NewTimerService restores the timer from kv. A timer that was running
// keeps running from now on; the time it spent unloaded is not counted.
func NewTimerService(
	ctx context.Context,
	logger zerolog.Logger,
	kv storage.KV,
	clk clock.Clock,
	scheduler clock.Scheduler,
	persistTimeout time.Duration,
) TimerService {
	s := &timerServiceImpl{
		logger:         logger,
		kv:             kv,
		clock:          clk,
		scheduler:      scheduler,
		persistTimeout: persistTimeout,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.load(ctx)
	if s.state.IsRunning {
		s.lastTick = s.clock.Now()
		s.scheduleLocked()
		s.logger.Info().
			Str("task_id", s.state.ActiveTask.ID).
			Dur("elapsed", s.state.Elapsed).
			Msg("resumed running timer")
	}
	return s
}

func (s *timerServiceImpl) load(ctx context.Context) models.TimerState {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.kv.Get(ctx, TimerStorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn().
				Err(err).
				Str("key", TimerStorageKey).
				Msg("failed to read timer state")
		}
		return models.TimerState{}
	}

	var state models.TimerState
	err = json.Unmarshal([]byte(raw), &state)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", TimerStorageKey).
			Msg("failed to parse timer state")
		return models.TimerState{}
	}

	if state.IsRunning && state.ActiveTask == nil {
		s.logger.Warn().Msg("restored running timer without active task")
		state.IsRunning = false
	}
	s.logger.Debug().
		Bool("running", state.IsRunning).
		Dur("elapsed", state.Elapsed).
		Msg("loaded timer state")
	return state
}

func (s *timerServiceImpl) Start(ctx context.Context, task models.TaskRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.ActiveTask != nil && s.state.Elapsed > 0 {
		s.logger.Debug().
			Str("task_id", s.state.ActiveTask.ID).
			Dur("elapsed", s.state.Elapsed).
			Msg("discarding previous session")
	}

	ref := task.Clone()
	s.haltLocked()
	s.state = models.TimerState{
		IsRunning:  true,
		ActiveTask: &ref,
	}
	s.lastTick = s.clock.Now()
	s.scheduleLocked()
	s.persistLocked(ctx)

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("started timer")
}

func (s *timerServiceImpl) Pause(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsRunning {
		return
	}
	s.haltLocked()
	s.state.IsRunning = false
	s.persistLocked(ctx)

	s.logger.Info().
		Dur("elapsed", s.state.Elapsed).
		Msg("paused timer")
}

func (s *timerServiceImpl) Resume(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.ActiveTask == nil {
		return ErrNoActiveTask
	}
	if s.state.IsRunning {
		return ErrTimerRunning
	}

	s.state.IsRunning = true
	s.lastTick = s.clock.Now()
	s.scheduleLocked()
	s.persistLocked(ctx)

	s.logger.Info().
		Str("task_id", s.state.ActiveTask.ID).
		Dur("elapsed", s.state.Elapsed).
		Msg("resumed timer")
	return nil
}

func (s *timerServiceImpl) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.haltLocked()
	s.state.IsRunning = false
	s.persistLocked(ctx)

	s.logger.Info().
		Dur("elapsed", s.state.Elapsed).
		Msg("stopped timer")
}

func (s *timerServiceImpl) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.haltLocked()
	s.state = models.TimerState{}
	s.persistLocked(ctx)

	s.logger.Info().Msg("reset timer")
}

func (s *timerServiceImpl) State() models.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	if state.ActiveTask != nil {
		ref := state.ActiveTask.Clone()
		state.ActiveTask = &ref
	}
	return state
}

func (s *timerServiceImpl) Format(d time.Duration) string {
	return FormatElapsed(d)
}

func (s *timerServiceImpl) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.haltLocked()
}

func (s *timerServiceImpl) tick(generation uint64, now time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsRunning || generation != s.generation {
		return
	}

	delta := now - s.lastTick
	if delta < 0 {
		delta = 0
	}
	s.state.Elapsed += delta
	s.lastTick = now
	s.logger.Trace().
		Dur("delta", delta).
		Dur("elapsed", s.state.Elapsed).
		Msg("timer tick")

	s.scheduleLocked()
	s.persistLocked(context.Background())
}

// scheduleLocked cancels any pending frame before requesting a new one,
// so there is never more than one tick stream.
func (s *timerServiceImpl) scheduleLocked() {
	s.haltLocked()
	generation := s.generation
	s.frame = s.scheduler.Schedule(func(now time.Duration) {
		s.tick(generation, now)
	})
}

func (s *timerServiceImpl) haltLocked() {
	s.scheduler.Cancel(s.frame)
	s.frame = 0
	s.generation++
}

func (s *timerServiceImpl) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.state)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("failed to marshal timer state")
		return
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = s.kv.Set(ctx, TimerStorageKey, string(data))
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", TimerStorageKey).
			Msg("failed to persist timer state")
	}
}

func (s *timerServiceImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.persistTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.persistTimeout)
}

// FormatElapsed renders d as minutes, seconds and centiseconds, each
// padded to two digits. Minutes are not capped at 59.
func FormatElapsed(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, centis)
}
