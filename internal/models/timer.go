package models

import (
	"encoding/json"
	"math"
	"time"
)

type TimerState struct {
	IsRunning  bool
	Elapsed    time.Duration
	ActiveTask *TaskRef
}

type timerRecord struct {
	IsRunning  bool     `json:"isRunning"`
	ElapsedMs  float64  `json:"elapsedMs"`
	ActiveTask *TaskRef `json:"activeTask"`
}

func (s TimerState) MarshalJSON() ([]byte, error) {
	return json.Marshal(timerRecord{
		IsRunning:  s.IsRunning,
		ElapsedMs:  DurationToMillis(s.Elapsed),
		ActiveTask: s.ActiveTask,
	})
}

func (s *TimerState) UnmarshalJSON(data []byte) error {
	var rec timerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	elapsed := MillisToDuration(rec.ElapsedMs)
	if elapsed < 0 {
		elapsed = 0
	}
	*s = TimerState{
		IsRunning:  rec.IsRunning,
		Elapsed:    elapsed,
		ActiveTask: rec.ActiveTask,
	}
	return nil
}

func DurationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func MillisToDuration(ms float64) time.Duration {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0
	}
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}
