package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestTimerStateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state TimerState
	}{
		{
			name:  "default",
			state: TimerState{},
		},
		{
			name: "running with tagged task",
			state: TimerState{
				IsRunning: true,
				Elapsed:   1500 * time.Millisecond,
				ActiveTask: &TaskRef{
					ID:    "a",
					Title: "Write docs",
					Tag:   strPtr("work"),
					Date:  "2025-01-01",
				},
			},
		},
		{
			name: "stopped with fractional millis",
			state: TimerState{
				Elapsed:    16*time.Millisecond + 667*time.Microsecond,
				ActiveTask: &TaskRef{ID: "b", Title: "Read", Date: "2025-01-02"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.state)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			var got TimerState
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, tt.state) {
				t.Errorf("round trip mismatch: got %+v, want %+v", got, tt.state)
			}
		})
	}
}

func TestTimerStateJSONShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(TimerState{Elapsed: 2 * time.Second})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"isRunning":false,"elapsedMs":2000,"activeTask":null}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestTimerStateUnmarshalClampsNegativeElapsed(t *testing.T) {
	t.Parallel()

	var s TimerState
	if err := json.Unmarshal([]byte(`{"isRunning":false,"elapsedMs":-5,"activeTask":null}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Elapsed != 0 {
		t.Errorf("expected elapsed clamped to 0, got %v", s.Elapsed)
	}
}

func TestTaskCollectionJSONRoundTrip(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "2", Title: "Second", Tag: strPtr("home"), Date: "2025-01-02", Status: StatusCompleted, WasStarted: true, CreatedAt: 1735776000000},
		{ID: "1", Title: "First", Date: "2025-01-01", Status: StatusTodo, CreatedAt: 1735689600000},
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"tag":null`) {
		t.Errorf("expected untagged task to serialize tag as null, got %s", data)
	}

	var got []Task
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, tasks) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, tasks)
	}
}

func TestTaskProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		task Task
		want string
	}{
		{Task{Status: StatusTodo}, ProgressTodo},
		{Task{Status: StatusTodo, WasStarted: true}, ProgressInProgress},
		{Task{Status: StatusCompleted, WasStarted: true}, ProgressCompleted},
	}
	for _, tt := range tests {
		if got := tt.task.Progress(); got != tt.want {
			t.Errorf("Progress(%+v) = %q, want %q", tt.task, got, tt.want)
		}
	}
}

func TestTaskRefCopiesTag(t *testing.T) {
	t.Parallel()

	task := Task{ID: "1", Title: "x", Tag: strPtr("work"), Date: "2025-01-01"}
	ref := task.Ref()
	*task.Tag = "changed"

	if ref.Tag == nil || *ref.Tag != "work" {
		t.Errorf("expected ref tag to stay %q, got %v", "work", ref.Tag)
	}
}
