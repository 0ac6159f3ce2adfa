package models

const (
	StatusTodo      = "todo"
	StatusCompleted = "completed"
)

const (
	ProgressTodo       = "todo"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// DateLayout is the layout of Task.Date and TaskRef.Date.
const DateLayout = "2006-01-02"

type Task struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Tag        *string `json:"tag"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	WasStarted bool    `json:"wasStarted"`
	// CreatedAt is in unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// TaskRef is the identifying snapshot of a task held by the timer.
type TaskRef struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Tag   *string `json:"tag"`
	Date  string  `json:"date"`
}

func (t *Task) Ref() TaskRef {
	ref := TaskRef{
		ID:    t.ID,
		Title: t.Title,
		Date:  t.Date,
	}
	if t.Tag != nil {
		tag := *t.Tag
		ref.Tag = &tag
	}
	return ref
}

// Progress reports the display state of the task.
func (t *Task) Progress() string {
	switch {
	case t.Status == StatusCompleted:
		return ProgressCompleted
	case t.WasStarted:
		return ProgressInProgress
	default:
		return ProgressTodo
	}
}

// Clone returns a deep copy, so callers never share the tag pointer
// with the store.
func (t *Task) Clone() Task {
	c := *t
	if t.Tag != nil {
		tag := *t.Tag
		c.Tag = &tag
	}
	return c
}

func (r TaskRef) Clone() TaskRef {
	if r.Tag != nil {
		tag := *r.Tag
		r.Tag = &tag
	}
	return r
}
