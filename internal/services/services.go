package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/focusflow/internal/models"
)

const (
	TimerStorageKey = "ff.stopwatch"
	TasksStorageKey = "ff.tasks"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskNotStarted       = errors.New("task must be started before it can be completed")
	ErrEmptyTaskTitle       = errors.New("task title is empty")
	ErrInvalidTaskDate      = errors.New("invalid task date")
	ErrNoActiveTask         = errors.New("no active task")
	ErrTimerRunning         = errors.New("timer is already running")
	ErrInvalidStatusFilter  = errors.New("invalid status filter")
)

// TimerService tracks elapsed time for at most one active task.
// Every transition is persisted; persistence failures are logged
// and never returned.
type TimerService interface {
	// Start replaces any tracked task, zeroes the elapsed time
	// and starts ticking. The previous session is discarded.
	Start(ctx context.Context, task models.TaskRef)

	// Pause halts ticking and keeps the elapsed time and the task.
	Pause(ctx context.Context)

	// Resume continues ticking from the current elapsed time.
	//
	// It returns ErrNoActiveTask if no task is tracked or
	// ErrTimerRunning if the timer is already running.
	Resume(ctx context.Context) error

	// Stop halts ticking but keeps the elapsed time and the task
	// so that a summary can still be shown.
	Stop(ctx context.Context)

	// Reset halts ticking and clears both the elapsed time and the task.
	Reset(ctx context.Context)

	State() models.TimerState

	// Format renders d as MM:SS:CC.
	Format(d time.Duration) string

	// Close cancels the pending frame without touching persisted state.
	Close()
}

type TaskService interface {
	// AddTask creates a task at the front of the collection.
	//
	// It returns ErrEmptyTaskTitle if the trimmed title is empty or
	// ErrInvalidTaskDate if the date is not YYYY-MM-DD.
	AddTask(ctx context.Context, params AddTaskParams) (*models.Task, error)

	// StartTracking marks the task as started and makes it the timer's
	// active task. It returns ErrTaskNotFound for unknown ids.
	StartTracking(ctx context.Context, taskID string) (*models.Task, error)

	// Complete marks a started task as completed and stops the timer
	// if it was tracking it.
	//
	// It returns ErrTaskNotFound for unknown ids or ErrTaskNotStarted
	// if the task was never started.
	Complete(ctx context.Context, taskID string) (*models.Task, error)

	// DeleteTask removes the task regardless of its status. The timer
	// keeps tracking a deleted task until it is started or reset.
	DeleteTask(ctx context.Context, taskID string) error

	// UpdateTask changes the title, tag or date of a task.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// Task returns ErrTaskNotFound for unknown ids.
	Task(taskID string) (*models.Task, error)

	// Tasks returns the collection, most recent first.
	Tasks() []models.Task

	// FilterByDate returns the tasks scheduled for date, keeping the
	// collection order.
	FilterByDate(date string) []models.Task

	// ListTasks returns the tasks matching every non-empty filter in
	// params, keeping the collection order, together with the counts
	// and tags of the whole collection.
	//
	// It returns ErrInvalidTaskDate for a malformed date or
	// ErrInvalidStatusFilter for an unknown status.
	ListTasks(params ListTasksParams) (*models.TaskList, error)

	// Tags returns the distinct tags in use, sorted.
	Tags() []string

	// ActiveTask resolves the timer's active task against the store.
	//
	// It returns ErrNoActiveTask if the timer tracks nothing or
	// ErrTaskNotFound if the tracked task has been deleted.
	ActiveTask() (*models.Task, error)

	// Report counts the tasks of date by progress and tag. An empty
	// date means today.
	Report(date string) models.DailyReport
}

type AuthService interface {
	// Login authenticates the developer account.
	//
	// It returns ErrUserNotFound if the email is unknown or
	// ErrUserPasswordMismatch if the password does not match.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// ParseJWTToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type AddTaskParams struct {
	Title string
	Tag   string
	// Date defaults to today when empty.
	Date string
}

type UpdateTaskParams struct {
	ID    string
	Title *string
	// An empty Tag clears it.
	Tag  *string
	Date *string
}

type ListTasksParams struct {
	// Query matches a case-insensitive substring of the title.
	Query string
	// Status is one of all, active or completed; empty means all.
	Status string
	// Tag matches the tag case-insensitively.
	Tag  string
	Date string
}

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	User                 models.User
	AccessToken          string
	AccessTokenExpiresAt time.Time
}
