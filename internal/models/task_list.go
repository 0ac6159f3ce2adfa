package models

// Status filters accepted when listing tasks. Active means not completed.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterCompleted = "completed"
)

// TaskCounts is computed over the whole collection, before filters apply.
type TaskCounts struct {
	All       int `json:"all"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

type TaskList struct {
	Tasks  []Task     `json:"tasks"`
	Counts TaskCounts `json:"counts"`
	// Tags holds every tag in use, sorted.
	Tags []string `json:"tags"`
}
