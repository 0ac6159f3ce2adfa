package models

type DailyReport struct {
	Date       string         `json:"date"`
	Total      int            `json:"total"`
	Todo       int            `json:"todo"`
	InProgress int            `json:"inProgress"`
	Completed  int            `json:"completed"`
	ByTag      map[string]int `json:"byTag"`
}
