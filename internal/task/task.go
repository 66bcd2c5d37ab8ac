package task

import "time"

// Status represents the lifecycle state of a task.
// Valid transitions: queued -> running -> succeeded | failed.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Inputs are the caller-supplied parameters of a report request.
type Inputs struct {
	Prompt    string
	Recipient string
	Language  string
	TimeRange string
	CountHint string
}

// Artifacts are the file paths produced by a successful run.
type Artifacts struct {
	DocumentPath    string `json:"document_path"`
	SpreadsheetPath string `json:"spreadsheet_path"`
}

// Task is the full record owned by the Store. Mutate it only through
// Store operations.
type Task struct {
	ID          string
	Status      Status
	Progress    int
	CurrentStep string
	StepMessage string
	Error       string
	Artifacts   *Artifacts
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Inputs      Inputs
}

// View is the externally visible projection of a task, as returned by
// the status query. Input fields are not exposed.
type View struct {
	TaskID      string     `json:"task_id"`
	Status      Status     `json:"status"`
	Progress    int        `json:"progress"`
	Error       *string    `json:"error"`
	Artifacts   *Artifacts `json:"artifacts"`
	CurrentStep *string    `json:"current_step"`
	StepMessage *string    `json:"step_message"`
}
