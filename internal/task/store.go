package task

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/news-alert/internal/common"
)

// Store holds all tasks in memory, guarded by a single mutex. There is no
// eviction: entries live until process exit, and state is lost on restart.
// Implementations of every mutation enforce the lifecycle invariants:
// status moves only queued -> running -> {succeeded, failed}, terminal
// tasks are immutable, and progress never decreases while running.
type Store struct {
	mu     sync.RWMutex
	tasks  map[string]*Task
	logger *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		tasks:  make(map[string]*Task),
		logger: logger,
	}
}

// Create registers a new queued task and returns its id.
func (s *Store) Create(in Inputs) string {
	id := uuid.New().String()
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[id] = &Task{
		ID:        id,
		Status:    StatusQueued,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
		Inputs:    in,
	}
	s.logger.Info("task.created", "task_id", id, "recipient", in.Recipient)
	return id
}

// Get returns the externally visible projection of a task.
func (s *Store) Get(id string) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return View{}, common.ErrNotFound
	}
	return project(t), nil
}

// Details returns a copy of the full task record, inputs included.
// The orchestrator uses this to load stage parameters.
func (s *Store) Details(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, common.ErrNotFound
	}
	return *t, nil
}

// SetRunning transitions a queued task to running with an initial progress.
func (s *Store) SetRunning(id string, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return common.ErrNotFound
	}
	if t.Status != StatusQueued {
		return common.NewAppError("TASK_TRANSITION",
			fmt.Sprintf("cannot start task in status %s", t.Status), common.ErrConflict)
	}
	t.Status = StatusRunning
	t.Progress = clampProgress(t.Progress, progress)
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// SetProgress updates progress and the current step of a running task.
// A regressing progress value is clamped to the current one rather than
// applied; step and message are only overwritten when non-empty.
func (s *Store) SetProgress(id string, progress int, step, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return common.ErrNotFound
	}
	if t.Status.Terminal() {
		return common.NewAppError("TASK_TERMINAL",
			fmt.Sprintf("task %s is already %s", id, t.Status), common.ErrConflict)
	}
	t.Progress = clampProgress(t.Progress, progress)
	if step != "" {
		t.CurrentStep = step
	}
	if message != "" {
		t.StepMessage = message
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// SetSucceeded marks a running task as succeeded with its artifacts and
// forces progress to 100.
func (s *Store) SetSucceeded(id string, artifacts Artifacts) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return common.ErrNotFound
	}
	if t.Status != StatusRunning {
		return common.NewAppError("TASK_TRANSITION",
			fmt.Sprintf("cannot succeed task in status %s", t.Status), common.ErrConflict)
	}
	a := artifacts
	t.Status = StatusSucceeded
	t.Progress = 100
	t.Artifacts = &a
	t.UpdatedAt = time.Now().UTC()
	s.logger.Info("task.succeeded", "task_id", id,
		"document", artifacts.DocumentPath, "spreadsheet", artifacts.SpreadsheetPath)
	return nil
}

// SetFailed marks a task as failed with a human-readable message.
// Progress is left where it was.
func (s *Store) SetFailed(id string, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return common.ErrNotFound
	}
	if t.Status.Terminal() {
		return common.NewAppError("TASK_TERMINAL",
			fmt.Sprintf("task %s is already %s", id, t.Status), common.ErrConflict)
	}
	t.Status = StatusFailed
	t.Error = errMsg
	t.UpdatedAt = time.Now().UTC()
	s.logger.Warn("task.failed", "task_id", id, "error", errMsg)
	return nil
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func clampProgress(current, next int) int {
	if next < current {
		return current
	}
	if next > 100 {
		return 100
	}
	return next
}

func project(t *Task) View {
	v := View{
		TaskID:    t.ID,
		Status:    t.Status,
		Progress:  t.Progress,
		Artifacts: t.Artifacts,
	}
	if t.Error != "" {
		e := t.Error
		v.Error = &e
	}
	if t.CurrentStep != "" {
		s := t.CurrentStep
		v.CurrentStep = &s
	}
	if t.StepMessage != "" {
		m := t.StepMessage
		v.StepMessage = &m
	}
	return v
}
