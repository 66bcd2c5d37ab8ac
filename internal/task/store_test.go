package task

import (
	"errors"
	"sync"
	"testing"

	"github.com/joseph-ayodele/news-alert/internal/common"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	s := NewStore(nil)
	id := s.Create(Inputs{
		Prompt:    "fintech trends in Singapore",
		Recipient: "user@example.com",
		Language:  "English",
		TimeRange: "last 7 days",
		CountHint: "5-10 items",
	})
	return s, id
}

func TestCreateInitialState(t *testing.T) {
	t.Parallel()
	s, id := newTestStore(t)

	v, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.Status != StatusQueued {
		t.Fatalf("want queued, got %s", v.Status)
	}
	if v.Progress != 0 {
		t.Fatalf("want progress 0, got %d", v.Progress)
	}
	if v.Error != nil || v.Artifacts != nil {
		t.Fatalf("new task must have nil error and artifacts: %+v", v)
	}
}

func TestGetUnknownID(t *testing.T) {
	t.Parallel()
	s := NewStore(nil)
	if _, err := s.Get("nope"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSetProgressReflectsImmediately(t *testing.T) {
	t.Parallel()
	s, id := newTestStore(t)
	if err := s.SetRunning(id, 10); err != nil {
		t.Fatalf("SetRunning: %v", err)
	}
	if err := s.SetProgress(id, 50, "x", "y"); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}

	v, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.Progress != 50 {
		t.Fatalf("want progress 50, got %d", v.Progress)
	}
	if v.CurrentStep == nil || *v.CurrentStep != "x" {
		t.Fatalf("want current_step x, got %v", v.CurrentStep)
	}
	if v.StepMessage == nil || *v.StepMessage != "y" {
		t.Fatalf("want step_message y, got %v", v.StepMessage)
	}
	if v.Status != StatusRunning {
		t.Fatalf("status must be unchanged by SetProgress, got %s", v.Status)
	}
}

func TestProgressClampsRegression(t *testing.T) {
	t.Parallel()
	s, id := newTestStore(t)
	if err := s.SetRunning(id, 10); err != nil {
		t.Fatalf("SetRunning: %v", err)
	}
	if err := s.SetProgress(id, 40, "searching", ""); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}
	// A late, smaller update must not pull progress backwards.
	if err := s.SetProgress(id, 25, "searching", ""); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}
	v, _ := s.Get(id)
	if v.Progress != 40 {
		t.Fatalf("progress regressed: got %d, want 40", v.Progress)
	}
}

func TestTerminalImmutability(t *testing.T) {
	t.Parallel()
	s, id := newTestStore(t)
	if err := s.SetRunning(id, 10); err != nil {
		t.Fatalf("SetRunning: %v", err)
	}
	if err := s.SetFailed(id, "search: boom"); err != nil {
		t.Fatalf("SetFailed: %v", err)
	}

	if err := s.SetProgress(id, 99, "z", "late"); err == nil {
		t.Fatalf("expected progress update on failed task to be rejected")
	}
	if err := s.SetFailed(id, "other"); err == nil {
		t.Fatalf("expected second SetFailed to be rejected")
	}
	if err := s.SetSucceeded(id, Artifacts{}); err == nil {
		t.Fatalf("expected SetSucceeded on failed task to be rejected")
	}

	v, _ := s.Get(id)
	if v.Status != StatusFailed {
		t.Fatalf("terminal status changed: %s", v.Status)
	}
	if v.Error == nil || *v.Error != "search: boom" {
		t.Fatalf("terminal error changed: %v", v.Error)
	}
}

func TestSucceededSetsArtifactsAndFullProgress(t *testing.T) {
	t.Parallel()
	s, id := newTestStore(t)
	if err := s.SetRunning(id, 10); err != nil {
		t.Fatalf("SetRunning: %v", err)
	}
	art := Artifacts{DocumentPath: "/r/a.pdf", SpreadsheetPath: "/r/a.xlsx"}
	if err := s.SetSucceeded(id, art); err != nil {
		t.Fatalf("SetSucceeded: %v", err)
	}
	v, _ := s.Get(id)
	if v.Status != StatusSucceeded || v.Progress != 100 {
		t.Fatalf("want succeeded/100, got %s/%d", v.Status, v.Progress)
	}
	if v.Artifacts == nil || *v.Artifacts != art {
		t.Fatalf("unexpected artifacts: %+v", v.Artifacts)
	}
}

func TestSetRunningRequiresQueued(t *testing.T) {
	t.Parallel()
	s, id := newTestStore(t)
	if err := s.SetRunning(id, 10); err != nil {
		t.Fatalf("SetRunning: %v", err)
	}
	if err := s.SetRunning(id, 10); err == nil {
		t.Fatalf("expected second SetRunning to be rejected")
	}
}

func TestConcurrentProgressStaysMonotone(t *testing.T) {
	t.Parallel()
	s, id := newTestStore(t)
	if err := s.SetRunning(id, 10); err != nil {
		t.Fatalf("SetRunning: %v", err)
	}

	var wg sync.WaitGroup
	for p := 10; p <= 95; p += 5 {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			_ = s.SetProgress(id, p, "step", "msg")
		}(p)
	}

	// Reads during the storm never observe a partial update.
	for i := 0; i < 50; i++ {
		v, err := s.Get(id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if v.Progress < 10 || v.Progress > 95 {
			t.Fatalf("progress out of range: %d", v.Progress)
		}
	}
	wg.Wait()

	v, _ := s.Get(id)
	if v.Progress != 95 {
		t.Fatalf("want final progress 95, got %d", v.Progress)
	}
}
