package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type recordingRunner struct {
	mu  sync.Mutex
	ran []string
}

func (r *recordingRunner) Run(_ context.Context, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ran = append(r.ran, taskID)
	return nil
}

func (r *recordingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ran)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestQueueRunsEnqueuedTasks(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	q := NewTaskQueue(runner, discardLogger(), WithWorkers(2), WithQueueSize(8))

	for i := 0; i < 5; i++ {
		if err := q.Enqueue(context.Background(), Job{TaskID: "task"}); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	if got := runner.count(); got != 5 {
		t.Fatalf("ran %d tasks, want 5", got)
	}
}

func TestEnqueueAfterShutdownReturnsError(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	q := NewTaskQueue(runner, discardLogger(), WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	if err := q.Enqueue(context.Background(), Job{TaskID: "late"}); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Enqueue after shutdown = %v, want ErrQueueClosed", err)
	}
	if got := runner.count(); got != 0 {
		t.Fatalf("ran %d tasks after shutdown, want 0", got)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(&recordingRunner{}, discardLogger(), WithWorkers(1))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)
	q.Shutdown(ctx)
}
