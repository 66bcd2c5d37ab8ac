// Package async runs queued report tasks on a bounded worker pool.
package async

import (
	"context"
	"errors"
	"sync"
	"time"

	"log/slog"
)

// ErrQueueClosed is returned by Enqueue once shutdown has begun.
var ErrQueueClosed = errors.New("queue is shut down")

// Job is one queued pipeline run.
type Job struct {
	TaskID string
}

// Runner executes one task end to end. The pipeline orchestrator satisfies
// this.
type Runner interface {
	Run(ctx context.Context, taskID string) error
}

type TaskQueue struct {
	runner  Runner
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*TaskQueue)

func WithWorkers(n int) Option {
	return func(q *TaskQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *TaskQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithTaskTimeout(d time.Duration) Option {
	return func(q *TaskQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewTaskQueue(runner Runner, logger *slog.Logger, opts ...Option) *TaskQueue {
	q := &TaskQueue{
		runner:  runner,
		logger:  logger,
		workers: 4,
		timeout: 15 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *TaskQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					err := q.runner.Run(ctx, job.TaskID)
					cancel()

					if err != nil {
						q.logger.Error("task failed", "worker_id", workerID, "task_id", job.TaskID, "error", err)
					} else {
						q.logger.Info("task completed", "worker_id", workerID, "task_id", job.TaskID)
					}
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *TaskQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "task_id", job.TaskID)
		return ErrQueueClosed
	}
	select {
	case q.ch <- job:
		q.logger.Info("queued task", "task_id", job.TaskID)
	default:
		q.logger.Warn("queue full, applying backpressure", "task_id", job.TaskID)
		q.ch <- job
	}
	return nil
}

func (q *TaskQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
