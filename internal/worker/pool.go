// Package worker runs queued jobs on a fixed set of workers. The game runs
// a single worker so timer callbacks never interleave, matching the
// sequential ownership model of the state stores.
package worker

import (
	"context"
	"sync"

	"github.com/cosmogen/cosmogenesis/internal/logger"
)

// Job is a unit of work executed by a worker.
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a plain function to the Job interface.
type JobFunc func(ctx context.Context) error

// Process runs the wrapped function.
func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// Pool executes enqueued jobs. With one worker, execution order follows
// enqueue order and jobs never run concurrently.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
}

// NewPool creates a pool with the given worker count and queue depth.
func NewPool(workers, queueSize int) *Pool {
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
			if err := job.Process(ctx); err != nil {
				logger.FromContext(ctx).Error("job failed", "error", err)
			}
		case <-p.quit:
			return
		}
	}
}

// Enqueue queues a job, blocking while the queue is full.
func (p *Pool) Enqueue(job Job) {
	p.jobQueue <- job
}

// TryEnqueue queues a job without blocking. It reports whether the job was
// accepted; a full queue drops the job, which is fine for recurring ticks
// since the next tick carries the same work.
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// Stop signals the workers and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}
