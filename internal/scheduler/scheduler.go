// Package scheduler owns the game's named recurring tasks: the income
// tick, the shop refresh tick, the drift tick and the autosave tick. Each
// task is independently cancelable and the whole set can be paused and
// resumed, mirroring visibility changes in the host.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cosmogen/cosmogenesis/internal/worker"
)

// Scheduler runs named recurring tasks, enqueueing each firing onto the
// worker pool. Ticks that fire while the pool is busy are dropped rather
// than queued up, so a slow job never causes a burst of catch-up runs.
type Scheduler struct {
	pool  *worker.Pool
	clock clockwork.Clock

	mu     sync.Mutex
	tasks  map[string]*task
	paused bool
}

type task struct {
	name     string
	interval time.Duration
	job      worker.Job
	stop     chan struct{}
	done     chan struct{}
}

// New creates a scheduler dispatching onto pool using clock for tickers.
func New(pool *worker.Pool, clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		pool:  pool,
		clock: clock,
		tasks: map[string]*task{},
	}
}

// Schedule registers and starts a named recurring task. Scheduling a name
// that already exists replaces the previous task.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.tasks[name]; ok {
		stopTask(old)
	}
	t := &task{
		name:     name,
		interval: interval,
		job:      job,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	s.tasks[name] = t
	go s.run(t)
}

func (s *Scheduler) run(t *task) {
	defer close(t.done)
	ticker := s.clock.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			s.mu.Lock()
			paused := s.paused
			s.mu.Unlock()
			if paused {
				continue
			}
			if !s.pool.TryEnqueue(t.job) {
				slog.Debug("tick dropped, worker busy", "task", t.name)
			}
		case <-t.stop:
			return
		}
	}
}

// Cancel stops a single task. Unknown names are a no-op.
func (s *Scheduler) Cancel(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[name]; ok {
		stopTask(t)
		delete(s.tasks, name)
	}
}

// Pause suspends dispatch of every task; tickers keep running so Resume
// picks the cadence back up without rescheduling.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

// Resume re-enables dispatch after a Pause.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
}

// Paused reports whether dispatch is currently suspended.
func (s *Scheduler) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Stop cancels every task and waits for their loops to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	tasks := make([]*task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	s.tasks = map[string]*task{}
	s.mu.Unlock()

	for _, t := range tasks {
		stopTask(t)
	}
}

func stopTask(t *task) {
	close(t.stop)
	<-t.done
}
