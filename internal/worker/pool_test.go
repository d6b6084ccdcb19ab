package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolProcessesJobs(t *testing.T) {
	pool := NewPool(1, 8)
	pool.Start()
	defer pool.Stop()

	var count atomic.Int64
	for i := 0; i < 5; i++ {
		pool.Enqueue(JobFunc(func(ctx context.Context) error {
			count.Add(1)
			return nil
		}))
	}

	assert.Eventually(t, func() bool { return count.Load() == 5 },
		time.Second, time.Millisecond)
}

func TestPoolSurvivesJobErrors(t *testing.T) {
	pool := NewPool(1, 8)
	pool.Start()
	defer pool.Stop()

	var ran atomic.Bool
	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		return errors.New("boom")
	}))
	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		ran.Store(true)
		return nil
	}))

	assert.Eventually(t, func() bool { return ran.Load() },
		time.Second, time.Millisecond)
}

func TestTryEnqueueDropsWhenFull(t *testing.T) {
	pool := NewPool(1, 1)
	// Not started: the queue fills and stays full.
	accepted := pool.TryEnqueue(JobFunc(func(ctx context.Context) error { return nil }))
	assert.True(t, accepted)
	accepted = pool.TryEnqueue(JobFunc(func(ctx context.Context) error { return nil }))
	assert.False(t, accepted)
}

func TestSingleWorkerSerializes(t *testing.T) {
	pool := NewPool(1, 8)
	pool.Start()
	defer pool.Stop()

	var concurrent, max atomic.Int64
	for i := 0; i < 4; i++ {
		pool.Enqueue(JobFunc(func(ctx context.Context) error {
			cur := concurrent.Add(1)
			if cur > max.Load() {
				max.Store(cur)
			}
			time.Sleep(5 * time.Millisecond)
			concurrent.Add(-1)
			return nil
		}))
	}

	assert.Eventually(t, func() bool { return concurrent.Load() == 0 && max.Load() > 0 },
		time.Second, time.Millisecond)
	assert.Equal(t, int64(1), max.Load(), "jobs never overlap on one worker")
}
