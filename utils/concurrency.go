package utils

import (
	"context"
	"sync"
)

// WorkerPool runs jobs on a bounded number of goroutines and remembers the
// first error any of them returned.
type WorkerPool struct {
	semaphore chan struct{}
	wg        sync.WaitGroup

	mu       sync.Mutex
	firstErr error
}

// NewWorkerPool creates a WorkerPool running at most maxWorkers jobs at once.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{semaphore: make(chan struct{}, maxWorkers)}
}

// Submit enqueues a job. It blocks while the pool is full; a job submitted
// after ctx is done is not run and records ctx.Err().
func (wp *WorkerPool) Submit(ctx context.Context, job func(ctx context.Context) error) {
	select {
	case wp.semaphore <- struct{}{}:
	case <-ctx.Done():
		wp.record(ctx.Err())
		return
	}

	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		if err := job(ctx); err != nil {
			wp.record(err)
		}
	}()
}

// Wait blocks until all submitted jobs have completed and returns the first error.
func (wp *WorkerPool) Wait() error {
	wp.wg.Wait()
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return wp.firstErr
}

func (wp *WorkerPool) record(err error) {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.firstErr == nil {
		wp.firstErr = err
	}
}
