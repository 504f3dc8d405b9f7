package execution

import (
	"context"
	"errors"
	"sync"
	"time"

	"goldrun/internal/domain"
)

// Task evaluates the plan entry at index. A non-nil error aborts the whole pool.
type Task func(ctx context.Context, index int) (domain.CaseResult, error)

// Progress receives running pass/fail counts
type Progress interface {
	Update(passed, failed int)
	Finish()
}

// WorkerPool runs plan entries on a bounded number of workers
type WorkerPool struct {
	workers  int
	progress Progress
}

// NewWorkerPool creates a new WorkerPool. One worker runs cases strictly in order.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{workers: workers}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Workers returns the pool size.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

type taskResult struct {
	index  int
	result domain.CaseResult
	err    error
}

// Execute runs count tasks and hands each result to emit in index order.
// The first failing task stops the pool; its error is returned and results
// from the failing index on are dropped.
func (wp *WorkerPool) Execute(parent context.Context, count int, task Task, emit func(domain.CaseResult)) (time.Duration, error) {
	startTime := time.Now()
	if count == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	testQueue := make(chan int)
	results := make(chan taskResult, count)

	go func() {
		defer close(testQueue)
		for i := 0; i < count; i++ {
			select {
			case <-ctx.Done():
				return
			case testQueue <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < wp.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range testQueue {
				if ctx.Err() != nil {
					continue
				}
				res, err := task(ctx, index)
				results <- taskResult{index: index, result: res, err: err}
				if err != nil {
					cancel()
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		firstErr       error
		abortAt        = count
		next           int
		passed, failed int
		pending        = make(map[int]domain.CaseResult)
	)
	flush := func() {
		for next < abortAt {
			r, ok := pending[next]
			if !ok {
				return
			}
			delete(pending, next)
			emit(r)
			next++
		}
	}

	for tr := range results {
		if tr.err != nil {
			abortAt = min(abortAt, tr.index)
			// cases interrupted by the abort report context.Canceled; keep the cause
			if firstErr == nil || (errors.Is(firstErr, context.Canceled) && !errors.Is(tr.err, context.Canceled)) {
				firstErr = tr.err
			}
			continue
		}
		pending[tr.index] = tr.result
		switch tr.result.Verdict {
		case domain.VerdictPass:
			passed++
		case domain.VerdictFail:
			failed++
		}
		if wp.progress != nil {
			wp.progress.Update(passed, failed)
		}
		flush()
	}
	flush()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	if firstErr == nil && next < count {
		firstErr = parent.Err()
	}
	return time.Since(startTime), firstErr
}
