package execution

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldrun/internal/domain"
)

type countingProgress struct {
	mu             sync.Mutex
	passed, failed int
	finished       bool
}

func (p *countingProgress) Update(passed, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.passed, p.failed = passed, failed
}

func (p *countingProgress) Finish() { p.finished = true }

func resultFor(index int) domain.CaseResult {
	v := domain.VerdictPass
	if index%3 == 0 {
		v = domain.VerdictFail
	}
	return domain.CaseResult{Case: domain.TestCase{ID: index}, Verdict: v}
}

func TestWorkerPool_EmitsInOrder(t *testing.T) {
	for _, workers := range []int{1, 4} {
		pool := NewWorkerPool(workers)
		progress := &countingProgress{}
		pool.SetProgress(progress)

		var got []int
		_, err := pool.Execute(context.Background(), 12, func(ctx context.Context, i int) (domain.CaseResult, error) {
			time.Sleep(time.Duration(12-i) * time.Millisecond)
			return resultFor(i), nil
		}, func(r domain.CaseResult) {
			got = append(got, r.Case.ID)
		})

		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, got, "workers=%d", workers)
		assert.Equal(t, 8, progress.passed)
		assert.Equal(t, 4, progress.failed)
		assert.True(t, progress.finished)
	}
}

func TestWorkerPool_AbortsOnError(t *testing.T) {
	errLaunch := errors.New("launch failed")
	pool := NewWorkerPool(1)

	var ran, emitted []int
	_, err := pool.Execute(context.Background(), 6, func(ctx context.Context, i int) (domain.CaseResult, error) {
		ran = append(ran, i)
		if i == 2 {
			return domain.CaseResult{}, errLaunch
		}
		return resultFor(i), nil
	}, func(r domain.CaseResult) {
		emitted = append(emitted, r.Case.ID)
	})

	assert.ErrorIs(t, err, errLaunch)
	assert.Equal(t, []int{0, 1}, emitted)
	assert.Equal(t, []int{0, 1, 2}, ran, "no case starts after the failure")
}

func TestWorkerPool_ParallelAbortKeepsPrefix(t *testing.T) {
	errLaunch := errors.New("launch failed")
	pool := NewWorkerPool(3)

	var emitted []int
	_, err := pool.Execute(context.Background(), 9, func(ctx context.Context, i int) (domain.CaseResult, error) {
		if i == 4 {
			return domain.CaseResult{}, errLaunch
		}
		return resultFor(i), nil
	}, func(r domain.CaseResult) {
		emitted = append(emitted, r.Case.ID)
	})

	assert.ErrorIs(t, err, errLaunch)
	require.LessOrEqual(t, len(emitted), 4)
	for i, id := range emitted {
		assert.Equal(t, i, id, "emitted results form a prefix of the plan")
	}
}

func TestWorkerPool_Empty(t *testing.T) {
	d, err := NewWorkerPool(2).Execute(context.Background(), 0, nil, nil)
	assert.NoError(t, err)
	assert.Zero(t, d)
}
