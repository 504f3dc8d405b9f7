package suite

import (
	"context"

	"goldrun/internal/domain"
	"goldrun/internal/execution"
)

// CaseReporter is notified of each case result in plan order
type CaseReporter interface {
	ReportCase(suite string, result domain.CaseResult)
}

// Runner executes a case plan through one evaluator
type Runner struct {
	evaluator Evaluator
	pool      *execution.WorkerPool
	reporter  CaseReporter
}

// NewRunner creates a new suite runner. reporter may be nil.
func NewRunner(evaluator Evaluator, pool *execution.WorkerPool, reporter CaseReporter) *Runner {
	if pool == nil {
		pool = execution.NewWorkerPool(1)
	}
	return &Runner{
		evaluator: evaluator,
		pool:      pool,
		reporter:  reporter,
	}
}

// Name returns the evaluator's suite name.
func (r *Runner) Name() string {
	return r.evaluator.Name()
}

// Run evaluates every id in plan and returns the aggregated verdict. On a
// subject launch failure the verdict holds the cases completed before it
// and the error is returned.
func (r *Runner) Run(ctx context.Context, plan []int) (*domain.SuiteVerdict, error) {
	name := r.evaluator.Name()
	verdict := domain.NewSuiteVerdict(name)

	task := func(ctx context.Context, index int) (domain.CaseResult, error) {
		return r.evaluator.Evaluate(ctx, plan[index])
	}
	emit := func(result domain.CaseResult) {
		verdict.Record(result)
		if r.reporter != nil {
			r.reporter.ReportCase(name, result)
		}
	}

	duration, err := r.pool.Execute(ctx, len(plan), task, emit)
	verdict.Duration = duration
	return verdict, err
}
