// Package suite drives a case plan through an evaluator and aggregates the verdict.
package suite

import (
	"context"
	"time"

	"goldrun/internal/compare"
	"goldrun/internal/config"
	"goldrun/internal/domain"
	gferrors "goldrun/internal/errors"
	"goldrun/internal/execution"
	"goldrun/internal/golden"
)

// Suite names.
const (
	NameLexer   = "lexer"
	NameParser  = "parser"
	NameInspect = "inspect"
)

// Evaluator turns one case identifier into a result. Only a subject launch
// failure or cancellation is returned as an error; every other problem is a FAIL result.
type Evaluator interface {
	Name() string
	Evaluate(ctx context.Context, id int) (domain.CaseResult, error)
}

// ComparisonEvaluator judges subject output against a golden file
type ComparisonEvaluator struct {
	name        string
	kind        domain.CaseKind
	mode        string
	granularity domain.Granularity
	passInput   bool
	subject     string
	store       *golden.Store
	executor    execution.Executor
	comparator  *compare.Comparator
	timeout     time.Duration
}

// NewComparisonEvaluator creates the lexer (KindLexer) or parser (KindParser) comparison suite
func NewComparisonEvaluator(cfg *config.Config, kind domain.CaseKind, store *golden.Store, executor execution.Executor, comparator *compare.Comparator) *ComparisonEvaluator {
	name := NameParser
	if kind == domain.KindLexer {
		name = NameLexer
	}
	return &ComparisonEvaluator{
		name:        name,
		kind:        kind,
		mode:        cfg.GetModeFlag(kind),
		granularity: cfg.GetGranularity(kind),
		passInput:   cfg.PassInputPath,
		subject:     cfg.SubjectPath,
		store:       store,
		executor:    executor,
		comparator:  comparator,
		timeout:     cfg.Timeout,
	}
}

// Name returns the suite name.
func (e *ComparisonEvaluator) Name() string {
	return e.name
}

// Evaluate resolves, runs and compares one case.
func (e *ComparisonEvaluator) Evaluate(ctx context.Context, id int) (domain.CaseResult, error) {
	tc, err := e.store.Resolve(id, e.kind, e.kind == domain.KindParser)
	if err != nil {
		return artifactFailure(tc, err), nil
	}
	expected, err := e.store.Load(id, e.kind)
	if err != nil {
		return artifactFailure(tc, err), nil
	}

	req := execution.Request{Mode: e.mode}
	if e.passInput {
		req.InputPath = tc.InputPath
	}
	res := e.executor.Run(ctx, req)

	result := domain.CaseResult{Case: tc, Output: res.Stdout, Duration: res.Duration}
	switch res.Status {
	case domain.StatusLaunchFailed:
		return result, gferrors.SubjectLaunchFailure(e.subject, res.Err)
	case domain.StatusTimedOut:
		result.Verdict = domain.VerdictFail
		result.Reason = domain.ReasonTimeout
		result.Message = gferrors.SubjectTimeout(id, e.timeout).Message
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	report := e.comparator.Compare(expected, res.Stdout, e.granularity)
	result.Verdict = compare.Classify(report)
	if result.Verdict == domain.VerdictFail {
		result.Reason = domain.ReasonMismatch
		result.Message = gferrors.Mismatch(id, report.Changes()).Message
		result.Diff = &report
	}
	return result, nil
}

// TranscriptEvaluator runs the parser on each case and records its raw output without judging it
type TranscriptEvaluator struct {
	mode     string
	subject  string
	timeout  time.Duration
	store    *golden.Store
	executor execution.Executor
}

// NewTranscriptEvaluator creates the manual-inspection suite
func NewTranscriptEvaluator(cfg *config.Config, store *golden.Store, executor execution.Executor) *TranscriptEvaluator {
	return &TranscriptEvaluator{
		mode:     cfg.ParserFlag,
		subject:  cfg.SubjectPath,
		timeout:  cfg.Timeout,
		store:    store,
		executor: executor,
	}
}

// Name returns the suite name.
func (e *TranscriptEvaluator) Name() string {
	return NameInspect
}

// Evaluate runs the parser on the case's source file and keeps the transcript.
func (e *TranscriptEvaluator) Evaluate(ctx context.Context, id int) (domain.CaseResult, error) {
	tc, err := e.store.Resolve(id, domain.KindSource, true)
	if err != nil {
		r := artifactFailure(tc, err)
		r.Verdict = domain.VerdictNone
		return r, nil
	}

	res := e.executor.Run(ctx, execution.Request{Mode: e.mode, InputPath: tc.InputPath})
	result := domain.CaseResult{
		Case:     tc,
		Verdict:  domain.VerdictNone,
		Output:   res.Stdout,
		Duration: res.Duration,
	}
	switch res.Status {
	case domain.StatusLaunchFailed:
		return result, gferrors.SubjectLaunchFailure(e.subject, res.Err)
	case domain.StatusTimedOut:
		result.Reason = domain.ReasonTimeout
		result.Message = gferrors.SubjectTimeout(id, e.timeout).Message
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func artifactFailure(tc domain.TestCase, err error) domain.CaseResult {
	r := domain.CaseResult{
		Case:    tc,
		Verdict: domain.VerdictFail,
		Reason:  domain.ReasonArtifactError,
		Message: err.Error(),
	}
	if he, ok := gferrors.As(err); ok && he.Kind == gferrors.KindArtifactNotFound {
		r.Reason = domain.ReasonArtifactNotFound
		r.Message = he.Message
	}
	return r
}
