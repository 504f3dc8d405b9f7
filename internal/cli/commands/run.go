package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"goldrun/internal/compare"
	"goldrun/internal/config"
	"goldrun/internal/domain"
	gferrors "goldrun/internal/errors"
	"goldrun/internal/execution"
	"goldrun/internal/golden"
	"goldrun/internal/report"
	"goldrun/internal/storage"
	"goldrun/internal/suite"
)

// RunCommand runs one or more suites over the configured plan
type RunCommand struct {
	config *config.Config
	out    io.Writer
	errOut io.Writer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, out, errOut io.Writer) *RunCommand {
	return &RunCommand{
		config: cfg,
		out:    out,
		errOut: errOut,
	}
}

// Suites returns a cobra handler running the named suites in order
func (rc *RunCommand) Suites(names ...string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return rc.Run(cmd.Context(), names...)
	}
}

// Run executes the suites, stores the results and returns TestsFailed when a case failed.
// A subject launch failure aborts the whole run.
func (rc *RunCommand) Run(ctx context.Context, names ...string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := rc.config

	runner := execution.NewRunner(cfg)
	if err := runner.Check(); err != nil {
		return err
	}
	store := golden.NewStore(cfg)
	comparator := compare.NewComparator(cfg.ContextLines)
	reporter := report.New(rc.out)
	reporter.SetTranscriptSkip(cfg.TranscriptSkipLines)

	runID := storage.NewRunID()
	var verdicts []*domain.SuiteVerdict
	for _, name := range names {
		evaluator := rc.evaluator(name, store, runner, comparator)

		pool := execution.NewWorkerPool(cfg.Jobs)
		if name != suite.NameInspect && report.IsTerminal(rc.errOut) {
			pool.SetProgress(report.NewProgressBar(rc.errOut, name, len(cfg.CasePlan)))
		}

		reporter.SuiteStart(name, cfg.CasePlan)
		verdict, err := suite.NewRunner(evaluator, pool, reporter).Run(ctx, cfg.CasePlan)
		if err != nil {
			return err
		}
		reporter.Summary(verdict, cfg.Jobs)
		fmt.Fprintln(rc.out)

		if name != suite.NameInspect {
			verdicts = append(verdicts, verdict)
		}
	}
	if len(verdicts) == 0 {
		return nil
	}

	if err := storage.NewJSONStorage(cfg).Save(runID, verdicts, cfg.Jobs); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	rc.recordHistory(ctx, runID, verdicts)

	var total, failed int
	for _, v := range verdicts {
		total += v.Total()
		failed += v.Failed
	}
	if failed > 0 {
		return gferrors.TestsFailed(failed, total)
	}
	return nil
}

func (rc *RunCommand) evaluator(name string, store *golden.Store, exec execution.Executor, comparator *compare.Comparator) suite.Evaluator {
	switch name {
	case suite.NameLexer:
		return suite.NewComparisonEvaluator(rc.config, domain.KindLexer, store, exec, comparator)
	case suite.NameParser:
		return suite.NewComparisonEvaluator(rc.config, domain.KindParser, store, exec, comparator)
	default:
		return suite.NewTranscriptEvaluator(rc.config, store, exec)
	}
}

// recordHistory stores the verdicts in the history database when one is configured.
// History is best effort; a failure only warns.
func (rc *RunCommand) recordHistory(ctx context.Context, runID string, verdicts []*domain.SuiteVerdict) {
	if !rc.config.History.Enabled() {
		return
	}
	warn := color.New(color.FgYellow)

	history, err := storage.OpenHistory(ctx, rc.config.History)
	if err != nil {
		warn.Fprintf(rc.errOut, "history not recorded: %v\n", err)
		return
	}
	defer history.Close()

	for _, v := range verdicts {
		if err := history.Record(ctx, runID, v, rc.config.Jobs); err != nil {
			warn.Fprintf(rc.errOut, "history not recorded for %s: %v\n", v.Suite, err)
		}
	}
}
