package commands

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"goldrun/internal/config"
	"goldrun/internal/domain"
	"goldrun/internal/golden"
	"goldrun/internal/storage"
	"goldrun/internal/suite"
	"goldrun/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config *config.Config
	out    io.Writer
	errOut io.Writer
	all    bool
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, out, errOut io.Writer) *ListCommand {
	return &ListCommand{
		config: cfg,
		out:    out,
		errOut: errOut,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	var marks ui.CaseMarks
	// No stored results yet is fine; nothing gets marked
	if results, err := storage.NewJSONStorage(lc.config).Load(); err == nil {
		marks.Failed = ui.FailedFromResults(results)
	}
	marks.History = lc.lastVerdicts(cmd.Context())

	store := golden.NewStore(lc.config)
	plan := lc.config.CasePlan
	if lc.all {
		available, err := store.Available(domain.KindSource)
		if err != nil {
			return err
		}
		plan = store.FilterByTitle(available, lc.config.Flags.Filter)
	}
	if len(plan) == 0 {
		color.New(color.FgYellow).Fprintln(lc.out, "No cases found")
		return nil
	}

	ui.NewFormatter(store, lc.out).PrintCaseList(plan, marks)
	return nil
}

func (lc *ListCommand) lastVerdicts(ctx context.Context) map[string]map[int]domain.Verdict {
	if !lc.config.History.Enabled() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	warn := color.New(color.FgYellow)

	history, err := storage.OpenHistory(ctx, lc.config.History)
	if err != nil {
		warn.Fprintf(lc.errOut, "history unavailable: %v\n", err)
		return nil
	}
	defer history.Close()

	verdicts := make(map[string]map[int]domain.Verdict)
	for _, name := range []string{suite.NameLexer, suite.NameParser} {
		last, err := history.LastVerdicts(ctx, name)
		if err != nil {
			warn.Fprintf(lc.errOut, "history unavailable: %v\n", err)
			return nil
		}
		verdicts[name] = last
	}
	return verdicts
}
