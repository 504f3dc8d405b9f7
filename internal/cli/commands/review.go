package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"goldrun/internal/config"
	gferrors "goldrun/internal/errors"
	"goldrun/internal/report"
	"goldrun/internal/storage"
	"goldrun/internal/ui"
)

// ReviewCommand handles the review command
type ReviewCommand struct {
	config *config.Config
	out    io.Writer
}

// NewReviewCommand creates a new ReviewCommand
func NewReviewCommand(cfg *config.Config, out io.Writer) *ReviewCommand {
	return &ReviewCommand{
		config: cfg,
		out:    out,
	}
}

// Execute runs the command
func (rc *ReviewCommand) Execute(cmd *cobra.Command, args []string) error {
	st := storage.NewJSONStorage(rc.config)
	results, err := st.Load()
	if err != nil {
		return gferrors.Wrap(err, "no stored results; run a suite first")
	}
	if !report.IsTerminal(rc.out) {
		return fmt.Errorf("review needs an interactive terminal")
	}

	var viewer ui.Viewer = ui.NewReviewBrowser(st)
	return viewer.View(results)
}
