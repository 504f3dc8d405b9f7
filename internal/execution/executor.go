package execution

import (
	"context"

	"goldrun/internal/domain"
)

// Executor runs the subject once for a request
type Executor interface {
	Run(ctx context.Context, req Request) domain.ExecutionResult
}

// Request selects the subject mode and optional input file for one run
type Request struct {
	Mode      string // mode flag, e.g. -l or -p
	InputPath string // appended as the last argument when set
}

// Args returns the subject's command-line arguments.
func (r Request) Args() []string {
	if r.InputPath == "" {
		return []string{r.Mode}
	}
	return []string{r.Mode, r.InputPath}
}
