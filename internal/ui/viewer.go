package ui

import "goldrun/internal/domain"

// Viewer displays stored results in an interactive TUI
type Viewer interface {
	View(results *domain.ResultsOutput) error
}
