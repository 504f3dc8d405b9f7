// Package storage persists run results: the JSON summary of the last run and the optional MySQL history.
package storage

import (
	"github.com/google/uuid"

	"goldrun/internal/config"
	"goldrun/internal/domain"
)

// Storage persists and loads suite results (e.g. for the review browser).
type Storage interface {
	Save(runID string, verdicts []*domain.SuiteVerdict, jobs int) error
	Load() (*domain.ResultsOutput, error)
	// SaveOutput writes the full output (e.g. after marking cases reviewed).
	SaveOutput(output *domain.ResultsOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// NewRunID returns a fresh identifier shared by every suite of one invocation.
func NewRunID() string {
	return uuid.NewString()
}
