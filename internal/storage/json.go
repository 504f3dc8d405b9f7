package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goldrun/internal/domain"
	"goldrun/internal/report"
)

// Save writes the suites' results to the configured JSON output file.
// Sections of suites not run this time are kept from the previous file.
func (s *JSONStorage) Save(runID string, verdicts []*domain.SuiteVerdict, jobs int) error {
	output := &domain.ResultsOutput{}
	if previous, err := s.Load(); err == nil {
		output = previous
	}

	now := time.Now()
	for _, v := range verdicts {
		output = MergeSuite(output, BuildSuiteOutput(runID, v, jobs, now))
	}
	return s.SaveOutput(output)
}

// Load reads the last results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.ResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.ResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.ResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// BuildSuiteOutput converts a finished suite into its stored section.
func BuildSuiteOutput(runID string, v *domain.SuiteVerdict, jobs int, at time.Time) domain.SuiteOutput {
	out := domain.SuiteOutput{
		Meta: domain.SuiteMeta{
			RunID:           runID,
			Suite:           v.Suite,
			Total:           v.Total(),
			Passed:          v.Passed,
			Failed:          v.Failed,
			FailedIDs:       v.FailedIDs(),
			Duration:        v.Duration.String(),
			DurationSeconds: v.Duration.Seconds(),
			Jobs:            jobs,
			Timestamp:       at.Format(time.RFC3339),
		},
		Details: []domain.CaseFailure{},
	}
	if out.Meta.FailedIDs == nil {
		out.Meta.FailedIDs = []int{}
	}

	for _, r := range v.Results {
		if r.Verdict != domain.VerdictFail {
			continue
		}
		f := domain.CaseFailure{
			Suite:     v.Suite,
			CaseID:    r.Case.ID,
			Title:     r.Case.Title,
			InputPath: r.Case.InputPath,
			Expected:  r.Case.ExpectedPath,
			Reason:    r.Reason,
			Message:   r.Message,
			Diff:      r.Diff,
			Output:    r.Output,
		}
		if r.Diff != nil {
			f.Rendered = strings.Join(report.RenderDiff(*r.Diff), "\n")
		}
		out.Details = append(out.Details, f)
	}
	return out
}

// MergeSuite replaces the section of the same suite, or appends it.
func MergeSuite(output *domain.ResultsOutput, section domain.SuiteOutput) *domain.ResultsOutput {
	for i := range output.Suites {
		if output.Suites[i].Meta.Suite == section.Meta.Suite {
			output.Suites[i] = section
			return output
		}
	}
	output.Suites = append(output.Suites, section)
	return output
}
