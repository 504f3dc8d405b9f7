package domain

// CaseFailure is the stored form of a failing case, read back by the review browser
type CaseFailure struct {
	Suite     string      `json:"suite"`
	CaseID    int         `json:"case_id"`
	Title     string      `json:"title,omitempty"`
	InputPath string      `json:"input_path"`
	Expected  string      `json:"expected_path,omitempty"`
	Reason    Reason      `json:"reason"`
	Message   string      `json:"message"`
	Diff      *DiffReport `json:"diff,omitempty"`
	Rendered  string      `json:"rendered_diff,omitempty"`
	Output    string      `json:"output,omitempty"`
	Reviewed  bool        `json:"reviewed,omitempty"` // Marked in the review browser
}

// SuiteMeta contains metadata about one suite run
type SuiteMeta struct {
	RunID           string  `json:"run_id"`
	Suite           string  `json:"suite"`
	Total           int     `json:"total"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	FailedIDs       []int   `json:"failed_ids"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Jobs            int     `json:"jobs"`
	Timestamp       string  `json:"timestamp"`
}

// SuiteOutput is one suite's section of the stored results
type SuiteOutput struct {
	Meta    SuiteMeta     `json:"meta"`
	Details []CaseFailure `json:"details"`
}

// ResultsOutput is the complete structure written after a run
type ResultsOutput struct {
	Suites []SuiteOutput `json:"suites"`
}

// Failures returns every stored failure across suites.
func (o *ResultsOutput) Failures() []*CaseFailure {
	var all []*CaseFailure
	for i := range o.Suites {
		for j := range o.Suites[i].Details {
			all = append(all, &o.Suites[i].Details[j])
		}
	}
	return all
}
