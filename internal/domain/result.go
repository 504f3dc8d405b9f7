package domain

import "time"

// ExecStatus is the outcome of one subject process
type ExecStatus int

const (
	StatusCompleted ExecStatus = iota
	StatusTimedOut
	StatusLaunchFailed
)

func (s ExecStatus) String() string {
	switch s {
	case StatusTimedOut:
		return "timed-out"
	case StatusLaunchFailed:
		return "launch-failed"
	default:
		return "completed"
	}
}

// ExecutionResult represents what one subject run produced
type ExecutionResult struct {
	Stdout   string        // Captured standard output, the basis for comparison
	Stderr   string        // Captured standard error, display only
	Status   ExecStatus    // Completed regardless of exit code
	Duration time.Duration // Wall time of the run
	Err      error         // OS error when the subject could not be started
}

// Verdict is the judgement recorded for a case
type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
	VerdictNone Verdict = "NONE" // transcripts are not judged
)

// Reason explains a FAIL verdict
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonMismatch         Reason = "mismatch"
	ReasonArtifactNotFound Reason = "artifact-not-found"
	ReasonArtifactError    Reason = "artifact-error"
	ReasonTimeout          Reason = "timeout"
)

// CaseResult represents the evaluation of one case
type CaseResult struct {
	Case     TestCase
	Verdict  Verdict
	Reason   Reason
	Message  string      // Human readable failure detail
	Diff     *DiffReport // Set on mismatch
	Output   string      // Raw subject stdout
	Duration time.Duration
}

// Passed reports whether the case passed.
func (r CaseResult) Passed() bool {
	return r.Verdict == VerdictPass
}

// SuiteVerdict accumulates case results in plan order.
type SuiteVerdict struct {
	Suite    string
	Results  []CaseResult
	Passed   int
	Failed   int
	Duration time.Duration
}

// NewSuiteVerdict creates an empty verdict for the named suite.
func NewSuiteVerdict(suite string) *SuiteVerdict {
	return &SuiteVerdict{Suite: suite}
}

// Record appends a case result and updates the counts.
func (v *SuiteVerdict) Record(r CaseResult) {
	v.Results = append(v.Results, r)
	switch r.Verdict {
	case VerdictPass:
		v.Passed++
	case VerdictFail:
		v.Failed++
	}
}

// Total returns the number of cases run.
func (v *SuiteVerdict) Total() int {
	return len(v.Results)
}

// FailedIDs returns the identifiers of failing cases in plan order.
func (v *SuiteVerdict) FailedIDs() []int {
	var ids []int
	for _, r := range v.Results {
		if r.Verdict == VerdictFail {
			ids = append(ids, r.Case.ID)
		}
	}
	return ids
}

// OK reports whether no case failed.
func (v *SuiteVerdict) OK() bool {
	return v.Failed == 0
}
