// Package errors provides the harness error kinds and process exit codes.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"
)

// Exit codes returned by the goldrun binary.
const (
	ExitSuccess       = 0   // every case passed
	ExitTestsFailed   = 1   // at least one case failed
	ExitConfigError   = 2   // invalid configuration or case plan
	ExitLaunchFailure = 3   // the subject executable could not be started
	ExitInterrupted   = 130 // the run was cancelled by a signal
)

// Kind classifies a harness error.
type Kind int

const (
	KindRuntime Kind = iota
	KindConfig
	KindArtifactNotFound
	KindSubjectTimeout
	KindSubjectLaunchFailure
	KindMismatch
	KindTestsFailed
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindArtifactNotFound:
		return "artifact-not-found"
	case KindSubjectTimeout:
		return "subject-timeout"
	case KindSubjectLaunchFailure:
		return "subject-launch-failure"
	case KindMismatch:
		return "mismatch"
	case KindTestsFailed:
		return "tests-failed"
	default:
		return "runtime"
	}
}

// HarnessError is the error type shared by every goldrun package.
type HarnessError struct {
	Kind    Kind
	Message string
	CaseID  int    // -1 when the error is not tied to a case
	Path    string // artifact or executable path if applicable
	Cause   error
}

func (e *HarnessError) Error() string {
	msg := e.Message
	if e.CaseID >= 0 {
		msg = fmt.Sprintf("case %02d: %s", e.CaseID, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *HarnessError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error.
func (e *HarnessError) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return ExitConfigError
	case KindSubjectLaunchFailure:
		return ExitLaunchFailure
	default:
		return ExitTestsFailed
	}
}

// Config creates a configuration error.
func Config(message string) *HarnessError {
	return &HarnessError{Kind: KindConfig, Message: message, CaseID: -1}
}

// Configf creates a configuration error with formatting.
func Configf(format string, args ...interface{}) *HarnessError {
	return Config(fmt.Sprintf(format, args...))
}

// WrapConfig wraps err as a configuration error.
func WrapConfig(err error, message string) *HarnessError {
	return &HarnessError{Kind: KindConfig, Message: message, CaseID: -1, Cause: err}
}

// ArtifactNotFound reports a missing golden or input file.
func ArtifactNotFound(caseID int, path string) *HarnessError {
	return &HarnessError{
		Kind:    KindArtifactNotFound,
		Message: fmt.Sprintf("missing artifact: %s", path),
		CaseID:  caseID,
		Path:    path,
	}
}

// SubjectTimeout reports a subject process that was killed after timeout.
func SubjectTimeout(caseID int, timeout time.Duration) *HarnessError {
	return &HarnessError{
		Kind:    KindSubjectTimeout,
		Message: fmt.Sprintf("subject timed out after %s", timeout),
		CaseID:  caseID,
	}
}

// SubjectLaunchFailure reports an executable that could not be started.
func SubjectLaunchFailure(path string, cause error) *HarnessError {
	return &HarnessError{
		Kind:    KindSubjectLaunchFailure,
		Message: fmt.Sprintf("cannot launch subject %s", path),
		CaseID:  -1,
		Path:    path,
		Cause:   cause,
	}
}

// Mismatch reports a case whose output differs from its golden file.
func Mismatch(caseID int, changes int) *HarnessError {
	return &HarnessError{
		Kind:    KindMismatch,
		Message: fmt.Sprintf("output differs from golden file (%d change(s))", changes),
		CaseID:  caseID,
	}
}

// TestsFailed is returned by a suite command when at least one case failed.
func TestsFailed(failed, total int) *HarnessError {
	return &HarnessError{
		Kind:    KindTestsFailed,
		Message: fmt.Sprintf("%d of %d case(s) failed", failed, total),
		CaseID:  -1,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *HarnessError {
	return &HarnessError{Kind: KindRuntime, Message: message, CaseID: -1, Cause: err}
}

// KindOf returns the kind of the first HarnessError in err's chain.
func KindOf(err error) (Kind, bool) {
	var he *HarnessError
	if stderrors.As(err, &he) {
		return he.Kind, true
	}
	return KindRuntime, false
}

// As returns the first HarnessError in err's chain.
func As(err error) (*HarnessError, bool) {
	var he *HarnessError
	if stderrors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// Is reports whether err carries a HarnessError of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	var he *HarnessError
	if stderrors.As(err, &he) {
		return he.ExitCode()
	}
	return ExitTestsFailed
}
