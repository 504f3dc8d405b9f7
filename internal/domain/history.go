package domain

import "time"

// HistoryRecord is one case verdict stored in the run history database
type HistoryRecord struct {
	RunID    string
	Suite    string
	CaseID   int
	Verdict  Verdict
	Reason   Reason
	Changes  int
	Duration time.Duration
	RunAt    time.Time
}
