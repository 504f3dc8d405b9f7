package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"goldrun/internal/domain"
	"goldrun/internal/golden"
)

// CaseMarks carries what is known about each case from earlier runs
type CaseMarks struct {
	Failed  map[int][]string                  // suites the case failed in the last stored run
	History map[string]map[int]domain.Verdict // last verdict per suite from the history database
}

// FailedFromResults collects the failing case ids of stored results.
func FailedFromResults(results *domain.ResultsOutput) map[int][]string {
	failed := make(map[int][]string)
	if results == nil {
		return failed
	}
	for _, f := range results.Failures() {
		failed[f.CaseID] = append(failed[f.CaseID], f.Suite)
	}
	return failed
}

// Formatter formats the case listing
type Formatter struct {
	store *golden.Store
	out   io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(store *golden.Store, out io.Writer) *Formatter {
	return &Formatter{store: store, out: out}
}

// PrintCaseList prints the plan as a tree with the artifacts present for each case.
// Cases that failed in the last run are marked with [F].
func (f *Formatter) PrintCaseList(plan []int, marks CaseMarks) {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	green.Fprintf(f.out, "Found %d case(s) in plan %s:\n\n", len(plan), golden.FormatPlan(plan))

	for i, id := range plan {
		branch, stem := "├── ", "│   └── "
		if i == len(plan)-1 {
			branch, stem = "└── ", "    └── "
		}

		line := cyan.Sprintf("%02d", id)
		if tc, err := f.store.Resolve(id, domain.KindSource, true); err == nil && tc.Title != "" {
			line += " " + yellow.Sprint(tc.Title)
		}
		if suites, ok := marks.Failed[id]; ok {
			line += " " + red.Sprintf("[F %s]", strings.Join(suites, ","))
		}
		fmt.Fprintf(f.out, "%s%s\n", branch, line)
		fmt.Fprintf(f.out, "%s%s\n", stem, f.artifacts(id, marks.History))
	}
}

func (f *Formatter) artifacts(id int, history map[string]map[int]domain.Verdict) string {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	kinds := []struct {
		label string
		kind  domain.CaseKind
		suite string
	}{
		{"source", domain.KindSource, ""},
		{"lexer", domain.KindLexer, "lexer"},
		{"parser", domain.KindParser, "parser"},
	}

	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		part := k.label + " "
		if f.store.Exists(id, k.kind) {
			part += green.Sprint("✓")
		} else {
			part += red.Sprint("missing")
		}
		if v, ok := history[k.suite][id]; ok && k.suite != "" {
			part += fmt.Sprintf(" (last %s)", v)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " | ")
}
