// Package report renders case results, inspection transcripts and suite summaries.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"goldrun/internal/domain"
	"goldrun/internal/golden"
)

const transcriptSeparator = "===================="

// Reporter writes human readable suite output
type Reporter struct {
	mu        sync.Mutex
	out       io.Writer
	colors    palette
	caser     cases.Caser
	skipLines int
}

// New creates a Reporter writing to out, with colors when out is a terminal
func New(out io.Writer) *Reporter {
	return NewWithColor(out, IsTerminal(out))
}

// NewWithColor creates a Reporter with colors explicitly on or off
func NewWithColor(out io.Writer, enabled bool) *Reporter {
	return &Reporter{
		out:    out,
		colors: newPalette(enabled),
		caser:  cases.Title(language.English),
	}
}

// SetTranscriptSkip sets how many leading subject output lines inspection transcripts drop.
func (r *Reporter) SetTranscriptSkip(lines int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipLines = max(lines, 0)
}

// Title returns the display name of a suite.
func (r *Reporter) Title(suite string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.caser.String(suite)
}

// SuiteStart prints the suite header.
func (r *Reporter) SuiteStart(suite string, plan []int) {
	title := r.Title(suite)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.colors.header.Fprintf(r.out, "Running %s suite (cases %s)\n", title, golden.FormatPlan(plan))
}

// ReportCase prints one case. Inspection results get a transcript; comparison
// results a status line and, on failure, the reason and diff.
func (r *Reporter) ReportCase(_ string, result domain.CaseResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if result.Verdict == domain.VerdictNone {
		r.writeTranscript(result)
		return
	}

	name := result.Case.Name()
	if result.Passed() {
		r.colors.pass.Fprint(r.out, "PASS")
		fmt.Fprintf(r.out, " %s\n", name)
		return
	}

	r.colors.fail.Fprint(r.out, "FAIL")
	fmt.Fprintf(r.out, " %s: %s\n", name, result.Message)
	if result.Diff == nil {
		return
	}
	for _, line := range RenderDiff(*result.Diff) {
		r.colors.diffLine(line).Fprintf(r.out, "  %s\n", line)
	}
}

func (r *Reporter) writeTranscript(result domain.CaseResult) {
	fmt.Fprintln(r.out, transcriptSeparator)
	r.writeBlock("testcase title", result.Case.Title)
	r.writeBlock("testcase content", result.Case.Source)
	if result.Message != "" {
		r.colors.label.Fprint(r.out, "parse result")
		fmt.Fprintln(r.out, ":")
		r.colors.fail.Fprintln(r.out, result.Message)
		return
	}
	r.writeBlock("parse result", dropLines(result.Output, r.skipLines))
}

func (r *Reporter) writeBlock(label, body string) {
	r.colors.label.Fprint(r.out, label)
	fmt.Fprintln(r.out, ":")
	fmt.Fprint(r.out, body)
	if !strings.HasSuffix(body, "\n") {
		fmt.Fprintln(r.out)
	}
}

// dropLines removes the first n lines of text
func dropLines(text string, n int) string {
	for ; n > 0 && text != ""; n-- {
		_, rest, found := strings.Cut(text, "\n")
		if !found {
			return ""
		}
		text = rest
	}
	return text
}
