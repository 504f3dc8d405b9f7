package report

import (
	"fmt"
	"strconv"
	"strings"

	"goldrun/internal/domain"
)

const noNewline = `\ No newline at end of file`

// RenderDiff renders a report as plain text, one line per record under unified hunk headers.
// Removed records come from the golden file, added records from the subject's output.
func RenderDiff(report domain.DiffReport) []string {
	var lines []string
	for _, h := range report.Hunks {
		lines = append(lines, fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.ExpectedStart, h.ExpectedCount, h.ActualStart, h.ActualCount))
		for _, rec := range h.Records {
			lines = append(lines, renderRecord(rec, report.Granularity)...)
		}
	}
	return lines
}

func renderRecord(rec domain.DiffRecord, g domain.Granularity) []string {
	prefix := " "
	switch rec.Kind {
	case domain.RecordRemoved:
		prefix = "-"
	case domain.RecordAdded:
		prefix = "+"
	}

	if g == domain.GranularityChar {
		return []string{prefix + strconv.Quote(rec.Text)}
	}
	body, hadNewline := strings.CutSuffix(rec.Text, "\n")
	if !hadNewline {
		return []string{prefix + body, noNewline}
	}
	return []string{prefix + body}
}
