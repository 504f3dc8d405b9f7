package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"goldrun/internal/domain"
)

const boxWidth = 63

// Summary prints the suite's statistics table and its final totals line.
func (r *Reporter) Summary(v *domain.SuiteVerdict, jobs int) {
	title := r.Title(v.Suite) + " Suite Summary"
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.out)
	r.colors.header.Fprintln(r.out, "╔"+strings.Repeat("═", boxWidth)+"╗")
	r.colors.header.Fprintln(r.out, "║"+center(title, boxWidth)+"║")
	r.colors.header.Fprintln(r.out, "╚"+strings.Repeat("═", boxWidth)+"╝")

	rows := []struct {
		label string
		value string
		paint *color.Color
	}{
		{"Total Cases", fmt.Sprint(v.Total()), r.colors.plain},
		{"Passed", fmt.Sprint(v.Passed), r.colors.pass},
		{"Failed", fmt.Sprint(v.Failed), r.colors.fail},
		{"Duration", fmt.Sprintf("%.2fs", v.Duration.Seconds()), r.colors.plain},
		{"Jobs", fmt.Sprint(jobs), r.colors.plain},
	}
	fmt.Fprintln(r.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(r.out, "│ %-31s │ %s │\n", row.label, row.paint.Sprintf("%-27s", row.value))
		if i < len(rows)-1 {
			fmt.Fprintln(r.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(r.out, "└─────────────────────────────────┴─────────────────────────────┘")
	fmt.Fprintln(r.out)

	if v.Passed+v.Failed == 0 && v.Total() > 0 {
		r.colors.header.Fprintf(r.out, "%d case(s) inspected\n", v.Total())
		return
	}
	if v.OK() {
		r.colors.pass.Fprintf(r.out, "✓ %s\n", Totals(v))
		return
	}
	r.colors.fail.Fprintf(r.out, "✗ %s\n", Totals(v))
	r.colors.fail.Fprintf(r.out, "failing cases: %s\n", joinIDs(v.FailedIDs()))
}

// Totals returns the "N passed, M failed" line for a verdict.
func Totals(v *domain.SuiteVerdict) string {
	return fmt.Sprintf("%d passed, %d failed", v.Passed, v.Failed)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%02d", id)
	}
	return strings.Join(parts, ", ")
}

func center(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-n-left)
}
