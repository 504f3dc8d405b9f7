// Package compare diffs a subject's actual output against its golden file.
package compare

import (
	"github.com/pmezard/go-difflib/difflib"

	"goldrun/internal/domain"
)

// Comparator computes context diffs with a fixed amount of surrounding context
type Comparator struct {
	context int
}

// NewComparator creates a Comparator showing context unchanged tokens around each change
func NewComparator(context int) *Comparator {
	if context < 0 {
		context = 0
	}
	return &Comparator{context: context}
}

// Compare returns the edits that turn expected into actual. Identical inputs give an empty report.
func (c *Comparator) Compare(expected, actual string, g domain.Granularity) domain.DiffReport {
	report := domain.DiffReport{Granularity: g}
	if expected == actual {
		return report
	}

	exp := Tokenize(expected, g)
	act := Tokenize(actual, g)

	// autojunk off: popular tokens such as spaces must still be matched
	matcher := difflib.NewMatcherWithJunk(texts(exp), texts(act), false, nil)
	for _, group := range matcher.GetGroupedOpCodes(c.context) {
		report.Hunks = append(report.Hunks, buildHunk(group, exp, act))
	}
	return report
}

func buildHunk(group []difflib.OpCode, exp, act []Token) domain.DiffHunk {
	first, last := group[0], group[len(group)-1]
	h := domain.DiffHunk{
		ExpectedCount: last.I2 - first.I1,
		ActualCount:   last.J2 - first.J1,
	}
	h.ExpectedStart = hunkStart(first.I1, h.ExpectedCount)
	h.ActualStart = hunkStart(first.J1, h.ActualCount)

	for _, op := range group {
		switch op.Tag {
		case 'e':
			for k := 0; k < op.I2-op.I1; k++ {
				i, j := op.I1+k, op.J1+k
				h.Records = append(h.Records, domain.DiffRecord{
					Kind:         domain.RecordContext,
					Text:         exp[i].Text,
					ExpectedPos:  i + 1,
					ActualPos:    j + 1,
					ExpectedLine: exp[i].Line,
					ActualLine:   act[j].Line,
				})
			}
		case 'd':
			h.Records = append(h.Records, removed(exp, op.I1, op.I2)...)
		case 'i':
			h.Records = append(h.Records, added(act, op.J1, op.J2)...)
		case 'r':
			h.Records = append(h.Records, removed(exp, op.I1, op.I2)...)
			h.Records = append(h.Records, added(act, op.J1, op.J2)...)
		}
	}
	return h
}

// hunkStart follows the unified diff convention: an empty range starts before the first token.
func hunkStart(offset, count int) int {
	if count == 0 {
		return offset
	}
	return offset + 1
}

func removed(tokens []Token, from, to int) []domain.DiffRecord {
	recs := make([]domain.DiffRecord, 0, to-from)
	for i := from; i < to; i++ {
		recs = append(recs, domain.DiffRecord{
			Kind:         domain.RecordRemoved,
			Text:         tokens[i].Text,
			ExpectedPos:  i + 1,
			ExpectedLine: tokens[i].Line,
		})
	}
	return recs
}

func added(tokens []Token, from, to int) []domain.DiffRecord {
	recs := make([]domain.DiffRecord, 0, to-from)
	for j := from; j < to; j++ {
		recs = append(recs, domain.DiffRecord{
			Kind:       domain.RecordAdded,
			Text:       tokens[j].Text,
			ActualPos:  j + 1,
			ActualLine: tokens[j].Line,
		})
	}
	return recs
}

// Classify returns PASS when the report holds no change records and FAIL otherwise.
func Classify(report domain.DiffReport) domain.Verdict {
	if report.Empty() {
		return domain.VerdictPass
	}
	return domain.VerdictFail
}
