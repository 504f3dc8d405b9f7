package compare

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldrun/internal/domain"
)

const tokenStream = "IDENT(let) IDENT(x) EQ NUM(1)"

var granularities = []domain.Granularity{domain.GranularityChar, domain.GranularityLine}

func TestCompare_Identical(t *testing.T) {
	c := NewComparator(3)
	for _, g := range granularities {
		for _, text := range []string{"", tokenStream, tokenStream + "\n", "a\nb\nc\n", "\xff\xfe"} {
			report := c.Compare(text, text, g)
			assert.True(t, report.Empty(), "%s %q", g, text)
			assert.Empty(t, report.Hunks)
			assert.Equal(t, domain.VerdictPass, Classify(report))
		}
	}
}

func TestCompare_MissingTrailingNewline(t *testing.T) {
	c := NewComparator(3)

	t.Run("char granularity shows one deletion", func(t *testing.T) {
		report := c.Compare(tokenStream+"\n", tokenStream, domain.GranularityChar)
		require.Equal(t, domain.VerdictFail, Classify(report))
		require.Len(t, report.Hunks, 1)
		assert.Equal(t, 1, report.Changes())

		var changes []domain.DiffRecord
		for _, rec := range report.Hunks[0].Records {
			if rec.IsChange() {
				changes = append(changes, rec)
			}
		}
		want := []domain.DiffRecord{{
			Kind:         domain.RecordRemoved,
			Text:         "\n",
			ExpectedPos:  len(tokenStream) + 1,
			ExpectedLine: 1,
		}}
		if diff := cmp.Diff(want, changes); diff != "" {
			t.Errorf("changes mismatch (-want +got):\n%s", diff)
		}

		// three context characters precede the deletion
		recs := report.Hunks[0].Records
		require.Len(t, recs, 4)
		assert.Equal(t, []string{"(", "1", ")"}, []string{recs[0].Text, recs[1].Text, recs[2].Text})
	})

	t.Run("line granularity replaces the line", func(t *testing.T) {
		report := c.Compare(tokenStream+"\n", tokenStream, domain.GranularityLine)
		require.Len(t, report.Hunks, 1)
		recs := report.Hunks[0].Records
		require.Len(t, recs, 2)
		assert.Equal(t, domain.RecordRemoved, recs[0].Kind)
		assert.Equal(t, tokenStream+"\n", recs[0].Text)
		assert.Equal(t, domain.RecordAdded, recs[1].Kind)
		assert.Equal(t, tokenStream, recs[1].Text)
	})
}

func TestCompare_EmptyActual(t *testing.T) {
	expected := "Let\nIdent x\nEq\n"
	report := NewComparator(3).Compare(expected, "", domain.GranularityLine)

	require.Equal(t, domain.VerdictFail, Classify(report))
	require.Len(t, report.Hunks, 1)
	h := report.Hunks[0]
	assert.Equal(t, 1, h.ExpectedStart)
	assert.Equal(t, 3, h.ExpectedCount)
	assert.Equal(t, 0, h.ActualStart)
	assert.Equal(t, 0, h.ActualCount)
	for i, rec := range h.Records {
		assert.Equal(t, domain.RecordRemoved, rec.Kind)
		assert.Equal(t, i+1, rec.ExpectedLine)
		assert.Zero(t, rec.ActualLine)
	}
}

func TestCompare_ContextAroundChange(t *testing.T) {
	expected := "a\nb\nc\nd\ne\nf\ng\nh\ni\n"
	actual := "a\nb\nc\nd\nE\nf\ng\nh\ni\n"

	report := NewComparator(2).Compare(expected, actual, domain.GranularityLine)
	require.Len(t, report.Hunks, 1)
	h := report.Hunks[0]
	assert.Equal(t, 3, h.ExpectedStart)
	assert.Equal(t, 5, h.ExpectedCount)
	assert.Equal(t, 3, h.ActualStart)
	assert.Equal(t, 5, h.ActualCount)

	var kinds []domain.RecordKind
	for _, rec := range h.Records {
		kinds = append(kinds, rec.Kind)
	}
	assert.Equal(t, []domain.RecordKind{
		domain.RecordContext, domain.RecordContext,
		domain.RecordRemoved, domain.RecordAdded,
		domain.RecordContext, domain.RecordContext,
	}, kinds)
	assert.Equal(t, "c\n", h.Records[0].Text)
	assert.Equal(t, 3, h.Records[0].ExpectedLine)
	assert.Equal(t, 3, h.Records[0].ActualLine)
}

func TestCompare_DistantChangesSplitHunks(t *testing.T) {
	var exp, act []string
	for i := 0; i < 20; i++ {
		line := strings.Repeat("x", i+1)
		exp = append(exp, line)
		if i == 1 || i == 17 {
			line = "changed"
		}
		act = append(act, line)
	}
	report := NewComparator(3).Compare(strings.Join(exp, "\n"), strings.Join(act, "\n"), domain.GranularityLine)
	assert.Len(t, report.Hunks, 2)
	assert.Equal(t, 4, report.Changes())
}

func TestCompare_VerdictSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"abc", "abc"},
		{"abc", "abd"},
		{"", "x"},
		{"IDENT(x)\n", "IDENT(x)"},
		{"a\nb\n", "b\na\n"},
	}
	c := NewComparator(3)
	for _, g := range granularities {
		for _, p := range pairs {
			ab := c.Compare(p[0], p[1], g)
			ba := c.Compare(p[1], p[0], g)
			assert.Equal(t, Classify(ab), Classify(ba), "%s %q", g, p)
			assert.Equal(t, countKind(ab, domain.RecordRemoved), countKind(ba, domain.RecordAdded))
			assert.Equal(t, countKind(ab, domain.RecordAdded), countKind(ba, domain.RecordRemoved))
		}
	}
}

// With unlimited context a report covers both texts completely.
func TestCompare_ReconstructsBothSides(t *testing.T) {
	pairs := [][2]string{
		{"let x = 1\nin x\n", "let y = 1\nin y"},
		{"Program\n  Let x\n  Int 1\n", "Program\n  Let x\n  Int 2\n  Int 3\n"},
		{"héllo wörld", "hello world!"},
		{"", "added only\n"},
	}
	c := NewComparator(1 << 20)
	for _, g := range granularities {
		for _, p := range pairs {
			report := c.Compare(p[0], p[1], g)
			require.Len(t, report.Hunks, 1)
			var exp, act strings.Builder
			for _, rec := range report.Hunks[0].Records {
				if rec.Kind != domain.RecordAdded {
					exp.WriteString(rec.Text)
				}
				if rec.Kind != domain.RecordRemoved {
					act.WriteString(rec.Text)
				}
			}
			assert.Equal(t, p[0], exp.String(), g)
			assert.Equal(t, p[1], act.String(), g)
		}
	}
}

func TestTokenize(t *testing.T) {
	lines := Tokenize("a\nb\n\nc", domain.GranularityLine)
	assert.Equal(t, []Token{{"a\n", 1}, {"b\n", 2}, {"\n", 3}, {"c", 4}}, lines)
	assert.Empty(t, Tokenize("", domain.GranularityLine))

	chars := Tokenize("é\nx", domain.GranularityChar)
	assert.Equal(t, []Token{{"é", 1}, {"\n", 1}, {"x", 2}}, chars)

	raw := Tokenize("\xffa", domain.GranularityChar)
	assert.Equal(t, []Token{{"\xff", 1}, {"a", 1}}, raw)
}

func countKind(r domain.DiffReport, kind domain.RecordKind) int {
	n := 0
	for _, h := range r.Hunks {
		for _, rec := range h.Records {
			if rec.Kind == kind {
				n++
			}
		}
	}
	return n
}
