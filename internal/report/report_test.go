package report

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldrun/internal/compare"
	"goldrun/internal/domain"
)

func TestRenderDiff(t *testing.T) {
	c := compare.NewComparator(3)

	tests := []struct {
		name     string
		expected string
		actual   string
		g        domain.Granularity
		want     []string
	}{
		{
			name:     "char trailing newline deletion",
			expected: "(1)\n",
			actual:   "(1)",
			g:        domain.GranularityChar,
			want: []string{
				"@@ -1,4 +1,3 @@",
				` "("`,
				` "1"`,
				` ")"`,
				`-"\n"`,
			},
		},
		{
			name:     "line replace without final newline",
			expected: "a\nb\n",
			actual:   "a\nc",
			g:        domain.GranularityLine,
			want: []string{
				"@@ -1,2 +1,2 @@",
				" a",
				"-b",
				"+c",
				noNewline,
			},
		},
		{
			name:     "empty actual",
			expected: "x\ny\n",
			actual:   "",
			g:        domain.GranularityLine,
			want: []string{
				"@@ -1,2 +0,0 @@",
				"-x",
				"-y",
			},
		},
		{
			name:     "identical",
			expected: "same\n",
			actual:   "same\n",
			g:        domain.GranularityLine,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderDiff(c.Compare(tt.expected, tt.actual, tt.g))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderDiff() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReporter_ReportCase(t *testing.T) {
	report := compare.NewComparator(3).Compare("LPAREN\n", "LPAREN", domain.GranularityChar)

	tests := []struct {
		name     string
		result   domain.CaseResult
		contains []string
		exact    string
	}{
		{
			name:   "pass is one line",
			result: domain.CaseResult{Case: domain.TestCase{ID: 0}, Verdict: domain.VerdictPass},
			exact:  "PASS 00\n",
		},
		{
			name:   "pass with title",
			result: domain.CaseResult{Case: domain.TestCase{ID: 10, Title: "unbound variable"}, Verdict: domain.VerdictPass},
			exact:  "PASS 10 unbound variable\n",
		},
		{
			name: "mismatch renders diff",
			result: domain.CaseResult{
				Case:    domain.TestCase{ID: 1},
				Verdict: domain.VerdictFail,
				Reason:  domain.ReasonMismatch,
				Message: "output differs from golden file (1 change(s))",
				Diff:    &report,
			},
			contains: []string{"FAIL 01: output differs", "  @@ -", `  -"\n"`},
		},
		{
			name: "missing artifact has no diff",
			result: domain.CaseResult{
				Case:    domain.TestCase{ID: 11},
				Verdict: domain.VerdictFail,
				Reason:  domain.ReasonArtifactNotFound,
				Message: "missing artifact: ml/11.ml.txt",
			},
			exact: "FAIL 11: missing artifact: ml/11.ml.txt\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewWithColor(&buf, false).ReportCase("lexer", tt.result)
			if tt.exact != "" {
				assert.Equal(t, tt.exact, buf.String())
			}
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestReporter_Transcript(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithColor(&buf, false)
	r.SetTranscriptSkip(1)

	r.ReportCase("inspect", domain.CaseResult{
		Case:    domain.TestCase{ID: 10, Title: "unbound variable", Source: "let x = y\n"},
		Verdict: domain.VerdictNone,
		Output:  "parsing ml/10.ml.txt\nerror: unbound y\n",
	})

	want := strings.Join([]string{
		"====================",
		"testcase title:",
		"unbound variable",
		"testcase content:",
		"let x = y",
		"parse result:",
		"error: unbound y",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestReporter_TranscriptTimeout(t *testing.T) {
	var buf bytes.Buffer
	NewWithColor(&buf, false).ReportCase("inspect", domain.CaseResult{
		Case:    domain.TestCase{ID: 3, Source: "loop"},
		Verdict: domain.VerdictNone,
		Reason:  domain.ReasonTimeout,
		Message: "subject timed out after 5s",
	})
	assert.True(t, strings.HasSuffix(buf.String(), "parse result:\nsubject timed out after 5s\n"))
	assert.Contains(t, buf.String(), "testcase content:\nloop\n")
}

func TestDropLines(t *testing.T) {
	assert.Equal(t, "b\nc\n", dropLines("a\nb\nc\n", 1))
	assert.Equal(t, "a\n", dropLines("a\n", 0))
	assert.Equal(t, "", dropLines("only", 1))
	assert.Equal(t, "", dropLines("a\nb\n", 5))
}

func TestReporter_Summary(t *testing.T) {
	v := domain.NewSuiteVerdict("lexer")
	for _, id := range []int{0, 1, 2, 10} {
		v.Record(domain.CaseResult{Case: domain.TestCase{ID: id}, Verdict: domain.VerdictPass})
	}
	for _, id := range []int{11, 12} {
		v.Record(domain.CaseResult{Case: domain.TestCase{ID: id}, Verdict: domain.VerdictFail})
	}
	v.Duration = 1500 * time.Millisecond

	var buf bytes.Buffer
	NewWithColor(&buf, false).Summary(v, 2)
	out := buf.String()

	assert.Contains(t, out, "Lexer Suite Summary")
	assert.Contains(t, out, "│ Total Cases                     │ 6                           │")
	assert.Contains(t, out, "1.50s")
	assert.Contains(t, out, "✗ 4 passed, 2 failed\n")
	assert.Contains(t, out, "failing cases: 11, 12\n")
}

func TestReporter_SummaryAllPassed(t *testing.T) {
	v := domain.NewSuiteVerdict("parser")
	v.Record(domain.CaseResult{Case: domain.TestCase{ID: 0}, Verdict: domain.VerdictPass})

	var buf bytes.Buffer
	NewWithColor(&buf, false).Summary(v, 1)
	assert.Contains(t, buf.String(), "Parser Suite Summary")
	assert.Contains(t, buf.String(), "✓ 1 passed, 0 failed\n")
	assert.NotContains(t, buf.String(), "failing cases")
}

func TestReporter_SummaryInspection(t *testing.T) {
	v := domain.NewSuiteVerdict("inspect")
	v.Record(domain.CaseResult{Case: domain.TestCase{ID: 0}, Verdict: domain.VerdictNone})
	v.Record(domain.CaseResult{Case: domain.TestCase{ID: 1}, Verdict: domain.VerdictNone})

	var buf bytes.Buffer
	NewWithColor(&buf, false).Summary(v, 1)
	assert.Contains(t, buf.String(), "2 case(s) inspected\n")
}

func TestReporter_SuiteStart(t *testing.T) {
	var buf bytes.Buffer
	NewWithColor(&buf, false).SuiteStart("lexer", []int{0, 1, 2, 10, 11, 12, 13, 14, 15, 16})
	assert.Equal(t, "Running Lexer suite (cases 0-2,10-16)\n", buf.String())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.False(t, IsTerminal(io.Discard))
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar(io.Discard, "lexer", 3)
	require.NotNil(t, p)
	p.Update(1, 0)
	p.Update(1, 2)
	p.Finish()
}
