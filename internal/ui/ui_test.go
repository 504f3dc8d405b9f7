package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldrun/internal/config"
	"goldrun/internal/domain"
	"goldrun/internal/golden"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func sampleResults() *domain.ResultsOutput {
	return &domain.ResultsOutput{Suites: []domain.SuiteOutput{
		{
			Meta: domain.SuiteMeta{Suite: "lexer"},
			Details: []domain.CaseFailure{
				{Suite: "lexer", CaseID: 1, InputPath: "ml/01.ml.txt", Expected: "ts/01.ts.txt", Reason: domain.ReasonMismatch,
					Message: "output differs", Rendered: "@@ -1,1 +1,1 @@\n-[a]\n+b", Output: "b"},
			},
		},
		{
			Meta: domain.SuiteMeta{Suite: "parser"},
			Details: []domain.CaseFailure{
				{Suite: "parser", CaseID: 1, Title: "nested", Reason: domain.ReasonTimeout, Reviewed: true},
				{Suite: "parser", CaseID: 11, Reason: domain.ReasonArtifactNotFound},
			},
		},
	}}
}

func TestFailedFromResults(t *testing.T) {
	failed := FailedFromResults(sampleResults())
	assert.Equal(t, []string{"lexer", "parser"}, failed[1])
	assert.Equal(t, []string{"parser"}, failed[11])
	assert.Empty(t, FailedFromResults(nil))
}

func TestListItemText(t *testing.T) {
	failures := sampleResults().Failures()
	assert.Equal(t, "[yellow]1.[white] lexer 01", listItemText(failures[0], 0))
	assert.Equal(t, "[gray]✓ [yellow]2.[gray] parser 01 nested[white]", listItemText(failures[1], 1))
}

func TestHeaderText(t *testing.T) {
	assert.Contains(t, headerText(sampleResults().Failures()), "3 total, 2 unreviewed")
}

func TestFormatFailureDetails(t *testing.T) {
	failures := sampleResults().Failures()

	details := formatFailureDetails(failures[0])
	assert.Contains(t, details, "lexer case 01: mismatch")
	assert.Contains(t, details, "[cyan]@@ -1,1 +1,1 @@[white]")
	// square brackets in subject output must not be read as color tags
	assert.Contains(t, details, "[red]-[a[][white]")
	assert.Contains(t, details, "[green]+b[white]")

	noDiff := formatFailureDetails(failures[2])
	assert.NotContains(t, noDiff, "Diff")

	stats := formatFailureStats(failures[1])
	assert.Contains(t, stats, "expected:[white] [yellow]-")
}

func TestFormatter_PrintCaseList(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"ml/00.ml.txt":   "let x = 1\n",
		"ts/00.ts.txt":   "LET\n",
		"ast/00.ast.txt": "Let\n",
		"ml/10.ml.txt":   "(* unbound variable *)\nlet x = y\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	cfg := config.New()
	cfg.ArtifactRoot = root

	var buf bytes.Buffer
	NewFormatter(golden.NewStore(cfg), &buf).PrintCaseList([]int{0, 10}, CaseMarks{
		Failed:  map[int][]string{10: {"parser"}},
		History: map[string]map[int]domain.Verdict{"lexer": {0: domain.VerdictPass}},
	})
	out := buf.String()

	assert.Contains(t, out, "Found 2 case(s) in plan 0,10:")
	assert.Contains(t, out, "├── 00\n")
	assert.Contains(t, out, "│   └── source ✓ | lexer ✓ (last PASS) | parser ✓\n")
	assert.Contains(t, out, "└── 10 unbound variable [F parser]\n")
	assert.Contains(t, out, "    └── source ✓ | lexer missing | parser missing\n")
}
