package domain

import "fmt"

// CaseKind selects one artifact of a golden-file triple
type CaseKind int

const (
	KindSource CaseKind = iota // raw program source fed to the subject
	KindLexer                  // expected token stream
	KindParser                 // expected AST rendering
)

func (k CaseKind) String() string {
	switch k {
	case KindLexer:
		return "lexer-output"
	case KindParser:
		return "parser-output"
	default:
		return "raw-source"
	}
}

// TestCase is one resolved golden-file case. It is never mutated after resolution.
type TestCase struct {
	ID           int      // Case identifier from the plan
	Kind         CaseKind // Which expected artifact the case compares against
	InputPath    string   // Source artifact handed to the subject
	ExpectedPath string   // Expected-output artifact, empty for transcripts
	Title        string   // Display title from the input's first line, may be empty
	Source       string   // Program text without the title line
}

// Name returns the display name of the case.
func (tc TestCase) Name() string {
	if tc.Title != "" {
		return fmt.Sprintf("%02d %s", tc.ID, tc.Title)
	}
	return fmt.Sprintf("%02d", tc.ID)
}
