package compare

import (
	"strings"
	"unicode/utf8"

	"goldrun/internal/domain"
)

// Token is one comparison unit and the line it starts on
type Token struct {
	Text string
	Line int
}

// Tokenize splits text into characters or lines. Lines keep their "\n" so a missing
// final newline differs from a present one. Characters keep their exact bytes,
// invalid UTF-8 included.
func Tokenize(text string, g domain.Granularity) []Token {
	if g == domain.GranularityLine {
		return lineTokens(text)
	}
	return charTokens(text)
}

func lineTokens(text string) []Token {
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	tokens := make([]Token, len(parts))
	for i, p := range parts {
		tokens[i] = Token{Text: p, Line: i + 1}
	}
	return tokens
}

func charTokens(text string) []Token {
	tokens := make([]Token, 0, len(text))
	line := 1
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		tok := text[i : i+size]
		tokens = append(tokens, Token{Text: tok, Line: line})
		if tok == "\n" {
			line++
		}
		i += size
	}
	return tokens
}

func texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}
