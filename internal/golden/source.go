package golden

import "strings"

const (
	titleOpen  = "(*"
	titleClose = "*)"
)

// ParseSource splits a parser-suite input into its display title and program text.
// The first line must be wrapped in "(*" and "*)"; otherwise the title is empty
// and the whole text is program source.
func ParseSource(text string) (title, source string) {
	first, rest, found := strings.Cut(text, "\n")
	line := strings.TrimSpace(strings.TrimSuffix(first, "\r"))
	if !strings.HasPrefix(line, titleOpen) || !strings.HasSuffix(line, titleClose) || len(line) < len(titleOpen)+len(titleClose) {
		return "", text
	}

	title = strings.TrimSuffix(strings.TrimPrefix(line, titleOpen), titleClose)
	title = strings.TrimSpace(strings.Trim(title, "*"))
	if !found {
		return title, ""
	}
	return title, rest
}
