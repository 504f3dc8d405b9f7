package report

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type palette struct {
	pass    *color.Color
	fail    *color.Color
	header  *color.Color
	hunk    *color.Color
	removed *color.Color
	added   *color.Color
	label   *color.Color
	plain   *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		pass:    mk(color.FgGreen),
		fail:    mk(color.FgRed),
		header:  mk(color.FgCyan),
		hunk:    mk(color.FgCyan),
		removed: mk(color.FgRed),
		added:   mk(color.FgGreen),
		label:   mk(color.FgBlue),
		plain:   mk(color.FgWhite),
	}
}

// diffLine picks the color for one rendered diff line
func (p palette) diffLine(line string) *color.Color {
	if line == "" {
		return p.plain
	}
	switch line[0] {
	case '@':
		return p.hunk
	case '-':
		return p.removed
	case '+':
		return p.added
	default:
		return p.plain
	}
}
