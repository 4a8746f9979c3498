package tui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns a reply into terminal output.
type Renderer func(string) (string, error)

// PlainRenderer returns text unchanged with a trailing newline.
func PlainRenderer(text string) (string, error) {
	return strings.TrimRight(text, "\n") + "\n", nil
}

// NewRenderer returns a glamour markdown renderer that adapts to the
// terminal background.
func NewRenderer() Renderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return PlainRenderer
	}
	return r.Render
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// RendererFor picks the markdown renderer for terminals and the plain one
// for pipes and files.
func RendererFor(w io.Writer) Renderer {
	if IsTerminal(w) {
		return NewRenderer()
	}
	return PlainRenderer
}
