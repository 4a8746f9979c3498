package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the docent banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"      _                      _   ", "#34d399"},
		{"   __| | ___   ___ ___ _ __ | |_ ", "#2dd4bf"},
		{"  / _` |/ _ \\ / __/ _ \\ '_ \\| __|", "#22d3ee"},
		{" | (_| | (_) | (_|  __/ | | | |_ ", "#38bdf8"},
		{"  \\__,_|\\___/ \\___\\___|_| |_|\\__|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
