package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return PlainRenderer
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// PlainRenderer returns markdown unchanged.
func PlainRenderer(markdown string) (string, error) {
	return markdown, nil
}

// RendererFor picks glamour when f is a terminal and plain text otherwise,
// so piped output stays machine readable.
func RendererFor(f *os.File) func(string) (string, error) {
	if IsTerminal(f) {
		return NewRenderer()
	}
	return PlainRenderer
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
