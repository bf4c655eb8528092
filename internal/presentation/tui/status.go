package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// Styler colours CLI verdicts for the terminal it writes to.
// Non-terminal writers get plain text.
type Styler struct {
	out *termenv.Output
}

// NewStyler detects the colour profile of w.
func NewStyler(w io.Writer) *Styler {
	return &Styler{out: termenv.NewOutput(w)}
}

// NewPlainStyler never emits escape sequences.
func NewPlainStyler(w io.Writer) *Styler {
	return &Styler{out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))}
}

// Pass renders a success message.
func (s *Styler) Pass(msg string) string {
	return s.out.String("✔ " + msg).Foreground(s.out.Color("#22c55e")).Bold().String()
}

// Fail renders a failure message.
func (s *Styler) Fail(msg string) string {
	return s.out.String("✘ " + msg).Foreground(s.out.Color("#ef4444")).Bold().String()
}

// Muted renders secondary information.
func (s *Styler) Muted(msg string) string {
	return s.out.String(msg).Faint().String()
}

// Verdict picks Pass or Fail.
func (s *Styler) Verdict(ok bool, msg string) string {
	if ok {
		return s.Pass(msg)
	}
	return s.Fail(msg)
}
