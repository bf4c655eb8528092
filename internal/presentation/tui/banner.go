package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the BlockFlow ASCII art banner.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"  _     _            _     __ _               ", "#818cf8"},
		{" | |__ | | ___   ___| | __/ _| | _____      __", "#a78bfa"},
		{" | '_ \\| |/ _ \\ / __| |/ / |_| |/ _ \\ \\ /\\ / /", "#c084fc"},
		{" | |_) | | (_) | (__|   <|  _| | (_) \\ V  V / ", "#e879f9"},
		{" |_.__/|_|\\___/ \\___|_|\\_\\_| |_|\\___/ \\_/\\_/  ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
