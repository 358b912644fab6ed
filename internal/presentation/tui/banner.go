package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PrintBanner writes the easel banner to w. Colours follow the profile of w,
// so redirected output stays plain.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text, color string
	}{
		{"                       _ ", "#fbbf24"},
		{"   ___  __ _ ___  ___| |", "#fb923c"},
		{"  / _ \\/ _` / __|/ _ \\ |", "#f87171"},
		{" |  __/ (_| \\__ \\  __/ |", "#f472b6"},
		{"  \\___|\\__,_|___/\\___|_|", "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
