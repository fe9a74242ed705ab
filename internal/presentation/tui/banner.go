package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the storedesk banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"      _                     _           _    ", "#34d399"},
		{"  ___| |_ ___  _ __ ___  __| | ___  ___| | __", "#2dd4bf"},
		{" / __| __/ _ \\| '__/ _ \\/ _` |/ _ \\/ __| |/ /", "#22d3ee"},
		{" \\__ \\ || (_) | | |  __/ (_| |  __/\\__ \\   < ", "#38bdf8"},
		{" |___/\\__\\___/|_|  \\___|\\__,_|\\___||___/_|\\_\\", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
