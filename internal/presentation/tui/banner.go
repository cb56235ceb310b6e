package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`                              _ _    `, "#818cf8"},
	{`  _ __ ___   __ _ _____      _| | | __`, "#a78bfa"},
	{` | '_ ' _ \ / _' |_  /\ \ /\ / / | |/ /`, "#c084fc"},
	{` | | | | | | (_| |/ /  \ V  V /| |   < `, "#e879f9"},
	{` |_| |_| |_|\__,_/___|  \_/\_/ |_|_|\_\`, "#f472b6"},
}

// PrintBanner writes the mazewalk banner and version to stdout.
func PrintBanner(version string) {
	FprintBanner(termenv.DefaultOutput(), version)
}

// FprintBanner writes the banner to an arbitrary output.
func FprintBanner(w io.Writer, version string) {
	out, ok := w.(*termenv.Output)
	if !ok {
		out = termenv.NewOutput(w)
	}

	fmt.Fprintln(out)
	for _, l := range bannerLines {
		fmt.Fprintln(out, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(out, out.String("  v"+version).Faint())
	}
	fmt.Fprintln(out)
}
