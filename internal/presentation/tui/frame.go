package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/mazewalk/internal/presentation/graph"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Frame draws snapshots as coloured ASCII mazes in a terminal.
// It implements ports.FrameSink.
type Frame struct {
	out     *termenv.Output
	fd      int
	isTTY   bool
	profile *termenv.Profile

	// Width overrides terminal detection when positive.
	Width int
}

// FrameOption configures a Frame.
type FrameOption func(*Frame)

// WithProfile forces a colour profile, e.g. termenv.Ascii in tests.
func WithProfile(p termenv.Profile) FrameOption {
	return func(f *Frame) {
		f.profile = &p
	}
}

// WithWidth crops every line to n columns.
func WithWidth(n int) FrameOption {
	return func(f *Frame) {
		f.Width = n
	}
}

// NewFrame creates a Frame writing to w. When w is a terminal the frame is
// redrawn in place and cropped to the terminal width.
func NewFrame(w io.Writer, opts ...FrameOption) *Frame {
	f := &Frame{fd: -1}
	if file, ok := w.(*os.File); ok {
		f.fd = int(file.Fd())
		f.isTTY = term.IsTerminal(f.fd)
	}
	for _, opt := range opts {
		opt(f)
	}

	var outOpts []termenv.OutputOption
	if f.profile != nil {
		outOpts = append(outOpts, termenv.WithProfile(*f.profile))
	}
	f.out = termenv.NewOutput(w, outOpts...)
	return f
}

// Present renders one snapshot.
func (f *Frame) Present(_ context.Context, snap domain.Snapshot) error {
	if snap.Graph == nil {
		return nil
	}

	if f.isTTY {
		f.out.MoveCursor(1, 1)
	}

	body := graph.RenderASCII(snap.Graph, graph.OverlayFromSnapshot(snap))
	width := f.width()

	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
		sb.WriteString(f.colorize(crop(line, width)))
		sb.WriteByte('\n')
	}

	status := fmt.Sprintf("%s  reveal %.2f  cycle %d  waypoints %d  maze %s",
		snap.Phase, snap.RevealAmount, snap.Cycle, snap.Waypoints, snap.MazeID)
	sb.WriteString(f.out.String(crop(status, width)).Foreground(f.phaseColor(snap.Phase)).String())
	sb.WriteByte('\n')

	_, err := io.WriteString(f.out, sb.String())
	return err
}

// Clear wipes the terminal before the first frame. It is a no-op off a TTY.
func (f *Frame) Clear() {
	if f.isTTY {
		f.out.ClearScreen()
		f.out.HideCursor()
	}
}

// Restore shows the cursor again.
func (f *Frame) Restore() {
	if f.isTTY {
		f.out.ShowCursor()
	}
}

func (f *Frame) width() int {
	if f.Width > 0 {
		return f.Width
	}
	if f.isTTY {
		if w, _, err := term.GetSize(f.fd); err == nil {
			return w
		}
	}
	return 0
}

func (f *Frame) phaseColor(p domain.Phase) termenv.Color {
	switch p {
	case domain.PhaseRevealing:
		return f.out.Color("#818cf8")
	case domain.PhaseHiding:
		return f.out.Color("#fb7185")
	default:
		return f.out.Color("#34d399")
	}
}

// colorize paints walls dim and markers bright.
func (f *Frame) colorize(line string) string {
	var sb strings.Builder
	for _, r := range line {
		s := string(r)
		switch r {
		case '+', '-', '|':
			sb.WriteString(f.out.String(s).Faint().String())
		case 'S':
			sb.WriteString(f.out.String(s).Foreground(f.out.Color("#34d399")).Bold().String())
		case 'E':
			sb.WriteString(f.out.String(s).Foreground(f.out.Color("#f472b6")).Bold().String())
		case '*':
			sb.WriteString(f.out.String(s).Foreground(f.out.Color("#facc15")).String())
		case '>', '<', '^', 'v':
			sb.WriteString(f.out.String(s).Foreground(f.out.Color("#38bdf8")).Bold().String())
		default:
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func crop(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	return s[:width]
}
