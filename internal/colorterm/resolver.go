// Package colorterm is the boundary between pure rendering and the
// terminal: it maps abstract color tags to escape sequences (or strips
// them) and writes bytes. Color is used only when the destination is an
// interactive terminal and the NO_COLOR convention does not forbid it.
package colorterm

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/hueify/hueify/internal/render"
	"github.com/hueify/hueify/internal/styles"
)

// Resolver turns styled lines into bytes for one destination writer.
type Resolver struct {
	w     io.Writer
	color bool
}

// New creates a Resolver that auto-detects whether the writer supports
// color: the destination must be a terminal and NO_COLOR must be unset.
func New(w io.Writer) *Resolver {
	return &Resolver{w: w, color: detectColor(w)}
}

// NewWithColor creates a Resolver with color explicitly forced on or off,
// bypassing detection. Used for --color/--no-color flags and tests.
func NewWithColor(w io.Writer, color bool) *Resolver {
	if color {
		// Forcing color must override lipgloss's own terminal detection,
		// or styling silently degrades on non-terminal destinations.
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
	return &Resolver{w: w, color: color}
}

// Color reports whether this resolver emits escape sequences.
func (r *Resolver) Color() bool {
	return r.color
}

// Sprint formats lines as a single string, one segment at a time, ending
// with a trailing newline. With color off, tags are stripped and the text
// passes through untouched.
func (r *Resolver) Sprint(lines []render.Line) string {
	var b strings.Builder
	for _, line := range lines {
		for _, seg := range line {
			if r.color {
				b.WriteString(styles.ForTag(seg.Tag).Render(seg.Text))
			} else {
				b.WriteString(seg.Text)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Write resolves lines and writes them to the destination writer.
func (r *Resolver) Write(lines []render.Line) error {
	_, err := io.WriteString(r.w, r.Sprint(lines))
	return err
}

// detectColor reports whether the writer is an interactive terminal that
// should receive escape sequences. The NO_COLOR convention wins over tty
// detection.
func detectColor(w io.Writer) bool {
	if termenv.EnvNoColor() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
