package annotations

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// OutputFormatter renders trace events as human-readable, optionally
// colorized lines.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
}

// NewOutputFormatter creates a formatter writing to w, auto-detecting
// color support when w is stdout or stderr.
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}

	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isTerminal(f.Fd())
	}

	return &OutputFormatter{useColor: useColor, writer: w}
}

// Handle implements Handler: formats and writes event.
func (f *OutputFormatter) Handle(event Event) {
	if line := f.Format(event); line != "" {
		fmt.Fprintln(f.writer, line)
	}
}

// Format renders a single event as a line of text.
func (f *OutputFormatter) Format(event Event) string {
	switch event.Name {
	case ConstraintBegin:
		return fmt.Sprintf("%s evaluating %v", f.colorize("===", color.FgYellow), event.Data["constraint"])

	case ConstraintBinding:
		return fmt.Sprintf("  %s %v", f.colorize("+", color.FgGreen), event.Data["env"])

	case UnifyFail:
		return fmt.Sprintf("  %s %v", f.colorize("x", color.FgRed), event.Data["reason"])

	case BacktrackEnter:
		return fmt.Sprintf("%s entering backtrack over %d constraint(s)", f.colorize(">>>", color.FgCyan), event.Data["count"])

	case BacktrackYield:
		return fmt.Sprintf("%s %v", f.colorize("=>", color.FgGreen), event.Data["env"])

	case BacktrackExhaust:
		return fmt.Sprintf("%s backtrack exhausted", f.colorize("<<<", color.FgCyan))

	default:
		return ""
	}
}

func (f *OutputFormatter) colorize(text string, attr color.Attribute) string {
	if !f.useColor {
		return text
	}
	return color.New(attr).Sprint(text)
}

// isTerminal reports whether fd looks like a terminal. This mirrors the
// teacher's simplified stdout/stderr check rather than pulling in a
// platform-specific terminal library for a cosmetic concern.
func isTerminal(fd uintptr) bool {
	return fd == uintptr(1) || fd == uintptr(2)
}
