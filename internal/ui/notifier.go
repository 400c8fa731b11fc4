// Package ui renders color-coded deployment status lines to the console.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Notifier emits human-readable status lines. It is purely observational;
// callers never branch on its behavior.
type Notifier interface {
	// Infof reports that a step is in progress.
	Infof(format string, args ...any)

	// Successf reports that a step completed.
	Successf(format string, args ...any)

	// Warnf reports a recoverable condition, e.g. a resource pending deletion.
	Warnf(format string, args ...any)

	// Failf reports a fatal condition.
	Failf(format string, args ...any)
}

// Console is a Notifier that writes styled lines to a terminal. Styling is
// dropped when the writer is not a TTY so piped output stays clean.
type Console struct {
	out   io.Writer
	color bool
}

// NewConsole creates a Console writing to stdout.
func NewConsole() *Console {
	return &Console{
		out:   os.Stdout,
		color: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// NewConsoleWriter creates a Console writing to w. Color is only enabled for
// os.Stdout and os.Stderr when they are terminals.
func NewConsoleWriter(w io.Writer) *Console {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	return &Console{out: w, color: color}
}

func (c *Console) print(style lipgloss.Style, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if c.color {
		line = style.Render(line)
	}
	fmt.Fprintln(c.out, line)
}

// Infof implements Notifier.
func (c *Console) Infof(format string, args ...any) {
	c.print(infoStyle, format, args...)
}

// Successf implements Notifier.
func (c *Console) Successf(format string, args ...any) {
	c.print(successStyle, format, args...)
}

// Warnf implements Notifier.
func (c *Console) Warnf(format string, args ...any) {
	c.print(warnStyle, format, args...)
}

// Failf implements Notifier.
func (c *Console) Failf(format string, args ...any) {
	c.print(failStyle, format, args...)
}

// Noop is a Notifier that discards everything. Used in tests.
type Noop struct{}

func (Noop) Infof(string, ...any)    {}
func (Noop) Successf(string, ...any) {}
func (Noop) Warnf(string, ...any)    {}
func (Noop) Failf(string, ...any)    {}
