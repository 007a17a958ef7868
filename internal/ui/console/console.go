// Package console renders leveled, colored log lines for interactive use.
// Colors are dropped automatically when stdout is not a terminal.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
)

// Printer writes leveled lines to a writer.
type Printer struct {
	out   io.Writer
	color bool
}

// New creates a printer for stdout, with color when it is a terminal.
func New() *Printer {
	return &Printer{
		out:   os.Stdout,
		color: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// NewWriter creates a printer for an arbitrary writer, never colored.
func NewWriter(w io.Writer) *Printer {
	return &Printer{out: w}
}

// Info prints an informational line.
func (p *Printer) Info(format string, v ...any) {
	p.line(infoStyle, "INFO", format, v...)
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, v ...any) {
	p.line(warnStyle, "WARN", format, v...)
}

// Error prints an error line.
func (p *Printer) Error(format string, v ...any) {
	p.line(errorStyle, "ERROR", format, v...)
}

// Success prints a completion line.
func (p *Printer) Success(format string, v ...any) {
	p.line(successStyle, "OK", format, v...)
}

func (p *Printer) line(style lipgloss.Style, level, format string, v ...any) {
	label := fmt.Sprintf("[%s]", level)
	if p.color {
		label = style.Render(label)
	}
	fmt.Fprintf(p.out, "%s %s\n", label, fmt.Sprintf(format, v...))
}
