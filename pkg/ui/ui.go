// Package ui writes the human facing output of droidgen. Lines are styled
// with lipgloss and pterm prefixes when the destination is a color terminal
// and written plain otherwise.
package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	derrors "github.com/arthur-debert/droidgen/pkg/errors"
)

// Printer writes styled lines to a writer
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter returns a Printer for out, styled when out is a color terminal
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, color: ColorEnabled(out)}
}

// NewPlainPrinter returns a Printer that never styles its output
func NewPlainPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Writer returns the destination of p
func (p *Printer) Writer() io.Writer { return p.out }

// Success reports a finished operation
func (p *Printer) Success(format string, args ...interface{}) {
	p.line(pterm.Success, "Success", "", fmt.Sprintf(format, args...))
}

// Info writes an informational line
func (p *Printer) Info(format string, args ...interface{}) {
	p.line(pterm.Info, "Info", "", fmt.Sprintf(format, args...))
}

// Warn writes a warning
func (p *Printer) Warn(format string, args ...interface{}) {
	p.line(pterm.Warning, "Warning", "Warning: ", fmt.Sprintf(format, args...))
}

// Error writes err as an error line. Coded errors are shown without their
// code.
func (p *Printer) Error(err error) {
	p.line(pterm.Error, "Error", "Error: ", errorMessage(err))
}

func errorMessage(err error) string {
	var de *derrors.DroidgenError
	if !errors.As(err, &de) {
		return err.Error()
	}
	if de.Wrapped != nil {
		return de.Message + ": " + de.Wrapped.Error()
	}
	return de.Message
}

// Hint writes a secondary line, such as a follow up instruction
func (p *Printer) Hint(format string, args ...interface{}) {
	p.styled("Hint", fmt.Sprintf(format, args...))
}

// Command writes a shell command the user is expected to run
func (p *Printer) Command(cmd string) {
	p.styled("Command", cmd)
}

// File writes a path as an indented list entry
func (p *Printer) File(path string) {
	p.styled("File", path)
}

// Blank writes an empty line
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}

func (p *Printer) line(prefix pterm.PrefixPrinter, style, plainPrefix, msg string) {
	if !p.color {
		fmt.Fprintln(p.out, plainPrefix+msg)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n",
		prefix.Prefix.Style.Sprint(" "+prefix.Prefix.Text+" "),
		GetStyle(style).Render(msg))
}

func (p *Printer) styled(style, msg string) {
	if !p.color {
		fmt.Fprintln(p.out, msg)
		return
	}
	fmt.Fprintln(p.out, GetStyle(style).Render(msg))
}
