// Package prompt asks the user yes/no questions.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	derrors "github.com/arthur-debert/droidgen/pkg/errors"
)

// Confirmer answers a yes/no question. def is the answer used when the user
// gives none.
type Confirmer interface {
	Confirm(question string, def bool) (bool, error)
}

// Console asks on Out and reads the answer from In
type Console struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewConsole returns a Console reading in and writing out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{In: in, Out: out}
}

// Confirm writes the question followed by the default marker and reads one
// line. An empty line picks def, y or yes is true, anything else false.
func (c *Console) Confirm(question string, def bool) (bool, error) {
	marker := "[y/N]"
	if def {
		marker = "[Y/n]"
	}
	if _, err := fmt.Fprintf(c.Out, "%s %s: ", question, marker); err != nil {
		return false, derrors.Wrap(err, derrors.ErrIO, "failed to write prompt")
	}

	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	line, err := c.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, derrors.Wrap(err, derrors.ErrIO, "failed to read user input")
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Fixed answers every question with Value without asking. Warn, when set,
// is told which question was skipped.
type Fixed struct {
	Value bool
	Warn  func(msg string)
}

// Confirm returns f.Value
func (f Fixed) Confirm(question string, _ bool) (bool, error) {
	if f.Warn != nil {
		answer := "no"
		if f.Value {
			answer = "yes"
		}
		f.Warn(fmt.Sprintf("%s Not running interactively, answering %s.", question, answer))
	}
	return f.Value, nil
}
