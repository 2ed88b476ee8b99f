// Package console is the line-based conversation between codeprompt and its user.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Console reads answers and writes messages one line at a time.
type Console interface {
	// ReadLine prints prompt and returns the next input line without
	// surrounding whitespace. It returns io.EOF once input is exhausted.
	ReadLine(prompt string) (string, error)
	Printf(format string, a ...interface{})
	Println(a ...interface{})
	Warnf(format string, a ...interface{})
	Successf(format string, a ...interface{})
}

// Terminal is a Console over a reader and a writer.
type Terminal struct {
	in      *bufio.Reader
	out     io.Writer
	warn    *color.Color
	success *color.Color
}

// New returns a Terminal without colour, for pipes and tests.
func New(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		in:      bufio.NewReader(in),
		out:     out,
		warn:    color.New(color.FgYellow),
		success: color.New(color.FgGreen),
	}
	t.warn.DisableColor()
	t.success.DisableColor()
	return t
}

// NewStd returns a Terminal on stdin/stdout, coloured when stdout is a TTY.
func NewStd() *Terminal {
	t := New(os.Stdin, os.Stdout)
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		t.warn.EnableColor()
		t.success.EnableColor()
	}
	return t
}

func (t *Terminal) ReadLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) Printf(format string, a ...interface{}) {
	fmt.Fprintf(t.out, format, a...)
}

func (t *Terminal) Println(a ...interface{}) {
	fmt.Fprintln(t.out, a...)
}

func (t *Terminal) Warnf(format string, a ...interface{}) {
	t.warn.Fprintf(t.out, format, a...)
}

func (t *Terminal) Successf(format string, a ...interface{}) {
	t.success.Fprintf(t.out, format, a...)
}

// Confirm asks a yes/no question. An empty answer or closed input selects def.
func Confirm(c Console, prompt string, def bool) (bool, error) {
	answer, err := c.ReadLine(prompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return def, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// IsDone reports whether an answer ends a list-entry loop.
func IsDone(answer string) bool {
	return answer == "" || strings.EqualFold(answer, "done")
}
