package ui

import (
	"bufio"
	"fmt"
	"io"

	"github.com/promptr-tools/promptr/shell"
)

// Script reads lines from any reader without terminal control, for piped
// input and tests. Prompts are not echoed.
type Script struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewScript returns a reader over in writing output to out.
func NewScript(in io.Reader, out io.Writer) *Script {
	return &Script{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// ReadLine implements shell.LineReader.
func (s *Script) ReadLine(_ string, _ shell.CompleteFunc) (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// Write implements shell.LineReader.
func (s *Script) Write(text string) {
	fmt.Fprint(s.out, text)
}

var _ shell.LineReader = (*Script)(nil)
