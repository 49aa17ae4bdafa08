package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// basicReader is the fallback line reader: plain buffered reads from stdin,
// prompt and output on stdout, no completion. The ui package provides the
// interactive terminal reader.
type basicReader struct {
	in  *bufio.Scanner
	out io.Writer
}

func newBasicReader() *basicReader {
	return &basicReader{
		in:  bufio.NewScanner(os.Stdin),
		out: os.Stdout,
	}
}

func (r *basicReader) ReadLine(prompt string, _ CompleteFunc) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.in.Text(), nil
}

func (r *basicReader) Write(text string) {
	fmt.Fprint(r.out, text)
}
