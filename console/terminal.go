// Package console runs duels in a terminal: numbered menus on stdin and
// narrated events on stdout.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Terminal is a line-based prompt over a reader and a writer.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewTerminal returns a Terminal reading lines from in.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

// Printf writes to the terminal.
func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// Line reads one trimmed line. End of input is io.EOF.
func (t *Terminal) Line(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t.Printf("%s", prompt)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

// Number reads an integer in [min, max], asking again until it gets one.
func (t *Terminal) Number(ctx context.Context, prompt string, min, max int) (int, error) {
	for {
		line, err := t.Line(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= min && n <= max {
			return n, nil
		}
		t.Printf("Invalid choice, enter a number from %d to %d.\n", min, max)
	}
}

// IsEOF reports whether err means the input ran out.
func IsEOF(err error) bool { return errors.Is(err, io.EOF) }
