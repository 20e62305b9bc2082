package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrCancelled is returned when the user abandons a prompt (end of input or
// an interrupt while waiting for an answer).
var ErrCancelled = errors.New("operation cancelled")

// Prompter collects answers from the user.
type Prompter interface {
	// Text asks for a line of text. An empty answer selects defaultValue.
	Text(ctx context.Context, message, placeholder, defaultValue string) (string, error)
	// Confirm asks a yes/no question. An empty answer selects defaultValue.
	Confirm(ctx context.Context, message string, defaultValue bool) (bool, error)
}

type lineResult struct {
	line string
	err  error
}

// LinePrompter asks questions one line at a time over a reader/writer pair.
// Each line is read on its own goroutine so a pending prompt can observe
// context cancellation; a line still being read when a prompt gives up is
// handed to the next prompt.
type LinePrompter struct {
	out io.Writer

	reader  *bufio.Reader
	pending chan lineResult
	err     error
}

// NewLinePrompter returns a LinePrompter reading answers from in and writing
// questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{out: out, reader: bufio.NewReader(in)}
}

func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if p.err != nil {
		return "", p.err
	}

	if p.pending == nil {
		// Buffered so the reader goroutine exits even if nobody collects
		// the line.
		ch := make(chan lineResult, 1)
		p.pending = ch
		go func() {
			line, err := p.reader.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ErrCancelled
	case r := <-p.pending:
		p.pending = nil
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				p.err = ErrCancelled
			} else {
				p.err = fmt.Errorf("reading input: %w", r.err)
			}
			if r.line == "" {
				return "", p.err
			}
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}

// Text implements Prompter.
func (p *LinePrompter) Text(ctx context.Context, message, placeholder, defaultValue string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s  %s\n", symbolActive, message)
		if placeholder != "" {
			fmt.Fprintf(p.out, "%s  (%s) ", symbolBar, placeholder)
		} else {
			fmt.Fprintf(p.out, "%s  ", symbolBar)
		}

		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			answer = defaultValue
		}
		if answer != "" {
			fmt.Fprintf(p.out, "%s\n", symbolBar)
			return answer, nil
		}
		fmt.Fprintf(p.out, "%s  Please enter a value.\n", symbolWarn)
	}
}

// Confirm implements Prompter. It accepts y, yes, n and no in any case and
// asks again for anything else.
func (p *LinePrompter) Confirm(ctx context.Context, message string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s  %s\n%s  (%s) ", symbolActive, message, symbolBar, hint)

		line, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			fmt.Fprintf(p.out, "%s\n", symbolBar)
			return defaultValue, nil
		case "y", "yes":
			fmt.Fprintf(p.out, "%s\n", symbolBar)
			return true, nil
		case "n", "no":
			fmt.Fprintf(p.out, "%s\n", symbolBar)
			return false, nil
		}
		fmt.Fprintf(p.out, "%s  Please answer yes or no.\n", symbolWarn)
	}
}
