// Package console implements the interactive menu and the product actions.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter writes prompts to the console and reads answers line by line.
// Lines are read on a background goroutine so that a pending prompt also
// observes context cancellation.
type Prompter struct {
	out   io.Writer
	lines chan string
	stop  chan struct{}
	once  sync.Once
	err   error
}

// NewPrompter starts reading in. Call Close to release the reader goroutine.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:   out,
		lines: make(chan string),
		stop:  make(chan struct{}),
	}
	go p.read(in)
	return p
}

func (p *Prompter) read(in io.Reader) {
	defer close(p.lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case p.lines <- strings.TrimRight(scanner.Text(), "\r"):
		case <-p.stop:
			return
		}
	}
	p.err = scanner.Err()
}

// Ask prints label and waits for the next line. It returns io.EOF once the
// input is exhausted and ctx.Err() when ctx is cancelled first.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	fmt.Fprint(p.out, label)

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			if p.err != nil {
				return "", fmt.Errorf("failed to read input: %w", p.err)
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// Choice is Ask with the answer trimmed and lower-cased.
func (p *Prompter) Choice(ctx context.Context, label string) (string, error) {
	line, err := p.Ask(ctx, label)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Close stops the reader goroutine. It does not close the underlying input.
func (p *Prompter) Close() {
	p.once.Do(func() { close(p.stop) })
}
