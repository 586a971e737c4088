// Package repl runs an interactive read-eval-print loop on top of a driver.Session.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"lox/internal/driver"
)

// Prompt is printed before every line is read.
const Prompt = ">"

// Options configures Run.
type Options struct {
	In  io.Reader
	Out io.Writer // prompt and error output
	// OnError renders a failed line. The loop continues afterwards.
	// nil prints err on Out.
	OnError func(err error)
}

// Run reads one line at a time and interprets it with sess until In is
// exhausted or ctx is cancelled. Every line, blank ones included, is a
// separate program, so a blank line prints "value nil".
// At end of input a single newline is written and Run returns nil.
func Run(ctx context.Context, sess *driver.Session, opts Options) error {
	if opts.OnError == nil {
		opts.OnError = func(err error) { fmt.Fprintln(opts.Out, err) }
	}
	reader := bufio.NewReader(opts.In)

	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(opts.Out, Prompt)

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			// пустое чтение: конец ввода
			fmt.Fprintln(opts.Out)
			return nil
		}

		if _, runErr := sess.RunSource(ctx, "repl:"+strconv.Itoa(n), []byte(line)); runErr != nil {
			opts.OnError(runErr)
		}
	}
}
