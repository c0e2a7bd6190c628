// Package console feeds operator command lines into the admin handler on
// the host loop, from stdin or from authenticated TCP sessions.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/udisondev/roundmods/internal/admin"
)

// Executor runs fn on the host loop and waits for it.
type Executor interface {
	Submit(ctx context.Context, fn func()) error
}

// Runner executes command lines on the host loop.
type Runner struct {
	handler *admin.Handler
	exec    Executor
}

// NewRunner creates a runner dispatching through handler.
func NewRunner(handler *admin.Handler, exec Executor) *Runner {
	return &Runner{handler: handler, exec: exec}
}

// Run executes one line as caller and returns the replies it produced.
func (r *Runner) Run(ctx context.Context, caller *admin.Caller, line string) ([]string, error) {
	err := r.exec.Submit(ctx, func() {
		r.handler.Execute(caller, line)
	})
	if err != nil {
		return caller.Drain(), fmt.Errorf("running %q: %w", line, err)
	}
	return caller.Drain(), nil
}

// isQuit reports whether line ends a session.
func isQuit(line string) bool {
	switch strings.ToLower(line) {
	case "quit", "exit":
		return true
	}
	return false
}

// session runs lines until the channel closes, quit or ctx cancellation, writing
// replies to w.
func (r *Runner) session(ctx context.Context, caller *admin.Caller, lines <-chan string, w io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if isQuit(line) {
				return nil
			}

			replies, err := r.Run(ctx, caller, line)
			if err != nil {
				return err
			}
			if len(replies) == 0 {
				replies = []string{"(no output)"}
			}
			for _, reply := range replies {
				if _, err := fmt.Fprintln(w, reply); err != nil {
					return fmt.Errorf("writing reply: %w", err)
				}
			}
		}
	}
}

// scanLines reads lines from rd into a channel closed at EOF, error or ctx
// cancellation.
func scanLines(ctx context.Context, rd io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(rd)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			slog.Debug("console input closed", "error", err)
		}
	}()
	return lines
}

// ServeStdin reads commands from rd as a root caller until EOF, quit or ctx
// cancellation.
func (r *Runner) ServeStdin(ctx context.Context, rd io.Reader, w io.Writer) error {
	slog.Info("console reading commands from stdin")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	caller := admin.NewCaller("console", admin.AccessRoot)
	return r.session(ctx, caller, scanLines(ctx, rd), w)
}
