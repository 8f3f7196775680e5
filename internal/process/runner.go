// Package process runs external command line tools on behalf of the agents.
package process

//go:generate mockgen -source=runner.go -destination=../mocks/runner_mocks.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const (
	maxPendingLine = 64 * 1024

	// how long Wait keeps copying output after the process group was killed
	outputWaitDelay = 2 * time.Second
)

// StreamHandler receives command output line by line as it is produced
type StreamHandler func(line string, isErr bool)

// Command describes one invocation of an external program
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Env     map[string]string
	Stdin   string
	Timeout time.Duration
	Stream  StreamHandler
}

// String renders the command line for logs
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result holds the captured output of a finished command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// ExitError is returned when a command exits non-zero, times out or cannot be started
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
	TimedOut bool
	Err      error
}

func (e *ExitError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("command %q timed out", e.Command)
	}
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("command %q exited with code %d: %s", e.Command, e.ExitCode, msg)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Runner executes external commands
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner runs commands as child processes
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts the command, streams its output and waits for it to finish.
// The returned Result is populated even when an error is returned.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*Result, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range c.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}
	if c.Stdin != "" {
		cmd.Stdin = strings.NewReader(c.Stdin)
	}

	configureProcessGroup(cmd)
	cmd.WaitDelay = outputWaitDelay

	stdout := &lineWriter{handler: c.Stream}
	stderr := &lineWriter{handler: c.Stream, isErr: true}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	result := &Result{ExitCode: -1}
	started := time.Now()

	if err := cmd.Start(); err != nil {
		return result, &ExitError{Command: c.String(), ExitCode: -1, Err: fmt.Errorf("failed to start command: %w", err)}
	}

	waitErr := cmd.Wait()
	stdout.flush()
	stderr.flush()

	result.Stdout = stdout.buf.String()
	result.Stderr = stderr.buf.String()
	result.Duration = time.Since(started)
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if errors.Is(waitErr, exec.ErrWaitDelay) && result.ExitCode == 0 && ctx.Err() == nil {
		// the command itself succeeded; a detached child kept its output open
		waitErr = nil
	}

	if waitErr != nil {
		exitErr := &ExitError{
			Command:  c.String(),
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
			Err:      waitErr,
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			exitErr.TimedOut = true
		}
		return result, exitErr
	}

	return result, nil
}

// lineWriter captures a stream and hands each complete line to a StreamHandler.
// exec writes to each instance from a single goroutine.
type lineWriter struct {
	buf     bytes.Buffer
	pending []byte
	handler StreamHandler
	isErr   bool
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	if w.handler == nil {
		return len(p), nil
	}

	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexAny(w.pending, "\r\n")
		if i < 0 {
			break
		}
		w.emit(w.pending[:i])
		w.pending = w.pending[i+1:]
	}
	if len(w.pending) > maxPendingLine {
		w.flush()
	}
	return len(p), nil
}

func (w *lineWriter) flush() {
	if len(w.pending) > 0 {
		w.emit(w.pending)
		w.pending = nil
	}
}

func (w *lineWriter) emit(line []byte) {
	if text := strings.TrimSpace(string(line)); text != "" {
		w.handler(text, w.isErr)
	}
}
