package tasks

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"sync"
)

// RunOpts holds optional parameters for command execution.
type RunOpts struct {
	Dir    string    // working directory
	Stdout io.Writer // live copy of stdout (optional)
	Stderr io.Writer // live copy of stderr (optional)
}

// CmdResult holds the captured result of a command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner runs external commands.
type CommandRunner interface {
	// Run executes name with args. A process that ran and exited non-zero is
	// reported through CmdResult.ExitCode with a nil error; the error is for
	// failures to execute at all (binary not found, ctx canceled, io failure).
	Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error)
}

// ExecRunner is the os/exec implementation of CommandRunner.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command, capturing stdout/stderr while also streaming
// them to the writers in opts.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir

	// os/exec copies each stream on its own goroutine; the live writers
	// share one lock so a writer passed for both streams sees one Write at
	// a time.
	var mu sync.Mutex
	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&stdout, opts.Stdout, &mu)
	cmd.Stderr = tee(&stderr, opts.Stderr, &mu)

	err := cmd.Run()

	result := CmdResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

func tee(buf *bytes.Buffer, w io.Writer, mu *sync.Mutex) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(&lockedWriter{mu: mu, w: w}, buf)
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
