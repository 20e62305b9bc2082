package tasks

import (
	"context"
	"errors"
	"strings"
)

// call records one invocation seen by fakeRunner.
type call struct {
	Name string
	Args []string
	Dir  string
}

func (c call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// fakeRunner records calls and answers from a script keyed by command line.
type fakeRunner struct {
	calls   []call
	exit    map[string]int
	spawn   map[string]bool
	stdout  map[string]string
	streams []bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		exit:   map[string]int{},
		spawn:  map[string]bool{},
		stdout: map[string]string{},
	}
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	c := call{Name: name, Args: args, Dir: opts.Dir}
	f.calls = append(f.calls, c)
	f.streams = append(f.streams, opts.Stdout != nil)

	line := c.String()
	if f.spawn[line] {
		return CmdResult{}, errors.New("executable file not found in $PATH")
	}
	out := f.stdout[line]
	if opts.Stdout != nil && out != "" {
		opts.Stdout.Write([]byte(out))
	}
	return CmdResult{Stdout: out, Stderr: "stderr of " + line, ExitCode: f.exit[line]}, nil
}
