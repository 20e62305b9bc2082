package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ecruz165/create-ts-router-vite/internal/tasks"
	"github.com/spf13/viper"
)

// fakeRunner records commands and answers them from a script keyed by
// command line.
type fakeRunner struct {
	calls   []string
	dirs    []string
	stdout  map[string]string
	exit    map[string]int
	missing map[string]bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		stdout:  map[string]string{},
		exit:    map[string]int{},
		missing: map[string]bool{},
	}
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string, opts tasks.RunOpts) (tasks.CmdResult, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, line)
	f.dirs = append(f.dirs, opts.Dir)

	if f.missing[name] {
		return tasks.CmdResult{}, errors.New("executable file not found in $PATH")
	}
	return tasks.CmdResult{Stdout: f.stdout[line], ExitCode: f.exit[line]}, nil
}

// isolate points the config layer at an empty home directory and resets
// Viper around the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CTRV_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)
}

// useRunner makes commands run through r for the duration of the test.
func useRunner(t *testing.T, r tasks.CommandRunner) {
	t.Helper()
	prev := newRunner
	newRunner = func() tasks.CommandRunner { return r }
	t.Cleanup(func() { newRunner = prev })
}

// execute runs the root command with args, feeding stdin to prompts, and
// returns everything written to stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-01-02"})

	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}
