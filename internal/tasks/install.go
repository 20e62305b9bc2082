package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Installer installs a project's dependencies with a package manager.
type Installer struct {
	Runner         CommandRunner
	PackageManager string   // e.g., "bun"
	Args           []string // e.g., ["install"]
}

// NewInstaller returns an Installer running "<packageManager> <args...>".
func NewInstaller(runner CommandRunner, packageManager string, args []string) *Installer {
	if len(args) == 0 {
		args = []string{"install"}
	}
	return &Installer{Runner: runner, PackageManager: packageManager, Args: args}
}

// Command returns the command line the installer runs.
func (i *Installer) Command() string {
	return strings.Join(append([]string{i.PackageManager}, i.Args...), " ")
}

// Install runs the install command with dir as working directory, streaming
// its output to out. It blocks until the command exits.
func (i *Installer) Install(ctx context.Context, dir string, out io.Writer) Result {
	manual := fmt.Sprintf("Failed to install dependencies. You can run '%s' manually.", i.Command())

	res, err := i.Runner.Run(ctx, i.PackageManager, i.Args, RunOpts{
		Dir:    dir,
		Stdout: out,
		Stderr: out,
	})
	if err != nil {
		return failed(StepInstall, fmt.Errorf("running %s: %w", i.Command(), err), manual)
	}
	if res.ExitCode != 0 {
		return failed(StepInstall, fmt.Errorf("%s exited with code %d", i.Command(), res.ExitCode), manual)
	}

	return succeeded(StepInstall, "Dependencies installed!")
}
