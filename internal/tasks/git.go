package tasks

import (
	"context"
	"fmt"
	"strings"
)

// DefaultCommitMessage is used when no commit message is configured.
const DefaultCommitMessage = "Initial commit"

// VCS initializes version control in a project directory.
type VCS interface {
	Init(ctx context.Context, dir string) Result
}

// GitCLI initializes a repository by shelling out to the git binary.
type GitCLI struct {
	Runner        CommandRunner
	CommitMessage string
}

// NewGitCLI returns a GitCLI committing with message.
func NewGitCLI(runner CommandRunner, message string) *GitCLI {
	return &GitCLI{Runner: runner, CommitMessage: message}
}

func (g *GitCLI) steps() [][]string {
	msg := g.CommitMessage
	if msg == "" {
		msg = DefaultCommitMessage
	}
	return [][]string{
		{"init"},
		{"add", "-A"},
		{"commit", "-m", msg},
	}
}

// Init runs git init, git add -A and git commit in dir, in that order.
// Output is captured, not shown. The first failing command stops the
// sequence; its output is included in the returned error.
func (g *GitCLI) Init(ctx context.Context, dir string) Result {
	const manual = "Failed to initialize git repository. You can run 'git init' manually."

	for _, args := range g.steps() {
		cmdLine := "git " + strings.Join(args, " ")

		res, err := g.Runner.Run(ctx, "git", args, RunOpts{Dir: dir})
		if err != nil {
			return failed(StepGit, fmt.Errorf("%s: %w", cmdLine, err), manual)
		}
		if res.ExitCode != 0 {
			output := strings.TrimSpace(res.Stderr + "\n" + res.Stdout)
			return failed(StepGit, fmt.Errorf("%s exited with code %d\n%s", cmdLine, res.ExitCode, output), manual)
		}
	}

	return succeeded(StepGit, "Git repository initialized!")
}
