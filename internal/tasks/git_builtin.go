package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/ecruz165/create-ts-router-vite/internal/branding"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitBuiltin initializes a repository in-process with go-git, for machines
// without a git binary on PATH.
type GitBuiltin struct {
	CommitMessage string
	// Author overrides the identity read from the global git config.
	Author *object.Signature
}

// NewGitBuiltin returns a GitBuiltin committing with message.
func NewGitBuiltin(message string) *GitBuiltin {
	return &GitBuiltin{CommitMessage: message}
}

// Init creates a repository in dir, stages every file and records a single
// commit. The first failing step stops the sequence.
func (g *GitBuiltin) Init(ctx context.Context, dir string) Result {
	const manual = "Failed to initialize git repository. You can run 'git init' manually."

	if err := ctx.Err(); err != nil {
		return failed(StepGit, err, manual)
	}

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return failed(StepGit, fmt.Errorf("initializing repository: %w", err), manual)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return failed(StepGit, fmt.Errorf("opening worktree: %w", err), manual)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return failed(StepGit, fmt.Errorf("staging files: %w", err), manual)
	}

	msg := g.CommitMessage
	if msg == "" {
		msg = DefaultCommitMessage
	}
	if _, err := wt.Commit(msg, &git.CommitOptions{Author: g.signature()}); err != nil {
		return failed(StepGit, fmt.Errorf("creating initial commit: %w", err), manual)
	}

	return succeeded(StepGit, "Git repository initialized!")
}

// signature resolves the commit author: explicit Author, then user.name and
// user.email from the global git config, then the CLI's own name.
func (g *GitBuiltin) signature() *object.Signature {
	if g.Author != nil {
		sig := *g.Author
		if sig.When.IsZero() {
			sig.When = time.Now()
		}
		return &sig
	}

	sig := &object.Signature{
		Name:  branding.DisplayName(),
		Email: branding.CLIName() + "@localhost",
		When:  time.Now(),
	}
	if cfg, err := gitconfig.LoadConfig(gitconfig.GlobalScope); err == nil && cfg.User.Name != "" {
		sig.Name = cfg.User.Name
		sig.Email = cfg.User.Email
	}
	return sig
}
