//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecruz165/create-ts-router-vite/internal/cli"
	"github.com/ecruz165/create-ts-router-vite/internal/scaffold"
	"github.com/ecruz165/create-ts-router-vite/internal/session"
	"github.com/ecruz165/create-ts-router-vite/internal/tasks"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// TestFullSession drives the whole flow against real collaborators:
// template on disk -> materialize -> install via a real process -> builtin
// git -> verify the repository.
func TestFullSession(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplate(t, env.TemplateDir)

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var out bytes.Buffer
	s := &session.Session{
		Prompter:     session.NewLinePrompter(strings.NewReader("shop\ny\ny\n"), &out),
		UI:           session.NewUI(&out),
		Materializer: &scaffold.Materializer{Template: os.DirFS(env.TemplateDir), BaseDir: env.BaseDir},
		// Stands in for the package manager: proves the command runs inside
		// the project directory.
		Installer:   tasks.NewInstaller(tasks.NewExecRunner(), "sh", []string{"-c", "echo ok > .installed"}),
		VCS:         tasks.NewGitBuiltin("Initial commit"),
		Title:       "create-ts-router-vite",
		DefaultName: "my-super-app",
		DevCommand:  "bun run dev",
		GitPolicy:   session.GitPrompt,
	}

	report, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}
	if report.Final() != session.StateOutro {
		t.Fatalf("Final() = %v, want Outro", report.Final())
	}

	project := filepath.Join(env.BaseDir, "shop")

	// Step 1: the tree was mirrored and post-processed.
	assertFileExists(t, filepath.Join(project, "index.html"))
	assertFileExists(t, filepath.Join(project, "src", "routes", "__root.tsx"))
	assertFileContains(t, filepath.Join(project, ".gitignore"), "node_modules")
	assertFileNotExists(t, filepath.Join(project, "_gitignore"))
	assertFileContains(t, filepath.Join(project, "package.json"), `"name": "shop",`)
	assertFileContains(t, filepath.Join(project, "package.json"), `"build": "vite build && tsc"`)

	// Step 2: the install command ran in the project directory.
	assertFileContains(t, filepath.Join(project, ".installed"), "ok")

	// Step 3: exactly one commit holding the project files.
	repo, err := git.PlainOpen(project)
	if err != nil {
		t.Fatalf("PlainOpen: %v", err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatalf("CommitObject: %v", err)
	}
	if commit.Message != "Initial commit" {
		t.Errorf("commit message = %q", commit.Message)
	}
	if commit.NumParents() != 0 {
		t.Errorf("expected a root commit, got %d parents", commit.NumParents())
	}

	files, err := commit.Files()
	if err != nil {
		t.Fatal(err)
	}
	var tracked []string
	if err := files.ForEach(func(f *object.File) error {
		tracked = append(tracked, f.Name)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{".gitignore", "package.json", "src/main.tsx"} {
		if !contains(tracked, want) {
			t.Errorf("commit is missing %s (tracked: %v)", want, tracked)
		}
	}

	// The original template is untouched.
	assertFileExists(t, filepath.Join(env.TemplateDir, "_gitignore"))
	assertFileContains(t, filepath.Join(env.TemplateDir, "package.json"), "template-placeholder")
}

// TestSecondRunRefusesExistingProject checks the pre-existence rule through
// the command surface: the second run fails and writes nothing.
func TestSecondRunRefusesExistingProject(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplate(t, env.TemplateDir)
	t.Setenv("CTRV_GIT_BACKEND", "builtin")

	run := func() (string, error) {
		cmd := cli.NewRootCmd(cli.BuildInfo{Version: "test"})
		var out bytes.Buffer
		cmd.SetIn(strings.NewReader(""))
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{
			"--dir", env.BaseDir,
			"--template", env.TemplateDir,
			"--name", "again",
			"--install=false",
			"--git",
		})
		err := cmd.Execute()
		return out.String(), err
	}

	if out, err := run(); err != nil {
		t.Fatalf("first run: %v\n%s", err, out)
	}
	marker := filepath.Join(env.BaseDir, "again", "marker.txt")
	writeFile(t, marker, "mine")

	out, err := run()
	if !errors.Is(err, scaffold.ErrProjectExists) {
		t.Fatalf("second run error = %v, want ErrProjectExists\n%s", err, out)
	}
	assertFileContains(t, marker, "mine")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
