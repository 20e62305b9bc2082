package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ecruz165/create-ts-router-vite/internal/scaffold"
	"github.com/ecruz165/create-ts-router-vite/internal/tasks"
)

// State is a step of the session flow.
type State int

const (
	StateIntro State = iota
	StateAskName
	StateAskInstall
	StateAskGit
	StateMaterialize
	StateInstall
	StateInitVCS
	StateOutro
	StateAborted
)

var stateNames = map[State]string{
	StateIntro:       "Intro",
	StateAskName:     "AskName",
	StateAskInstall:  "AskInstall",
	StateAskGit:      "AskGit",
	StateMaterialize: "Materialize",
	StateInstall:     "Install",
	StateInitVCS:     "InitVCS",
	StateOutro:       "Outro",
	StateAborted:     "Aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// GitPolicy decides whether the user is asked about version control.
type GitPolicy string

const (
	GitPrompt GitPolicy = "prompt"
	GitAlways GitPolicy = "always"
	GitNever  GitPolicy = "never"
)

// Request is the set of answers a project is created from.
type Request struct {
	Name                     string
	InstallDependencies      bool
	InitializeVersionControl bool
}

// Answers holds answers supplied before the session starts. A nil field is
// asked interactively.
type Answers struct {
	Name    *string
	Install *bool
	Git     *bool
}

// Materializer creates the project directory.
type Materializer interface {
	Materialize(name string) (*scaffold.Result, error)
}

// Installer installs dependencies in a project directory.
type Installer interface {
	Install(ctx context.Context, dir string, out io.Writer) tasks.Result
}

// Report describes a finished (or aborted) session.
type Report struct {
	Request Request
	Project *scaffold.Result
	Steps   []tasks.Result
	States  []State
}

// Final returns the last state the session entered.
func (r *Report) Final() State {
	if len(r.States) == 0 {
		return StateIntro
	}
	return r.States[len(r.States)-1]
}

// Session wires the collaborators of one run.
type Session struct {
	Prompter     Prompter
	UI           *UI
	Materializer Materializer
	Installer    Installer
	VCS          tasks.VCS

	Title       string
	Description string
	DefaultName string
	// DevCommand is shown in the next steps, e.g. "bun run dev".
	DevCommand string
	// InstallCommand is shown in the next steps when dependencies were not
	// installed, e.g. "bun install".
	InstallCommand string

	GitPolicy GitPolicy
	Preset    Answers
}

// Run walks the session from Intro to Outro. It returns ErrCancelled when
// the user abandons a prompt and the materialization error when the project
// could not be created. Setup step failures are reported in the Report and
// never returned.
func (s *Session) Run(ctx context.Context) (*Report, error) {
	if s.Prompter == nil || s.UI == nil || s.Materializer == nil {
		return nil, errors.New("session is missing a prompter, UI or materializer")
	}

	report := &Report{}
	enter := func(st State) { report.States = append(report.States, st) }
	abort := func(msg string) {
		enter(StateAborted)
		s.UI.Cancel(msg)
	}

	enter(StateIntro)
	s.UI.Intro(s.Title)
	if s.Description != "" {
		s.UI.Note(s.Description, "Overview")
	}

	req, err := s.ask(ctx, enter)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			abort("Operation cancelled.")
		} else {
			abort(err.Error())
		}
		return report, err
	}
	report.Request = req

	enter(StateMaterialize)
	s.UI.Start(fmt.Sprintf("Creating project %s...", req.Name))
	project, err := s.Materializer.Materialize(req.Name)
	if err != nil {
		abort(fmt.Sprintf("Failed to create project: %v", err))
		return report, err
	}
	report.Project = project
	s.UI.Stop(fmt.Sprintf("Project '%s' created successfully!", req.Name))
	for _, w := range project.Warnings {
		s.UI.Warn(w)
	}

	// Setup steps run to completion even if the user interrupts.
	stepCtx := context.WithoutCancel(ctx)

	if req.InstallDependencies && s.Installer != nil {
		enter(StateInstall)
		s.UI.Start("Installing dependencies...")
		s.finish(report, s.Installer.Install(stepCtx, project.OutputDir, s.UI.Writer()))
	}

	if req.InitializeVersionControl && s.VCS != nil {
		enter(StateInitVCS)
		s.UI.Start("Initializing git repository...")
		s.finish(report, s.VCS.Init(stepCtx, project.OutputDir))
	}

	enter(StateOutro)
	s.UI.Note(s.nextSteps(req, report), "Next steps")
	s.UI.Outro(fmt.Sprintf("🎉 You're all set! Navigate to '%s' and start coding!", req.Name))
	return report, nil
}

// ask collects the Request, preferring preset answers over prompts.
func (s *Session) ask(ctx context.Context, enter func(State)) (Request, error) {
	var req Request

	enter(StateAskName)
	if s.Preset.Name != nil {
		req.Name = strings.TrimSpace(*s.Preset.Name)
	} else {
		name, err := s.Prompter.Text(ctx, "What is the name of your app?", s.DefaultName, s.DefaultName)
		if err != nil {
			return req, err
		}
		req.Name = strings.TrimSpace(name)
	}

	enter(StateAskInstall)
	if s.Preset.Install != nil {
		req.InstallDependencies = *s.Preset.Install
	} else {
		install, err := s.Prompter.Confirm(ctx, "Install dependencies?", true)
		if err != nil {
			return req, err
		}
		req.InstallDependencies = install
	}

	enter(StateAskGit)
	switch {
	case s.Preset.Git != nil:
		req.InitializeVersionControl = *s.Preset.Git
	case s.GitPolicy == GitAlways:
		req.InitializeVersionControl = true
	case s.GitPolicy == GitNever:
		req.InitializeVersionControl = false
	default:
		git, err := s.Prompter.Confirm(ctx, "Initialize a git repository?", true)
		if err != nil {
			return req, err
		}
		req.InitializeVersionControl = git
	}

	return req, nil
}

func (s *Session) finish(report *Report, res tasks.Result) {
	report.Steps = append(report.Steps, res)
	if res.OK() {
		s.UI.Stop(res.Message)
		return
	}
	s.UI.Warn(res.Message, res.Err.Error())
}

func (s *Session) nextSteps(req Request, report *Report) string {
	lines := []string{"cd " + req.Name}
	if s.InstallCommand != "" && !report.installed() {
		lines = append(lines, s.InstallCommand)
	}
	dev := s.DevCommand
	if dev == "" {
		dev = "bun run dev"
	}
	return strings.Join(append(lines, dev), "\n")
}

func (r *Report) installed() bool {
	for _, st := range r.Steps {
		if st.Step == tasks.StepInstall {
			return st.OK()
		}
	}
	return false
}
