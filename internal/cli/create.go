package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"

	"github.com/ecruz165/create-ts-router-vite/internal/branding"
	"github.com/ecruz165/create-ts-router-vite/internal/config"
	"github.com/ecruz165/create-ts-router-vite/internal/scaffold"
	"github.com/ecruz165/create-ts-router-vite/internal/session"
	"github.com/ecruz165/create-ts-router-vite/internal/tasks"
	"github.com/spf13/cobra"
)

type createOptions struct {
	configPath     string
	name           string
	install        bool
	git            bool
	yes            bool
	templateDir    string
	packageManager string
	dir            string
}

func (o *createOptions) bindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.name, "name", "", "Project name (skips the name prompt)")
	f.BoolVar(&o.install, "install", true, "Install dependencies (skips the install prompt)")
	f.BoolVar(&o.git, "git", true, "Initialize a git repository (skips the git prompt)")
	f.BoolVarP(&o.yes, "yes", "y", false, "Accept the default answer for every prompt")
	f.StringVar(&o.templateDir, "template", "", "Template directory to copy instead of the bundled starter")
	f.StringVar(&o.packageManager, "package-manager", "", "Package manager used for install and next steps (default from config)")
	f.StringVar(&o.dir, "dir", "", "Parent directory for the new project (default: current directory)")
}

// presets turns explicitly set flags into answers the session will not ask
// for. With --yes every unset answer takes its default.
func (o *createOptions) presets(cmd *cobra.Command, settings config.Settings) session.Answers {
	var a session.Answers
	flags := cmd.Flags()

	if flags.Changed("name") {
		name := o.name
		a.Name = &name
	}
	if flags.Changed("install") {
		install := o.install
		a.Install = &install
	}
	if flags.Changed("git") {
		git := o.git
		a.Git = &git
	}

	if o.yes {
		if a.Name == nil {
			name := settings.DefaultName
			a.Name = &name
		}
		if a.Install == nil {
			install := true
			a.Install = &install
		}
		if a.Git == nil && settings.GitPolicy == config.GitPolicyPrompt {
			git := true
			a.Git = &git
		}
	}
	return a
}

func (o *createOptions) template() (fs.FS, error) {
	if o.templateDir == "" {
		return scaffold.DefaultTemplate(), nil
	}
	info, err := os.Stat(o.templateDir)
	if err != nil {
		return nil, fmt.Errorf("reading template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template %s is not a directory", o.templateDir)
	}
	return os.DirFS(o.templateDir), nil
}

func (o *createOptions) materializer() (*scaffold.Materializer, error) {
	if o.templateDir == "" {
		return scaffold.New(scaffold.DefaultTemplate(), o.dir), nil
	}
	if _, err := o.template(); err != nil {
		return nil, err
	}
	return scaffold.NewFromDir(o.templateDir, o.dir), nil
}

func loadSettings(configPath string) (config.Settings, error) {
	if err := config.Load(configPath); err != nil {
		return config.Settings{}, err
	}
	settings := config.Current()
	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

func newVCS(settings config.Settings, runner tasks.CommandRunner) tasks.VCS {
	if settings.GitBackend == config.GitBackendBuiltin {
		return tasks.NewGitBuiltin(settings.CommitMessage)
	}
	return tasks.NewGitCLI(runner, settings.CommitMessage)
}

func runCreate(cmd *cobra.Command, opts *createOptions) error {
	settings, err := loadSettings(opts.configPath)
	if err != nil {
		return err
	}
	if opts.packageManager != "" {
		settings.PackageManager = opts.packageManager
	}

	materializer, err := opts.materializer()
	if err != nil {
		return err
	}

	runner := newRunner()
	installer := tasks.NewInstaller(runner, settings.PackageManager, settings.InstallArgs)
	out := cmd.OutOrStdout()

	s := &session.Session{
		Prompter:       session.NewLinePrompter(cmd.InOrStdin(), out),
		UI:             session.NewUI(out),
		Materializer:   materializer,
		Installer:      installer,
		VCS:            newVCS(settings, runner),
		Title:          branding.CLIName(),
		Description:    branding.Description(),
		DefaultName:    settings.DefaultName,
		DevCommand:     strings.Join([]string{settings.PackageManager, "run", settings.DevScript}, " "),
		InstallCommand: installer.Command(),
		GitPolicy:      session.GitPolicy(settings.GitPolicy),
		Preset:         opts.presets(cmd, settings),
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	if _, err := s.Run(ctx); err != nil {
		if errors.Is(err, session.ErrCancelled) {
			return nil
		}
		return &reportedError{err: err}
	}
	return nil
}

// reportedError marks an error the session already showed to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// commandContext returns cmd's context, or Background when cmd was run
// without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
