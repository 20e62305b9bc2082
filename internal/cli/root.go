package cli

import (
	"errors"
	"fmt"

	"github.com/ecruz165/create-ts-router-vite/internal/branding"
	"github.com/ecruz165/create-ts-router-vite/internal/config"
	"github.com/ecruz165/create-ts-router-vite/internal/tasks"
	"github.com/spf13/cobra"
)

// BuildInfo is injected via ldflags at release time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// newRunner returns the runner external commands go through. Tests swap it.
var newRunner = func() tasks.CommandRunner { return tasks.NewExecRunner() }

// NewRootCmd creates the root command. Running it without a subcommand
// starts a project session.
func NewRootCmd(info BuildInfo) *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` creates a new web application from a TanStack Router + Vite
starter, then optionally installs its dependencies and initializes a git repository.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: "+config.FilePath()+")")
	opts.bindFlags(cmd)

	cmd.AddCommand(newVersionCmd(info))
	cmd.AddCommand(newConfigCmd(&opts.configPath))
	cmd.AddCommand(newDoctorCmd(&opts.configPath))

	return cmd
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	cmd := NewRootCmd(BuildInfo{Version: version, Commit: commit, Date: date})
	if err := cmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
