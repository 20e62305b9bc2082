package cli

import (
	"fmt"

	"github.com/ecruz165/create-ts-router-vite/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long:  fmt.Sprintf("Read and write settings stored at %s.", config.FilePath()),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(*configPath); err != nil {
				return err
			}
			key, value := args[0], args[1]
			if err := config.Set(*configPath, key, value); err != nil {
				return fmt.Errorf("setting config key %q: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)

			if err := config.Current().Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(*configPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
			return nil
		},
	})

	return cmd
}
