package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ecruz165/create-ts-router-vite/internal/branding"
	"github.com/spf13/cobra"
)

func newVersionCmd(info BuildInfo) *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if short {
				fmt.Fprintln(out, info.Version)
				return nil
			}

			if asJSON {
				data, err := json.MarshalIndent(map[string]string{
					"version": info.Version,
					"commit":  info.Commit,
					"date":    info.Date,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n",
				branding.CLIName(), info.Version, info.Commit, info.Date)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version info as JSON")
	return cmd
}
