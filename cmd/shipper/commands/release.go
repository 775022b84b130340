package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release",
		Short: "Run the full release pipeline for the current version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			return c.app.Release(cmd.Context(), configPath)
		},
	}
}
