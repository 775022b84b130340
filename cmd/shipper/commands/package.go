package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPackageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "package <family>",
		Short: "Build and package a single platform family without publishing",
		Long: `Build and package a single platform family without publishing.

Known families: debian, arch, windows, macos.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			return c.app.Package(cmd.Context(), configPath, args[0])
		},
	}
}
