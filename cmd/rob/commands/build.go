package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [targets...]",
		Short: "Build the specified packages and their dependencies",
		Long: `Build resolves the full dependency order for the specified targets and
installs every package not already provided by the module system.

Targets use the module identity syntax name/version, with an optional
toolchain segment: rob build gzip/1.4/GCC-4.6.3`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return c.app.Run(cmd.Context(), args, runOptions(cmd))
		},
	}
}
