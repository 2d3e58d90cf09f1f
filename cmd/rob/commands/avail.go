package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newAvailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avail",
		Short: "List the modules the configured module tree provides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := c.app.Available(runOptions(cmd))
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
