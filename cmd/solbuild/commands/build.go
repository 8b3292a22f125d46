package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Compile the project, reusing cached results where possible",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := workdir(args)
			if err != nil {
				return err
			}
			return c.app.Run(cmd.Context(), cwd)
		},
	}
	return cmd
}

func workdir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return os.Getwd()
}
