package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <scriptPath> [-- args...]",
	Short: "Run a script on the server and print its output",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := newClient().RunScript(args[0], args[1:])

		var apiErr *APIError
		switch {
		case errors.As(err, &apiErr):
			if apiErr.Output != "" {
				fmt.Fprint(cmd.ErrOrStderr(), apiErr.Output)
			}
			color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "✗ %s\n", apiErr.Message)
			return err
		case err != nil:
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), output)
		color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "✓ %s completed\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
