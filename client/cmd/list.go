package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jbvmio/scripthub/catalog"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scripts the server discovered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scripts, err := newClient().ListScripts()
		if err != nil {
			return err
		}
		if len(scripts) == 0 {
			cmd.Println("No scripts found.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSCRIPT\tDESCRIPTION")
		for _, s := range scripts {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", catalog.Text(s.Name), catalog.Text(s.ScriptPath), catalog.Text(s.Description))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
