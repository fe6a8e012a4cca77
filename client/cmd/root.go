package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "scripthub",
	Short: "scripthub lists and runs scripts on a scripthub server",
	Long: `scripthub is the command-line client for a scripthub server.

  List the scripts the server discovered:
    scripthub list

  Run a script with arguments:
    scripthub run scripts/backup.js -- --target /data

The server URL is taken from --url or the SCRIPTHUB_URL environment variable.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix("SCRIPTHUB")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("url", "http://localhost:3000", "scripthub server URL")
	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
}

func newClient() *ScriptClient {
	return NewScriptClient(viper.GetString("url"))
}
