// Command scripthub is the terminal client for a scripthub server.
package main

import (
	"os"

	"github.com/jbvmio/scripthub/client/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
