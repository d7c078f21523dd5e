// Command neolithd wires the driver core packages into a runnable server:
// typed configuration, shared logging, the user table, the dispatcher tick
// loop, and the telnet/websocket listeners.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "neolithd",
		Short: "neolithd runs the interactive command dispatcher",
	}
	root.AddCommand(newServeCmd())
	return root
}
