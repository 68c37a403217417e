// Cliform presents a declarative CLI command tree as a form-based interface.
//
// It introspects its own cobra command tree, renders one input control per
// parameter, reconstructs the equivalent command-line invocation from the
// form values, and runs it as a child process with live output streaming.
// The binary doubles as a showcase CLI: the demo commands under the root are
// the data the interface operates on.
//
// Usage:
//
//	cliform [command] [flags]
//
// Running without arguments launches the interactive interface.
// See 'cliform --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwheeler/cliform/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cliform",
	Short: "Form-based interface for a CLI command tree",
	Long: `Cliform turns a declarative command tree into a form-based interface.

Every command below becomes a form: one input per parameter, a Run button
that rebuilds and executes the equivalent command line, and a live log of
the child process output.

If no command is specified, the interactive interface will launch.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the interface when no subcommand is given
		return runUI(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cliform %s\n", version.Full())
	},
}
