// Package cli implements the runlog CLI commands.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "runlog",
	Short: "Run a command and keep a timestamped transcript of its output",
	Long: `Runlog runs a command and duplicates its merged stdout/stderr to both
the terminal and a timestamped log file in the current directory, framed
by start and end banners. Past runs can be listed, shown, tailed, and
browsed interactively.`,
	// Errors are rendered once, in Execute, so the ExitError carrying a
	// child's exit status out to main is never printed as an error.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI. Failures of the wrapper itself are printed to
// stderr; a child's non-zero exit is not a wrapper failure and passes
// through silently (the transcript already tells that story).
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, styleError.Render("Error:"), err)
		}
	}
	return err
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
