// Package main is the entry point for the runlog CLI.
package main

import (
	"errors"
	"os"

	"github.com/runlog-io/runlog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			// Propagate the child's exit status as our own.
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
