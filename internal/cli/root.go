// Package cli implements the cyclebench command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// errSuiteFailed is returned when a suite ran but did not pass. The summary
// has already been printed, so Execute only sets the exit status.
var errSuiteFailed = errors.New("benchmark suite failed")

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "cyclebench",
		Short:   "Measure component mount, update and unmount cost",
		Version: version,
		Long: `cyclebench repeatedly cycles a component through visible and hidden states
on a simulated rendering host, timing the gap between each render request
and its commit, and summarizes the timings into descriptive statistics.

Suites are described in YAML or JSON and may attach thresholds to each run,
making cyclebench usable as a regression gate in CI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, print help
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Verbose output and debug logging")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")

	root.AddCommand(newRunCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newComponentsCmd())

	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return execute(NewRootCmd(), os.Args[1:], os.Stderr)
}

func execute(root *cobra.Command, args []string, stderr io.Writer) error {
	root.SetArgs(args)
	err := root.Execute()
	if err != nil && !errors.Is(err, errSuiteFailed) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return err
}

// newLogger returns a text logger on w, at Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func globalFlags(cmd *cobra.Command) (verbose, noColor bool) {
	verbose, _ = cmd.Flags().GetBool("verbose")
	noColor, _ = cmd.Flags().GetBool("no-color")
	return verbose, noColor
}
