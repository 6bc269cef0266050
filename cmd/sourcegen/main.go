// Command sourcegen keeps parser test fixtures in step with the tests
// declared in grammar source comments.
//
// A comment block whose first line is "test <name>" or "test_err <name>"
// declares a test; the rest of the block is the input text. sourcegen sync
// writes each test to <ok-dir>/NNNN_<name>.<ext> or <err-dir>/NNNN_<name>.<ext>,
// keeping the number of tests that already have a fixture. sourcegen check
// does the same without writing and exits 1 when a fixture is missing or
// out of date.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/flanksource/clicky"
	"github.com/flanksource/clicky/shutdown"
	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	commit     = "unknown"
	date       = "unknown"
	workingDir string
	exitCode   int
)

var rootCmd = &cobra.Command{
	Use:   "sourcegen",
	Short: "Generate parser test fixtures from inline source comments",
	Long: `Extracts "test <name>" and "test_err <name>" comment blocks from the
grammar sources and syncs them into the ok and err fixture directories.

Existing fixtures keep their numbers and are only rewritten when their text
changes. A fixture whose test was removed from source is an error and has
to be deleted by hand.

Settings are read from .sourcegen.yaml in the home directory, the git root
and the working directory, in that order, and can be overridden by flags.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		clicky.Flags.UseFlags()
	},
}

func getWorkingDir() (string, error) {
	if workingDir == "" {
		return os.Getwd()
	}
	absPath, err := filepath.Abs(workingDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("working directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("working directory is not a directory: %s", absPath)
	}
	return absPath, nil
}

func init() {
	clicky.BindAllFlags(rootCmd.PersistentFlags(), "format")
	logger.Configure(logger.Flags{LogToStderr: true, Color: true})
	rootCmd.PersistentFlags().StringVar(&workingDir, "cwd", "", "Working directory")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sourcegen %s (commit: %s, built: %s, go: %s)\n",
				version, commit, date, runtime.Version())
		},
	})
}

func main() {
	defer shutdown.RecoverAndShutdown()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
