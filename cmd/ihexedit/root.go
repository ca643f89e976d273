package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MineSlash/intelhex-editor/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "ihexedit",
	Short: "Inspect and patch Intel HEX files",
	Long: `ihexedit reads Intel HEX files into a sparse memory image, reads and
writes bytes at absolute addresses and writes the image back as Intel HEX
with 32 byte data records.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write verbose logs as JSON")
}

// initLogger sends codec logs to stderr when verbose output is enabled
func initLogger() {
	logger.Init(logger.Options{
		Enabled: verbose && !quiet,
		Writer:  os.Stderr,
		Level:   slog.LevelDebug,
		JSON:    logJSON,
	})
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
