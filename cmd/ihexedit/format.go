package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	intelhex "github.com/MineSlash/intelhex-editor"
)

var formatOutput string

func init() {
	cmd := newFormatCmd()
	cmd.Flags().StringVarP(&formatOutput, "output", "o", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(cmd)
}

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Rewrite a HEX file with 32 byte records",
		Long: `The format command loads an Intel HEX file and writes it back with
32 byte aligned data records, one extended linear address record per
64 KiB segment and gaps filled with FF.

Example:
  ihexedit format firmware.hex
  ihexedit format firmware.hex -o normalized.hex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(args)
		},
	}
	return cmd
}

func runFormat(args []string) error {
	path := args[0]

	printVerbose("Opening file: %s\n", path)

	e, err := intelhex.Open(path)
	if err != nil {
		return fmt.Errorf("failed to load: %w", err)
	}

	if formatOutput != "" {
		if err := e.Save(formatOutput); err != nil {
			return fmt.Errorf("failed to save: %w", err)
		}
		printVerbose("Saved: %s\n", formatOutput)
		return nil
	}
	return e.Memory().DumpIntelHex(os.Stdout)
}
