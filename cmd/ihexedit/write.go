package main

import (
	"fmt"

	"github.com/spf13/cobra"

	intelhex "github.com/MineSlash/intelhex-editor"
)

var writeOutput string

func init() {
	cmd := newWriteCmd()
	cmd.Flags().StringVarP(&writeOutput, "output", "o", "", "Write the result to this file instead of the input")
	rootCmd.AddCommand(cmd)
}

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <file> <address> <data>",
		Short: "Overwrite bytes at an address and save",
		Long: `The write command stores data, given as hex digits with an optional 0x
prefix, at address and saves the image. An odd number of digits is padded
with a leading zero. The input file is replaced unless --output is given.

Example:
  ihexedit write firmware.hex 0x803000A0 DEADBEEF
  ihexedit write firmware.hex 0x803000A0 DEADBEEF -o patched.hex`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(args)
		},
	}
	return cmd
}

func runWrite(args []string) error {
	path := args[0]

	printVerbose("Opening file: %s\n", path)

	e, err := intelhex.Open(path)
	if err != nil {
		return fmt.Errorf("failed to load: %w", err)
	}
	if err := e.Write(args[1], args[2]); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}

	out := writeOutput
	if out == "" {
		out = path
	}
	if err := e.Save(out); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	printVerbose("Saved: %s\n", out)
	return nil
}
