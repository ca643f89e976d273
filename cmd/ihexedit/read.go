package main

import (
	"fmt"

	"github.com/spf13/cobra"

	intelhex "github.com/MineSlash/intelhex-editor"
)

func init() {
	rootCmd.AddCommand(newReadCmd())
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <file> <address> [length]",
		Short: "Print bytes at an address as hex",
		Long: `The read command prints length bytes starting at address as upper-case
hex digits. Address and length are hex numbers with an optional 0x prefix.
Unpopulated addresses read as FF. Length defaults to 1.

Example:
  ihexedit read firmware.hex 0x803000A0 0x10`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(args)
		},
	}
	return cmd
}

func runRead(args []string) error {
	path := args[0]
	length := "1"
	if len(args) == 3 {
		length = args[2]
	}

	printVerbose("Opening file: %s\n", path)

	e, err := intelhex.Open(path)
	if err != nil {
		return fmt.Errorf("failed to load: %w", err)
	}

	data, err := e.Read(args[1], length)
	if err != nil {
		return fmt.Errorf("failed to read: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]string{"address": args[1], "data": data})
	}
	printInfo("%s\n", data)
	return nil
}
