package main

import (
	"fmt"

	"github.com/spf13/cobra"

	intelhex "github.com/MineSlash/intelhex-editor"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show the entry point and extent of a HEX file",
		Long: `The info command loads an Intel HEX file and reports its entry point,
the span from the lowest to the highest populated address, the number of
populated bytes and the number of contiguous segments.

Example:
  ihexedit info firmware.hex
  ihexedit info firmware.hex --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type fileInfo struct {
	File          string `json:"file"`
	StartAddress  string `json:"start_address,omitempty"`
	ExplicitStart bool   `json:"explicit_start"`
	Length        uint64 `json:"length"`
	Bytes         int    `json:"bytes"`
	Segments      int    `json:"segments"`
	Lowest        string `json:"lowest,omitempty"`
	Highest       string `json:"highest,omitempty"`
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Opening file: %s\n", path)

	e, err := intelhex.Open(path)
	if err != nil {
		return fmt.Errorf("failed to load: %w", err)
	}
	mem := e.Memory()

	info := fileInfo{
		File:          path,
		ExplicitStart: mem.HasExplicitStartAddress(),
		Length:        e.Length(),
		Bytes:         mem.Len(),
		Segments:      len(mem.GetDataSegments()),
	}
	info.StartAddress, _ = e.StartAddress()
	if lo, hi, ok := mem.Bounds(); ok {
		info.Lowest = fmt.Sprintf("0x%08X", lo)
		info.Highest = fmt.Sprintf("0x%08X", hi)
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("File: %s\n", info.File)
	if info.StartAddress == "" {
		printInfo("  Start address: none\n")
	} else if info.ExplicitStart {
		printInfo("  Start address: %s\n", info.StartAddress)
	} else {
		printInfo("  Start address: %s (first data record)\n", info.StartAddress)
	}
	printInfo("  Length: %d\n", info.Length)
	if info.Bytes > 0 {
		printInfo("  Range: %s - %s\n", info.Lowest, info.Highest)
	}
	printInfo("  Bytes: %d\n", info.Bytes)
	printInfo("  Segments: %d\n", info.Segments)
	return nil
}
