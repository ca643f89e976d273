package main

import (
	"fmt"

	"github.com/spf13/cobra"

	intelhex "github.com/MineSlash/intelhex-editor"
)

func init() {
	rootCmd.AddCommand(newSegmentsCmd())
}

func newSegmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segments <file>",
		Short: "List contiguous data segments",
		Long: `The segments command lists every run of consecutive populated addresses
with its start address and length.

Example:
  ihexedit segments firmware.hex --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSegments(args)
		},
	}
	return cmd
}

type segmentInfo struct {
	Address string `json:"address"`
	Length  int    `json:"length"`
}

func runSegments(args []string) error {
	path := args[0]

	printVerbose("Opening file: %s\n", path)

	e, err := intelhex.Open(path)
	if err != nil {
		return fmt.Errorf("failed to load: %w", err)
	}

	segs := []segmentInfo{}
	for _, s := range e.Memory().GetDataSegments() {
		segs = append(segs, segmentInfo{
			Address: fmt.Sprintf("0x%08X", s.Address),
			Length:  len(s.Data),
		})
	}

	if jsonOut {
		return printJSON(segs)
	}
	for _, s := range segs {
		printInfo("%s %d\n", s.Address, s.Length)
	}
	return nil
}
