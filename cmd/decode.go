// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voltlab/psuwatch/pkg/cmpsu"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <packet>...",
	Short: "Decode packet strings given on the command line",
	Long: `Decode one or more telemetry packets passed as arguments and print the
result of each, without touching any device.

Examples:
  psuwatch decode '[V1012.5]'
  psuwatch decode '[P2001234/005678]' '[R101200]'

Exit codes:
  0 - All packets decoded successfully
  1 - At least one packet was rejected`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	table := cmpsu.NewTable()
	rejected := 0

	for _, arg := range args {
		readings, err := cmpsu.Decode([]byte(arg))
		if err != nil {
			fmt.Printf("%-24s rejected: %v\n", arg, err)
			rejected++
			continue
		}
		for _, r := range readings {
			fmt.Printf("%-24s %-22s %s\n", arg, slotName(table, r.Category, r.Channel), formatValue(r.Category, r.Value))
		}
	}

	if rejected > 0 {
		os.Exit(1)
	}
	return nil
}
