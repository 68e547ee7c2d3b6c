// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/voltlab/psuwatch/pkg/capture"
	"github.com/voltlab/psuwatch/pkg/cmpsu"
)

var replayTimed bool

var replayCmd = &cobra.Command{
	Use:   "replay <capture-file>",
	Short: "Replay a capture file through the decoder",
	Long: `Feed a recorded capture through the decoder and print the resulting
sensor table and packet statistics.

With --timed, reports are delivered at their recorded offsets instead of
as fast as possible.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayTimed, "timed", false, "Honor recorded report timing")
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open capture file: %w", err)
	}
	defer f.Close()

	session := newSession()
	r := capture.NewReader(f)

	var lastOffset uint64
	for {
		e, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if replayTimed && e.OffsetMs > lastOffset {
			time.Sleep(time.Duration(e.OffsetMs-lastOffset) * time.Millisecond)
		}
		lastOffset = e.OffsetMs

		session.OnMessage(e.Data)
	}

	printTable(session.Table())
	fmt.Println()
	fmt.Print(session.Stats().String())
	return nil
}

// printTable prints every visible slot with its latest value.
func printTable(t *cmpsu.Table) {
	for _, cat := range cmpsu.Categories() {
		for ch := 0; ch < cat.Channels(); ch++ {
			value := "no data"
			if v, ok := t.Value(cat, ch); ok {
				value = formatValue(cat, v)
			}
			fmt.Printf("%-22s %s\n", slotName(t, cat, ch), value)
		}
	}
}
