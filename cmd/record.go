// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/voltlab/psuwatch/pkg/capture"
)

var recordOut string

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record raw telemetry reports to a capture file",
	Long: `Capture raw reports from the connection to a CBOR log file, with the
arrival offset of each report. The capture can be fed back through the
decoder with 'psuwatch replay'.

Reports are stored exactly as received, so a replay exercises the decoder
with the original byte stream, rejected packets included.`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().StringVarP(&recordOut, "out", "o", "psu.capture", "Capture file to write")
}

func runRecord(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	f, err := os.Create(recordOut)
	if err != nil {
		return fmt.Errorf("create capture file: %w", err)
	}
	defer f.Close()

	fmt.Printf("Psuwatch - Capture\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Writing to: %s\n", recordOut)
	fmt.Printf("Press Ctrl+C to stop\n\n")

	w := capture.NewWriter(f)
	frames := 0

	return pumpFrames(conn, func(frame []byte) {
		if err := w.Record(frame); err != nil {
			log.Printf("capture write: %v", err)
			return
		}
		frames++
		if frames%100 == 0 {
			fmt.Printf("%d reports captured\n", frames)
		}
	})
}
