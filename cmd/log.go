// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/voltlab/psuwatch/pkg/cmpsu"
)

var logShowRejected bool

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Display decoded telemetry readings as they arrive",
	Long: `Continuously decode and display PSU telemetry reports as they arrive.

Each decoded reading is shown with timestamp, channel name and physical
value. Rejected packets are dropped silently unless --show-rejected is
given; the unit resends values periodically, so a dropped report is
replaced by the next one.

Supports both serial and WebSocket connections.`,
	RunE: runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().BoolVar(&logShowRejected, "show-rejected", false, "Show rejected packets with the rejection reason")
}

func runLog(cmd *cobra.Command, args []string) error {
	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("Psuwatch - Telemetry Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	session := newSession()
	table := session.Table()

	err = pumpFrames(conn, func(frame []byte) {
		timestamp := time.Now().Format("15:04:05.000")

		readings, err := cmpsu.Decode(frame)
		session.Stats().CountPacket(len(readings), err)
		if err != nil {
			if logShowRejected {
				fmt.Printf("[%s] rejected %q: %v\n", timestamp, frame, err)
			}
			return
		}

		for _, r := range readings {
			table.Apply(r)
			fmt.Printf("[%s] %-22s %s\n", timestamp, slotName(table, r.Category, r.Channel), formatValue(r.Category, r.Value))
		}
	})

	fmt.Println()
	fmt.Print(session.Stats().String())
	return err
}
