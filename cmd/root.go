// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/voltlab/psuwatch/pkg/cmpsu"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Device variant
	singleRail bool
)

var rootCmd = &cobra.Command{
	Use:   "psuwatch",
	Short: "Cooler Master PSU telemetry monitor",
	Long: `Psuwatch - decode and monitor telemetry pushed by Cooler Master power
supplies (voltages, currents, power, temperature, fan speed).

The unit pushes short ASCII reports unsolicited; psuwatch decodes them into
a live sensor table and exposes it on the terminal, over Prometheus, or
over MQTT.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the PSUWATCH_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.`,
	Version: "1.0.0",
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().BoolVar(&singleRail, "single-rail", false, "Label channels for single-rail units")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// newSession creates a session labeled for the selected unit variant.
func newSession() *cmpsu.Session {
	if singleRail {
		return cmpsu.NewSession(cmpsu.NewSingleRailTable())
	}
	return cmpsu.NewSession(cmpsu.NewTable())
}
