// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab
//
// Psuwatch - Cooler Master PSU telemetry monitor
//
// Decodes the telemetry micro-protocol pushed by Cooler Master power
// supplies and exposes the live sensor table on the terminal, over
// Prometheus, or over MQTT.

package main

import (
	"os"

	"github.com/voltlab/psuwatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
