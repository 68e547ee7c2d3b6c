// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmd

import (
	"fmt"

	"github.com/voltlab/psuwatch/pkg/cmpsu"
)

// formatValue renders a scaled integer value in physical units.
func formatValue(cat cmpsu.Category, v int64) string {
	switch cat {
	case cmpsu.Voltage:
		return fmt.Sprintf("%.3f V", float64(v)/1000)
	case cmpsu.Current:
		return fmt.Sprintf("%.3f A", float64(v)/1000)
	case cmpsu.Power:
		return fmt.Sprintf("%.3f W", float64(v)/1_000_000)
	case cmpsu.Temperature:
		return fmt.Sprintf("%.1f °C", float64(v)/1000)
	case cmpsu.FanSpeed:
		return fmt.Sprintf("%d RPM", v)
	}
	return fmt.Sprintf("%d", v)
}

// slotName renders a slot as "category[n]" plus its rail label if any.
func slotName(table *cmpsu.Table, cat cmpsu.Category, channel int) string {
	if label, ok := table.Label(cat, channel); ok {
		return fmt.Sprintf("%s[%d] %s", cat, channel, label)
	}
	return fmt.Sprintf("%s[%d]", cat, channel)
}
