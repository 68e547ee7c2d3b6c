// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

// Package cmpsu decodes the telemetry micro-protocol pushed by Cooler
// Master power supplies and keeps the latest value per sensor channel.
package cmpsu

// Category identifies one group of sensor channels reported by the PSU.
type Category uint8

const (
	Voltage Category = iota
	Current
	Power
	Temperature
	FanSpeed

	numCategories = 5
)

// Channel counts per category. Fixed by the hardware report set.
const (
	countVoltage = 5
	countCurrent = 5
	countPower   = 2
	countTemp    = 2
	countFan     = 1

	maxChannels = 5
)

var channelCounts = [numCategories]int{
	Voltage:     countVoltage,
	Current:     countCurrent,
	Power:       countPower,
	Temperature: countTemp,
	FanSpeed:    countFan,
}

// Channels returns the fixed number of channels in the category.
func (c Category) Channels() int {
	if int(c) >= numCategories {
		return 0
	}
	return channelCounts[c]
}

// String returns the category name used in log output and MQTT topics.
func (c Category) String() string {
	switch c {
	case Voltage:
		return "voltage"
	case Current:
		return "current"
	case Power:
		return "power"
	case Temperature:
		return "temperature"
	case FanSpeed:
		return "fan"
	}
	return "unknown"
}

// Unit returns the unit of the category's scaled integer values.
func (c Category) Unit() string {
	switch c {
	case Voltage:
		return "mV"
	case Current:
		return "mA"
	case Power:
		return "uW"
	case Temperature:
		return "m°C"
	case FanSpeed:
		return "RPM"
	}
	return ""
}

// Categories lists all categories in display order.
func Categories() [numCategories]Category {
	return [numCategories]Category{Voltage, Current, Power, Temperature, FanSpeed}
}

// Reading is one decoded telemetry value. Channel is zero-based; the wire
// protocol numbers channels from one. Value is a scaled integer:
// milli-units for voltage, current and temperature, micro-units for
// power, unscaled RPM for fan speed.
type Reading struct {
	Category Category
	Channel  int
	Value    int64
}

// Rail labels, multi-rail variants. The second 12V rail sits at the
// highest index so single-rail units populate a contiguous prefix.
var voltageLabels = [countVoltage]string{"V_AC", "+12V1", "+5V", "+3.3V", "+12V2"}
var currentLabels = [countCurrent]string{"I_AC", "I_+12V1", "I_+5V", "I_+3.3V", "I_+12V2"}
var powerLabels = [countPower]string{"P_in", "P_out"}

// Single-rail variants report one 12V rail on channel 2.
const (
	labelSingleRail12V  = "+12V"
	labelSingleRailI12V = "I_+12V"
)
