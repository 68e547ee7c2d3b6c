// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmpsu

// DeviceID is a USB vendor/product pair for a supported unit.
type DeviceID struct {
	Vendor  uint16
	Product uint16
}

// SupportedDevices lists the units known to speak this protocol. The
// decoder itself is device-agnostic; the list exists for the attachment
// plumbing around it.
var SupportedDevices = []DeviceID{
	{Vendor: 0x2516, Product: 0x0193}, // Cooler Master V series
}

// Supported reports whether the vendor/product pair is a known unit.
func Supported(vendor, product uint16) bool {
	for _, id := range SupportedDevices {
		if id.Vendor == vendor && id.Product == product {
			return true
		}
	}
	return false
}
