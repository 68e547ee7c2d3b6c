// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmpsu

// Session ties one device's telemetry stream to one table. OnMessage is
// the sole entry point from the transport; it is called once per
// received report, in arrival order, from a single goroutine.
type Session struct {
	table *Table
	stats *Statistics
}

// NewSession creates a session around the given table.
func NewSession(table *Table) *Session {
	return &Session{
		table: table,
		stats: NewStatistics(),
	}
}

// Table returns the session's sensor table for concurrent readers.
func (s *Session) Table() *Table {
	return s.table
}

// Stats returns the session's packet statistics.
func (s *Session) Stats() *Statistics {
	return s.stats
}

// OnMessage decodes one raw report and applies its readings. Rejected
// packets are counted and dropped; the device resends values
// periodically, so nothing escalates past this point.
func (s *Session) OnMessage(buf []byte) {
	readings, err := Decode(buf)
	s.stats.CountPacket(len(readings), err)
	for _, r := range readings {
		s.table.Apply(r)
	}
}
