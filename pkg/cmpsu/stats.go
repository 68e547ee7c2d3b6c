// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmpsu

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// Statistics tracks packet and rejection counters for one session. The
// counters are atomic because display goroutines read them while the
// transport goroutine counts.
type Statistics struct {
	startTime time.Time

	TotalPackets    atomic.Uint64
	ValidPackets    atomic.Uint64
	AppliedReadings atomic.Uint64

	RejectedSize    atomic.Uint64
	RejectedFraming atomic.Uint64
	RejectedType    atomic.Uint64
	RejectedChannel atomic.Uint64
	RejectedPayload atomic.Uint64
	NotProduced     atomic.Uint64
}

// NewStatistics creates a statistics tracker starting now.
func NewStatistics() *Statistics {
	return &Statistics{startTime: time.Now()}
}

// CountPacket records the outcome of one decoded packet.
func (s *Statistics) CountPacket(readings int, err error) {
	s.TotalPackets.Add(1)
	if err == nil {
		s.ValidPackets.Add(1)
		s.AppliedReadings.Add(uint64(readings))
		return
	}
	switch {
	case errors.Is(err, ErrPacketSize):
		s.RejectedSize.Add(1)
	case errors.Is(err, ErrFraming):
		s.RejectedFraming.Add(1)
	case errors.Is(err, ErrType):
		s.RejectedType.Add(1)
	case errors.Is(err, ErrChannel):
		s.RejectedChannel.Add(1)
	case errors.Is(err, ErrNotProduced):
		s.NotProduced.Add(1)
	default:
		s.RejectedPayload.Add(1)
	}
}

// Rejected returns the total number of dropped packets.
func (s *Statistics) Rejected() uint64 {
	return s.RejectedSize.Load() + s.RejectedFraming.Load() + s.RejectedType.Load() +
		s.RejectedChannel.Load() + s.RejectedPayload.Load() + s.NotProduced.Load()
}

// PacketRate returns decoded packets per second since the session start.
func (s *Statistics) PacketRate() float64 {
	elapsed := time.Since(s.startTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.TotalPackets.Load()) / elapsed
}

// String returns a formatted statistics summary.
func (s *Statistics) String() string {
	total := s.TotalPackets.Load()
	valid := s.ValidPackets.Load()

	var validPercent float64
	if total > 0 {
		validPercent = float64(valid) * 100.0 / float64(total)
	}

	elapsed := time.Since(s.startTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Packets:   %8d\n", total)
	result += fmt.Sprintf("Valid Packets:   %8d (%.1f%%)\n", valid, validPercent)
	result += fmt.Sprintf("Readings:        %8d\n", s.AppliedReadings.Load())

	if n := s.RejectedSize.Load(); n > 0 {
		result += fmt.Sprintf("Bad Size:        %8d\n", n)
	}
	if n := s.RejectedFraming.Load(); n > 0 {
		result += fmt.Sprintf("Bad Framing:     %8d\n", n)
	}
	if n := s.RejectedType.Load(); n > 0 {
		result += fmt.Sprintf("Bad Type:        %8d\n", n)
	}
	if n := s.RejectedChannel.Load(); n > 0 {
		result += fmt.Sprintf("Bad Channel:     %8d\n", n)
	}
	if n := s.RejectedPayload.Load(); n > 0 {
		result += fmt.Sprintf("Bad Payload:     %8d\n", n)
	}
	if n := s.NotProduced.Load(); n > 0 {
		result += fmt.Sprintf("Not Produced:    %8d\n", n)
	}

	result += fmt.Sprintf("Packet Rate:     %8.1f pkts/sec\n", s.PacketRate())
	result += "================================\n"
	return result
}
