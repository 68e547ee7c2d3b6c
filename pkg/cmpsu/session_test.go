// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmpsu

import "testing"

func TestSession_OnMessageApplies(t *testing.T) {
	s := NewSession(NewTable())

	s.OnMessage([]byte("[V1012.5]"))
	s.OnMessage([]byte("[I5003.0]"))
	s.OnMessage([]byte("[T1025.0]"))
	s.OnMessage([]byte("[R101200]"))
	s.OnMessage([]byte("[P2001234/005678]"))

	tests := []struct {
		cat     Category
		channel int
		want    int64
	}{
		{Voltage, 0, 12500},
		{Current, 4, 3000},
		{Temperature, 0, 25000},
		{FanSpeed, 0, 1200},
		{Power, 0, 1234000},
		{Power, 1, 5678000},
	}

	for _, tt := range tests {
		v, ok := s.Table().Value(tt.cat, tt.channel)
		if !ok || v != tt.want {
			t.Errorf("%s[%d] = (%d, %v), want %d", tt.cat, tt.channel, v, ok, tt.want)
		}
	}

	if got := s.Stats().ValidPackets.Load(); got != 5 {
		t.Errorf("valid packets = %d, want 5", got)
	}
	if got := s.Stats().AppliedReadings.Load(); got != 6 {
		t.Errorf("applied readings = %d, want 6", got)
	}
}

func TestSession_RejectedPacketMutatesNothing(t *testing.T) {
	s := NewSession(NewTable())

	s.OnMessage([]byte("[P1999999]"))
	s.OnMessage([]byte("[V6012.5]"))
	s.OnMessage([]byte("not a packet"))

	for _, cat := range Categories() {
		for ch := 0; ch < cat.Channels(); ch++ {
			if _, ok := s.Table().Value(cat, ch); ok {
				t.Errorf("%s[%d] has data after rejected packets", cat, ch)
			}
		}
	}

	if got := s.Stats().NotProduced.Load(); got != 1 {
		t.Errorf("not-produced count = %d, want 1", got)
	}
	if got := s.Stats().RejectedChannel.Load(); got != 1 {
		t.Errorf("rejected-channel count = %d, want 1", got)
	}
	if got := s.Stats().Rejected(); got != 3 {
		t.Errorf("rejected total = %d, want 3", got)
	}
}

func TestSession_Idempotent(t *testing.T) {
	once := NewSession(NewTable())
	twice := NewSession(NewTable())

	packet := []byte("[P2001234/005678]")
	once.OnMessage(packet)
	twice.OnMessage(packet)
	twice.OnMessage(packet)

	for _, cat := range Categories() {
		for ch := 0; ch < cat.Channels(); ch++ {
			v1, ok1 := once.Table().Value(cat, ch)
			v2, ok2 := twice.Table().Value(cat, ch)
			if v1 != v2 || ok1 != ok2 {
				t.Errorf("%s[%d]: once (%d, %v), twice (%d, %v)", cat, ch, v1, ok1, v2, ok2)
			}
		}
	}
}
