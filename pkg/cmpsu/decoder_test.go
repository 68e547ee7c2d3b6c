// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmpsu

import (
	"errors"
	"testing"
)

func TestDecode_Scaled(t *testing.T) {
	tests := []struct {
		name    string
		packet  string
		cat     Category
		channel int
		value   int64
	}{
		{"voltage channel 1", "[V1012.5]", Voltage, 0, 12500},
		{"voltage channel 5", "[V5012.0]", Voltage, 4, 12000},
		{"current channel 5", "[I5003.0]", Current, 4, 3000},
		{"temperature channel 1", "[T1025.0]", Temperature, 0, 25000},
		{"temperature channel 2", "[T242.5]", Temperature, 1, 42500},
		{"leading zeros", "[V1003.3]", Voltage, 0, 3300},
		{"zero value", "[I10.0]", Current, 0, 0},
		{"extra fraction digits dropped", "[V1012.567]", Voltage, 0, 12500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readings, err := Decode([]byte(tt.packet))
			if err != nil {
				t.Fatalf("Decode(%q): %v", tt.packet, err)
			}
			if len(readings) != 1 {
				t.Fatalf("expected 1 reading, got %d", len(readings))
			}
			r := readings[0]
			if r.Category != tt.cat || r.Channel != tt.channel || r.Value != tt.value {
				t.Errorf("got %+v, want {%v %d %d}", r, tt.cat, tt.channel, tt.value)
			}
		})
	}
}

func TestDecode_Fan(t *testing.T) {
	readings, err := Decode([]byte("[R101200]"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(readings))
	}
	r := readings[0]
	if r.Category != FanSpeed || r.Channel != 0 || r.Value != 1200 {
		t.Errorf("got %+v, want {fan 0 1200}", r)
	}
}

func TestDecode_Power(t *testing.T) {
	readings, err := Decode([]byte("[P2001234/005678]"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}
	if readings[0].Category != Power || readings[0].Channel != 0 || readings[0].Value != 1234000 {
		t.Errorf("input power: got %+v", readings[0])
	}
	if readings[1].Category != Power || readings[1].Channel != 1 || readings[1].Value != 5678000 {
		t.Errorf("output power: got %+v", readings[1])
	}
}

func TestDecode_PowerChannel1NotProduced(t *testing.T) {
	_, err := Decode([]byte("[P1999999]"))
	if !errors.Is(err, ErrNotProduced) {
		t.Errorf("expected ErrNotProduced, got %v", err)
	}
}

func TestDecode_TrailingPadding(t *testing.T) {
	// Reports arrive as padded fixed-size buffers; bytes after ']' are
	// not interpreted.
	packet := append([]byte("[V1012.5]"), 0, 0, 0, 0)
	readings, err := Decode(packet)
	if err != nil {
		t.Fatalf("Decode with padding: %v", err)
	}
	if readings[0].Value != 12500 {
		t.Errorf("got %d, want 12500", readings[0].Value)
	}
}

func TestDecode_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		packet string
		want   error
	}{
		{"empty", "", ErrPacketSize},
		{"too short", "[V1]", ErrPacketSize},
		{"too long", "[V1012.5555555555555555555555555]", ErrPacketSize},
		{"missing open bracket", "V1012.5]x", ErrFraming},
		{"missing close bracket", "[V1012.5", ErrFraming},
		{"garbage after payload", "[V1012.5x", ErrFraming},
		{"unknown type", "[X1012.5]", ErrType},
		{"channel zero", "[V0012.5]", ErrChannel},
		{"voltage channel 6", "[V6012.5]", ErrChannel},
		{"temperature channel 3", "[T3025.0]", ErrChannel},
		{"fan channel 2", "[R201200]", ErrChannel},
		{"power channel 3", "[P3001234/005678]", ErrChannel},
		{"no integer part", "[V1.5000]", ErrPayload},
		{"point without digit", "[V1012.]", ErrPayload},
		{"fan with fraction", "[R11200.0]", ErrFraming},
		{"power missing separator", "[P2001234]", ErrPayload},
		{"power separator without digit", "[P2001234/]", ErrPayload},
		{"power with fraction", "[P21.2/005678]", ErrPayload},
		{"non-ascii payload", "[V10\xff2.5]", ErrPayload},
		{"embedded NUL", "[V1\x0012.5]", ErrPayload},
		{"oversized integer", "[R1999999999999999999999]", ErrPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readings, err := Decode([]byte(tt.packet))
			if err == nil {
				t.Fatalf("Decode(%q) accepted, readings %v", tt.packet, readings)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(%q): got %v, want %v", tt.packet, err, tt.want)
			}
			if len(readings) != 0 {
				t.Errorf("rejection returned readings: %v", readings)
			}
		})
	}
}

func TestDecode_Deterministic(t *testing.T) {
	a, err1 := Decode([]byte("[V1012.5]"))
	b, err2 := Decode([]byte("[V1012.5]"))
	if err1 != nil || err2 != nil {
		t.Fatalf("decode errors: %v, %v", err1, err2)
	}
	if a[0] != b[0] {
		t.Errorf("same packet decoded differently: %+v vs %+v", a[0], b[0])
	}
}
