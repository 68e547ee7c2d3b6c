// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmpsu

import (
	"bytes"
	"testing"
)

// pushAll feeds a byte stream through the framer and collects frames.
func pushAll(f *Framer, stream []byte) [][]byte {
	var frames [][]byte
	for _, b := range stream {
		if frame := f.Push(b); frame != nil {
			frames = append(frames, frame)
		}
	}
	return frames
}

func TestFramer_SplitsStream(t *testing.T) {
	f := NewFramer()
	frames := pushAll(f, []byte("[V1012.5][T1025.0]"))

	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if !bytes.Equal(frames[0], []byte("[V1012.5]")) {
		t.Errorf("first frame: %q", frames[0])
	}
	if !bytes.Equal(frames[1], []byte("[T1025.0]")) {
		t.Errorf("second frame: %q", frames[1])
	}
}

func TestFramer_DropsInterFrameNoise(t *testing.T) {
	f := NewFramer()
	frames := pushAll(f, []byte("\x00\x00junk[R101200]\r\n garbage [I5003.0]\x00"))

	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if !bytes.Equal(frames[0], []byte("[R101200]")) {
		t.Errorf("first frame: %q", frames[0])
	}
	if !bytes.Equal(frames[1], []byte("[I5003.0]")) {
		t.Errorf("second frame: %q", frames[1])
	}
}

func TestFramer_ResyncsOnNewStart(t *testing.T) {
	f := NewFramer()
	// Truncated report followed by a complete one.
	frames := pushAll(f, []byte("[V1012[T1025.0]"))

	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if !bytes.Equal(frames[0], []byte("[T1025.0]")) {
		t.Errorf("frame: %q", frames[0])
	}
}

func TestFramer_DropsOverlongFrame(t *testing.T) {
	f := NewFramer()

	stream := []byte("[")
	for i := 0; i < MaxPacketSize+10; i++ {
		stream = append(stream, '9')
	}
	stream = append(stream, ']')
	stream = append(stream, []byte("[R11]")...)

	frames := pushAll(f, stream)
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if !bytes.Equal(frames[0], []byte("[R11]")) {
		t.Errorf("frame: %q", frames[0])
	}
}

func TestFramer_FrameSurvivesReuse(t *testing.T) {
	f := NewFramer()

	var first []byte
	for _, b := range []byte("[R11]") {
		if frame := f.Push(b); frame != nil {
			first = frame
		}
	}
	for _, b := range []byte("[R12]") {
		f.Push(b)
	}

	if !bytes.Equal(first, []byte("[R11]")) {
		t.Errorf("earlier frame mutated by later pushes: %q", first)
	}
}
