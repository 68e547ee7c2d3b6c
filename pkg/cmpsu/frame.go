// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmpsu

// Framer splits a raw byte stream into report buffers. Serial bridges
// deliver telemetry as an unframed stream; the framer resynchronizes on
// '[' and emits on ']', dropping everything between frames. Transports
// that deliver whole reports (HID, WebSocket messages) do not need it.
type Framer struct {
	buf     []byte
	inFrame bool
}

// NewFramer creates an idle framer.
func NewFramer() *Framer {
	return &Framer{buf: make([]byte, 0, MaxPacketSize)}
}

// Reset drops any partial frame.
func (f *Framer) Reset() {
	f.buf = f.buf[:0]
	f.inFrame = false
}

// Push feeds one stream byte. It returns a completed report buffer, or
// nil while a frame is still accumulating. The returned slice is a copy
// and stays valid across further pushes.
func (f *Framer) Push(b byte) []byte {
	if b == '[' {
		// A '[' mid-frame means the previous frame was truncated;
		// start over from here.
		f.Reset()
		f.inFrame = true
		f.buf = append(f.buf, b)
		return nil
	}

	if !f.inFrame {
		return nil
	}

	f.buf = append(f.buf, b)

	if b == ']' {
		frame := make([]byte, len(f.buf))
		copy(frame, f.buf)
		f.Reset()
		return frame
	}

	if len(f.buf) >= MaxPacketSize {
		f.Reset()
	}
	return nil
}
