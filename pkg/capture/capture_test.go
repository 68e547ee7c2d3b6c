// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package capture

import (
	"bytes"
	"io"
	"testing"
)

func TestCaptureRoundTrip(t *testing.T) {
	reports := [][]byte{
		[]byte("[V1012.5]"),
		[]byte("[P2001234/005678]"),
		append([]byte("[R101200]"), 0, 0), // padding preserved
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, report := range reports {
		if err := w.Record(report); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	r := NewReader(&buf)
	for i, want := range reports {
		e, err := r.Next()
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		if !bytes.Equal(e.Data, want) {
			t.Errorf("entry %d: got %q, want %q", i, e.Data, want)
		}
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReaderTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Record([]byte("[V1012.5]")); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// Cut the last entry short.
	data := buf.Bytes()[:buf.Len()-2]

	r := NewReader(bytes.NewReader(data))
	if _, err := r.Next(); err == nil {
		t.Error("expected error on truncated stream")
	}
}
