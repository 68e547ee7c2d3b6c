// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

// Package capture records raw telemetry reports to a CBOR stream so a
// device session can be replayed offline through the decoder.
package capture

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Entry is one recorded report with its offset from the capture start.
type Entry struct {
	OffsetMs uint64 `cbor:"t"`
	Data     []byte `cbor:"d"`
}

// Writer appends report entries to a CBOR stream.
type Writer struct {
	enc   *cbor.Encoder
	start time.Time
}

// NewWriter creates a writer whose entry offsets count from now.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		enc:   cbor.NewEncoder(w),
		start: time.Now(),
	}
}

// Record appends one raw report. The buffer is encoded as received,
// including any padding, so replay exercises the decoder identically.
func (w *Writer) Record(buf []byte) error {
	e := Entry{
		OffsetMs: uint64(time.Since(w.start).Milliseconds()),
		Data:     buf,
	}
	if err := w.enc.Encode(e); err != nil {
		return fmt.Errorf("encode capture entry: %w", err)
	}
	return nil
}

// Reader iterates over a recorded CBOR stream.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader creates a reader over a capture stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: cbor.NewDecoder(r)}
}

// Next returns the next entry, or io.EOF at the end of the stream.
func (r *Reader) Next() (Entry, error) {
	var e Entry
	if err := r.dec.Decode(&e); err != nil {
		if err == io.EOF {
			return Entry{}, io.EOF
		}
		return Entry{}, fmt.Errorf("decode capture entry: %w", err)
	}
	return e, nil
}
