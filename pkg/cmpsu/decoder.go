// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmpsu

import (
	"errors"
	"fmt"
)

// Packet size limits. Reports are short ASCII strings plus padding;
// anything outside these bounds is dropped before any scanning work.
const (
	MinPacketSize = 5 // "[R11]"
	MaxPacketSize = 32
)

// Rejection reasons. Every rejection means "drop this packet"; the device
// resends values periodically, so a dropped packet self-heals on the next
// report.
var (
	ErrPacketSize  = errors.New("implausible packet size")
	ErrFraming     = errors.New("bad packet framing")
	ErrType        = errors.New("unknown telemetry type")
	ErrChannel     = errors.New("channel out of range")
	ErrPayload     = errors.New("malformed payload")
	ErrNotProduced = errors.New("channel not produced by this protocol revision")
)

// Fixed-point scaling. V/I/T payloads carry one fractional digit and
// scale to milli-units. Power payloads carry whole milliwatts and are
// exposed in micro-units, hwmon style.
const (
	milliScale     = 1000
	fractionWeight = 100 // one wire digit past the point, milli-units
	microPerMilli  = 1000
)

// Decode parses one raw report buffer into decoded readings. It returns
// a single reading for V/I/T/R packets and two readings (input and
// output power) for a P packet. It is pure and never panics on arbitrary
// byte content; any malformed, truncated or unsupported packet returns a
// wrapped rejection error and no readings.
func Decode(buf []byte) ([]Reading, error) {
	if len(buf) < MinPacketSize || len(buf) > MaxPacketSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPacketSize, len(buf))
	}

	s := scanner{buf: buf}
	if !s.expect('[') {
		return nil, fmt.Errorf("%w: missing '['", ErrFraming)
	}

	typ := s.next()
	ch := s.next()
	if ch < '1' || ch > '9' {
		return nil, fmt.Errorf("%w: bad channel digit %q", ErrChannel, ch)
	}
	channel := int(ch - '1') // wire is one-based

	switch typ {
	case 'V':
		return s.scaledReading(Voltage, channel)
	case 'I':
		return s.scaledReading(Current, channel)
	case 'T':
		return s.scaledReading(Temperature, channel)
	case 'R':
		return s.fanReading(channel)
	case 'P':
		return s.powerReadings(channel)
	}
	return nil, fmt.Errorf("%w: %q", ErrType, typ)
}

// scaledReading parses the "integer '.' fraction" payload shared by
// voltage, current and temperature packets.
func (s *scanner) scaledReading(cat Category, channel int) ([]Reading, error) {
	if channel >= cat.Channels() {
		return nil, fmt.Errorf("%w: %s channel %d", ErrChannel, cat, channel+1)
	}

	whole, ok := s.integer()
	if !ok {
		return nil, fmt.Errorf("%w: %s integer part", ErrPayload, cat)
	}
	if !s.expect('.') {
		return nil, fmt.Errorf("%w: %s missing decimal point", ErrPayload, cat)
	}
	frac, ok := s.fraction()
	if !ok {
		return nil, fmt.Errorf("%w: %s missing fraction digit", ErrPayload, cat)
	}
	if !s.expect(']') {
		return nil, fmt.Errorf("%w: missing ']'", ErrFraming)
	}

	return []Reading{{
		Category: cat,
		Channel:  channel,
		Value:    whole*milliScale + frac*fractionWeight,
	}}, nil
}

// fanReading parses the bare-integer RPM payload.
func (s *scanner) fanReading(channel int) ([]Reading, error) {
	if channel >= FanSpeed.Channels() {
		return nil, fmt.Errorf("%w: fan channel %d", ErrChannel, channel+1)
	}

	rpm, ok := s.integer()
	if !ok {
		return nil, fmt.Errorf("%w: fan RPM", ErrPayload)
	}
	if !s.expect(']') {
		return nil, fmt.Errorf("%w: missing ']'", ErrFraming)
	}

	return []Reading{{Category: FanSpeed, Channel: channel, Value: rpm}}, nil
}

// powerReadings parses the two-field "in/out" power payload. Only wire
// channel 2 carries it; channel 1 exists in the report set but its
// meaning is unconfirmed by the vendor, so it is dropped rather than
// guessed at.
func (s *scanner) powerReadings(channel int) ([]Reading, error) {
	switch {
	case channel == 0:
		return nil, fmt.Errorf("%w: power channel 1", ErrNotProduced)
	case channel != 1:
		return nil, fmt.Errorf("%w: power channel %d", ErrChannel, channel+1)
	}

	in, ok := s.integer()
	if !ok {
		return nil, fmt.Errorf("%w: input power", ErrPayload)
	}
	if !s.expect('/') {
		return nil, fmt.Errorf("%w: missing power separator", ErrPayload)
	}
	out, ok := s.integer()
	if !ok {
		return nil, fmt.Errorf("%w: output power", ErrPayload)
	}
	if !s.expect(']') {
		return nil, fmt.Errorf("%w: missing ']'", ErrFraming)
	}

	return []Reading{
		{Category: Power, Channel: 0, Value: in * microPerMilli},
		{Category: Power, Channel: 1, Value: out * microPerMilli},
	}, nil
}

// scanner walks a report buffer one byte at a time. All methods stop at
// the first byte that does not belong to the construct being read, so a
// garbled packet fails at a defined position instead of being reparsed.
type scanner struct {
	buf []byte
	pos int
}

// next returns the current byte and advances, or 0 at end of buffer.
// The zero byte is not valid anywhere in the grammar, so it simply
// fails whichever check consumes it.
func (s *scanner) next() byte {
	if s.pos >= len(s.buf) {
		return 0
	}
	b := s.buf[s.pos]
	s.pos++
	return b
}

// expect consumes one byte iff it equals b.
func (s *scanner) expect(b byte) bool {
	if s.pos < len(s.buf) && s.buf[s.pos] == b {
		s.pos++
		return true
	}
	return false
}

// maxWireInteger bounds accepted field magnitudes well above anything
// the hardware reports while keeping the scaled value far from overflow.
const maxWireInteger = 1_000_000_000

// integer reads one or more decimal digits, stopping at the first
// non-digit. Leading zeros are allowed.
func (s *scanner) integer() (int64, bool) {
	var v int64
	digits := 0
	for s.pos < len(s.buf) {
		b := s.buf[s.pos]
		if b < '0' || b > '9' {
			break
		}
		v = v*10 + int64(b-'0')
		if v > maxWireInteger {
			return 0, false
		}
		digits++
		s.pos++
	}
	return v, digits > 0
}

// fraction reads the digits after the decimal point. Only the first
// digit contributes to the value; extra digits are consumed so the
// scanner stays synchronized, then dropped.
func (s *scanner) fraction() (int64, bool) {
	var first int64
	digits := 0
	for s.pos < len(s.buf) {
		b := s.buf[s.pos]
		if b < '0' || b > '9' {
			break
		}
		if digits == 0 {
			first = int64(b - '0')
		}
		digits++
		s.pos++
	}
	return first, digits > 0
}
