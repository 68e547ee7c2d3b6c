// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmpsu

import "sync/atomic"

// Table holds the latest decoded value per (category, channel). It is
// written by a single goroutine (the transport's delivery path) and read
// by any number of concurrent readers. Each slot is an atomic pointer:
// nil means no data has arrived yet, which readers must distinguish from
// a legitimate zero. A slot never reverts to nil once set.
//
// A Table belongs to one device session and is discarded with it; there
// is no persistence.
type Table struct {
	singleRail bool
	slots      [numCategories][maxChannels]atomic.Pointer[Reading]
}

// NewTable returns an empty table for a multi-rail unit.
func NewTable() *Table {
	return &Table{}
}

// NewSingleRailTable returns an empty table labeled for single-rail
// units, which expose one +12V rail instead of two.
func NewSingleRailTable() *Table {
	return &Table{singleRail: true}
}

// Visible reports whether the (category, channel) pair exists in the
// report set. It governs which slots consumers enumerate at all,
// independent of whether data has arrived.
func (t *Table) Visible(cat Category, channel int) bool {
	return channel >= 0 && channel < cat.Channels()
}

// Apply stores a decoded reading, replacing any previous value for the
// slot. Last write wins; there is no merging.
func (t *Table) Apply(r Reading) {
	if !t.Visible(r.Category, r.Channel) {
		return
	}
	v := r
	t.slots[r.Category][r.Channel].Store(&v)
}

// Value returns the latest value for the slot and whether any reading
// has arrived for it. Callers must only pass pairs accepted by Visible.
func (t *Table) Value(cat Category, channel int) (int64, bool) {
	r := t.slots[cat][channel].Load()
	if r == nil {
		return 0, false
	}
	return r.Value, true
}

// Label returns the static rail name for the slot. Temperature and fan
// channels carry no labels; for those ok is false.
func (t *Table) Label(cat Category, channel int) (string, bool) {
	switch cat {
	case Voltage:
		if t.singleRail && channel == 1 {
			return labelSingleRail12V, true
		}
		return voltageLabels[channel], true
	case Current:
		if t.singleRail && channel == 1 {
			return labelSingleRailI12V, true
		}
		return currentLabels[channel], true
	case Power:
		return powerLabels[channel], true
	}
	return "", false
}
