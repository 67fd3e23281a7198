// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package paddle holds the debounced, timestamped view of the two paddle
// contacts (Dit, Dah) that the rest of the keyer core reads every tick.
//
// State is written from whatever goroutine stands in for interrupt context
// (see internal/hw/gpiohw) and read from the foreground main loop. Each
// field is an independent atomic; the contract
// is that readers see a consistent per-field value but not necessarily a
// consistent pair across fields. The Element FSM tolerates that by
// re-reading both fields on every tick.
package paddle

import "sync/atomic"

// Side identifies one of the two paddle contacts.
type Side int

const (
	Dit Side = iota
	Dah
)

func (s Side) String() string {
	if s == Dit {
		return "dit"
	}
	return "dah"
}

// noPress is the sentinel stored in firstPress when a contact is released.
// It is not a valid millisecond timestamp within any single press, so it
// never collides with a real value (see Snapshot).
const noPress = ^uint32(0)

// Snapshot is a best-effort coherent read of both paddle contacts.
type Snapshot struct {
	DitPressed bool
	DahPressed bool

	// DitFirstPressMs and DahFirstPressMs are the monotonic timestamp of the
	// most recent release->press transition for that contact, valid only
	// when the corresponding *Pressed field is true.
	DitFirstPressMs uint32
	DahFirstPressMs uint32
}

// State is the process-wide (or, hosted on Go, Dev-wide) debounced paddle
// state. Zero value is both paddles released, ready to use.
type State struct {
	ditPressed uint32 // 0 or 1
	dahPressed uint32
	ditFirst   uint32
	dahFirst   uint32

	ditLastEdge uint32
	dahLastEdge uint32
	debounceMs  uint32

	// haveLastEdge distinguishes "no edge observed yet" from a legitimate
	// edge at time 0, so the very first edge of a run is never debounced
	// away.
	ditHaveLastEdge uint32
	dahHaveLastEdge uint32
}

// New returns a State with the given initial debounce window.
func New(debounceMs uint8) *State {
	s := &State{}
	s.ditFirst = noPress
	s.dahFirst = noPress
	atomic.StoreUint32(&s.debounceMs, uint32(debounceMs))
	return s
}

// SetDebounce changes the debounce window. It takes effect on the next
// edge; in-flight debounce decisions are not retroactively changed.
func (s *State) SetDebounce(ms uint8) {
	atomic.StoreUint32(&s.debounceMs, uint32(ms))
}

// OnEdge records a (possibly debounced-away) transition on one contact.
// Called from interrupt context: it performs only atomic loads/stores, no
// locking, no allocation.
func (s *State) OnEdge(side Side, pressed bool, nowMs uint32) {
	lastEdge, haveLastEdge, pressedField, firstField := s.fields(side)

	debounce := atomic.LoadUint32(&s.debounceMs)
	if atomic.LoadUint32(haveLastEdge) != 0 {
		last := atomic.LoadUint32(lastEdge)
		if nowMs-last < debounce {
			return // suppressed: too close to the last accepted edge
		}
	}

	atomic.StoreUint32(lastEdge, nowMs)
	atomic.StoreUint32(haveLastEdge, 1)

	if pressed {
		atomic.StoreUint32(pressedField, 1)
		atomic.StoreUint32(firstField, nowMs)
	} else {
		atomic.StoreUint32(pressedField, 0)
		atomic.StoreUint32(firstField, noPress)
	}
}

func (s *State) fields(side Side) (lastEdge, haveLastEdge, pressed, first *uint32) {
	if side == Dit {
		return &s.ditLastEdge, &s.ditHaveLastEdge, &s.ditPressed, &s.ditFirst
	}
	return &s.dahLastEdge, &s.dahHaveLastEdge, &s.dahPressed, &s.dahFirst
}

// Snapshot returns the current best-effort view of both contacts.
func (s *State) Snapshot() Snapshot {
	var snap Snapshot
	snap.DitPressed = atomic.LoadUint32(&s.ditPressed) != 0
	snap.DahPressed = atomic.LoadUint32(&s.dahPressed) != 0
	if snap.DitPressed {
		snap.DitFirstPressMs = atomic.LoadUint32(&s.ditFirst)
	}
	if snap.DahPressed {
		snap.DahFirstPressMs = atomic.LoadUint32(&s.dahFirst)
	}
	return snap
}
