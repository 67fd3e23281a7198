// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tx implements the Transmission FSM: the non-blocking, time-driven
// state machine that drains the element queue and renders it onto the key
// line and sidetone with exact unit/spacing discipline.
package tx

import "github.com/jl1nie/gokeyer/internal/element"

// Consumer is the read end of the element queue the FSM drains. Satisfied by
// internal/equeue.Queue; kept narrow so the FSM is testable against a spy.
type Consumer interface {
	TryDequeue() (element.Element, bool)
}

// KeyOutput is the hardware boundary the Transmission FSM drives: the key
// line and the sidetone, asserted and de-asserted together for every keyed
// element. SetKey and SetTone return an error only to report
// a failed hardware write; the FSM counts it and proceeds.
type KeyOutput interface {
	SetKey(on bool) error
	SetTone(on bool) error
}

type stateKind int

const (
	stateIdle stateKind = iota
	stateKeyedDit
	stateKeyedDah
	stateInterElementGap
	stateCharGap
)

// state is TxState represented as a tag plus the scratch fields
// the non-Idle variants carry. pendingValid/pendingElement let
// InterElementGap carry forward an element that was already dequeued while
// checking whether a CharSpace should collapse the gap to 3U:
// the queue has exactly one consumer, so a dequeue made to peek ahead must
// not be lost.
type state struct {
	kind           stateKind
	endMs          uint32
	pendingValid   bool
	pendingElement element.Element
}

// Diagnostics accumulates counted-not-propagated failures: hardware write
// failures and timing misses observed on state transitions. Both are
// monotonic counters; neither ever causes the FSM to stop.
type Diagnostics struct {
	HardwareErrors uint32
	TimingMisses   uint32
}

// FSM is the Transmission FSM. It is not safe for concurrent use: like
// element.FSM, it has a single owner, the main loop's foreground phase.
type FSM struct {
	unitMs uint16
	state  state

	Diagnostics Diagnostics
}

// New returns an FSM starting in Idle, scheduling keyed durations as
// multiples of unitMs.
func New(unitMs uint16) *FSM {
	return &FSM{unitMs: unitMs, state: state{kind: stateIdle}}
}

// KeyAsserted reports whether the key line is currently asserted, for
// callers that need to know without inspecting internal state (test
// assertions, or a diagnostic heartbeat).
func (f *FSM) KeyAsserted() bool {
	return f.state.kind == stateKeyedDit || f.state.kind == stateKeyedDah
}

// SetUnit updates the unit duration used for elements scheduled from this
// point on. An element already in flight completes at its originally
// scheduled duration.
func (f *FSM) SetUnit(unitMs uint16) {
	f.unitMs = unitMs
}

// Tick advances the FSM by one step given the current time, draining cons
// and driving key as the state machine prescribes. It never blocks.
func (f *FSM) Tick(now uint32, cons Consumer, key KeyOutput) {
	switch f.state.kind {
	case stateIdle:
		f.tickIdle(now, cons, key)
	case stateKeyedDit, stateKeyedDah:
		f.tickKeyed(now, cons, key)
	case stateInterElementGap:
		f.tickInterElementGap(now, key)
	case stateCharGap:
		f.tickCharGap(now)
	}
}

func (f *FSM) tickIdle(now uint32, cons Consumer, key KeyOutput) {
	e, ok := cons.TryDequeue()
	if !ok {
		return
	}
	f.enterKeyedOrGap(now, e, key)
}

// enterKeyedOrGap starts the state for a freshly-dequeued element, whether
// dequeued from Idle or peeked ahead while draining a keyed element's
// mandatory gap.
func (f *FSM) enterKeyedOrGap(now uint32, e element.Element, key KeyOutput) {
	switch e {
	case element.Dit:
		f.assert(key)
		f.state = state{kind: stateKeyedDit, endMs: now + f.unitsMs(1)}
	case element.Dah:
		f.assert(key)
		f.state = state{kind: stateKeyedDah, endMs: now + f.unitsMs(3)}
	case element.CharSpace:
		f.state = state{kind: stateCharGap, endMs: now + f.unitsMs(3)}
	}
}

func (f *FSM) tickKeyed(now uint32, cons Consumer, key KeyOutput) {
	if !deadlinePassed(now, f.state.endMs) {
		return
	}
	f.countTimingMiss(now, f.state.endMs)
	f.deassert(key)

	// Peek ahead: if a CharSpace is already queued, the inter-element gap
	// collapses into the 3U character gap instead of stacking 1U + 3U.
	if e, ok := cons.TryDequeue(); ok {
		if e == element.CharSpace {
			f.state = state{kind: stateCharGap, endMs: now + f.unitsMs(3)}
			return
		}
		f.state = state{kind: stateInterElementGap, endMs: now + f.unitsMs(1), pendingValid: true, pendingElement: e}
		return
	}
	f.state = state{kind: stateInterElementGap, endMs: now + f.unitsMs(1)}
}

func (f *FSM) tickInterElementGap(now uint32, key KeyOutput) {
	if !deadlinePassed(now, f.state.endMs) {
		return
	}
	f.countTimingMiss(now, f.state.endMs)
	if f.state.pendingValid {
		f.enterKeyedOrGap(now, f.state.pendingElement, key)
		return
	}
	f.state = state{kind: stateIdle}
}

func (f *FSM) tickCharGap(now uint32) {
	if !deadlinePassed(now, f.state.endMs) {
		return
	}
	f.countTimingMiss(now, f.state.endMs)
	f.state = state{kind: stateIdle}
}

func (f *FSM) assert(key KeyOutput) {
	if err := key.SetKey(true); err != nil {
		f.Diagnostics.HardwareErrors++
	}
	if err := key.SetTone(true); err != nil {
		f.Diagnostics.HardwareErrors++
	}
}

func (f *FSM) deassert(key KeyOutput) {
	if err := key.SetKey(false); err != nil {
		f.Diagnostics.HardwareErrors++
	}
	if err := key.SetTone(false); err != nil {
		f.Diagnostics.HardwareErrors++
	}
}

// countTimingMiss records a TimingMiss when the transition lands strictly
// after its deadline: a late tick, not an on-the-tick transition.
func (f *FSM) countTimingMiss(now, endMs uint32) {
	if now-endMs > 0 {
		f.Diagnostics.TimingMisses++
	}
}

// unitsMs converts a count of keyer units into milliseconds at the FSM's
// current unit duration.
func (f *FSM) unitsMs(units uint32) uint32 {
	return units * uint32(f.unitMs)
}

// deadlinePassed reports whether now has reached or passed endMs, tolerant
// of uint32 wraparound.
func deadlinePassed(now, endMs uint32) bool {
	return int32(now-endMs) >= 0
}
