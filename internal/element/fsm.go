// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package element

import (
	"github.com/jl1nie/gokeyer/internal/paddle"
	"github.com/jl1nie/gokeyer/internal/priority"
)

// Producer is the write end of the element queue the FSM enqueues onto.
// Satisfied by internal/equeue.Queue; a narrow interface here keeps the FSM
// testable against a spy without depending on the concrete ring buffer.
type Producer interface {
	TryEnqueue(e Element) bool
	IsEmpty() bool
}

type stateKind int

const (
	stateIdle stateKind = iota
	stateDitHold
	stateDahHold
	stateSqueeze
	stateMemoryPending
	stateCharSpacePending
)

// fsmState is FSMState represented as a tag plus the small
// scratch fields the non-trivial variants carry.
type fsmState struct {
	kind       stateKind
	current    Element // Squeeze.current / MemoryPending.element
	deadlineMs uint32  // CharSpacePending.deadline_ms
}

// FSM is the mode-aware element-generation engine. It is not
// safe for concurrent use: it has a single owner, the main loop's foreground
// phase.
type FSM struct {
	mode             Mode
	charSpaceEnabled bool
	unitMs           uint16

	state fsmState
	prio  priority.Controller

	// nextEmitMs paces repeat emissions of a held paddle or a squeeze
	// alternation: it is not enough to check that the queue has drained,
	// because the Transmission FSM dequeues an element the instant it starts
	// keying it, long before that element's unit duration has actually
	// elapsed. Re-deriving "is it time for the next one" from the clock
	// keeps a continuously-held paddle from flooding the queue.
	nextEmitMs uint32
}

// New returns an FSM starting in Idle. unitMs is the configured keyer unit,
// used here to size the 3-unit CharSpacePending deadline and to pace repeat
// emissions (nextEmitMs).
func New(mode Mode, charSpaceEnabled bool, unitMs uint16) *FSM {
	return &FSM{mode: mode, charSpaceEnabled: charSpaceEnabled, unitMs: unitMs, state: fsmState{kind: stateIdle}}
}

// Mode reports the configured behavioural mode.
func (f *FSM) Mode() Mode { return f.mode }

// Tick advances the FSM by one step given the current time and paddle
// snapshot, attempting to enqueue onto prod as the transition table
// prescribes. It never blocks and always returns.
func (f *FSM) Tick(now uint32, snap paddle.Snapshot, prod Producer) {
	if f.mode == SuperKeyer {
		f.prio.Update(snap)
	}

	switch f.state.kind {
	case stateIdle:
		f.tickIdle(now, snap, prod)
	case stateDitHold:
		f.tickHold(paddle.Dit, now, snap, prod)
	case stateDahHold:
		f.tickHold(paddle.Dah, now, snap, prod)
	case stateSqueeze:
		f.tickSqueeze(now, snap, prod)
	case stateMemoryPending:
		f.tickMemoryPending(now, prod)
	case stateCharSpacePending:
		f.tickCharSpacePending(now, snap, prod)
	}
}

// cycleUnitsFor is the number of unit-lengths an emitted element occupies
// end to end, keyed time plus its trailing inter-element gap: 1+1 for a Dit,
// 3+1 for a Dah. nextEmitMs is derived from it rather than from the queue
// alone, since the queue drains the instant the Transmission FSM starts
// keying an element, well before that element's time is actually up.
func cycleUnitsFor(e Element) uint32 {
	if e == Dah {
		return 4
	}
	return 2
}

func (f *FSM) armNextEmit(now uint32, e Element) {
	f.nextEmitMs = now + cycleUnitsFor(e)*uint32(f.unitMs)
}

func (f *FSM) tickIdle(now uint32, snap paddle.Snapshot, prod Producer) {
	switch {
	case !snap.DitPressed && !snap.DahPressed:
		return
	case snap.DitPressed && !snap.DahPressed:
		prod.TryEnqueue(Dit)
		f.armNextEmit(now, Dit)
		f.state = fsmState{kind: stateDitHold}
	case snap.DahPressed && !snap.DitPressed:
		prod.TryEnqueue(Dah)
		f.armNextEmit(now, Dah)
		f.state = fsmState{kind: stateDahHold}
	default: // both pressed: squeeze entered straight from Idle
		first := f.firstElement(snap)
		prod.TryEnqueue(first)
		f.armNextEmit(now, first)
		f.state = fsmState{kind: stateSqueeze, current: first}
	}
}

// firstElement decides the initial element of a squeeze entered with both
// paddles already pressed. SuperKeyer defers to the priority controller,
// which is updated every tick and clears a paddle's timestamp when that
// paddle reads released; ModeA/ModeB compare the current snapshot's press
// timestamps directly. Both paths agree on the tie-break: Dah wins.
func (f *FSM) firstElement(snap paddle.Snapshot) Element {
	if f.mode == SuperKeyer {
		if side, ok := f.prio.Choose(); ok {
			return elementFor(side)
		}
		return Dah
	}
	if snap.DitFirstPressMs < snap.DahFirstPressMs {
		return Dit
	}
	return Dah
}

func pressed(snap paddle.Snapshot, side paddle.Side) bool {
	if side == paddle.Dit {
		return snap.DitPressed
	}
	return snap.DahPressed
}

func other(side paddle.Side) paddle.Side {
	if side == paddle.Dit {
		return paddle.Dah
	}
	return paddle.Dit
}

func (f *FSM) tickHold(mySide paddle.Side, now uint32, snap paddle.Snapshot, prod Producer) {
	mine := pressed(snap, mySide)
	theirs := pressed(snap, other(mySide))

	switch {
	case !mine && !theirs:
		f.enterPostSqueeze(now)
	case theirs:
		// The other paddle joined: enter squeeze, alternation continues with
		// the other paddle's element next.
		next := elementFor(other(mySide))
		prod.TryEnqueue(next)
		f.armNextEmit(now, next)
		f.state = fsmState{kind: stateSqueeze, current: next}
	default:
		// Still only mine held: top up the queue, never flooding it. This is
		// what produces "a legitimate string of Dits/Dahs" without jamming
		// multiple elements in ahead of the Transmission FSM's drain rate.
		// Gating on nextEmitMs too, not just IsEmpty, matters because the
		// queue empties the instant the Transmission FSM starts keying the
		// current element, long before its unit time is actually spent.
		if prod.IsEmpty() && deadlinePassed(now, f.nextEmitMs) {
			e := elementFor(mySide)
			prod.TryEnqueue(e)
			f.armNextEmit(now, e)
		}
	}
}

func (f *FSM) tickSqueeze(now uint32, snap paddle.Snapshot, prod Producer) {
	current := f.state.current

	switch {
	case !snap.DitPressed && !snap.DahPressed:
		if f.mode == ModeA {
			f.enterPostSqueeze(now)
			return
		}
		// ModeB / SuperKeyer: one-shot Curtis-A memory of the opposite element.
		f.state = fsmState{kind: stateMemoryPending, current: current.Opposite()}
	case !snap.DitPressed || !snap.DahPressed:
		// One paddle released mid-squeeze: continue as a hold of whichever
		// paddle remains down, making sure it has something queued.
		heldSide := paddle.Dit
		if !snap.DitPressed {
			heldSide = paddle.Dah
		}
		if prod.IsEmpty() && deadlinePassed(now, f.nextEmitMs) {
			e := elementFor(heldSide)
			prod.TryEnqueue(e)
			f.armNextEmit(now, e)
		}
		if heldSide == paddle.Dit {
			f.state = fsmState{kind: stateDitHold}
		} else {
			f.state = fsmState{kind: stateDahHold}
		}
	default:
		// Both still held: keep alternating once the prior element has both
		// drained from the queue and had its full keyed+gap cycle elapse.
		if prod.IsEmpty() && deadlinePassed(now, f.nextEmitMs) {
			next := current.Opposite()
			prod.TryEnqueue(next)
			f.armNextEmit(now, next)
			f.state.current = next
		}
	}
}

func (f *FSM) tickMemoryPending(now uint32, prod Producer) {
	if prod.TryEnqueue(f.state.current) {
		f.enterPostSqueeze(now)
	}
	// else: queue was full, retry next tick (state unchanged).
}

func (f *FSM) tickCharSpacePending(now uint32, snap paddle.Snapshot, prod Producer) {
	if snap.DitPressed || snap.DahPressed {
		// New input preempts the pending CharSpace: process it as if ticking
		// from Idle with this snapshot.
		f.state = fsmState{kind: stateIdle}
		f.tickIdle(now, snap, prod)
		return
	}
	if deadlinePassed(now, f.state.deadlineMs) {
		if f.charSpaceEnabled {
			prod.TryEnqueue(CharSpace)
		}
		f.state = fsmState{kind: stateIdle}
	}
}

// enterPostSqueeze transitions to CharSpacePending (if enabled) or Idle, per
// every table row shaped "... -> CharSpacePending/Idle".
func (f *FSM) enterPostSqueeze(now uint32) {
	if f.charSpaceEnabled {
		f.state = fsmState{kind: stateCharSpacePending, deadlineMs: now + 3*uint32(f.unitMs)}
		return
	}
	f.state = fsmState{kind: stateIdle}
}

// deadlinePassed reports whether now has reached or passed deadlineMs,
// tolerant of uint32 wraparound.
func deadlinePassed(now, deadlineMs uint32) bool {
	return int32(now-deadlineMs) >= 0
}
