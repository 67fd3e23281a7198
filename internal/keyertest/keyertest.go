// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package keyertest is a property-based harness: it drives randomly
// generated paddle edge sequences through the Element FSM with a virtual
// clock, renders the resulting element stream through the Transmission FSM
// onto a simulated key line, and exposes the recorded trace so a test can
// assert timing and ordering invariants. Generators are hand-rolled,
// matching the plain "testing" style used throughout this module rather
// than an external fuzzing library.
package keyertest

import (
	"math/rand"

	"github.com/jl1nie/gokeyer/internal/element"
	"github.com/jl1nie/gokeyer/internal/equeue"
	"github.com/jl1nie/gokeyer/internal/hw/simhw"
	"github.com/jl1nie/gokeyer/internal/paddle"
	"github.com/jl1nie/gokeyer/internal/tx"
)

// EdgeEvent is one generated paddle transition.
type EdgeEvent struct {
	Side    paddle.Side
	Pressed bool
	AtMs    uint32
}

// GenerateEdges produces a random, debounce-respecting sequence of edges
// over [0, durationMs), driven by rng. It never emits two edges on the same
// side closer than minGapMs apart, so a harness using a realistic debounce
// window doesn't spend the whole run suppressing edges.
func GenerateEdges(rng *rand.Rand, durationMs uint32, minGapMs uint32) []EdgeEvent {
	var events []EdgeEvent
	lastDit, lastDah := uint32(0), uint32(0)
	ditPressed, dahPressed := false, false
	haveDit, haveDah := false, false

	for t := uint32(0); t < durationMs; t += uint32(1 + rng.Intn(20)) {
		side := paddle.Dit
		if rng.Intn(2) == 1 {
			side = paddle.Dah
		}
		last, have, pressed := lastDit, haveDit, ditPressed
		if side == paddle.Dah {
			last, have, pressed = lastDah, haveDah, dahPressed
		}
		if have && t-last < minGapMs {
			continue
		}
		next := !pressed
		events = append(events, EdgeEvent{Side: side, Pressed: next, AtMs: t})
		if side == paddle.Dit {
			lastDit, ditPressed, haveDit = t, next, true
		} else {
			lastDah, dahPressed, haveDah = t, next, true
		}
	}
	return events
}

// TraceEvent is one recorded key-line transition with its timestamp, for
// invariant checks against the bit-exact timing contract.
type TraceEvent struct {
	AtMs    uint32
	Key     bool
	Tone    bool
}

// Run drives edges through a freshly-constructed Element+Transmission FSM
// pair at the given configuration, ticking every tickMs from t=0 up to (but
// not including) durationMs, and returns the full key-line trace.
func Run(mode element.Mode, charSpaceEnabled bool, unitMs uint16, queueCap int, edges []EdgeEvent, tickMs uint32, durationMs uint32) []TraceEvent {
	efsm := element.New(mode, charSpaceEnabled, unitMs)
	q := equeue.New(queueCap)
	txfsm := tx.New(unitMs)
	key := simhw.NewKey()

	snap := paddle.Snapshot{}
	edgeIdx := 0

	var trace []TraceEvent
	lastKey, lastTone := false, false

	for now := uint32(0); now < durationMs; now += tickMs {
		for edgeIdx < len(edges) && edges[edgeIdx].AtMs <= now {
			e := edges[edgeIdx]
			if e.Side == paddle.Dit {
				snap.DitPressed = e.Pressed
				if e.Pressed {
					snap.DitFirstPressMs = e.AtMs
				}
			} else {
				snap.DahPressed = e.Pressed
				if e.Pressed {
					snap.DahFirstPressMs = e.AtMs
				}
			}
			edgeIdx++
		}

		efsm.Tick(now, snap, q)
		txfsm.Tick(now, q, key)

		if len(key.History) > 0 {
			cur := key.History[len(key.History)-1].On
			curTone := false
			if len(key.ToneHistory) > 0 {
				curTone = key.ToneHistory[len(key.ToneHistory)-1].On
			}
			if cur != lastKey || curTone != lastTone {
				trace = append(trace, TraceEvent{AtMs: now, Key: cur, Tone: curTone})
				lastKey, lastTone = cur, curTone
			}
		}
	}
	return trace
}
