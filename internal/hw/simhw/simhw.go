// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package simhw is a deterministic, in-memory implementation of the
// hardware boundary (internal/hw), used by the property-based harness
// (internal/keyertest) and by unit tests that need a paddle/key pair without
// real GPIO. It is a hand-written fake, not a mock generated from an
// interface: it records exactly what a real backend would, and nothing
// more.
package simhw

import (
	"fmt"

	"github.com/jl1nie/gokeyer/internal/hw"
	"github.com/jl1nie/gokeyer/internal/paddle"
)

// Paddle is a simulated paddle pair. A test (or the property harness) drives
// it directly with Press/Release; it forwards accepted edges to whatever
// callback RegisterEdge was given, exactly like a real interrupt source
// would.
type Paddle struct {
	ditPressed bool
	dahPressed bool
	cb         hw.EdgeCallback
}

// NewPaddle returns a Paddle with both contacts released.
func NewPaddle() *Paddle {
	return &Paddle{}
}

// Sample implements hw.PaddleReader.
func (p *Paddle) Sample(side paddle.Side) bool {
	if side == paddle.Dit {
		return p.ditPressed
	}
	return p.dahPressed
}

// RegisterEdge implements hw.PaddleReader.
func (p *Paddle) RegisterEdge(cb hw.EdgeCallback) error {
	p.cb = cb
	return nil
}

// Close implements hw.PaddleReader.
func (p *Paddle) Close() error {
	p.cb = nil
	return nil
}

// Press simulates a press-or-release edge on one contact at the given
// monotonic time, delivering it to the registered callback exactly as a
// debounced interrupt source would (debouncing itself is internal/paddle's
// job, upstream of this backend).
func (p *Paddle) Press(side paddle.Side, pressed bool, nowMs uint32) {
	if side == paddle.Dit {
		p.ditPressed = pressed
	} else {
		p.dahPressed = pressed
	}
	if p.cb != nil {
		p.cb(side, pressed, nowMs)
	}
}

// KeyEvent is one recorded transition of the simulated key or tone line.
// It carries no timestamp: SetKey/SetTone aren't given "now" (they satisfy
// internal/tx.KeyOutput, which doesn't pass it), so a caller that needs
// timestamped transitions records them itself by inspecting History after
// each tick (see internal/keyertest.Run).
type KeyEvent struct {
	On bool
}

// Key is a simulated key/tone output that records every transition, so a
// test can replay the waveform and check it against the bit-exact timing
// contract.
type Key struct {
	asserted   bool
	toneOn     bool
	History    []KeyEvent
	ToneHistory []KeyEvent

	// FailAfter, if non-zero, makes the Nth call to SetKey return an error,
	// for exercising internal/tx's HardwareError counting. Calls are counted
	// from 1.
	FailAfter int
	calls     int
}

// NewKey returns a Key with both the key and tone line de-asserted.
func NewKey() *Key {
	return &Key{}
}

// SetKey implements internal/tx.KeyOutput (and hw.KeyOutput).
func (k *Key) SetKey(on bool) error {
	k.calls++
	k.asserted = on
	k.History = append(k.History, KeyEvent{On: on})
	if k.FailAfter != 0 && k.calls == k.FailAfter {
		return fmt.Errorf("simhw: simulated key failure on call %d", k.calls)
	}
	return nil
}

// SetTone implements internal/tx.KeyOutput (and hw.KeyOutput).
func (k *Key) SetTone(on bool) error {
	k.toneOn = on
	k.ToneHistory = append(k.ToneHistory, KeyEvent{On: on})
	return nil
}

// Close implements hw.KeyOutput.
func (k *Key) Close() error {
	return nil
}

// Asserted reports the key line's current logical level.
func (k *Key) Asserted() bool {
	return k.asserted
}
