// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tx

import (
	"errors"
	"testing"

	"github.com/jl1nie/gokeyer/internal/element"
)

type spyConsumer struct {
	queue []element.Element
}

func (s *spyConsumer) TryDequeue() (element.Element, bool) {
	if len(s.queue) == 0 {
		return 0, false
	}
	e := s.queue[0]
	s.queue = s.queue[1:]
	return e, true
}

func (s *spyConsumer) push(es ...element.Element) {
	s.queue = append(s.queue, es...)
}

type spyKey struct {
	keyHistory  []bool
	toneHistory []bool
	failKey     bool
	failTone    bool
}

func (s *spyKey) SetKey(on bool) error {
	s.keyHistory = append(s.keyHistory, on)
	if s.failKey {
		return errors.New("tx: simulated key failure")
	}
	return nil
}

func (s *spyKey) SetTone(on bool) error {
	s.toneHistory = append(s.toneHistory, on)
	if s.failTone {
		return errors.New("tx: simulated tone failure")
	}
	return nil
}

const unit = uint32(60)

func TestSingleDitTiming(t *testing.T) {
	f := New(uint16(unit))
	cons := &spyConsumer{}
	key := &spyKey{}
	cons.push(element.Dit)

	f.Tick(0, cons, key) // dequeues Dit, asserts
	if !f.KeyAsserted() {
		t.Fatal("key not asserted after dequeuing Dit")
	}

	f.Tick(unit-1, cons, key) // still within the keyed unit
	if !f.KeyAsserted() {
		t.Fatal("key de-asserted before the unit elapsed")
	}

	f.Tick(unit, cons, key) // deadline reached: de-assert, enter gap
	if f.KeyAsserted() {
		t.Fatal("key still asserted after the Dit's unit elapsed")
	}

	f.Tick(2*unit-1, cons, key)
	if f.KeyAsserted() {
		t.Fatal("key reasserted mid-gap with nothing queued")
	}

	if key.keyHistory[0] != true || key.keyHistory[1] != false {
		t.Fatalf("key history = %v, want [true, false, ...]", key.keyHistory)
	}
}

func TestDahTiming(t *testing.T) {
	f := New(uint16(unit))
	cons := &spyConsumer{}
	key := &spyKey{}
	cons.push(element.Dah)

	f.Tick(0, cons, key)
	if !f.KeyAsserted() {
		t.Fatal("key not asserted after dequeuing Dah")
	}
	f.Tick(3*unit-1, cons, key)
	if !f.KeyAsserted() {
		t.Fatal("Dah de-asserted before 3 units elapsed")
	}
	f.Tick(3*unit, cons, key)
	if f.KeyAsserted() {
		t.Fatal("Dah still asserted after 3 units elapsed")
	}
}

func TestDitDitSequenceWaveform(t *testing.T) {
	f := New(uint16(unit))
	cons := &spyConsumer{}
	key := &spyKey{}
	cons.push(element.Dit, element.Dit)

	f.Tick(0, cons, key) // H
	f.Tick(unit, cons, key) // L, peeks next Dit into pending
	if f.KeyAsserted() {
		t.Fatal("expected key low during inter-element gap")
	}
	f.Tick(2*unit, cons, key) // gap elapsed: pending Dit reasserts
	if !f.KeyAsserted() {
		t.Fatal("expected second Dit to assert after the gap")
	}
	f.Tick(3*unit, cons, key) // second Dit's unit elapsed
	if f.KeyAsserted() {
		t.Fatal("expected key low after second Dit completes")
	}

	want := []bool{true, false, true, false}
	if len(key.keyHistory) != len(want) {
		t.Fatalf("key history = %v, want %v", key.keyHistory, want)
	}
	for i, v := range want {
		if key.keyHistory[i] != v {
			t.Fatalf("key history = %v, want %v", key.keyHistory, want)
		}
	}
}

func TestCharSpaceCollapsesGapTo3Units(t *testing.T) {
	//: CharSpace following a keyed element replaces the 1U
	// inter-element gap rather than stacking after it: total silence is 3U.
	f := New(uint16(unit))
	cons := &spyConsumer{}
	key := &spyKey{}
	cons.push(element.Dit, element.CharSpace)

	f.Tick(0, cons, key)        // assert Dit
	f.Tick(unit, cons, key)     // Dit ends; peeks CharSpace, collapses to CharGap(3U)
	if f.KeyAsserted() {
		t.Fatal("key asserted while CharGap should be silent")
	}
	f.Tick(unit+3*unit-1, cons, key)
	if f.KeyAsserted() {
		t.Fatal("key unexpectedly asserted before CharGap elapsed")
	}
	// Total silence window is exactly 3U after the Dit ends, not 1U + 3U.
	f.Tick(unit+3*unit, cons, key)
	if f.KeyAsserted() {
		t.Fatal("nothing queued after CharGap: key should remain low")
	}
}

func TestCharSpaceAloneProducesNoKeying(t *testing.T) {
	f := New(uint16(unit))
	cons := &spyConsumer{}
	key := &spyKey{}
	cons.push(element.CharSpace)

	f.Tick(0, cons, key)
	if f.KeyAsserted() {
		t.Fatal("CharSpace must never assert the key line")
	}
	for _, v := range key.keyHistory {
		if v {
			t.Fatal("key asserted at some point during CharSpace-only trace")
		}
	}
}

func TestHardwareErrorsCounted(t *testing.T) {
	f := New(uint16(unit))
	cons := &spyConsumer{}
	key := &spyKey{failKey: true}
	cons.push(element.Dit)

	f.Tick(0, cons, key)
	if f.Diagnostics.HardwareErrors == 0 {
		t.Fatal("expected a hardware error to be counted on a failing SetKey")
	}
	// The FSM must proceed despite the failure: it should still be keyed.
	if !f.KeyAsserted() {
		t.Fatal("FSM must proceed past a hardware error, not get stuck")
	}
}

func TestTimingMissCounted(t *testing.T) {
	f := New(uint16(unit))
	cons := &spyConsumer{}
	key := &spyKey{}
	cons.push(element.Dit)

	f.Tick(0, cons, key)
	// Tick arrives well past the deadline: a timing miss.
	f.Tick(unit+50, cons, key)
	if f.Diagnostics.TimingMisses == 0 {
		t.Fatal("expected a timing miss to be counted on a late tick")
	}
}

func TestNoTimingMissOnExactDeadline(t *testing.T) {
	f := New(uint16(unit))
	cons := &spyConsumer{}
	key := &spyKey{}
	cons.push(element.Dit)

	f.Tick(0, cons, key)
	f.Tick(unit, cons, key) // exactly on time
	if f.Diagnostics.TimingMisses != 0 {
		t.Fatalf("TimingMisses = %d, want 0 for an on-time transition", f.Diagnostics.TimingMisses)
	}
}

func TestIdleWithEmptyQueueProducesNoTransitions(t *testing.T) {
	f := New(uint16(unit))
	cons := &spyConsumer{}
	key := &spyKey{}

	for now := uint32(0); now < 1000; now += 10 {
		f.Tick(now, cons, key)
	}
	if len(key.keyHistory) != 0 {
		t.Fatalf("expected no key transitions with an empty queue, got %v", key.keyHistory)
	}
}

func TestIdempotentTickSameClock(t *testing.T) {
	f := New(uint16(unit))
	cons := &spyConsumer{}
	key := &spyKey{}
	cons.push(element.Dit)

	f.Tick(0, cons, key)
	before := len(key.keyHistory)
	f.Tick(0, cons, key)
	f.Tick(0, cons, key)
	if len(key.keyHistory) != before {
		t.Fatalf("ticking with an unchanged clock produced extra transitions: %v", key.keyHistory)
	}
}
