// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package clock provides the monotonic millisecond time base the keyer core
// schedules against.
//
// All durations in the core are expressed in integer milliseconds and
// compared with wrapping arithmetic, so a free-running counter works
// identically whether it is backed by the host's monotonic clock or by a
// virtual counter driven by a test.
package clock

import "time"

// Clock is a free-running millisecond counter. Now never goes backward
// except through the wraparound of uint32, which callers handle via
// ElapsedSince.
type Clock interface {
	Now() uint32
}

// ElapsedSince returns the number of milliseconds that have passed between
// earlier and now, treating both as points on a wrapping uint32 counter.
func ElapsedSince(now, earlier uint32) uint32 {
	return now - earlier
}

// FromUnits converts a count of keyer time units (1 unit = unitMs
// milliseconds) into milliseconds.
func FromUnits(units uint32, unitMs uint16) uint32 {
	return units * uint32(unitMs)
}

// System is a Clock backed by the host's monotonic clock, truncated to
// milliseconds and offset to the instant NewSystem was called so it fits in
// a uint32 for a very long time.
type System struct {
	start time.Time
}

// NewSystem returns a System clock, with its epoch at the current instant.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// Now implements Clock.
func (s *System) Now() uint32 {
	return uint32(time.Since(s.start).Milliseconds())
}

// Virtual is a Clock a test can advance explicitly. It is not safe for
// concurrent use; the property-based harness and unit tests drive it from a
// single goroutine.
type Virtual struct {
	ms uint32
}

// Now implements Clock.
func (v *Virtual) Now() uint32 {
	return v.ms
}

// Set moves the virtual clock to an absolute millisecond value.
func (v *Virtual) Set(ms uint32) {
	v.ms = ms
}

// Advance moves the virtual clock forward by delta milliseconds.
func (v *Virtual) Advance(delta uint32) {
	v.ms += delta
}
