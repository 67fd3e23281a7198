// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package paddle

import "testing"

func TestOnEdgeBasicPressRelease(t *testing.T) {
	s := New(10)
	s.OnEdge(Dit, true, 0)
	snap := s.Snapshot()
	if !snap.DitPressed {
		t.Fatal("expected dit pressed")
	}
	if snap.DitFirstPressMs != 0 {
		t.Fatalf("DitFirstPressMs = %d, want 0", snap.DitFirstPressMs)
	}

	s.OnEdge(Dit, false, 50)
	snap = s.Snapshot()
	if snap.DitPressed {
		t.Fatal("expected dit released")
	}
}

func TestDebounceRejectsRapidEdges(t *testing.T) {
	// Scenario 6 from: press@0, release@3, press@6 with
	// debounce=10 must collapse to a single continuous press from t=0.
	s := New(10)
	s.OnEdge(Dit, true, 0)
	s.OnEdge(Dit, false, 3)
	s.OnEdge(Dit, true, 6)

	snap := s.Snapshot()
	if !snap.DitPressed {
		t.Fatal("expected dit still pressed (release at t=3 should be debounced away)")
	}
	if snap.DitFirstPressMs != 0 {
		t.Fatalf("DitFirstPressMs = %d, want 0 (original press preserved)", snap.DitFirstPressMs)
	}

	// A release at t=10 is exactly at the boundary: accepted.
	s.OnEdge(Dit, false, 10)
	if s.Snapshot().DitPressed {
		t.Fatal("expected release at exactly debounce_ms to be accepted")
	}
}

func TestDebounceIsPerContact(t *testing.T) {
	s := New(10)
	s.OnEdge(Dit, true, 0)
	s.OnEdge(Dah, true, 1) // different contact, not subject to dit's debounce window
	snap := s.Snapshot()
	if !snap.DitPressed || !snap.DahPressed {
		t.Fatal("expected both contacts pressed")
	}
}

func TestSetDebounceAppliesToNextEdge(t *testing.T) {
	s := New(10)
	s.OnEdge(Dit, true, 0)
	s.SetDebounce(1)
	s.OnEdge(Dit, false, 2)
	if s.Snapshot().DitPressed {
		t.Fatal("expected release accepted under new, shorter debounce window")
	}
}

func TestReleaseClearsFirstPress(t *testing.T) {
	s := New(10)
	s.OnEdge(Dah, true, 5)
	s.OnEdge(Dah, false, 20)
	s.OnEdge(Dah, true, 40)
	if got := s.Snapshot().DahFirstPressMs; got != 40 {
		t.Fatalf("DahFirstPressMs = %d, want 40 (reset by intervening release)", got)
	}
}
