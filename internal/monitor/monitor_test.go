// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package monitor

import "testing"

func TestPushScrolls(t *testing.T) {
	m := New(4)
	m.Push(true)
	m.Push(false)
	m.Push(true)
	m.Push(true)
	want := []bool{true, false, true, true}
	for i, v := range want {
		if m.samples[i] != v {
			t.Fatalf("samples = %v, want %v", m.samples, want)
		}
	}

	// A fifth sample scrolls the first one out.
	m.Push(false)
	want = []bool{false, true, true, false}
	for i, v := range want {
		if m.samples[i] != v {
			t.Fatalf("samples after scroll = %v, want %v", m.samples, want)
		}
	}
}

func TestRenderIsNoOpWhenNotATerminal(t *testing.T) {
	// Test runs under `go test`, never a terminal: Render must not attempt to
	// write ANSI escapes or error out.
	m := New(8)
	if _, err := m.Render(); err != nil {
		t.Fatalf("Render() error = %v, want nil when disabled", err)
	}
}
