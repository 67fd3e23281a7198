// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package clock

import "testing"

func TestElapsedSinceWraps(t *testing.T) {
	// earlier is near the top of the uint32 range; now has wrapped past 0.
	earlier := uint32(0xFFFFFFF0)
	now := uint32(10)
	if got, want := ElapsedSince(now, earlier), uint32(26); got != want {
		t.Fatalf("ElapsedSince() = %d, want %d", got, want)
	}
}

func TestFromUnits(t *testing.T) {
	cases := []struct {
		units  uint32
		unitMs uint16
		want   uint32
	}{
		{1, 60, 60},
		{3, 60, 180},
		{0, 60, 0},
	}
	for _, c := range cases {
		if got := FromUnits(c.units, c.unitMs); got != c.want {
			t.Errorf("FromUnits(%d, %d) = %d, want %d", c.units, c.unitMs, got, c.want)
		}
	}
}

func TestVirtual(t *testing.T) {
	var v Virtual
	if v.Now() != 0 {
		t.Fatalf("zero value Virtual.Now() = %d, want 0", v.Now())
	}
	v.Set(100)
	if v.Now() != 100 {
		t.Fatalf("Now() = %d, want 100", v.Now())
	}
	v.Advance(50)
	if v.Now() != 150 {
		t.Fatalf("Now() = %d, want 150", v.Now())
	}
}
