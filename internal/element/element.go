// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package element implements the mode-aware Element finite-state machine:
// the engine that turns a debounced paddle snapshot into a stream of Dit,
// Dah and CharSpace elements.
package element

import "github.com/jl1nie/gokeyer/internal/paddle"

// Element is a tagged Morse element. It carries no payload: its duration is
// derived from the configured unit by the transmission side.
type Element int

const (
	Dit Element = iota
	Dah
	CharSpace
)

func (e Element) String() string {
	switch e {
	case Dit:
		return "dit"
	case Dah:
		return "dah"
	case CharSpace:
		return "charspace"
	default:
		return "unknown"
	}
}

// Opposite returns the alternation partner of a keyed element. It panics if
// called on CharSpace, which has no opposite; callers only ever alternate
// Dit/Dah.
func (e Element) Opposite() Element {
	switch e {
	case Dit:
		return Dah
	case Dah:
		return Dit
	default:
		panic("element: Opposite called on non-keyed element")
	}
}

// Mode selects one of the three behavioural modes: ModeA, ModeB, or
// SuperKeyer.
type Mode int

const (
	ModeA Mode = iota
	ModeB
	SuperKeyer
)

func (m Mode) String() string {
	switch m {
	case ModeA:
		return "A"
	case ModeB:
		return "B"
	case SuperKeyer:
		return "SuperKeyer"
	default:
		return "unknown"
	}
}

// elementFor maps a paddle side to its keyed element.
func elementFor(side paddle.Side) Element {
	if side == paddle.Dit {
		return Dit
	}
	return Dah
}
