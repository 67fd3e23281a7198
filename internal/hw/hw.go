// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hw defines the narrow hardware boundary the keyer core consumes:
// reading the two paddle contacts and driving the key and tone lines.
// Concrete backends live in the gpiohw, usbpaddle and simhw subpackages;
// gpiohw and simhw satisfy both interfaces, usbpaddle only PaddleReader,
// so the core never knows which one it is talking to.
package hw

import "github.com/jl1nie/gokeyer/internal/paddle"

// EdgeCallback is invoked once per accepted (post-debounce) paddle
// transition. A backend calls it from whatever context stands in for
// interrupt context on its platform: a dedicated goroutine servicing
// gpio.PinIn.WaitForEdge, a USB endpoint-polling goroutine, or directly from
// a test driving a virtual clock.
type EdgeCallback func(side paddle.Side, pressed bool, nowMs uint32)

// PaddleReader is the input half of the hardware boundary. RegisterEdge
// arms whatever mechanism the backend uses to detect transitions; it must be
// called exactly once, before the main loop starts, and the callback it is
// given must be safe to call from whatever goroutine the backend uses.
type PaddleReader interface {
	// Sample returns the current logical level of one contact: true means
	// pressed. Dev does not call it: its paddle state starts with both
	// contacts released and changes only through RegisterEdge's callback.
	Sample(side paddle.Side) bool

	// RegisterEdge arranges for cb to be invoked on each accepted edge.
	RegisterEdge(cb EdgeCallback) error

	// Close releases any goroutines or handles the backend is holding.
	Close() error
}

// KeyOutput is the output half of the hardware boundary: the key line and
// sidetone. It satisfies internal/tx.KeyOutput directly.
type KeyOutput interface {
	SetKey(on bool) error
	SetTone(on bool) error
	Close() error
}
