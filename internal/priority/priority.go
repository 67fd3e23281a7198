// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package priority implements the SuperKeyer press-history tracker that
// answers "which paddle has priority right now" under squeeze. It exists
// only for the SuperKeyer mode; ModeA and ModeB decide first-press order
// directly from the current paddle snapshot, since they have no
// cross-release memory requirement.
package priority

import "github.com/jl1nie/gokeyer/internal/paddle"

// Controller tracks, per paddle, the timestamp of the earliest press still
// considered "held" for priority purposes, and clears it the instant that
// paddle reads released.
type Controller struct {
	ditHeld, dahHeld   bool
	ditFirst, dahFirst uint32
}

// Update refreshes the controller's view from a fresh snapshot. Call it once
// per FSM tick, before Choose.
func (c *Controller) Update(snap paddle.Snapshot) {
	if snap.DitPressed {
		if !c.ditHeld {
			c.ditFirst = snap.DitFirstPressMs
		}
		c.ditHeld = true
	} else {
		c.ditHeld = false
	}

	if snap.DahPressed {
		if !c.dahHeld {
			c.dahFirst = snap.DahFirstPressMs
		}
		c.dahHeld = true
	} else {
		c.dahHeld = false
	}
}

// Choose returns the paddle with priority and true, or ok=false if neither
// paddle is currently held. When both are held, the earlier press wins;
// ties (equal timestamps, or both unknown) go to Dah.
func (c *Controller) Choose() (side paddle.Side, ok bool) {
	switch {
	case c.ditHeld && !c.dahHeld:
		return paddle.Dit, true
	case c.dahHeld && !c.ditHeld:
		return paddle.Dah, true
	case c.ditHeld && c.dahHeld:
		if c.ditFirst < c.dahFirst {
			return paddle.Dit, true
		}
		return paddle.Dah, true
	default:
		return 0, false
	}
}
