// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gokeyer is an iambic Morse keyer core: it turns two paddle
// contacts into a correctly-timed Dit/Dah/CharSpace key line in ModeA,
// ModeB (Curtis-A one-shot memory) or SuperKeyer (priority-queue squeeze)
// behaviour.
//
// The core lives in internal/ as a set of small, independently testable
// finite-state machines (internal/element, internal/tx) connected by a
// bounded queue (internal/equeue) and driven by a five-phase cooperative
// loop, Dev.Run, defined in this package. Hardware access is abstracted
// behind internal/hw, with GPIO (internal/hw/gpiohw), USB-paddle
// (internal/hw/usbpaddle) and simulated (internal/hw/simhw) backends.
//
// cmd/gokeyer wires a Dev to a TOML-configured hardware backend and runs it
// until interrupted.
package gokeyer
