// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hostsense reads the Windows ACPI thermal zone via WMI. A station
// running on a Windows host can fold one extra line ("ambient Xc") into the
// diagnostic heartbeat next to the hardware-error and timing-miss counters.
package hostsense

import (
	"errors"
	"time"
)

// ErrUnsupported is returned by every Sensor method on a platform with no
// ambient-temperature binding.
var ErrUnsupported = errors.New("hostsense: not supported on this platform")

// Reading is one ambient temperature sample.
type Reading struct {
	CelsiusTenths int32 // e.g. 215 == 21.5C
	Zone          string
}

// Sensor reads the host's ambient temperature. On platforms without a
// binding it returns ErrUnsupported from every call.
type Sensor interface {
	Read() (Reading, error)
	Close() error
}

// Open returns a Sensor for the current platform. On Windows it queries WMI
// (hostsense_windows.go); elsewhere it returns a Sensor whose Read always
// fails with ErrUnsupported (hostsense_others.go).
func Open() (Sensor, error) {
	return open()
}

// PollEvery runs fn with each successful Reading at the given interval until
// stop is closed. A failed Read is swallowed: ambient temperature is a
// diagnostic nicety, not load-bearing, and a transient WMI hiccup should
// never interrupt the keyer's own loop.
func PollEvery(s Sensor, interval time.Duration, stop <-chan struct{}, fn func(Reading)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if r, err := s.Read(); err == nil {
				fn(r)
			}
		}
	}
}
