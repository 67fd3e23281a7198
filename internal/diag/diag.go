// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package diag is the keyer's diagnostic logger: a thin wrapper over the
// standard library's log.Logger, with a verbose-gated switch (discard
// output when not verbose, microsecond timestamps when it is). The core
// never returns errors from its tick functions; this is where those
// counted-not-propagated events actually surface to a human.
package diag

import (
	"io"
	"log"
	"os"
)

// Logger wraps the standard logger with the heartbeat/counter reporting the
// main loop needs.
type Logger struct {
	l *log.Logger
}

// New returns a Logger writing to w with microsecond timestamps, matching
// the verbose-build format.
func New(w io.Writer) *Logger {
	return &Logger{l: log.New(w, "", log.Lmicroseconds)}
}

// NewVerbose returns a Logger writing to os.Stderr if verbose is true, or
// discarding all output otherwise, the same switch a CLI's "-v" flag makes.
func NewVerbose(verbose bool) *Logger {
	if !verbose {
		return New(io.Discard)
	}
	return New(os.Stderr)
}

// Heartbeat reports the current diagnostic counters. The main loop calls it
// at most once per heartbeat interval (500ms).
func (l *Logger) Heartbeat(hardwareErrors, timingMisses uint32, queueLen, queueCap int) {
	l.l.Printf("heartbeat: hw_errors=%d timing_misses=%d queue=%d/%d", hardwareErrors, timingMisses, queueLen, queueCap)
}

// HardwareError logs a single counted hardware failure.
func (l *Logger) HardwareError(op string, err error) {
	l.l.Printf("hardware error: %s: %v", op, err)
}

// TimingMiss logs a single counted timing miss.
func (l *Logger) TimingMiss(now, endMs uint32) {
	l.l.Printf("timing miss: now=%d end=%d late_by=%dms", now, endMs, now-endMs)
}

// Configured logs the validated configuration the keyer started with.
func (l *Logger) Configured(mode string, unitMs uint16, wpm int) {
	l.l.Printf("configured: mode=%s unit_ms=%d wpm=%d", mode, unitMs, wpm)
}
