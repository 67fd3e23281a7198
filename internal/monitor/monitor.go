// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package monitor renders the key line's recent assert/de-assert history as
// a scrolling strip of terminal cells: a cell is green when the key was
// asserted during that sample and dark otherwise.
package monitor

import (
	"bytes"
	"image/color"
	"io"
	"os"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var (
	onColor  = color.NRGBA{0, 220, 0, 255}
	offColor = color.NRGBA{20, 20, 20, 255}
)

// Monitor is a fixed-width scrolling strip of key-line samples.
type Monitor struct {
	w       io.Writer
	enabled bool
	samples []bool
	buf     bytes.Buffer
}

// New returns a Monitor with width cells, writing ANSI-colored output to
// stdout. It disables itself (Push/Render become no-ops) when stdout is not
// a terminal: there is no point emitting escape codes into a pipe or log
// file.
func New(width int) *Monitor {
	stdout := colorable.NewColorableStdout()
	return &Monitor{
		w:       stdout,
		enabled: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		samples: make([]bool, width),
	}
}

// Push appends one key-line sample, scrolling the oldest one out.
func (m *Monitor) Push(keyAsserted bool) {
	copy(m.samples, m.samples[1:])
	m.samples[len(m.samples)-1] = keyAsserted
}

// Render writes the current strip to the terminal. It is a no-op if the
// Monitor determined at construction that stdout is not a terminal.
func (m *Monitor) Render() (int, error) {
	if !m.enabled {
		return 0, nil
	}
	m.buf.Reset()
	_, _ = m.buf.WriteString("\r\033[0m")
	for _, on := range m.samples {
		c := offColor
		if on {
			c = onColor
		}
		_, _ = io.WriteString(&m.buf, ansi256.Default.Block(c))
	}
	_, _ = m.buf.WriteString("\033[0m ")
	n, err := m.buf.WriteTo(m.w)
	return int(n), err
}

// Halt clears the display so a stopped monitor doesn't leave a corrupted
// line behind, matching screen.Dev.Halt.
func (m *Monitor) Halt() error {
	if !m.enabled {
		return nil
	}
	_, err := m.w.Write([]byte("\n\033[0m"))
	return err
}

func (m *Monitor) String() string {
	return "Monitor"
}
