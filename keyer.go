// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gokeyer

import (
	"context"
	"sync"
	"time"

	"github.com/jl1nie/gokeyer/internal/clock"
	"github.com/jl1nie/gokeyer/internal/config"
	"github.com/jl1nie/gokeyer/internal/diag"
	"github.com/jl1nie/gokeyer/internal/element"
	"github.com/jl1nie/gokeyer/internal/equeue"
	"github.com/jl1nie/gokeyer/internal/hw"
	"github.com/jl1nie/gokeyer/internal/monitor"
	"github.com/jl1nie/gokeyer/internal/paddle"
	"github.com/jl1nie/gokeyer/internal/rtsched"
	"github.com/jl1nie/gokeyer/internal/tx"
)

// tickInterval is the main loop's periodic phase-1/2 fallback: the Element
// FSM ticks on a paddle change, or at least every 10ms, so a held paddle's
// CharSpacePending/squeeze timers still advance even with no new edges.
const tickInterval = 10 * time.Millisecond

// heartbeatInterval throttles phase 4's diagnostic log line; logging every
// 10ms tick would drown a verbose run in heartbeats with nothing new to
// report.
const heartbeatInterval = 500 * time.Millisecond

// Dev is the keyer's main loop: a conn.Resource (String/Halt), wiring the
// Element and Transmission FSMs to a hardware boundary and running the
// five-phase cooperative loop.
type Dev struct {
	cfg config.Config

	efsm *element.FSM
	txfsm *tx.FSM
	q     *equeue.Queue

	paddleState *paddle.State
	paddleIn    hw.PaddleReader
	keyOut      hw.KeyOutput

	clk clock.Clock
	log *diag.Logger
	mon *monitor.Monitor

	changed chan struct{}

	haltOnce sync.Once
	halted   chan struct{}
}

// New validates cfg and constructs a Dev wired to the given hardware
// backend. mon may be nil to disable the terminal waveform view.
func New(cfg config.Config, paddleIn hw.PaddleReader, keyOut hw.KeyOutput, clk clock.Clock, log *diag.Logger, mon *monitor.Monitor) (*Dev, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := cfg.ParsedMode()
	if err != nil {
		return nil, err
	}

	d := &Dev{
		cfg:         cfg,
		efsm:        element.New(mode, cfg.CharSpaceEnabled, cfg.UnitMS),
		txfsm:       tx.New(cfg.UnitMS),
		q:           equeue.New(cfg.QueueCapacity),
		paddleState: paddle.New(cfg.DebounceMS),
		paddleIn:    paddleIn,
		keyOut:      keyOut,
		clk:         clk,
		log:         log,
		mon:         mon,
		changed:     make(chan struct{}, 1),
		halted:      make(chan struct{}),
	}

	if err := paddleIn.RegisterEdge(d.onEdge); err != nil {
		return nil, err
	}
	log.Configured(mode.String(), cfg.UnitMS, cfg.WPM())
	return d, nil
}

func (d *Dev) String() string {
	return "gokeyer.Dev(" + d.cfg.Mode + ")"
}

// onEdge is hw.EdgeCallback: called from whatever goroutine the backend
// uses as interrupt context. It only ever writes atomics and attempts a
// non-blocking channel send, so it never blocks the caller.
func (d *Dev) onEdge(side paddle.Side, pressed bool, nowMs uint32) {
	d.paddleState.OnEdge(side, pressed, nowMs)
	select {
	case d.changed <- struct{}{}:
	default:
	}
}

// Run executes the main loop until ctx is cancelled or Halt is called,
// whichever comes first. It blocks the calling goroutine, so callers
// typically run it in its own goroutine.
func (d *Dev) Run(ctx context.Context) error {
	if err := rtsched.Pin(); err != nil {
		d.log.HardwareError("rtsched.Pin", err)
	}
	defer rtsched.Unpin()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	lastHeartbeat := d.clk.Now()

	for {
		select {
		case <-ctx.Done():
			return d.Halt()
		case <-d.halted:
			return nil
		case <-d.changed:
		case <-ticker.C:
		}

		now := d.clk.Now()
		snap := d.paddleState.Snapshot()

		// Phase 1/2: advance the Element FSM on a paddle change or the
		// periodic fallback tick, whichever woke the loop.
		d.efsm.Tick(now, snap, d.q)
		// Phase 3: the Transmission FSM always ticks, so an in-flight keyed
		// element's deadline is never missed by more than one loop pass.
		d.txfsm.Tick(now, d.q, d.keyOut)

		// Phase 4: diagnostics, throttled to heartbeatInterval.
		if clock.ElapsedSince(now, lastHeartbeat) >= uint32(heartbeatInterval.Milliseconds()) {
			d.log.Heartbeat(d.txfsm.Diagnostics.HardwareErrors, d.txfsm.Diagnostics.TimingMisses, d.q.Len(), d.q.Cap())
			lastHeartbeat = now
		}
		if d.mon != nil {
			d.mon.Push(d.txfsm.KeyAsserted())
			d.mon.Render()
		}
		// Phase 5 is the select at the top of the next iteration: the loop
		// never busy-polls, it always blocks on an edge, the fallback
		// ticker, or cancellation.
	}
}

// Halt implements conn.Resource: it stops the loop (if running) and
// de-asserts the key and tone lines so the transmitter is never left keyed.
func (d *Dev) Halt() error {
	d.haltOnce.Do(func() { close(d.halted) })
	if d.mon != nil {
		_ = d.mon.Halt()
	}
	if err := d.keyOut.SetTone(false); err != nil {
		d.log.HardwareError("SetTone", err)
	}
	return d.keyOut.SetKey(false)
}
