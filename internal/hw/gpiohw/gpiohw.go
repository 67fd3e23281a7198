// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpiohw implements the hardware boundary (internal/hw) on top of
// periph.io/x/periph's GPIO and PWM abstractions: two gpio.PinIn contacts
// for the paddle, a gpio.PinOut for the key line, and a PWM-capable
// gpio.PinOut for a 600 Hz sidetone.
package gpiohw

import (
	"fmt"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/physic"

	"github.com/jl1nie/gokeyer/internal/hw"
	"github.com/jl1nie/gokeyer/internal/paddle"
)

// sidetoneFrequency is the canonical sidetone pitch; the core does not set
// frequency, it is a driver-side constant.
const sidetoneFrequency = 600 * physic.Hertz

// Paddle wires the two paddle contacts to a pair of gpio.PinIn, each armed
// with BothEdges and a pull-up (active-low contacts, closed = pressed).
// RegisterEdge spawns one goroutine per contact blocked in WaitForEdge,
// standing in for interrupt context on this platform.
type Paddle struct {
	dit, dah gpio.PinIn
	stop     chan struct{}
}

// OpenPaddle resolves ditName and dahName via gpioreg.ByName and configures
// both as pull-up, edge-triggered inputs.
func OpenPaddle(ditName, dahName string) (*Paddle, error) {
	dit := gpioreg.ByName(ditName)
	if dit == nil {
		return nil, fmt.Errorf("gpiohw: no such pin %q", ditName)
	}
	dah := gpioreg.ByName(dahName)
	if dah == nil {
		return nil, fmt.Errorf("gpiohw: no such pin %q", dahName)
	}
	if err := dit.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("gpiohw: configure dit pin: %w", err)
	}
	if err := dah.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("gpiohw: configure dah pin: %w", err)
	}
	return &Paddle{dit: dit, dah: dah}, nil
}

// Sample implements hw.PaddleReader. Pull-up wiring means a closed (pressed)
// contact reads Low.
func (p *Paddle) Sample(side paddle.Side) bool {
	if side == paddle.Dit {
		return p.dit.Read() == gpio.Low
	}
	return p.dah.Read() == gpio.Low
}

// RegisterEdge implements hw.PaddleReader, arming one WaitForEdge goroutine
// per contact.
func (p *Paddle) RegisterEdge(cb hw.EdgeCallback) error {
	p.stop = make(chan struct{})
	go p.watch(paddle.Dit, p.dit, cb)
	go p.watch(paddle.Dah, p.dah, cb)
	return nil
}

func (p *Paddle) watch(side paddle.Side, pin gpio.PinIn, cb hw.EdgeCallback) {
	for {
		select {
		case <-p.stop:
			return
		default:
		}
		if !pin.WaitForEdge(time.Second) {
			continue // timeout: recheck stop and keep waiting
		}
		pressed := pin.Read() == gpio.Low
		cb(side, pressed, uint32(time.Now().UnixMilli()))
	}
}

// Close implements hw.PaddleReader.
func (p *Paddle) Close() error {
	if p.stop != nil {
		close(p.stop)
	}
	return nil
}

// Key drives the key line and a PWM sidetone output together.
type Key struct {
	key  gpio.PinOut
	tone gpio.PinOut
}

// OpenKey resolves keyName and toneName via gpioreg.ByName. toneName may be
// empty, in which case sidetone assertion is a no-op.
func OpenKey(keyName, toneName string) (*Key, error) {
	key := gpioreg.ByName(keyName)
	if key == nil {
		return nil, fmt.Errorf("gpiohw: no such pin %q", keyName)
	}
	k := &Key{key: key}
	if toneName != "" {
		tone := gpioreg.ByName(toneName)
		if tone == nil {
			return nil, fmt.Errorf("gpiohw: no such pin %q", toneName)
		}
		k.tone = tone
	}
	return k, nil
}

// SetKey implements internal/tx.KeyOutput (and hw.KeyOutput).
func (k *Key) SetKey(on bool) error {
	l := gpio.Low
	if on {
		l = gpio.High
	}
	return k.key.Out(l)
}

// SetTone implements internal/tx.KeyOutput (and hw.KeyOutput). It drives a
// 50% duty PWM at sidetoneFrequency while on, and Low while off.
func (k *Key) SetTone(on bool) error {
	if k.tone == nil {
		return nil
	}
	if on {
		return k.tone.PWM(gpio.DutyMax/2, sidetoneFrequency)
	}
	return k.tone.Out(gpio.Low)
}

// Close implements hw.KeyOutput. It de-asserts both lines so a stopped
// process never leaves the transmitter keyed.
func (k *Key) Close() error {
	if err := k.SetKey(false); err != nil {
		return err
	}
	return k.SetTone(false)
}
