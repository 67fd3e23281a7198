// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// +build usb

// Package usbpaddle implements hw.PaddleReader against a USB-attached
// paddle dongle: a device exposing one interrupt-IN endpoint that reports a
// single status byte, bit 0 = Dit, bit 1 = Dah, 1 = pressed. It is gated
// behind the "usb" build tag to keep gousb (which needs libusb) out of
// default builds.
package usbpaddle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/gousb"

	"github.com/jl1nie/gokeyer/internal/hw"
	"github.com/jl1nie/gokeyer/internal/paddle"
)

const (
	bitDit = 1 << 0
	bitDah = 1 << 1
)

// Paddle polls a USB paddle dongle's interrupt-IN endpoint from a dedicated
// goroutine, translating status-byte changes into hw.EdgeCallback
// invocations.
type Paddle struct {
	ctx    *gousb.Context
	dev    *gousb.Device
	done   func()
	iface  *gousb.Interface
	in     *gousb.InEndpoint
	cancel context.CancelFunc
	last   byte
}

// Open claims the default interface of the first device matching vid/pid.
func Open(vid, pid uint16) (*Paddle, error) {
	ctx := gousb.NewContext()
	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("usbpaddle: open device %04x:%04x: %w", vid, pid, err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("usbpaddle: no device matching %04x:%04x", vid, pid)
	}
	iface, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usbpaddle: default interface: %w", err)
	}
	in, err := iface.InEndpoint(1)
	if err != nil {
		done()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usbpaddle: interrupt-IN endpoint: %w", err)
	}
	return &Paddle{ctx: ctx, dev: dev, done: done, iface: iface, in: in}, nil
}

// Sample implements hw.PaddleReader using the last-polled status byte; there
// is no separate synchronous read path on this transport.
func (p *Paddle) Sample(side paddle.Side) bool {
	if side == paddle.Dit {
		return p.last&bitDit != 0
	}
	return p.last&bitDah != 0
}

// RegisterEdge implements hw.PaddleReader, starting the polling goroutine
// that stands in for interrupt context on this backend.
func (p *Paddle) RegisterEdge(cb hw.EdgeCallback) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.poll(ctx, cb)
	return nil
}

func (p *Paddle) poll(ctx context.Context, cb hw.EdgeCallback) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n, err := p.in.Read(buf)
		if err != nil || n == 0 {
			time.Sleep(2 * time.Millisecond)
			continue
		}
		changed := buf[0] ^ p.last
		now := uint32(time.Now().UnixMilli())
		if changed&bitDit != 0 {
			cb(paddle.Dit, buf[0]&bitDit != 0, now)
		}
		if changed&bitDah != 0 {
			cb(paddle.Dah, buf[0]&bitDah != 0, now)
		}
		p.last = buf[0]
	}
}

// Close implements hw.PaddleReader.
func (p *Paddle) Close() error {
	if p.cancel != nil {
		p.cancel()
	}
	p.done()
	err := p.dev.Close()
	p.ctx.Close()
	return err
}
