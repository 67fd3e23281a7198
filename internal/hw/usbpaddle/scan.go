// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// +build usb

package usbpaddle

import (
	"fmt"
	"sort"

	"github.com/google/gousb"
)

// Desc describes one USB device visible on the bus, enough to pick a VID/PID
// pair for Open.
type Desc struct {
	VID, PID uint16
	Bus      int
	Addr     int
}

func (d Desc) String() string {
	return fmt.Sprintf("%04x:%04x (bus %d, addr %d)", d.VID, d.PID, d.Bus, d.Addr)
}

// List enumerates every USB device currently visible, for a user who does
// not know their paddle dongle's VID/PID pair and wants to find it in the
// output of `gokeyer -list-usb`. It keeps no device open: unlike Open, it
// only reads descriptors.
func List() ([]Desc, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	var descs []Desc
	devs, err := ctx.OpenDevices(func(d *gousb.DeviceDesc) bool {
		descs = append(descs, Desc{VID: uint16(d.Vendor), PID: uint16(d.Product), Bus: d.Bus, Addr: d.Address})
		return false // never keep a device open just to list it
	})
	for _, d := range devs {
		d.Close()
	}
	if err != nil {
		return descs, fmt.Errorf("usbpaddle: scan bus: %w", err)
	}
	sort.Slice(descs, func(i, j int) bool {
		if descs[i].Bus != descs[j].Bus {
			return descs[i].Bus < descs[j].Bus
		}
		return descs[i].Addr < descs[j].Addr
	})
	return descs, nil
}
