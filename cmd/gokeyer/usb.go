// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// +build usb

package main

import (
	"fmt"

	"github.com/jl1nie/gokeyer/internal/config"
	"github.com/jl1nie/gokeyer/internal/hw"
	"github.com/jl1nie/gokeyer/internal/hw/gpiohw"
	"github.com/jl1nie/gokeyer/internal/hw/usbpaddle"
)

// openUSBPaddle reads the paddle from a USB dongle but still drives the key
// and tone lines through GPIO: a USB paddle interface is an input-only
// accessory, the transmitter keying hardware is still wired to the host.
func openUSBPaddle(cfg config.Config) (hw.PaddleReader, hw.KeyOutput, error) {
	p, err := usbpaddle.Open(cfg.Hardware.USBVendorID, cfg.Hardware.USBProductID)
	if err != nil {
		return nil, nil, fmt.Errorf("gokeyer: open usb paddle: %w", err)
	}
	k, err := gpiohw.OpenKey(cfg.Hardware.KeyPin, cfg.Hardware.TonePin)
	if err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("gokeyer: open key output: %w", err)
	}
	return p, k, nil
}

func listUSBDevices() error {
	descs, err := usbpaddle.List()
	if err != nil {
		return err
	}
	for _, d := range descs {
		fmt.Println(d)
	}
	return nil
}
