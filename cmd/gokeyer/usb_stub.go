// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// +build !usb

package main

import (
	"errors"

	"github.com/jl1nie/gokeyer/internal/config"
	"github.com/jl1nie/gokeyer/internal/hw"
)

var errNoUSB = errors.New("gokeyer: built without usb support; rebuild with -tags usb")

func openUSBPaddle(cfg config.Config) (hw.PaddleReader, hw.KeyOutput, error) {
	return nil, nil, errNoUSB
}

func listUSBDevices() error {
	return errNoUSB
}
