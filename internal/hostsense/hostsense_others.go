// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// +build !windows

package hostsense

type unsupportedSensor struct{}

func open() (Sensor, error) {
	return &unsupportedSensor{}, nil
}

func (unsupportedSensor) Read() (Reading, error) {
	return Reading{}, ErrUnsupported
}

func (unsupportedSensor) Close() error {
	return nil
}
