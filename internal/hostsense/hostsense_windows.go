// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hostsense

import "github.com/StackExchange/wmi"

// thermalZone mirrors MSAcpi_ThermalZoneTemperature, intentionally leaving
// most members out, matching winthermal.go's obj.
type thermalZone struct {
	CurrentTemperature uint32
	InstanceName       string
}

type wmiSensor struct{}

func open() (Sensor, error) {
	return &wmiSensor{}, nil
}

// Read implements Sensor.
//
// https://msdn.microsoft.com/en-us/library/aa394493.aspx
func (w *wmiSensor) Read() (Reading, error) {
	var zones []thermalZone
	if err := wmi.Query("SELECT * FROM MSAcpi_ThermalZoneTemperature", &zones); err != nil {
		return Reading{}, err
	}
	if len(zones) == 0 {
		return Reading{}, ErrUnsupported
	}
	z := zones[0]
	// CurrentTemperature is reported in tenths of a Kelvin.
	tenthsKelvin := int32(z.CurrentTemperature)
	celsiusTenths := tenthsKelvin - 2731
	return Reading{CelsiusTenths: celsiusTenths, Zone: z.InstanceName}, nil
}

// Close implements Sensor.
func (w *wmiSensor) Close() error {
	return nil
}
