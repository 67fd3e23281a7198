// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jl1nie/gokeyer/internal/element"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestDefaultWPM(t *testing.T) {
	if got := Default().WPM(); got != 20 {
		t.Fatalf("Default().WPM() = %d, want 20", got)
	}
}

func TestParsedMode(t *testing.T) {
	cases := []struct {
		mode string
		want element.Mode
	}{
		{"A", element.ModeA},
		{"B", element.ModeB},
		{"SuperKeyer", element.SuperKeyer},
	}
	for _, c := range cases {
		cfg := Default()
		cfg.Mode = c.mode
		got, err := cfg.ParsedMode()
		if err != nil {
			t.Fatalf("ParsedMode() error = %v for mode %q", err, c.mode)
		}
		if got != c.want {
			t.Fatalf("ParsedMode() = %v, want %v for mode %q", got, c.want, c.mode)
		}
	}
}

func TestParsedModeInvalid(t *testing.T) {
	cfg := Default()
	cfg.Mode = "X"
	if _, err := cfg.ParsedMode(); err == nil {
		t.Fatal("ParsedMode() error = nil, want error for unknown mode")
	}
}

func TestValidateRejectsBadUnit(t *testing.T) {
	cfg := Default()
	cfg.UnitMS = 5
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want error for out-of-range unit_ms")
	}
	var ice *InvalidConfigurationError
	if !asInvalidConfigurationError(err, &ice) {
		t.Fatalf("Validate() error = %v, want *InvalidConfigurationError", err)
	}
	if ice.Field != "unit_ms" {
		t.Fatalf("InvalidConfigurationError.Field = %q, want %q", ice.Field, "unit_ms")
	}
}

func TestValidateRejectsBadBackend(t *testing.T) {
	cfg := Default()
	cfg.Hardware.Backend = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for unknown backend")
	}
}

func TestValidateRejectsBadQueueCapacity(t *testing.T) {
	cfg := Default()
	cfg.QueueCapacity = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for too-small queue_capacity")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gokeyer.toml")

	want := Default()
	want.Mode = "SuperKeyer"
	want.UnitMS = 48
	want.Hardware.Backend = "gpio"
	want.Hardware.DitPin = "GPIO17"
	want.Hardware.DahPin = "GPIO27"

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml")); err == nil {
		t.Fatal("Load() error = nil, want error for missing file")
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gokeyer.toml")
	if err := os.WriteFile(path, []byte("unit_ms = 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want validation error for out-of-range unit_ms")
	}
}

func asInvalidConfigurationError(err error, target **InvalidConfigurationError) bool {
	ice, ok := err.(*InvalidConfigurationError)
	if !ok {
		return false
	}
	*target = ice
	return true
}
