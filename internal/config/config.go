// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config validates and loads the keyer's configuration: the mode,
// timing and queue parameters, plus the TOML file format a station
// operator hand-edits on the host.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jl1nie/gokeyer/internal/element"
)

// Config is the keyer's full validated configuration.
type Config struct {
	Mode             string `toml:"mode"` // "A", "B", or "SuperKeyer"
	UnitMS           uint16 `toml:"unit_ms"`
	DebounceMS       uint8  `toml:"debounce_ms"`
	QueueCapacity    int    `toml:"queue_capacity"`
	CharSpaceEnabled bool   `toml:"char_space_enabled"`

	// Hardware carries the backend selection and pin/device assignment read
	// straight through from the TOML file; cmd/gokeyer interprets it, the
	// core does not.
	Hardware HardwareConfig `toml:"hardware"`
}

// HardwareConfig names which internal/hw backend to construct and its
// backend-specific addressing, so a station's pin wiring lives in the same
// hand-edited profile as its keying parameters.
type HardwareConfig struct {
	Backend string `toml:"backend"` // "gpio", "usb", or "sim"

	DitPin  string `toml:"dit_pin"`
	DahPin  string `toml:"dah_pin"`
	KeyPin  string `toml:"key_pin"`
	TonePin string `toml:"tone_pin"` // optional

	USBVendorID  uint16 `toml:"usb_vendor_id"`
	USBProductID uint16 `toml:"usb_product_id"`
}

// InvalidConfigurationError reports which field failed validation and why.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

// Default returns a Config with sensible defaults: 20 WPM ModeA timing,
// CharSpace on, a 16-element queue, the simulated backend.
func Default() Config {
	return Config{
		Mode:             "A",
		UnitMS:           60,
		DebounceMS:       5,
		QueueCapacity:    16,
		CharSpaceEnabled: true,
		Hardware:         HardwareConfig{Backend: "sim"},
	}
}

// Load reads and validates a TOML configuration file.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, for a CLI `-save-config` convenience
// flag that lets an operator start from the compiled-in defaults.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks every field against its valid bounds.
func (c Config) Validate() error {
	if _, err := c.ParsedMode(); err != nil {
		return err
	}
	if c.UnitMS < 17 || c.UnitMS > 200 {
		return &InvalidConfigurationError{Field: "unit_ms", Reason: "must be in [17, 200]"}
	}
	if c.DebounceMS < 1 || c.DebounceMS > 50 {
		return &InvalidConfigurationError{Field: "debounce_ms", Reason: "must be in [1, 50]"}
	}
	if c.QueueCapacity < 8 || c.QueueCapacity > 256 {
		return &InvalidConfigurationError{Field: "queue_capacity", Reason: "must be in [8, 256]"}
	}
	switch c.Hardware.Backend {
	case "gpio", "usb", "sim":
	default:
		return &InvalidConfigurationError{Field: "hardware.backend", Reason: `must be "gpio", "usb", or "sim"`}
	}
	return nil
}

// ParsedMode converts the TOML mode string into an element.Mode.
func (c Config) ParsedMode() (element.Mode, error) {
	switch c.Mode {
	case "A":
		return element.ModeA, nil
	case "B":
		return element.ModeB, nil
	case "SuperKeyer":
		return element.SuperKeyer, nil
	default:
		return 0, &InvalidConfigurationError{Field: "mode", Reason: `must be "A", "B", or "SuperKeyer"`}
	}
}

// WPM derives words-per-minute from the configured unit length using the
// PARIS standard (50 dit-units per word): wpm = 1200 / unit_ms.
func (c Config) WPM() int {
	return 1200 / int(c.UnitMS)
}
