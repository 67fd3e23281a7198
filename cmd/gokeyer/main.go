// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// gokeyer runs the iambic keyer core against a real or simulated paddle,
// driving a key/tone output until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/periph/host"

	"github.com/jl1nie/gokeyer"
	"github.com/jl1nie/gokeyer/internal/clock"
	"github.com/jl1nie/gokeyer/internal/config"
	"github.com/jl1nie/gokeyer/internal/diag"
	"github.com/jl1nie/gokeyer/internal/hw"
	"github.com/jl1nie/gokeyer/internal/hw/gpiohw"
	"github.com/jl1nie/gokeyer/internal/hw/simhw"
	"github.com/jl1nie/gokeyer/internal/monitor"
)

func openHardware(cfg config.Config) (hw.PaddleReader, hw.KeyOutput, error) {
	switch cfg.Hardware.Backend {
	case "gpio":
		p, err := gpiohw.OpenPaddle(cfg.Hardware.DitPin, cfg.Hardware.DahPin)
		if err != nil {
			return nil, nil, err
		}
		k, err := gpiohw.OpenKey(cfg.Hardware.KeyPin, cfg.Hardware.TonePin)
		if err != nil {
			return nil, nil, err
		}
		return p, k, nil
	case "usb":
		return openUSBPaddle(cfg)
	case "sim":
		return simhw.NewPaddle(), simhw.NewKey(), nil
	default:
		return nil, nil, fmt.Errorf("unknown hardware backend %q", cfg.Hardware.Backend)
	}
}

func mainImpl() error {
	configPath := flag.String("config", "", "path to a TOML keyer configuration (defaults compiled in if empty)")
	saveConfig := flag.String("save-config", "", "write the effective configuration to this path and exit")
	backend := flag.String("backend", "", "override hardware.backend from the config: gpio, usb, or sim")
	verbose := flag.Bool("v", false, "verbose diagnostic logging")
	showMonitor := flag.Bool("monitor", false, "show a scrolling terminal waveform of the key line")
	listUSB := flag.Bool("list-usb", false, "list USB devices and exit (to find a paddle dongle's VID:PID)")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	if *listUSB {
		return listUSBDevices()
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *backend != "" {
		cfg.Hardware.Backend = *backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if *saveConfig != "" {
		return config.Save(*saveConfig, cfg)
	}

	if _, err := host.Init(); err != nil {
		return err
	}

	paddleIn, keyOut, err := openHardware(cfg)
	if err != nil {
		return err
	}

	log := diag.NewVerbose(*verbose)

	var mon *monitor.Monitor
	if *showMonitor {
		mon = monitor.New(80)
	}

	d, err := gokeyer.New(cfg, paddleIn, keyOut, clock.NewSystem(), log, mon)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	err = d.Run(ctx)
	if closeErr := paddleIn.Close(); err == nil {
		err = closeErr
	}
	if closeErr := keyOut.Close(); err == nil {
		err = closeErr
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "gokeyer: %s.\n", err)
		os.Exit(1)
	}
}
