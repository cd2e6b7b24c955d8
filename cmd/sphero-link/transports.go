package main

import (
	"context"
	"fmt"
	"log/slog"

	"tinygo.org/x/bluetooth"

	"github.com/unforgiven-development/coding-with-chrome/pkg/config"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport/ble"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport/serial"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport/sim"
)

// buildTransports creates the transports selected by cfg. A disabled
// transport is returned as a nil interface.
func buildTransports(ctx context.Context, cfg config.Config, logger *slog.Logger) (transport.ClassicTransport, transport.LowEnergyTransport, error) {
	if cfg.Simulate.Enabled {
		c, le := simulatedTransports(cfg)
		return c, le, nil
	}

	var classic transport.ClassicTransport
	if cfg.Classic.Enabled {
		serialCfg := cfg.Classic.Serial
		serialCfg.Logger = logger
		t, err := serial.New(serialCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("classic transport: %w", err)
		}
		classic = t
	}

	var lowEnergy transport.LowEnergyTransport
	if cfg.LowEnergy.Enabled {
		desc, _ := cfg.LowEnergyDescriptor()
		t, err := ble.New(bluetooth.DefaultAdapter, ble.Config{
			Device:  desc,
			SeenTTL: cfg.LowEnergy.SeenTTL,
			Logger:  logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("low-energy transport: %w", err)
		}
		if err := t.Start(ctx); err != nil {
			// Classic alone is still useful when the adapter is missing.
			if classic == nil {
				return nil, nil, fmt.Errorf("low-energy transport: %w", err)
			}
			logger.Warn("low-energy transport unavailable", "error", err)
		} else {
			lowEnergy = t
		}
	}

	return classic, lowEnergy, nil
}

// simulatedTransports returns in-memory transports where the robot becomes
// reachable on attempt cfg.Simulate.AppearAfter.
func simulatedTransports(cfg config.Config) (transport.ClassicTransport, transport.LowEnergyTransport) {
	if cfg.Simulate.LowEnergy {
		desc, _ := cfg.LowEnergyDescriptor()
		le := sim.NewLowEnergy()
		le.AddAfter(cfg.Simulate.AppearAfter, desc.Name+"SIM", "sim:le/0")
		return nil, le
	}

	classic := sim.NewClassic(cfg.Supervisor.AutoConnectName + "-SIM")
	classic.AppearAfter(cfg.Simulate.AppearAfter)
	return classic, nil
}
