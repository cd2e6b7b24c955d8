// Package config loads the sphero-link configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/unforgiven-development/coding-with-chrome/pkg/connection"
	"github.com/unforgiven-development/coding-with-chrome/pkg/session"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport/ble"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport/serial"
)

// Validation errors.
var (
	ErrInvalidInterval = errors.New("interval must be positive")
	ErrUnknownDevice   = errors.New("unknown low-energy device")
	ErrInvalidLevel    = errors.New("invalid log level")
	ErrNoTransport     = errors.New("no transport enabled")
)

// Config is the top-level configuration.
type Config struct {
	Supervisor SupervisorConfig `yaml:"supervisor"`
	Session    SessionConfig    `yaml:"session"`
	Classic    ClassicConfig    `yaml:"classic"`
	LowEnergy  LowEnergyConfig  `yaml:"low_energy"`
	Log        LogConfig        `yaml:"log"`
	Simulate   SimulateConfig   `yaml:"simulate"`
}

// SupervisorConfig configures the connection supervisor.
type SupervisorConfig struct {
	// MonitorInterval is the period between connection attempts.
	MonitorInterval time.Duration `yaml:"monitor_interval"`

	// AutoConnectName is the classic device name to look for.
	AutoConnectName string `yaml:"auto_connect_name"`

	// LowEnergyDevice names a supported low-energy model ("SK-", "BB-", ...).
	LowEnergyDevice string `yaml:"low_energy_device"`

	// KeepAlive enables session keep-alive pings.
	KeepAlive bool `yaml:"keep_alive"`
}

// SessionConfig configures the device session.
type SessionConfig struct {
	KeepAlive session.KeepAliveConfig `yaml:"keep_alive"`
}

// ClassicConfig configures the serial classic transport.
type ClassicConfig struct {
	Enabled bool `yaml:"enabled"`

	// Serial holds the ports and line options.
	Serial serial.Config `yaml:"serial"`
}

// LowEnergyConfig configures the Bluetooth low-energy transport.
type LowEnergyConfig struct {
	Enabled bool `yaml:"enabled"`

	// SeenTTL is how long an advertisement keeps a peripheral visible.
	SeenTTL time.Duration `yaml:"seen_ttl"`
}

// LogConfig configures operational logging and the event log.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// File, when set, receives log output with size-based rotation.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`

	// EventLog, when set, is the path of the CBOR event log.
	EventLog string `yaml:"event_log"`
}

// SimulateConfig configures the in-memory transports.
type SimulateConfig struct {
	Enabled bool `yaml:"enabled"`

	// AppearAfter is the attempt on which the simulated robot shows up.
	AppearAfter int `yaml:"appear_after"`

	// LowEnergy makes the simulated robot a low-energy peripheral.
	LowEnergy bool `yaml:"low_energy"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Supervisor: SupervisorConfig{
			MonitorInterval: connection.DefaultMonitorInterval,
			AutoConnectName: connection.DefaultAutoConnectName,
			LowEnergyDevice: transport.SpheroSPRKPlus.Name,
			KeepAlive:       true,
		},
		Session: SessionConfig{
			KeepAlive: session.DefaultKeepAliveConfig(),
		},
		Classic: ClassicConfig{
			Enabled: true,
			Serial:  serial.Config{Options: serial.PortOptions{BaudRate: serial.DefaultBaudRate}},
		},
		LowEnergy: LowEnergyConfig{
			Enabled: true,
			SeenTTL: ble.DefaultSeenTTL,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Simulate: SimulateConfig{
			AppearAfter: 3,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Supervisor.MonitorInterval <= 0 {
		return fmt.Errorf("supervisor.monitor_interval: %w", ErrInvalidInterval)
	}
	if _, ok := c.LowEnergyDescriptor(); !ok {
		return fmt.Errorf("supervisor.low_energy_device %q: %w", c.Supervisor.LowEnergyDevice, ErrUnknownDevice)
	}
	if c.Session.KeepAlive.PingInterval < 0 {
		return fmt.Errorf("session.keep_alive.ping_interval: %w", ErrInvalidInterval)
	}
	if _, err := c.Classic.Serial.Options.Normalize(); err != nil {
		return fmt.Errorf("classic.serial.options: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if !c.Simulate.Enabled && !c.Classic.Enabled && !c.LowEnergy.Enabled {
		return ErrNoTransport
	}
	return nil
}

// LowEnergyDescriptor returns the configured low-energy model.
func (c Config) LowEnergyDescriptor() (transport.Descriptor, bool) {
	d, ok := transport.LookupDescriptor(c.Supervisor.LowEnergyDevice)
	if !ok || d.Kind != transport.KindLowEnergy {
		return transport.Descriptor{}, false
	}
	return d, true
}

// ConnectionConfig returns the connection.Config described by c. Runtime
// collaborators (runner, clock, loggers) are left for the caller.
func (c Config) ConnectionConfig() connection.Config {
	cfg := connection.DefaultConfig()
	cfg.MonitorInterval = c.Supervisor.MonitorInterval
	cfg.AutoConnectName = c.Supervisor.AutoConnectName
	cfg.KeepAlive = c.Supervisor.KeepAlive
	if d, ok := c.LowEnergyDescriptor(); ok {
		cfg.LowEnergyDevice = d
	}
	return cfg
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}
