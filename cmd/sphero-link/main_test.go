package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unforgiven-development/coding-with-chrome/pkg/config"
	"github.com/unforgiven-development/coding-with-chrome/pkg/log"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

func TestLoadConfigFlagOverrides(t *testing.T) {
	f := Flags{
		Name:     "Sphero-YBR",
		LEDevice: "BB-",
		Interval: 2 * time.Second,
		LogLevel: "debug",
		Simulate: true,
	}
	set := map[string]bool{"name": true, "le-device": true, "interval": true, "log-level": true, "simulate": true}

	cfg, err := loadConfig(f, set)
	require.NoError(t, err)
	assert.Equal(t, "Sphero-YBR", cfg.Supervisor.AutoConnectName)
	assert.Equal(t, "BB-", cfg.Supervisor.LowEnergyDevice)
	assert.Equal(t, 2*time.Second, cfg.Supervisor.MonitorInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Simulate.Enabled)
}

func TestLoadConfigUnsetFlagsKeepFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "link.yaml")
	require.NoError(t, os.WriteFile(path, []byte("supervisor:\n  auto_connect_name: Sphero-WPP\n  monitor_interval: 9s\n"), 0o600))

	f := Flags{ConfigFile: path, Name: "Sphero", Interval: 5 * time.Second}
	cfg, err := loadConfig(f, map[string]bool{"config": true})
	require.NoError(t, err)
	assert.Equal(t, "Sphero-WPP", cfg.Supervisor.AutoConnectName)
	assert.Equal(t, 9*time.Second, cfg.Supervisor.MonitorInterval)
}

func TestLoadConfigInvalidOverride(t *testing.T) {
	_, err := loadConfig(Flags{LEDevice: "XX-"}, map[string]bool{"le-device": true})
	assert.ErrorIs(t, err, config.ErrUnknownDevice)

	_, err = loadConfig(Flags{Interval: 0}, map[string]bool{"interval": true})
	assert.ErrorIs(t, err, config.ErrInvalidInterval)
}

func TestSetupLoggingLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := setupLogging(config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)
	defer closer()

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, _, err = setupLogging(config.LogConfig{Level: "loud"}, &buf)
	assert.ErrorIs(t, err, config.ErrInvalidLevel)
}

func TestSetupLoggingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "link.log")
	var buf bytes.Buffer
	logger, closer, err := setupLogging(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}, &buf)
	require.NoError(t, err)

	logger.Info("to both")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}

func TestSetupEventLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "link.slog")
	var buf bytes.Buffer
	logger, closeLog, err := setupLogging(config.LogConfig{Level: "debug"}, &buf)
	require.NoError(t, err)
	defer closeLog()

	events, closeEvents, err := setupEventLog(config.LogConfig{EventLog: path}, logger)
	require.NoError(t, err)
	events.Log(log.Event{Timestamp: time.Now(), SupervisorID: "sup", Category: log.CategoryAttempt, Attempt: 1})
	closeEvents()

	r, err := log.NewReader(path)
	require.NoError(t, err)
	defer r.Close()
	all, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, uint64(1), all[0].Attempt)
	assert.Contains(t, buf.String(), "supervisor_id=sup")
}

func TestSimulatedTransports(t *testing.T) {
	cfg := config.Default()
	cfg.Simulate.Enabled = true
	cfg.Simulate.AppearAfter = 2

	classic, le, err := buildTransports(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, classic)
	assert.Nil(t, le)

	var got []transport.Device
	for i := 0; i < 2; i++ {
		classic.AutoConnectDevice(context.Background(), cfg.Supervisor.AutoConnectName, func(d transport.Device) {
			got = append(got, d)
		})
	}
	require.Len(t, got, 2)
	assert.Nil(t, got[0])
	require.NotNil(t, got[1])
	assert.Equal(t, "Sphero-SIM", got[1].Name())

	cfg.Simulate.LowEnergy = true
	classic, le, err = buildTransports(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, classic)
	require.NotNil(t, le)
	assert.Empty(t, le.DevicesByName("SK-"))
	found := le.DevicesByName("SK-")
	require.Len(t, found, 1)
	assert.Equal(t, "SK-SIM", found[0].Name())
}
