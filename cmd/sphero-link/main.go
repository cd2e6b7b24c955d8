// Command sphero-link keeps a Sphero robot connected.
//
// It probes the classic (serial RFCOMM) and Bluetooth low-energy transports
// on every monitor tick until the robot answers, then keeps the session
// alive with periodic pings.
//
// Usage:
//
//	sphero-link [flags]
//
// Flags:
//
//	-config string      Configuration file path (YAML)
//	-name string        Classic device name to auto-connect (default "Sphero")
//	-le-device string   Low-energy model prefix: SK-, BB-, 2B- (default "SK-")
//	-interval duration  Time between connection attempts (default 5s)
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-log-file string    Write logs to a rotating file
//	-event-log string   Record supervisor events to a CBOR file
//	-simulate           Use simulated transports
//	-interactive        Start the interactive console
//
// Examples:
//
//	# Connect to a paired Sphero 2.0 over RFCOMM
//	sphero-link -name Sphero-RGB
//
//	# Look for a BB-8 and record every attempt
//	sphero-link -le-device BB- -event-log link.slog -log-level debug
//
//	# Try the console without hardware
//	sphero-link -simulate -interactive
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/unforgiven-development/coding-with-chrome/cmd/sphero-link/interactive"
	"github.com/unforgiven-development/coding-with-chrome/pkg/config"
	"github.com/unforgiven-development/coding-with-chrome/pkg/connection"
	"github.com/unforgiven-development/coding-with-chrome/pkg/log"
	"github.com/unforgiven-development/coding-with-chrome/pkg/session"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

// Flags holds the command-line overrides.
type Flags struct {
	ConfigFile  string
	Name        string
	LEDevice    string
	Interval    time.Duration
	LogLevel    string
	LogFile     string
	EventLog    string
	Simulate    bool
	Interactive bool
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&flags.Name, "name", connection.DefaultAutoConnectName, "Classic device name to auto-connect")
	flag.StringVar(&flags.LEDevice, "le-device", transport.SpheroSPRKPlus.Name, "Low-energy model prefix: SK-, BB-, 2B-")
	flag.DurationVar(&flags.Interval, "interval", connection.DefaultMonitorInterval, "Time between connection attempts")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.LogFile, "log-file", "", "Write logs to a rotating file")
	flag.StringVar(&flags.EventLog, "event-log", "", "Record supervisor events to a CBOR file")
	flag.BoolVar(&flags.Simulate, "simulate", false, "Use simulated transports")
	flag.BoolVar(&flags.Interactive, "interactive", false, "Start the interactive console")
}

func main() {
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(flags, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// The console owns the terminal, so logs go through its writer.
	var console *interactive.Console
	var out io.Writer = os.Stderr
	if flags.Interactive {
		console, err = interactive.New()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start console: %v\n", err)
			os.Exit(1)
		}
		out = console.Stdout()
	}

	logger, closeLog, err := setupLogging(cfg.Log, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	eventLogger, closeEvents, err := setupEventLog(cfg.Log, logger)
	if err != nil {
		logger.Error("failed to open event log", "path", cfg.Log.EventLog, "error", err)
		os.Exit(1)
	}
	defer closeEvents()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	classic, lowEnergy, err := buildTransports(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to set up transports", "error", err)
		os.Exit(1)
	}

	sessCfg := session.DefaultConfig()
	sessCfg.KeepAlive = cfg.Session.KeepAlive
	sessCfg.Logger = logger
	sess := session.New("sphero", sessCfg)

	supCfg := cfg.ConnectionConfig()
	supCfg.Logger = logger
	supCfg.EventLogger = eventLogger
	sup := connection.NewSupervisor(sess, classic, lowEnergy, supCfg)

	logger.Info("sphero link starting",
		"supervisor", sup.ID(),
		"name", supCfg.AutoConnectName,
		"le_device", supCfg.LowEnergyDevice.Name,
		"interval", supCfg.MonitorInterval,
		"simulate", cfg.Simulate.Enabled)

	if console != nil {
		console.Attach(sup, sess)
	}
	sup.Init()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if console != nil {
		go console.Run(ctx, cancel)
	}

	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sup.CleanUp()
	st := sess.Stats()
	logger.Info("sphero link stopped",
		"attempts", sup.Attempts(),
		"binds", st.Binds,
		"rejects", st.Rejects,
		"link_losses", st.LinkLosses)
}

// loadConfig reads the configuration file, if any, and applies the flags the
// user set explicitly.
func loadConfig(f Flags, set map[string]bool) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(f.ConfigFile); err != nil {
			return config.Config{}, err
		}
	}

	if set["name"] {
		cfg.Supervisor.AutoConnectName = f.Name
	}
	if set["le-device"] {
		cfg.Supervisor.LowEnergyDevice = f.LEDevice
	}
	if set["interval"] {
		cfg.Supervisor.MonitorInterval = f.Interval
	}
	if set["log-level"] {
		cfg.Log.Level = f.LogLevel
	}
	if set["log-file"] {
		cfg.Log.File = f.LogFile
	}
	if set["event-log"] {
		cfg.Log.EventLog = f.EventLog
	}
	if set["simulate"] {
		cfg.Simulate.Enabled = f.Simulate
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// setupLogging builds the operational logger. With a log file configured,
// output is duplicated into a size-rotated file.
func setupLogging(cfg config.LogConfig, out io.Writer) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	closer := func() {}
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		out = io.MultiWriter(out, rotating)
		closer = func() { _ = rotating.Close() }
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer, nil
}

// setupEventLog returns the supervisor event logger. Events are always
// mirrored to the debug log; the CBOR file is added when configured.
func setupEventLog(cfg config.LogConfig, logger *slog.Logger) (log.Logger, func(), error) {
	adapter := log.NewSlogAdapter(logger)
	if cfg.EventLog == "" {
		return adapter, func() {}, nil
	}

	file, err := log.NewFileLogger(cfg.EventLog)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if n := file.Dropped(); n > 0 {
			logger.Warn("event log dropped events", "count", n)
		}
		_ = file.Close()
	}
	return log.NewMultiLogger(adapter, file), closer, nil
}
