// Package ble implements the low-energy transport on top of
// tinygo.org/x/bluetooth.
//
// The transport scans continuously once started and keeps a short-lived
// table of advertisements, so DevicesByName answers from memory without
// touching the radio. Opening a peripheral connects to it, resolves the
// robot command characteristic and returns a transport.Device that writes
// commands to it.
package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

// BLE transport errors.
var (
	ErrNoCommandCharacteristic = errors.New("command characteristic not found")
	ErrNotStarted              = errors.New("low-energy transport not started")
)

// Config configures a Transport.
type Config struct {
	// Device describes the GATT layout of the supported robot.
	Device transport.Descriptor

	// SeenTTL is how long an advertisement keeps a peripheral visible.
	SeenTTL time.Duration

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

// Transport is a transport.LowEnergyTransport backed by a Bluetooth adapter.
type Transport struct {
	adapter *bluetooth.Adapter
	cfg     Config
	seen    *sightings

	service bluetooth.UUID
	command bluetooth.UUID

	mu      sync.Mutex
	started bool
	open    map[string]*Device
}

// New creates a transport on adapter, typically bluetooth.DefaultAdapter.
func New(adapter *bluetooth.Adapter, cfg Config) (*Transport, error) {
	service, err := bluetooth.ParseUUID(cfg.Device.Service)
	if err != nil {
		return nil, fmt.Errorf("service uuid %q: %w", cfg.Device.Service, err)
	}
	command, err := bluetooth.ParseUUID(cfg.Device.Command)
	if err != nil {
		return nil, fmt.Errorf("command uuid %q: %w", cfg.Device.Command, err)
	}

	return &Transport{
		adapter: adapter,
		cfg:     cfg,
		seen:    newSightings(cfg.SeenTTL),
		service: service,
		command: command,
		open:    make(map[string]*Device),
	}, nil
}

// Start enables the adapter and scans until ctx is done.
func (t *Transport) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return nil
	}
	t.started = true
	t.mu.Unlock()

	if err := t.adapter.Enable(); err != nil {
		return fmt.Errorf("enable adapter: %w", err)
	}
	t.adapter.SetConnectHandler(t.onConnectChange)

	go func() {
		err := t.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			t.seen.observe(result.LocalName(), result.Address.String(), result.Address, result.RSSI, time.Now())
		})
		if err != nil {
			t.debugLog("scan stopped", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		if err := t.adapter.StopScan(); err != nil {
			t.debugLog("stop scan failed", "error", err)
		}
	}()

	return nil
}

// DevicesByName returns the recently advertised peripherals whose local name
// starts with name, strongest signal first.
func (t *Transport) DevicesByName(name string) []transport.Peripheral {
	found := t.seen.match(name, time.Now())
	out := make([]transport.Peripheral, 0, len(found))
	for _, s := range found {
		out = append(out, &Peripheral{transport: t, name: s.name, address: s.address, raw: s.raw})
	}
	return out
}

func (t *Transport) onConnectChange(device bluetooth.Device, connected bool) {
	if connected {
		return
	}
	addr := device.Address.String()

	t.mu.Lock()
	d := t.open[addr]
	t.mu.Unlock()

	if d != nil {
		d.markDown()
		t.debugLog("peripheral disconnected", "address", addr)
	}
}

func (t *Transport) track(d *Device) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open[d.address] = d
}

func (t *Transport) untrack(d *Device) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open[d.address] == d {
		delete(t.open, d.address)
	}
}

func (t *Transport) isStarted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

// debugLog logs a debug message if logging is enabled.
func (t *Transport) debugLog(msg string, args ...any) {
	if t.cfg.Logger != nil {
		t.cfg.Logger.Debug(msg, args...)
	}
}

// Peripheral is an advertised robot that has not been opened yet.
type Peripheral struct {
	transport *Transport
	name      string
	address   string
	raw       bluetooth.Address
}

// Name returns the advertised local name.
func (p *Peripheral) Name() string { return p.name }

// Address returns the peripheral address.
func (p *Peripheral) Address() string { return p.address }

type openResult struct {
	dev *Device
	err error
}

// Connect opens the peripheral and resolves its command characteristic.
// The adapter call itself cannot be interrupted; if ctx ends first the late
// link is torn down as soon as it comes up.
func (p *Peripheral) Connect(ctx context.Context) (transport.Device, error) {
	if !p.transport.isStarted() {
		return nil, ErrNotStarted
	}

	done := make(chan openResult, 1)
	go func() {
		dev, err := p.open()
		done <- openResult{dev: dev, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return r.dev, nil
	case <-ctx.Done():
		go func() {
			if r := <-done; r.dev != nil {
				_ = r.dev.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

func (p *Peripheral) open() (*Device, error) {
	t := p.transport

	link, err := t.adapter.Connect(p.raw, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", p.address, err)
	}

	services, err := link.DiscoverServices([]bluetooth.UUID{t.service})
	if err != nil || len(services) == 0 {
		_ = link.Disconnect()
		return nil, fmt.Errorf("discover services on %s: %w", p.address, errors.Join(err, ErrNoCommandCharacteristic))
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{t.command})
	if err != nil || len(chars) == 0 {
		_ = link.Disconnect()
		return nil, fmt.Errorf("discover characteristics on %s: %w", p.address, errors.Join(err, ErrNoCommandCharacteristic))
	}

	dev := &Device{
		transport: t,
		name:      p.name,
		address:   p.address,
		link:      link,
		command:   chars[0],
		connected: true,
	}
	t.seen.forget(p.address)
	t.track(dev)
	return dev, nil
}

// Device is an open low-energy link to a robot.
type Device struct {
	transport *Transport
	name      string
	address   string
	link      bluetooth.Device
	command   bluetooth.DeviceCharacteristic

	mu        sync.Mutex
	connected bool
	closed    bool
}

// Kind returns transport.KindLowEnergy.
func (d *Device) Kind() transport.Kind { return transport.KindLowEnergy }

// Name returns the advertised local name.
func (d *Device) Name() string { return d.name }

// Address returns the peripheral address.
func (d *Device) Address() string { return d.address }

// Connected reports whether the adapter still considers the link up.
func (d *Device) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected && !d.closed
}

// Write sends p to the command characteristic without waiting for a response.
func (d *Device) Write(p []byte) (int, error) {
	if !d.Connected() {
		return 0, transport.ErrNotConnected
	}
	n, err := d.command.WriteWithoutResponse(p)
	if err != nil {
		d.markDown()
		return n, fmt.Errorf("write %s: %w", d.address, err)
	}
	return n, nil
}

// Close disconnects the link.
func (d *Device) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	d.transport.untrack(d)
	return d.link.Disconnect()
}

func (d *Device) markDown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = false
}

// Compile-time interface satisfaction checks.
var (
	_ transport.LowEnergyTransport = (*Transport)(nil)
	_ transport.Peripheral         = (*Peripheral)(nil)
	_ transport.Device             = (*Device)(nil)
)
