// Package serial implements the classic transport over RFCOMM serial ports.
//
// Paired classic robots show up as serial devices once the operating system
// binds their serial port profile: /dev/tty.Sphero-RGB-AMP-SPP on macOS,
// /dev/rfcomm0 on Linux, COMx on Windows. AutoConnectDevice picks the first
// port whose name contains the requested device name, or any configured
// port when the platform does not expose names.
package serial

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	bugst "go.bug.st/serial"

	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

// Port is the subset of a serial port used by a Device.
type Port interface {
	io.ReadWriteCloser
}

// Lister enumerates candidate serial ports.
type Lister func() ([]string, error)

// Opener opens a serial port.
type Opener func(path string, mode *bugst.Mode) (Port, error)

// Config configures a Transport.
type Config struct {
	// Ports are tried in order, regardless of their name. When empty the
	// system port list is enumerated and filtered by device name.
	Ports []string `yaml:"ports"`

	// Options are the serial line parameters.
	Options PortOptions `yaml:"options"`

	// List overrides port enumeration. Defaults to serial.GetPortsList.
	List Lister `yaml:"-"`

	// Open overrides how ports are opened. Defaults to serial.Open.
	Open Opener `yaml:"-"`

	// Logger is the optional logger for debug output.
	Logger *slog.Logger `yaml:"-"`
}

// Transport is a transport.ClassicTransport backed by serial ports.
type Transport struct {
	cfg  Config
	mode *bugst.Mode

	mu   sync.Mutex
	held map[string]*Device
}

// New creates a serial transport.
func New(cfg Config) (*Transport, error) {
	mode, err := cfg.Options.Mode()
	if err != nil {
		return nil, fmt.Errorf("serial options: %w", err)
	}
	if cfg.List == nil {
		cfg.List = bugst.GetPortsList
	}
	if cfg.Open == nil {
		cfg.Open = func(path string, mode *bugst.Mode) (Port, error) {
			return bugst.Open(path, mode)
		}
	}
	return &Transport{cfg: cfg, mode: mode, held: make(map[string]*Device)}, nil
}

// AutoConnectDevice opens the first free port matching name on a separate
// goroutine and reports the outcome through onResult.
func (t *Transport) AutoConnectDevice(ctx context.Context, name string, onResult func(transport.Device)) {
	go func() {
		onResult(t.autoConnect(ctx, name))
	}()
}

func (t *Transport) autoConnect(ctx context.Context, name string) transport.Device {
	candidates, err := t.candidates(name)
	if err != nil {
		t.debugLog("serial port enumeration failed", "error", err)
		return nil
	}

	for _, path := range candidates {
		if ctx.Err() != nil {
			return nil
		}
		if t.isHeld(path) {
			continue
		}

		port, err := t.cfg.Open(path, t.mode)
		if err != nil {
			t.debugLog("serial port open failed", "port", path, "error", err)
			continue
		}

		dev := &Device{transport: t, name: name, path: path, port: port}
		if !t.hold(dev) {
			_ = port.Close()
			continue
		}
		t.debugLog("serial port opened", "port", path)
		return dev
	}
	return nil
}

// candidates returns the ports worth trying for name.
func (t *Transport) candidates(name string) ([]string, error) {
	if len(t.cfg.Ports) > 0 {
		return t.cfg.Ports, nil
	}

	ports, err := t.cfg.List()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(name)
	var out []string
	for _, p := range ports {
		if needle != "" && strings.Contains(strings.ToLower(filepath.Base(p)), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (t *Transport) isHeld(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.held[path]
	return ok
}

func (t *Transport) hold(d *Device) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.held[d.path]; ok {
		return false
	}
	t.held[d.path] = d
	return true
}

func (t *Transport) release(d *Device) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.held[d.path] == d {
		delete(t.held, d.path)
	}
}

// Held returns the number of ports currently open.
func (t *Transport) Held() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.held)
}

// debugLog logs a debug message if logging is enabled.
func (t *Transport) debugLog(msg string, args ...any) {
	if t.cfg.Logger != nil {
		t.cfg.Logger.Debug(msg, args...)
	}
}

// Device is a robot reached through an open serial port.
type Device struct {
	transport *Transport
	name      string
	path      string

	mu     sync.Mutex
	port   Port
	broken bool
	closed bool
}

// Kind returns transport.KindClassic.
func (d *Device) Kind() transport.Kind { return transport.KindClassic }

// Name returns the name the device was auto-connected by.
func (d *Device) Name() string { return d.name }

// Address returns the port path.
func (d *Device) Address() string { return d.path }

// Connected reports whether the port is open and the last write succeeded.
func (d *Device) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.closed && !d.broken
}

// Write sends p to the robot. A failed write marks the link broken.
func (d *Device) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, transport.ErrNotConnected
	}
	n, err := d.port.Write(p)
	if err != nil {
		d.broken = true
		return n, fmt.Errorf("write %s: %w", d.path, err)
	}
	return n, nil
}

// Close closes the port and makes it available to the next auto-connect.
func (d *Device) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	err := d.port.Close()
	d.mu.Unlock()

	d.transport.release(d)
	return err
}

// Compile-time interface satisfaction checks.
var (
	_ transport.ClassicTransport = (*Transport)(nil)
	_ transport.Device           = (*Device)(nil)
)
