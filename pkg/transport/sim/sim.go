// Package sim provides in-memory classic and low-energy transports.
//
// The simulated transports back the -simulate mode of sphero-link and the
// supervisor tests. A device can be made to appear after a number of
// connection attempts, to drop its link, or to fail writes.
package sim

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

// Device is an in-memory transport.Device that records every write.
type Device struct {
	kind    transport.Kind
	name    string
	address string

	mu         sync.Mutex
	connected  bool
	closed     int
	failWrites error
	writes     [][]byte
}

// NewDevice returns a connected device.
func NewDevice(kind transport.Kind, name, address string) *Device {
	return &Device{kind: kind, name: name, address: address, connected: true}
}

// Kind returns the transport family.
func (d *Device) Kind() transport.Kind { return d.kind }

// Name returns the device name.
func (d *Device) Name() string { return d.name }

// Address returns the simulated address.
func (d *Device) Address() string { return d.address }

// Connected reports whether the link is up.
func (d *Device) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Write records p. It fails once the link is down or FailWrites was set.
func (d *Device) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return 0, transport.ErrNotConnected
	}
	if d.failWrites != nil {
		return 0, d.failWrites
	}
	d.writes = append(d.writes, append([]byte(nil), p...))
	return len(p), nil
}

// Close drops the link. It may be called more than once.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = false
	d.closed++
	return nil
}

// Drop simulates the robot going out of range.
func (d *Device) Drop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = false
}

// FailWrites makes every subsequent write return err. Pass nil to recover.
func (d *Device) FailWrites(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failWrites = err
}

// Writes returns the recorded writes as strings.
func (d *Device) Writes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, len(d.writes))
	for i, w := range d.writes {
		out[i] = string(w)
	}
	return out
}

// CloseCount returns how many times Close was called.
func (d *Device) CloseCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Classic is a simulated classic transport.
type Classic struct {
	name string

	mu          sync.Mutex
	present     bool
	appearAfter int
	calls       int
	devices     []*Device
}

// NewClassic returns a classic transport whose only paired device is called
// name. The device starts out of range.
func NewClassic(name string) *Classic {
	return &Classic{name: name}
}

// SetPresent puts the device in or out of range.
func (c *Classic) SetPresent(present bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.present = present
	c.appearAfter = 0
}

// AppearAfter makes the device reachable from the n-th auto-connect call on.
func (c *Classic) AppearAfter(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appearAfter = n
}

// AutoConnectDevice reports a fresh device when the paired device is in range
// and its name starts with name. The callback runs before returning.
func (c *Classic) AutoConnectDevice(ctx context.Context, name string, onResult func(transport.Device)) {
	c.mu.Lock()
	c.calls++
	reachable := c.present || (c.appearAfter > 0 && c.calls >= c.appearAfter)
	var dev *Device
	if reachable && ctx.Err() == nil && matches(c.name, name) {
		dev = NewDevice(transport.KindClassic, c.name, fmt.Sprintf("sim:classic/%d", c.calls))
		c.devices = append(c.devices, dev)
	}
	c.mu.Unlock()

	if dev == nil {
		onResult(nil)
		return
	}
	onResult(dev)
}

// Calls returns how many times AutoConnectDevice was called.
func (c *Classic) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Devices returns every device handed out so far.
func (c *Classic) Devices() []*Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Device(nil), c.devices...)
}

// LowEnergy is a simulated low-energy transport.
type LowEnergy struct {
	mu          sync.Mutex
	peripherals []*Peripheral
	pending     []pendingPeripheral
	queries     int
}

type pendingPeripheral struct {
	p     *Peripheral
	query int
}

// NewLowEnergy returns a transport with nothing in range.
func NewLowEnergy() *LowEnergy {
	return &LowEnergy{}
}

// Add puts a peripheral in range and returns it.
func (l *LowEnergy) Add(name, address string) *Peripheral {
	p := &Peripheral{name: name, address: address}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.peripherals = append(l.peripherals, p)
	return p
}

// AddAfter schedules a peripheral to come in range on query n of
// DevicesByName, counting from the first query ever made.
func (l *LowEnergy) AddAfter(n int, name, address string) *Peripheral {
	p := &Peripheral{name: name, address: address}

	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= l.queries+1 {
		l.peripherals = append(l.peripherals, p)
		return p
	}
	l.pending = append(l.pending, pendingPeripheral{p: p, query: n})
	return p
}

// Remove takes the peripheral with address out of range.
func (l *LowEnergy) Remove(address string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, p := range l.peripherals {
		if p.address == address {
			l.peripherals = append(l.peripherals[:i], l.peripherals[i+1:]...)
			return
		}
	}
}

// DevicesByName returns the peripherals in range whose name starts with name.
func (l *LowEnergy) DevicesByName(name string) []transport.Peripheral {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.queries++
	waiting := l.pending[:0]
	for _, pp := range l.pending {
		if pp.query <= l.queries {
			l.peripherals = append(l.peripherals, pp.p)
		} else {
			waiting = append(waiting, pp)
		}
	}
	l.pending = waiting

	var out []transport.Peripheral
	for _, p := range l.peripherals {
		if matches(p.name, name) {
			out = append(out, p)
		}
	}
	return out
}

// Queries returns how many times DevicesByName was called.
func (l *LowEnergy) Queries() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queries
}

// Peripheral is a simulated low-energy peripheral.
type Peripheral struct {
	name    string
	address string

	mu     sync.Mutex
	fail   error
	delay  time.Duration
	opened []*Device
}

// Name returns the advertised name.
func (p *Peripheral) Name() string { return p.name }

// Address returns the simulated address.
func (p *Peripheral) Address() string { return p.address }

// SetFail makes Connect return err. Pass nil to recover.
func (p *Peripheral) SetFail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = err
}

// SetDelay makes Connect wait d before completing.
func (p *Peripheral) SetDelay(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delay = d
}

// Connect opens the peripheral.
func (p *Peripheral) Connect(ctx context.Context) (transport.Device, error) {
	p.mu.Lock()
	delay, fail := p.delay, p.fail
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail != nil {
		return nil, fail
	}

	dev := NewDevice(transport.KindLowEnergy, p.name, p.address)
	p.mu.Lock()
	p.opened = append(p.opened, dev)
	p.mu.Unlock()
	return dev, nil
}

// Opened returns every device this peripheral produced.
func (p *Peripheral) Opened() []*Device {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Device(nil), p.opened...)
}

func matches(advertised, name string) bool {
	if name == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(advertised), strings.ToLower(name))
}

// Compile-time interface satisfaction checks.
var (
	_ transport.Device             = (*Device)(nil)
	_ transport.Peripheral         = (*Peripheral)(nil)
	_ transport.ClassicTransport   = (*Classic)(nil)
	_ transport.LowEnergyTransport = (*LowEnergy)(nil)
)
