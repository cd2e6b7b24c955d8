package transport

import (
	"context"
	"errors"
	"io"
)

// Transport errors.
var (
	ErrNotFound     = errors.New("device not found")
	ErrNotConnected = errors.New("device not connected")
	ErrClosed       = errors.New("transport closed")
)

// Kind identifies the radio family a device was reached over.
type Kind uint8

const (
	// KindUnknown is the zero Kind.
	KindUnknown Kind = iota

	// KindClassic is the classic paired radio transport.
	KindClassic

	// KindLowEnergy is the low-energy GATT transport.
	KindLowEnergy
)

// String returns the transport family name.
func (k Kind) String() string {
	switch k {
	case KindClassic:
		return "classic"
	case KindLowEnergy:
		return "low-energy"
	default:
		return "unknown"
	}
}

// Device is a live handle to a robot produced by a transport.
type Device interface {
	io.Writer

	// Kind returns the transport family the device was reached over.
	Kind() Kind

	// Name returns the advertised device name.
	Name() string

	// Address returns the transport-level address (port path, MAC, ...).
	Address() string

	// Connected reports the link state as seen by the transport.
	Connected() bool

	// Close releases the link. It is safe to call more than once.
	Close() error
}

// Peripheral is a visible but not yet opened low-energy device.
type Peripheral interface {
	// Name returns the advertised local name.
	Name() string

	// Address returns the peripheral address.
	Address() string

	// Connect opens the peripheral. It blocks until the link is up, the
	// context is done, or the open fails.
	Connect(ctx context.Context) (Device, error)
}

// ClassicTransport reaches devices over the classic paired radio link.
type ClassicTransport interface {
	// AutoConnectDevice looks for a paired device whose name matches name
	// and opens it. onResult is called exactly once, possibly before
	// AutoConnectDevice returns, with the opened device or nil if no device
	// could be reached.
	AutoConnectDevice(ctx context.Context, name string, onResult func(Device))
}

// LowEnergyTransport reaches devices over the low-energy GATT link.
type LowEnergyTransport interface {
	// DevicesByName returns the currently visible peripherals whose local
	// name matches name. It never blocks on the radio; an empty result
	// means nothing is in range right now.
	DevicesByName(name string) []Peripheral
}
