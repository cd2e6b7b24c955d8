package log

import (
	"time"

	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

// Event is a single supervisor event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred.
	Timestamp time.Time `cbor:"1,keyasint"`

	// SupervisorID identifies the supervisor instance (UUID).
	SupervisorID string `cbor:"2,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"3,keyasint"`

	// Transport is the radio family involved, if any.
	Transport transport.Kind `cbor:"4,keyasint,omitempty"`

	// Attempt is the connection attempt sequence number, starting at 1.
	Attempt uint64 `cbor:"5,keyasint,omitempty"`

	// Device describes the device involved, if any.
	Device *DeviceInfo `cbor:"6,keyasint,omitempty"`

	// Type-specific payload.
	StateChange *StateChangeEvent `cbor:"7,keyasint,omitempty"`
	Command     *CommandEvent     `cbor:"8,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"9,keyasint,omitempty"`
}

// Category classifies supervisor events.
type Category uint8

const (
	// CategoryAttempt marks the start of a connection attempt.
	CategoryAttempt Category = 0
	// CategoryBind marks a device accepted by the session.
	CategoryBind Category = 1
	// CategoryReject marks a device refused by the session and closed.
	CategoryReject Category = 2
	// CategoryMiss marks a transport that produced no device this attempt.
	CategoryMiss Category = 3
	// CategoryState marks a supervisor state change.
	CategoryState Category = 4
	// CategoryCommand marks a forwarded lifecycle command.
	CategoryCommand Category = 5
	// CategoryError marks a transport-level failure.
	CategoryError Category = 6
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryAttempt:
		return "ATTEMPT"
	case CategoryBind:
		return "BIND"
	case CategoryReject:
		return "REJECT"
	case CategoryMiss:
		return "MISS"
	case CategoryState:
		return "STATE"
	case CategoryCommand:
		return "COMMAND"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category named s, as printed by String.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryAttempt; c <= CategoryError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// DeviceInfo identifies a device.
type DeviceInfo struct {
	Name    string `cbor:"1,keyasint"`
	Address string `cbor:"2,keyasint,omitempty"`
}

// NewDeviceInfo returns the identity of dev, or nil if dev is nil.
func NewDeviceInfo(dev transport.Device) *DeviceInfo {
	if dev == nil {
		return nil
	}
	return &DeviceInfo{Name: dev.Name(), Address: dev.Address()}
}

// StateChangeEvent captures a supervisor state transition.
type StateChangeEvent struct {
	// OldState is the previous state.
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change, if available.
	Reason string `cbor:"3,keyasint,omitempty"`
}

// CommandEvent captures a lifecycle command forwarded to the session.
type CommandEvent struct {
	// Name of the command (STOP, RESET).
	Name string `cbor:"1,keyasint"`

	// Connected is the session state when the command was issued.
	Connected bool `cbor:"2,keyasint,omitempty"`

	// Skipped is set when the command was not forwarded.
	Skipped bool `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures a failure reported by a collaborator.
type ErrorEventData struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes what was being attempted.
	Context string `cbor:"2,keyasint,omitempty"`
}
