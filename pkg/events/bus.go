package events

import (
	"sync"
	"time"
)

// Well-known event types.
const (
	// TypeTick is dispatched by a periodic monitor each period.
	TypeTick = "tick"

	// TypeConnected is dispatched when a device is bound to a session.
	TypeConnected = "connected"

	// TypeDisconnected is dispatched when a session is stopped.
	TypeDisconnected = "disconnected"

	// TypeRejected is dispatched when a bind is refused because a session
	// is already live.
	TypeRejected = "rejected"

	// TypeLinkLost is dispatched when the bound device stops answering.
	TypeLinkLost = "link-lost"
)

// Event is a single notification delivered to listeners.
type Event struct {
	// Type selects the listeners that receive the event.
	Type string

	// Source names the bus that dispatched the event.
	Source string

	// Time is when the event was raised.
	Time time.Time

	// Data is an optional type-specific payload.
	Data any
}

// Listener receives events of the type it was registered for.
type Listener func(Event)

// Key identifies a single registration. The zero Key is never issued.
type Key uint64

type registration struct {
	key      Key
	typ      string
	listener Listener
}

// Bus is a named dispatcher that owns its listener registrations.
// It is safe for concurrent use.
type Bus struct {
	name string

	mu      sync.Mutex
	nextKey Key
	regs    []registration
}

// NewBus creates an empty bus.
func NewBus(name string) *Bus {
	return &Bus{name: name}
}

// Name returns the bus name.
func (b *Bus) Name() string {
	return b.name
}

// Listen registers fn for events of type typ and returns its key.
// Registering the same function twice creates two registrations.
func (b *Bus) Listen(typ string, fn Listener) Key {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextKey++
	b.regs = append(b.regs, registration{key: b.nextKey, typ: typ, listener: fn})
	return b.nextKey
}

// Unlisten removes the registration identified by key.
// It returns false if the key is unknown or was already removed.
func (b *Bus) Unlisten(key Key) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, r := range b.regs {
		if r.key == key {
			b.regs = append(b.regs[:i], b.regs[i+1:]...)
			return true
		}
	}
	return false
}

// Dispatch delivers e to every listener registered for e.Type and returns
// the number of listeners notified. Source and Time are filled in when unset.
func (b *Bus) Dispatch(e Event) int {
	if e.Source == "" {
		e.Source = b.name
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	b.mu.Lock()
	var targets []Listener
	for _, r := range b.regs {
		if r.typ == e.Type {
			targets = append(targets, r.listener)
		}
	}
	b.mu.Unlock()

	for _, fn := range targets {
		fn(e)
	}
	return len(targets)
}

// Len returns the number of live registrations.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.regs)
}

// Count returns the number of registrations for typ.
func (b *Bus) Count(typ string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, r := range b.regs {
		if r.typ == typ {
			n++
		}
	}
	return n
}

// Clear removes every registration and returns how many were removed.
func (b *Bus) Clear() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.regs)
	b.regs = nil
	return n
}
