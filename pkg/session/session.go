package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unforgiven-development/coding-with-chrome/pkg/clock"
	"github.com/unforgiven-development/coding-with-chrome/pkg/events"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

// API is the device session surface used by the connection supervisor.
type API interface {
	// Connect binds a device reached over the classic transport.
	// It returns false if the bind was rejected.
	Connect(dev transport.Device) bool

	// ConnectLowEnergy binds a device reached over the low-energy transport.
	// It returns false if the bind was rejected.
	ConnectLowEnergy(dev transport.Device) bool

	// Stop halts the robot and releases the session. It is safe to call
	// without a bound device.
	Stop()

	// Reset resets the bound robot.
	Reset()

	// IsConnected reports the link state of the bound device.
	IsConnected() bool

	// Monitor enables or disables the keep-alive. It never blocks.
	Monitor(active bool)

	// EventHandler returns the session's event surface, or nil.
	EventHandler() *events.Bus
}

// Config configures a Session.
type Config struct {
	// Encoder encodes lifecycle commands. Defaults to LineEncoder.
	Encoder Encoder

	// KeepAlive configures link monitoring.
	KeepAlive KeepAliveConfig

	// Clock drives the keep-alive. Defaults to the real clock.
	Clock clock.Clock

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Encoder:   LineEncoder{},
		KeepAlive: DefaultKeepAliveConfig(),
		Clock:     clock.Real{},
	}
}

// Stats is a snapshot of session counters.
type Stats struct {
	ID         string
	Connected  bool
	Kind       transport.Kind
	DeviceName string
	Address    string
	BoundAt    time.Time
	Binds      int
	Rejects    int
	LinkLosses int
	KeepAlive  bool
}

// Session is the reference API implementation.
type Session struct {
	id     string
	cfg    Config
	bus    *events.Bus
	logger *slog.Logger

	mu         sync.Mutex
	device     transport.Device
	kind       transport.Kind
	boundAt    time.Time
	monitoring bool
	keepAlive  *KeepAlive
	binds      int
	rejects    int
	linkLosses int
}

// New creates an unbound session named name.
func New(name string, cfg Config) *Session {
	if cfg.Encoder == nil {
		cfg.Encoder = LineEncoder{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	return &Session{
		id:     uuid.New().String(),
		cfg:    cfg,
		bus:    events.NewBus(name),
		logger: cfg.Logger,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Connect binds a classic device.
func (s *Session) Connect(dev transport.Device) bool {
	return s.bind(transport.KindClassic, dev)
}

// ConnectLowEnergy binds a low-energy device.
func (s *Session) ConnectLowEnergy(dev transport.Device) bool {
	return s.bind(transport.KindLowEnergy, dev)
}

func (s *Session) bind(kind transport.Kind, dev transport.Device) bool {
	if dev == nil {
		return false
	}

	s.mu.Lock()
	if s.device != nil && s.device.Connected() {
		s.rejects++
		s.mu.Unlock()

		s.debugLog("bind rejected, session already live", "kind", kind, "device", dev.Name())
		s.bus.Dispatch(events.Event{Type: events.TypeRejected, Data: dev})
		return false
	}

	stale := s.device
	staleKA := s.keepAlive
	s.device = dev
	s.kind = kind
	s.boundAt = s.cfg.Clock.Now()
	s.binds++
	s.keepAlive = nil
	if s.monitoring {
		s.startKeepAliveLocked(dev)
	}
	s.mu.Unlock()

	if staleKA != nil {
		staleKA.Stop()
	}
	if stale != nil && stale != dev {
		_ = stale.Close()
	}

	s.debugLog("device bound", "kind", kind, "device", dev.Name(), "address", dev.Address())
	s.bus.Dispatch(events.Event{Type: events.TypeConnected, Data: dev})
	return true
}

// IsConnected reports whether a device is bound and its link is up.
func (s *Session) IsConnected() bool {
	s.mu.Lock()
	dev := s.device
	s.mu.Unlock()
	return dev != nil && dev.Connected()
}

// Device returns the bound device, or nil.
func (s *Session) Device() transport.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device
}

// Stop sends the stop command if the link is up, then closes and unbinds
// the device.
func (s *Session) Stop() {
	s.mu.Lock()
	dev := s.device
	ka := s.keepAlive
	s.device = nil
	s.keepAlive = nil
	s.mu.Unlock()

	if ka != nil {
		ka.Stop()
	}
	if dev == nil {
		return
	}

	if dev.Connected() {
		if err := s.send(dev, CommandStop); err != nil {
			s.debugLog("stop command failed", "device", dev.Name(), "error", err)
		}
	}
	if err := dev.Close(); err != nil {
		s.debugLog("close failed", "device", dev.Name(), "error", err)
	}
	s.bus.Dispatch(events.Event{Type: events.TypeDisconnected, Data: dev})
}

// Reset sends the reset command to a live device.
func (s *Session) Reset() {
	s.mu.Lock()
	dev := s.device
	s.mu.Unlock()

	if dev == nil || !dev.Connected() {
		return
	}
	if err := s.send(dev, CommandReset); err != nil {
		s.debugLog("reset command failed", "device", dev.Name(), "error", err)
	}
}

// Monitor enables or disables the keep-alive on the bound device. The
// setting also applies to devices bound later.
func (s *Session) Monitor(active bool) {
	s.mu.Lock()
	s.monitoring = active

	var stop *KeepAlive
	switch {
	case active && s.device != nil && s.keepAlive == nil:
		s.startKeepAliveLocked(s.device)
	case !active && s.keepAlive != nil:
		stop = s.keepAlive
		s.keepAlive = nil
	}
	s.mu.Unlock()

	if stop != nil {
		stop.Stop()
	}
}

// EventHandler returns the session event bus.
func (s *Session) EventHandler() *events.Bus {
	return s.bus
}

// Stats returns a snapshot of the session state.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		ID:         s.id,
		Binds:      s.binds,
		Rejects:    s.rejects,
		LinkLosses: s.linkLosses,
		KeepAlive:  s.keepAlive != nil,
	}
	if s.device != nil {
		st.Connected = s.device.Connected()
		st.Kind = s.kind
		st.DeviceName = s.device.Name()
		st.Address = s.device.Address()
		st.BoundAt = s.boundAt
	}
	return st
}

func (s *Session) startKeepAliveLocked(dev transport.Device) {
	ka := NewKeepAlive(s.cfg.KeepAlive, s.cfg.Clock,
		func(uint32) error { return s.send(dev, CommandPing) },
		func() { s.linkLost(dev) },
	)
	s.keepAlive = ka
	ka.Start()
}

// linkLost unbinds dev if it is still the bound device.
func (s *Session) linkLost(dev transport.Device) {
	s.mu.Lock()
	if s.device != dev {
		s.mu.Unlock()
		return
	}
	s.device = nil
	s.keepAlive = nil
	s.linkLosses++
	s.mu.Unlock()

	_ = dev.Close()
	s.debugLog("link lost", "device", dev.Name(), "address", dev.Address())
	s.bus.Dispatch(events.Event{Type: events.TypeLinkLost, Data: dev})
}

func (s *Session) send(dev transport.Device, cmd Command) error {
	data, err := s.cfg.Encoder.Encode(cmd)
	if err != nil {
		return err
	}
	_, err = dev.Write(data)
	return err
}

// debugLog logs a debug message if logging is enabled.
func (s *Session) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// Compile-time interface satisfaction check.
var _ API = (*Session)(nil)
