package connection

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/unforgiven-development/coding-with-chrome/pkg/clock"
	"github.com/unforgiven-development/coding-with-chrome/pkg/events"
	"github.com/unforgiven-development/coding-with-chrome/pkg/log"
	"github.com/unforgiven-development/coding-with-chrome/pkg/session"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

// Supervisor defaults.
const (
	// DefaultMonitorInterval is the period between connection attempts.
	DefaultMonitorInterval = 5 * time.Second

	// DefaultAutoConnectName is the name the classic transport looks for.
	DefaultAutoConnectName = "Sphero"
)

// State is the supervisor lifecycle state.
type State uint8

const (
	// StateUninitialized is the state before Init.
	StateUninitialized State = iota

	// StateMonitoring means the reconnect monitor is running.
	StateMonitoring

	// StateStopped is the terminal state after CleanUp.
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateMonitoring:
		return "MONITORING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Runner executes user programs on the robot.
type Runner interface {
	// Terminate aborts the running program, if any.
	Terminate()
}

// Config configures a Supervisor.
type Config struct {
	// MonitorInterval is the period between attempts.
	MonitorInterval time.Duration

	// AutoConnectName is passed to the classic transport.
	AutoConnectName string

	// LowEnergyDevice selects the low-energy peripherals to open.
	LowEnergyDevice transport.Descriptor

	// KeepAlive is the argument of every session.API.Monitor call.
	KeepAlive bool

	// Runner is terminated on Stop. Optional.
	Runner Runner

	// Clock drives the monitor. Defaults to the real clock.
	Clock clock.Clock

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger records supervisor events. Optional.
	EventLogger log.Logger
}

// DefaultConfig returns the default supervisor configuration.
func DefaultConfig() Config {
	return Config{
		MonitorInterval: DefaultMonitorInterval,
		AutoConnectName: DefaultAutoConnectName,
		LowEnergyDevice: transport.SpheroSPRKPlus,
		KeepAlive:       true,
		Clock:           clock.Real{},
	}
}

// Supervisor keeps a robot bound to a session.
// It is safe for concurrent use.
type Supervisor struct {
	id        string
	api       session.API
	classic   transport.ClassicTransport
	lowEnergy transport.LowEnergyTransport
	config    Config
	logger    *slog.Logger
	eventLog  log.Logger
	bus       *events.Bus

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	state   State
	monitor *Monitor
	tickKey events.Key

	attempts atomic.Uint64
}

// NewSupervisor creates a supervisor over api. Either transport may be nil,
// in which case that path is skipped.
func NewSupervisor(api session.API, classic transport.ClassicTransport, lowEnergy transport.LowEnergyTransport, config Config) *Supervisor {
	if config.MonitorInterval <= 0 {
		config.MonitorInterval = DefaultMonitorInterval
	}
	if config.AutoConnectName == "" {
		config.AutoConnectName = DefaultAutoConnectName
	}
	if config.LowEnergyDevice.Name == "" {
		config.LowEnergyDevice = transport.SpheroSPRKPlus
	}
	if config.Clock == nil {
		config.Clock = clock.Real{}
	}
	eventLog := config.EventLogger
	if eventLog == nil {
		eventLog = log.NoopLogger{}
	}

	id := uuid.New().String()
	ctx, cancel := context.WithCancel(context.Background())
	return &Supervisor{
		id:        id,
		api:       api,
		classic:   classic,
		lowEnergy: lowEnergy,
		config:    config,
		logger:    config.Logger,
		eventLog:  eventLog,
		bus:       events.NewBus("supervisor-" + id[:8]),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// ID returns the supervisor identifier used in the event log.
func (s *Supervisor) ID() string {
	return s.id
}

// State returns the lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Attempts returns how many connection attempts were started.
func (s *Supervisor) Attempts() uint64 {
	return s.attempts.Load()
}

// Bus returns the supervisor's own event bus, which carries monitor ticks.
func (s *Supervisor) Bus() *events.Bus {
	return s.bus
}

// Monitor returns the reconnect monitor, or nil before the first Init.
func (s *Supervisor) Monitor() *Monitor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.monitor
}

// Init starts the reconnect monitor and makes one attempt before returning.
// Calling Init again does not add a second timer or tick listener.
func (s *Supervisor) Init() {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return
	}
	if s.monitor == nil {
		s.monitor = NewMonitor(s.config.MonitorInterval, s.config.Clock, s.bus)
		s.tickKey = s.bus.Listen(events.TypeTick, s.onTick)
	}
	mon := s.monitor
	old := s.state
	s.state = StateMonitoring
	s.mu.Unlock()

	mon.Start()
	if old != StateMonitoring {
		s.logState(old, StateMonitoring, "init")
	}
	s.Connect()
}

func (s *Supervisor) onTick(events.Event) {
	s.Connect()
}

// Connect makes one connection attempt. While connected it only refreshes
// the session keep-alive.
func (s *Supervisor) Connect() {
	if s.State() == StateStopped {
		return
	}
	if s.api.IsConnected() {
		s.api.Monitor(s.config.KeepAlive)
		return
	}

	attempt := s.attempts.Add(1)
	s.eventLog.Log(s.event(log.CategoryAttempt, transport.KindUnknown, attempt))
	s.debugLog("connection attempt", "attempt", attempt)

	cell := newResultCell()
	ctx := s.ctx

	if s.classic != nil {
		cell.expect(transport.KindClassic)
		s.classic.AutoConnectDevice(ctx, s.config.AutoConnectName, func(dev transport.Device) {
			if dev == nil {
				s.miss(transport.KindClassic, attempt)
			}
			cell.offer(transport.KindClassic, dev)
		})
	}

	if s.lowEnergy != nil {
		s.connectLowEnergy(ctx, attempt, cell)
	}

	if s.track() {
		go s.resolve(ctx, attempt, cell)
	} else {
		cell.close()
	}

	s.api.Monitor(s.config.KeepAlive)
}

func (s *Supervisor) connectLowEnergy(ctx context.Context, attempt uint64, cell *resultCell) {
	found := s.lowEnergy.DevicesByName(s.config.LowEnergyDevice.Name)
	if len(found) == 0 {
		s.miss(transport.KindLowEnergy, attempt)
		return
	}
	if !s.track() {
		return
	}

	p := found[0]
	cell.expect(transport.KindLowEnergy)
	go func() {
		defer s.wg.Done()

		dev, err := p.Connect(ctx)
		if err != nil {
			s.debugLog("low-energy open failed", "attempt", attempt, "peripheral", p.Name(), "error", err)
			e := s.event(log.CategoryError, transport.KindLowEnergy, attempt)
			e.Device = &log.DeviceInfo{Name: p.Name(), Address: p.Address()}
			e.Error = &log.ErrorEventData{Message: err.Error(), Context: "open peripheral"}
			s.eventLog.Log(e)
			dev = nil
		}
		cell.offer(transport.KindLowEnergy, dev)
	}()
}

// resolve binds the results of one attempt as they become ready.
func (s *Supervisor) resolve(ctx context.Context, attempt uint64, cell *resultCell) {
	defer s.wg.Done()

	for {
		ready, done := cell.take()
		for _, r := range ready {
			if ctx.Err() != nil {
				_ = r.device.Close()
				continue
			}
			s.bind(attempt, r)
		}
		if done {
			return
		}

		select {
		case <-cell.notify:
		case <-ctx.Done():
			if n := cell.close(); n > 0 {
				s.debugLog("discarded results of cancelled attempt", "attempt", attempt, "count", n)
			}
			return
		}
	}
}

func (s *Supervisor) bind(attempt uint64, r result) {
	var accepted bool
	switch r.kind {
	case transport.KindClassic:
		accepted = s.api.Connect(r.device)
	case transport.KindLowEnergy:
		accepted = s.api.ConnectLowEnergy(r.device)
	}

	cat := log.CategoryBind
	if accepted {
		s.debugLog("device bound", "attempt", attempt, "transport", r.kind, "device", r.device.Name())
	} else {
		cat = log.CategoryReject
		_ = r.device.Close()
		s.debugLog("stale device rejected", "attempt", attempt, "transport", r.kind, "device", r.device.Name())
	}
	e := s.event(cat, r.kind, attempt)
	e.Device = log.NewDeviceInfo(r.device)
	s.eventLog.Log(e)
}

func (s *Supervisor) miss(kind transport.Kind, attempt uint64) {
	s.debugLog("no device found", "attempt", attempt, "transport", kind)
	s.eventLog.Log(s.event(log.CategoryMiss, kind, attempt))
}

// track registers a goroutine with CleanUp unless the supervisor stopped.
func (s *Supervisor) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateStopped {
		return false
	}
	s.wg.Add(1)
	return true
}

// IsConnected reports the session's link state.
func (s *Supervisor) IsConnected() bool {
	return s.api.IsConnected()
}

// API returns the session API. It is never nil.
func (s *Supervisor) API() session.API {
	return s.api
}

// EventHandler returns the session's event surface, which may be nil.
func (s *Supervisor) EventHandler() *events.Bus {
	return s.api.EventHandler()
}

// Stop terminates the runner, if any, then stops the session.
func (s *Supervisor) Stop() {
	connected := s.api.IsConnected()
	if s.config.Runner != nil {
		s.config.Runner.Terminate()
	}
	s.api.Stop()

	e := s.event(log.CategoryCommand, transport.KindUnknown, 0)
	e.Command = &log.CommandEvent{Name: session.CommandStop.String(), Connected: connected}
	s.eventLog.Log(e)
}

// Reset resets the robot if a session is connected.
func (s *Supervisor) Reset() {
	connected := s.api.IsConnected()
	if connected {
		s.api.Reset()
	}

	e := s.event(log.CategoryCommand, transport.KindUnknown, 0)
	e.Command = &log.CommandEvent{Name: session.CommandReset.String(), Connected: connected, Skipped: !connected}
	s.eventLog.Log(e)
}

// CleanUp stops the monitor, cancels in-flight attempts, stops the session
// and removes every bus listener. Only the first call has an effect. It
// must not be called from a bus listener.
func (s *Supervisor) CleanUp() {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return
	}
	old := s.state
	s.state = StateStopped
	mon := s.monitor
	tickKey := s.tickKey
	s.mu.Unlock()

	if mon != nil {
		mon.Stop()
		s.bus.Unlisten(tickKey)
	}
	s.cancel()
	s.wg.Wait()

	s.Stop()
	if n := s.bus.Clear(); n > 0 {
		s.debugLog("removed foreign bus listeners", "count", n)
	}
	s.logState(old, StateStopped, "cleanup")
}

func (s *Supervisor) event(cat log.Category, kind transport.Kind, attempt uint64) log.Event {
	return log.Event{
		Timestamp:    s.config.Clock.Now(),
		SupervisorID: s.id,
		Category:     cat,
		Transport:    kind,
		Attempt:      attempt,
	}
}

func (s *Supervisor) logState(old, next State, reason string) {
	e := s.event(log.CategoryState, transport.KindUnknown, 0)
	e.StateChange = &log.StateChangeEvent{OldState: old.String(), NewState: next.String(), Reason: reason}
	s.eventLog.Log(e)
	s.debugLog("state change", "old", old, "new", next, "reason", reason)
}

// debugLog logs a debug message if logging is enabled.
func (s *Supervisor) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
