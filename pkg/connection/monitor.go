package connection

import (
	"sync"
	"time"

	"github.com/unforgiven-development/coding-with-chrome/pkg/clock"
	"github.com/unforgiven-development/coding-with-chrome/pkg/events"
)

// Monitor dispatches events.TypeTick onto a bus at a fixed interval.
// A stopped Monitor can be started again.
type Monitor struct {
	interval time.Duration
	clock    clock.Clock
	bus      *events.Bus

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	ticks   uint64
}

// NewMonitor creates a stopped monitor.
func NewMonitor(interval time.Duration, clk clock.Clock, bus *events.Bus) *Monitor {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Monitor{interval: interval, clock: clk, bus: bus}
}

// Interval returns the tick period.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Start begins ticking. It is a no-op if already running.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})

	ticker := m.clock.NewTicker(m.interval)
	go m.loop(ticker, m.stopCh, m.doneCh)
}

// Stop stops ticking and waits for an in-flight tick to be delivered.
// It must not be called from a tick listener.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stopCh)
	done := m.doneCh
	m.mu.Unlock()

	<-done
}

// Running reports whether the monitor is ticking.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Ticks returns how many ticks were dispatched.
func (m *Monitor) Ticks() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks
}

func (m *Monitor) loop(ticker clock.Ticker, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C():
			// Stop may have raced the tick.
			select {
			case <-stopCh:
				return
			default:
			}
			m.mu.Lock()
			m.ticks++
			m.mu.Unlock()
			m.bus.Dispatch(events.Event{Type: events.TypeTick, Time: now})
		}
	}
}
