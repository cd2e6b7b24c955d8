package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/unforgiven-development/coding-with-chrome/pkg/clock"
)

// Keep-alive constants.
const (
	// DefaultPingInterval is the default interval between pings.
	DefaultPingInterval = 2 * time.Second

	// DefaultMaxFailures is the number of consecutive failed pings after
	// which the link is considered lost.
	DefaultMaxFailures = 3
)

// KeepAliveConfig configures keep-alive behavior.
type KeepAliveConfig struct {
	// PingInterval is the interval between pings.
	PingInterval time.Duration `yaml:"ping_interval"`

	// MaxFailures is the number of consecutive failures before timeout.
	MaxFailures int `yaml:"max_failures"`
}

// DefaultKeepAliveConfig returns the default keep-alive configuration.
func DefaultKeepAliveConfig() KeepAliveConfig {
	return KeepAliveConfig{
		PingInterval: DefaultPingInterval,
		MaxFailures:  DefaultMaxFailures,
	}
}

// DetectionDelay is the longest a dead link can go unnoticed.
func (c KeepAliveConfig) DetectionDelay() time.Duration {
	return c.PingInterval * time.Duration(c.MaxFailures)
}

// KeepAliveStats contains keep-alive statistics.
type KeepAliveStats struct {
	LastPing time.Time
	Failures int
	Sent     uint32
}

// KeepAlive pings a device periodically and reports a dead link.
type KeepAlive struct {
	config    KeepAliveConfig
	clock     clock.Clock
	send      func(seq uint32) error
	onTimeout func()

	sequence atomic.Uint32

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	failures int
	lastPing time.Time
}

// NewKeepAlive creates a keep-alive that calls send every interval and
// onTimeout once MaxFailures consecutive sends failed.
func NewKeepAlive(config KeepAliveConfig, clk clock.Clock, send func(seq uint32) error, onTimeout func()) *KeepAlive {
	if config.PingInterval <= 0 {
		config.PingInterval = DefaultPingInterval
	}
	if config.MaxFailures <= 0 {
		config.MaxFailures = DefaultMaxFailures
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &KeepAlive{
		config:    config,
		clock:     clk,
		send:      send,
		onTimeout: onTimeout,
	}
}

// Start begins pinging. The first ping is sent immediately.
func (ka *KeepAlive) Start() {
	ka.mu.Lock()
	defer ka.mu.Unlock()

	if ka.running {
		return
	}
	ka.running = true
	ka.failures = 0
	ka.stopCh = make(chan struct{})

	ticker := ka.clock.NewTicker(ka.config.PingInterval)
	go ka.loop(ticker, ka.stopCh)
}

// Stop stops pinging. It does not wait for an in-flight ping.
func (ka *KeepAlive) Stop() {
	ka.mu.Lock()
	defer ka.mu.Unlock()

	if !ka.running {
		return
	}
	ka.running = false
	close(ka.stopCh)
}

// IsRunning returns true if pinging is active.
func (ka *KeepAlive) IsRunning() bool {
	ka.mu.Lock()
	defer ka.mu.Unlock()
	return ka.running
}

// Stats returns current keep-alive statistics.
func (ka *KeepAlive) Stats() KeepAliveStats {
	ka.mu.Lock()
	defer ka.mu.Unlock()
	return KeepAliveStats{
		LastPing: ka.lastPing,
		Failures: ka.failures,
		Sent:     ka.sequence.Load(),
	}
}

func (ka *KeepAlive) loop(ticker clock.Ticker, stopCh chan struct{}) {
	defer ticker.Stop()

	if ka.ping(stopCh) {
		return
	}
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			if ka.ping(stopCh) {
				return
			}
		}
	}
}

// ping sends one ping and returns true once the link has timed out.
// stopCh identifies the loop, so a loop left over from before a restart
// cannot stop its successor.
func (ka *KeepAlive) ping(stopCh chan struct{}) bool {
	seq := ka.sequence.Add(1)
	err := ka.send(seq)

	ka.mu.Lock()
	ka.lastPing = ka.clock.Now()
	if err == nil {
		ka.failures = 0
		ka.mu.Unlock()
		return false
	}
	ka.failures++
	timedOut := ka.failures >= ka.config.MaxFailures && ka.running && ka.stopCh == stopCh
	if timedOut {
		ka.running = false
		close(ka.stopCh)
	}
	ka.mu.Unlock()

	if timedOut && ka.onTimeout != nil {
		ka.onTimeout()
	}
	return timedOut
}
