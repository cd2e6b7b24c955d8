package session

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/unforgiven-development/coding-with-chrome/pkg/clock"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestKeepAliveConfig(t *testing.T) {
	config := DefaultKeepAliveConfig()

	if config.PingInterval != DefaultPingInterval {
		t.Errorf("PingInterval = %v, want %v", config.PingInterval, DefaultPingInterval)
	}
	if config.MaxFailures != DefaultMaxFailures {
		t.Errorf("MaxFailures = %d, want %d", config.MaxFailures, DefaultMaxFailures)
	}
	if got, want := config.DetectionDelay(), 6*time.Second; got != want {
		t.Errorf("DetectionDelay = %v, want %v", got, want)
	}
}

func TestKeepAliveFillsDefaults(t *testing.T) {
	ka := NewKeepAlive(KeepAliveConfig{}, nil, func(uint32) error { return nil }, nil)

	if ka.config.PingInterval != DefaultPingInterval {
		t.Errorf("PingInterval = %v, want %v", ka.config.PingInterval, DefaultPingInterval)
	}
	if ka.config.MaxFailures != DefaultMaxFailures {
		t.Errorf("MaxFailures = %d, want %d", ka.config.MaxFailures, DefaultMaxFailures)
	}
}

func TestKeepAlivePingsEveryInterval(t *testing.T) {
	clk := clock.NewMock(time.Unix(0, 0))
	var pings atomic.Int32

	ka := NewKeepAlive(KeepAliveConfig{PingInterval: time.Second, MaxFailures: 3}, clk,
		func(uint32) error {
			pings.Add(1)
			return nil
		},
		func() { t.Error("unexpected timeout") },
	)
	ka.Start()
	defer ka.Stop()

	// First ping is immediate.
	waitFor(t, "first ping", func() bool { return pings.Load() == 1 })

	for want := int32(2); want <= 4; want++ {
		clk.Advance(time.Second)
		waitFor(t, "next ping", func() bool { return pings.Load() == want })
	}

	if got := ka.Stats().Sent; got != 4 {
		t.Errorf("Sent = %d, want 4", got)
	}
}

func TestKeepAliveTimeout(t *testing.T) {
	clk := clock.NewMock(time.Unix(0, 0))
	var pings, timeouts atomic.Int32

	ka := NewKeepAlive(KeepAliveConfig{PingInterval: time.Second, MaxFailures: 2}, clk,
		func(uint32) error {
			pings.Add(1)
			return errors.New("write failed")
		},
		func() { timeouts.Add(1) },
	)
	ka.Start()

	waitFor(t, "first ping", func() bool { return pings.Load() == 1 })
	if timeouts.Load() != 0 {
		t.Fatal("timeout after a single failure")
	}

	clk.Advance(time.Second)
	waitFor(t, "timeout", func() bool { return timeouts.Load() == 1 })

	if ka.IsRunning() {
		t.Error("keep-alive still running after timeout")
	}

	// No further pings once timed out.
	clk.Advance(time.Second)
	time.Sleep(10 * time.Millisecond)
	if got := pings.Load(); got != 2 {
		t.Errorf("pings = %d, want 2", got)
	}
	if got := timeouts.Load(); got != 1 {
		t.Errorf("timeouts = %d, want 1", got)
	}
}

func TestKeepAliveSuccessResetsFailures(t *testing.T) {
	clk := clock.NewMock(time.Unix(0, 0))
	var fail atomic.Bool
	var pings atomic.Int32
	fail.Store(true)

	ka := NewKeepAlive(KeepAliveConfig{PingInterval: time.Second, MaxFailures: 2}, clk,
		func(uint32) error {
			pings.Add(1)
			if fail.Load() {
				return errors.New("write failed")
			}
			return nil
		},
		func() { t.Error("unexpected timeout") },
	)
	ka.Start()
	defer ka.Stop()

	waitFor(t, "first ping", func() bool { return pings.Load() == 1 })
	if got := ka.Stats().Failures; got != 1 {
		t.Fatalf("Failures = %d, want 1", got)
	}

	fail.Store(false)
	clk.Advance(time.Second)
	waitFor(t, "second ping", func() bool { return pings.Load() == 2 })
	waitFor(t, "failures reset", func() bool { return ka.Stats().Failures == 0 })
}

func TestKeepAliveStopAndRestart(t *testing.T) {
	clk := clock.NewMock(time.Unix(0, 0))
	var pings atomic.Int32

	ka := NewKeepAlive(KeepAliveConfig{PingInterval: time.Second, MaxFailures: 3}, clk,
		func(uint32) error {
			pings.Add(1)
			return nil
		},
		nil,
	)

	ka.Start()
	ka.Start() // idempotent
	waitFor(t, "first ping", func() bool { return pings.Load() == 1 })

	ka.Stop()
	ka.Stop() // idempotent
	if ka.IsRunning() {
		t.Fatal("keep-alive running after Stop")
	}
	waitFor(t, "ticker stopped", func() bool { return clk.ActiveTickers() == 0 })

	ka.Start()
	defer ka.Stop()
	waitFor(t, "ping after restart", func() bool { return pings.Load() == 2 })
	if !ka.IsRunning() {
		t.Error("keep-alive not running after restart")
	}
}
