package connection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unforgiven-development/coding-with-chrome/pkg/clock"
	"github.com/unforgiven-development/coding-with-chrome/pkg/events"
)

func TestMonitorDefaults(t *testing.T) {
	m := NewMonitor(0, nil, events.NewBus("test"))
	assert.Equal(t, DefaultMonitorInterval, m.Interval())
	assert.False(t, m.Running())
}

func TestMonitorDispatchesTicks(t *testing.T) {
	clk := clock.NewMock(time.Unix(0, 0))
	bus := events.NewBus("test")
	ticks := make(chan events.Event, 4)
	bus.Listen(events.TypeTick, func(e events.Event) { ticks <- e })

	m := NewMonitor(time.Second, clk, bus)
	m.Start()
	defer m.Stop()

	for i := 1; i <= 3; i++ {
		clk.Advance(time.Second)
		select {
		case e := <-ticks:
			assert.Equal(t, "test", e.Source)
			assert.Equal(t, clk.Now(), e.Time)
		case <-time.After(time.Second):
			t.Fatalf("tick %d not dispatched", i)
		}
	}
	assert.Equal(t, uint64(3), m.Ticks())
}

func TestMonitorStartStopIdempotent(t *testing.T) {
	clk := clock.NewMock(time.Unix(0, 0))
	m := NewMonitor(time.Second, clk, events.NewBus("test"))

	m.Stop() // never started

	m.Start()
	m.Start()
	assert.True(t, m.Running())
	assert.Equal(t, 1, clk.ActiveTickers())

	m.Stop()
	m.Stop()
	assert.False(t, m.Running())
	assert.Equal(t, 0, clk.ActiveTickers())
}

func TestMonitorRestart(t *testing.T) {
	clk := clock.NewMock(time.Unix(0, 0))
	bus := events.NewBus("test")
	ticks := make(chan struct{}, 4)
	bus.Listen(events.TypeTick, func(events.Event) { ticks <- struct{}{} })

	m := NewMonitor(time.Second, clk, bus)
	m.Start()
	m.Stop()

	// No ticks while stopped.
	clk.Advance(time.Second)
	select {
	case <-ticks:
		t.Fatal("tick dispatched by a stopped monitor")
	case <-time.After(20 * time.Millisecond):
	}

	m.Start()
	defer m.Stop()
	require.Equal(t, 1, clk.ActiveTickers())

	clk.Advance(time.Second)
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("restarted monitor did not tick")
	}
}
