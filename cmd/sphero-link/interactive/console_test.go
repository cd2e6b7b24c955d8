package interactive

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unforgiven-development/coding-with-chrome/pkg/clock"
	"github.com/unforgiven-development/coding-with-chrome/pkg/connection"
	"github.com/unforgiven-development/coding-with-chrome/pkg/events"
	"github.com/unforgiven-development/coding-with-chrome/pkg/session"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport/sim"
)

type fakeController struct {
	sess     *session.Session
	connects int
	stops    int
	resets   int
}

func (f *fakeController) ID() string                { return "sup-1" }
func (f *fakeController) State() connection.State   { return connection.StateMonitoring }
func (f *fakeController) Attempts() uint64          { return 7 }
func (f *fakeController) IsConnected() bool         { return f.sess.IsConnected() }
func (f *fakeController) Connect()                  { f.connects++ }
func (f *fakeController) Stop()                     { f.stops++; f.sess.Stop() }
func (f *fakeController) Reset()                    { f.resets++; f.sess.Reset() }
func (f *fakeController) EventHandler() *events.Bus { return f.sess.EventHandler() }

func newTestConsole(t *testing.T) (*Console, *fakeController, *bytes.Buffer) {
	t.Helper()
	sess := session.New("test", session.Config{Clock: clock.NewMock(time.Unix(0, 0))})
	t.Cleanup(sess.Stop)
	ctl := &fakeController{sess: sess}
	out := &bytes.Buffer{}
	c := newConsole(out)
	c.Attach(ctl, sess)
	return c, ctl, out
}

func TestConsoleStatusDisconnected(t *testing.T) {
	c, _, out := newTestConsole(t)

	assert.False(t, c.execute("status"))
	assert.Contains(t, out.String(), "Supervisor: sup-1")
	assert.Contains(t, out.String(), "State:     MONITORING")
	assert.Contains(t, out.String(), "Attempts:  7")
	assert.Contains(t, out.String(), "Device:    not connected")
}

func TestConsoleStatusConnected(t *testing.T) {
	c, ctl, out := newTestConsole(t)
	require.True(t, ctl.sess.Connect(sim.NewDevice(transport.KindClassic, "Sphero-RGB", "/dev/rfcomm0")))
	out.Reset()

	c.execute("status")
	assert.Contains(t, out.String(), "Device:    Sphero-RGB (/dev/rfcomm0, classic)")
	assert.Contains(t, out.String(), "Binds: 1  Rejects: 0  Link losses: 0")
}

func TestConsoleConnect(t *testing.T) {
	c, ctl, out := newTestConsole(t)

	c.execute("connect")
	assert.Equal(t, 1, ctl.connects)
	assert.Contains(t, out.String(), "Connection attempt started")

	require.True(t, ctl.sess.Connect(sim.NewDevice(transport.KindClassic, "Sphero-RGB", "a")))
	out.Reset()
	c.execute("c")
	assert.Equal(t, 1, ctl.connects)
	assert.Contains(t, out.String(), "Already connected")
}

func TestConsoleResetRequiresConnection(t *testing.T) {
	c, ctl, out := newTestConsole(t)

	c.execute("reset")
	assert.Equal(t, 0, ctl.resets)
	assert.Contains(t, out.String(), "Not connected")

	dev := sim.NewDevice(transport.KindClassic, "Sphero-RGB", "a")
	require.True(t, ctl.sess.Connect(dev))
	c.execute("reset")
	assert.Equal(t, 1, ctl.resets)
	assert.Equal(t, []string{"RESET\n"}, dev.Writes())
}

func TestConsoleStopAndEvents(t *testing.T) {
	c, ctl, out := newTestConsole(t)

	dev := sim.NewDevice(transport.KindLowEnergy, "SK-1234", "de:ad")
	require.True(t, ctl.sess.ConnectLowEnergy(dev))
	assert.Contains(t, out.String(), "[event]")

	c.execute("stop")
	assert.Equal(t, 1, ctl.stops)
	assert.False(t, ctl.sess.IsConnected())

	out.Reset()
	c.execute("events")
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "connected")
	assert.Contains(t, string(lines[0]), "SK-1234 (de:ad, low-energy)")
	assert.Contains(t, string(lines[1]), "disconnected")

	out.Reset()
	c.execute("events 1")
	assert.NotContains(t, out.String(), " connected ")
	assert.Contains(t, out.String(), "disconnected")
}

func TestConsoleEventsArguments(t *testing.T) {
	c, _, out := newTestConsole(t)

	c.execute("events")
	assert.Contains(t, out.String(), "No events")

	out.Reset()
	c.execute("events zero")
	assert.Contains(t, out.String(), "Invalid count: zero")
}

func TestConsoleQuitAndUnknown(t *testing.T) {
	c, _, out := newTestConsole(t)

	assert.False(t, c.execute(""))
	assert.False(t, c.execute("fly"))
	assert.Contains(t, out.String(), "Unknown command: fly")

	assert.True(t, c.execute("quit"))
	assert.True(t, c.execute("EXIT"))
}

func TestConsoleCloseUnlistens(t *testing.T) {
	c, ctl, _ := newTestConsole(t)
	bus := ctl.EventHandler()
	require.Equal(t, 4, bus.Len())

	c.close()
	assert.Equal(t, 0, bus.Len())
}

func TestHistoryBounded(t *testing.T) {
	h := newHistory(2)
	for i := 0; i < 5; i++ {
		h.add(events.Event{Type: events.TypeConnected, Data: i})
	}

	got := h.last(10)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Data)
	assert.Equal(t, 4, got[1].Data)
}
