// Package interactive provides the interactive command-line interface
// for sphero-link.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/unforgiven-development/coding-with-chrome/pkg/connection"
	"github.com/unforgiven-development/coding-with-chrome/pkg/events"
	"github.com/unforgiven-development/coding-with-chrome/pkg/session"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

// historySize is the number of session events kept for the events command.
const historySize = 32

// Controller is the supervisor surface driven by the console.
// *connection.Supervisor implements it.
type Controller interface {
	ID() string
	State() connection.State
	Attempts() uint64
	IsConnected() bool
	Connect()
	Stop()
	Reset()
	EventHandler() *events.Bus
}

// StatsSource reports session counters. *session.Session implements it.
type StatsSource interface {
	Stats() session.Stats
}

// Console handles interactive mode for sphero-link.
type Console struct {
	ctl     Controller
	stats   StatsSource
	rl      *readline.Instance
	out     io.Writer
	history *history
	keys    []events.Key
}

// New creates a console reading from the terminal. Its Stdout can be used
// for log output before Attach is called.
func New() (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sphero> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	c := newConsole(rl.Stdout())
	c.rl = rl
	return c, nil
}

func newConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		history: newHistory(historySize),
	}
}

// Attach connects the console to the supervisor and session it controls.
// It must be called once, before Run.
func (c *Console) Attach(ctl Controller, stats StatsSource) {
	c.ctl = ctl
	c.stats = stats

	// Session events are printed as they happen and kept for "events".
	if bus := ctl.EventHandler(); bus != nil {
		for _, typ := range []string{events.TypeConnected, events.TypeDisconnected, events.TypeRejected, events.TypeLinkLost} {
			c.keys = append(c.keys, bus.Listen(typ, c.handleEvent))
		}
	}
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.out
}

// Run starts the interactive command loop. It returns when the user quits
// or ctx is done; quitting calls cancel.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if quit := c.execute(line); quit {
			cancel()
			return
		}
	}
}

// execute runs one command line and reports whether the console should exit.
func (c *Console) execute(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()
	case "status", "s":
		c.cmdStatus()
	case "connect", "c":
		c.cmdConnect()
	case "stop":
		c.ctl.Stop()
		fmt.Fprintln(c.out, "Stop sent")
	case "reset":
		c.cmdReset()
	case "events", "e":
		c.cmdEvents(args)
	case "quit", "exit", "q":
		fmt.Fprintln(c.out, "Exiting...")
		return true
	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Sphero Link Commands:
  status           - Show supervisor and session status
  connect          - Run a connection attempt now
  stop             - Stop the robot and close the session
  reset            - Reset the robot (connected only)
  events [n]       - Show the last n session events
  help             - Show this help
  quit             - Exit`)
}

func (c *Console) cmdStatus() {
	st := c.stats.Stats()

	fmt.Fprintf(c.out, "Supervisor: %s\n", c.ctl.ID())
	fmt.Fprintf(c.out, "  State:     %s\n", c.ctl.State())
	fmt.Fprintf(c.out, "  Attempts:  %d\n", c.ctl.Attempts())
	fmt.Fprintf(c.out, "Session:    %s\n", st.ID)
	if st.Connected {
		fmt.Fprintf(c.out, "  Device:    %s (%s, %s)\n", st.DeviceName, st.Address, st.Kind)
		fmt.Fprintf(c.out, "  Bound:     %s ago\n", time.Since(st.BoundAt).Round(time.Second))
	} else {
		fmt.Fprintln(c.out, "  Device:    not connected")
	}
	fmt.Fprintf(c.out, "  KeepAlive: %s\n", onOff(st.KeepAlive))
	fmt.Fprintf(c.out, "  Binds: %d  Rejects: %d  Link losses: %d\n", st.Binds, st.Rejects, st.LinkLosses)
}

func (c *Console) cmdConnect() {
	if c.ctl.IsConnected() {
		fmt.Fprintln(c.out, "Already connected")
		return
	}
	c.ctl.Connect()
	fmt.Fprintln(c.out, "Connection attempt started")
}

func (c *Console) cmdReset() {
	if !c.ctl.IsConnected() {
		fmt.Fprintln(c.out, "Not connected")
		return
	}
	c.ctl.Reset()
	fmt.Fprintln(c.out, "Reset sent")
}

func (c *Console) cmdEvents(args []string) {
	n := historySize
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			fmt.Fprintf(c.out, "Invalid count: %s\n", args[0])
			return
		}
		n = v
	}

	recent := c.history.last(n)
	if len(recent) == 0 {
		fmt.Fprintln(c.out, "No events")
		return
	}
	for _, e := range recent {
		fmt.Fprintln(c.out, formatEvent(e))
	}
}

func (c *Console) handleEvent(e events.Event) {
	c.history.add(e)
	fmt.Fprintf(c.out, "[event] %s\n", formatEvent(e))
}

func (c *Console) close() {
	if c.ctl != nil {
		if bus := c.ctl.EventHandler(); bus != nil {
			for _, k := range c.keys {
				bus.Unlisten(k)
			}
		}
	}
	c.keys = nil
	if c.rl != nil {
		c.rl.Close()
	}
}

func formatEvent(e events.Event) string {
	line := fmt.Sprintf("%s %-12s", e.Time.Format("15:04:05.000"), e.Type)
	if dev, ok := e.Data.(transport.Device); ok && dev != nil {
		line += fmt.Sprintf(" %s (%s, %s)", dev.Name(), dev.Address(), dev.Kind())
	}
	return line
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// history is a bounded, concurrency-safe list of recent events.
type history struct {
	mu     sync.Mutex
	size   int
	events []events.Event
}

func newHistory(size int) *history {
	return &history{size: size}
}

func (h *history) add(e events.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
	if len(h.events) > h.size {
		h.events = h.events[len(h.events)-h.size:]
	}
}

func (h *history) last(n int) []events.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n > len(h.events) {
		n = len(h.events)
	}
	out := make([]events.Event, n)
	copy(out, h.events[len(h.events)-n:])
	return out
}
