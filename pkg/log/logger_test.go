package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

type captureLogger struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureLogger) Log(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureLogger) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{Category: CategoryAttempt})
}

func TestMultiLoggerFansOut(t *testing.T) {
	a, b := &captureLogger{}, &captureLogger{}
	m := NewMultiLogger(a, nil, b)

	m.Log(Event{Category: CategoryBind})
	m.Log(Event{Category: CategoryReject})

	if a.len() != 2 || b.len() != 2 {
		t.Errorf("got %d and %d events, want 2 each", a.len(), b.len())
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	NewMultiLogger().Log(Event{})
}

func slogLine(t *testing.T, e Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	NewSlogAdapter(logger).Log(e)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestSlogAdapterBind(t *testing.T) {
	entry := slogLine(t, Event{
		Timestamp:    time.Now(),
		SupervisorID: "sup-1",
		Category:     CategoryBind,
		Transport:    transport.KindLowEnergy,
		Attempt:      2,
		Device:       &DeviceInfo{Name: "BB-8", Address: "aa:bb"},
	})

	want := map[string]any{
		"msg":           "supervisor",
		"level":         "DEBUG",
		"supervisor_id": "sup-1",
		"category":      "BIND",
		"transport":     "low-energy",
		"attempt":       float64(2),
		"device":        "BB-8",
		"address":       "aa:bb",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
}

func TestSlogAdapterStateChange(t *testing.T) {
	entry := slogLine(t, Event{
		SupervisorID: "sup-1",
		Category:     CategoryState,
		StateChange:  &StateChangeEvent{OldState: "UNINITIALIZED", NewState: "MONITORING", Reason: "init"},
	})

	if entry["old_state"] != "UNINITIALIZED" || entry["new_state"] != "MONITORING" || entry["reason"] != "init" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["transport"]; ok {
		t.Error("transport should be omitted when unset")
	}
}

func TestSlogAdapterCommandAndError(t *testing.T) {
	entry := slogLine(t, Event{
		Category: CategoryCommand,
		Command:  &CommandEvent{Name: "RESET", Skipped: true},
	})
	if entry["command"] != "RESET" || entry["skipped"] != true || entry["connected"] != false {
		t.Errorf("unexpected command entry: %v", entry)
	}

	entry = slogLine(t, Event{
		Category: CategoryError,
		Error:    &ErrorEventData{Message: "refused", Context: "open peripheral"},
	})
	if entry["error"] != "refused" || entry["error_context"] != "open peripheral" {
		t.Errorf("unexpected error entry: %v", entry)
	}
}
