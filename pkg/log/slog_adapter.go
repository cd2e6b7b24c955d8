package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event as a single "supervisor" record.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("supervisor_id", event.SupervisorID),
		slog.String("category", event.Category.String()),
	}
	if event.Attempt != 0 {
		attrs = append(attrs, slog.Uint64("attempt", event.Attempt))
	}
	if event.Transport != 0 {
		attrs = append(attrs, slog.String("transport", event.Transport.String()))
	}
	if event.Device != nil {
		attrs = append(attrs, slog.String("device", event.Device.Name))
		if event.Device.Address != "" {
			attrs = append(attrs, slog.String("address", event.Device.Address))
		}
	}

	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Command != nil:
		attrs = append(attrs,
			slog.String("command", event.Command.Name),
			slog.Bool("connected", event.Command.Connected),
		)
		if event.Command.Skipped {
			attrs = append(attrs, slog.Bool("skipped", true))
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "supervisor", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
