package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/unforgiven-development/coding-with-chrome/pkg/log"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

// ViewFilter holds the view command filters.
type ViewFilter = log.Filter

// RunView prints every matching event, one per line.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		fmt.Fprintln(w, FormatEvent(event))
	}
}

// FormatEvent renders an event as a single line.
func FormatEvent(e log.Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s [%s] %-8s", e.Timestamp.Format("15:04:05.000"), shortID(e.SupervisorID), e.Category)
	if e.Attempt != 0 {
		fmt.Fprintf(&b, " #%d", e.Attempt)
	}
	if e.Transport != transport.KindUnknown {
		fmt.Fprintf(&b, " %s", e.Transport)
	}
	if e.Device != nil {
		fmt.Fprintf(&b, " %s", e.Device.Name)
		if e.Device.Address != "" {
			fmt.Fprintf(&b, " (%s)", e.Device.Address)
		}
	}

	switch {
	case e.StateChange != nil:
		fmt.Fprintf(&b, " %s -> %s", e.StateChange.OldState, e.StateChange.NewState)
		if e.StateChange.Reason != "" {
			fmt.Fprintf(&b, " (%s)", e.StateChange.Reason)
		}
	case e.Command != nil:
		fmt.Fprintf(&b, " %s", e.Command.Name)
		if e.Command.Skipped {
			b.WriteString(" skipped")
		}
	case e.Error != nil:
		fmt.Fprintf(&b, " error: %s", e.Error.Message)
		if e.Error.Context != "" {
			fmt.Fprintf(&b, " [%s]", e.Error.Context)
		}
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ParseCategoryFlag parses a category name, case-insensitively.
func ParseCategoryFlag(s string) (log.Category, error) {
	if c, ok := log.ParseCategory(strings.ToUpper(s)); ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown category: %s (use: attempt, bind, reject, miss, state, command, error)", s)
}

// ParseTransportFlag parses a transport family name.
func ParseTransportFlag(s string) (transport.Kind, error) {
	switch strings.ToLower(s) {
	case "classic":
		return transport.KindClassic, nil
	case "le", "low-energy", "ble":
		return transport.KindLowEnergy, nil
	default:
		return 0, fmt.Errorf("unknown transport: %s (use: classic, le)", s)
	}
}

// ParseTimeFlag parses an RFC 3339 time.
func ParseTimeFlag(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t, nil
}
