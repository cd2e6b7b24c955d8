package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/unforgiven-development/coding-with-chrome/pkg/log"
)

// RunExport writes the log file to output (stdout if empty) as jsonl or csv.
func RunExport(path, format, output string, filter log.Filter) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

type jsonEvent struct {
	Timestamp    time.Time             `json:"timestamp"`
	SupervisorID string                `json:"supervisor_id"`
	Category     string                `json:"category"`
	Transport    string                `json:"transport,omitempty"`
	Attempt      uint64                `json:"attempt,omitempty"`
	Device       *log.DeviceInfo       `json:"device,omitempty"`
	StateChange  *log.StateChangeEvent `json:"state_change,omitempty"`
	Command      *log.CommandEvent     `json:"command,omitempty"`
	Error        *log.ErrorEventData   `json:"error,omitempty"`
}

func toJSON(e log.Event) jsonEvent {
	je := jsonEvent{
		Timestamp:    e.Timestamp,
		SupervisorID: e.SupervisorID,
		Category:     e.Category.String(),
		Attempt:      e.Attempt,
		Device:       e.Device,
		StateChange:  e.StateChange,
		Command:      e.Command,
		Error:        e.Error,
	}
	if e.Transport != 0 {
		je.Transport = e.Transport.String()
	}
	return je
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toJSON(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "supervisor_id", "category", "transport", "attempt", "device", "address", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		je := toJSON(event)
		var device, address, detail, attempt string
		if event.Device != nil {
			device, address = event.Device.Name, event.Device.Address
		}
		if event.Attempt != 0 {
			attempt = strconv.FormatUint(event.Attempt, 10)
		}
		switch {
		case event.StateChange != nil:
			detail = event.StateChange.OldState + "->" + event.StateChange.NewState
		case event.Command != nil:
			detail = event.Command.Name
		case event.Error != nil:
			detail = event.Error.Message
		}

		row := []string{
			event.Timestamp.Format(time.RFC3339Nano),
			event.SupervisorID,
			je.Category,
			je.Transport,
			attempt,
			device,
			address,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
}
