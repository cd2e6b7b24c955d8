package log

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

// Filter selects events. Zero fields match everything.
type Filter struct {
	// SupervisorID matches exactly.
	SupervisorID string

	// Category matches exactly.
	Category *Category

	// Transport matches exactly.
	Transport *transport.Kind

	// Device matches a case-insensitive prefix of the device name.
	Device string

	// TimeStart matches events at or after this time.
	TimeStart *time.Time

	// TimeEnd matches events before this time.
	TimeEnd *time.Time
}

// Matches reports whether event satisfies every criterion.
func (f *Filter) Matches(event Event) bool {
	if f.SupervisorID != "" && event.SupervisorID != f.SupervisorID {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.Transport != nil && event.Transport != *f.Transport {
		return false
	}
	if f.Device != "" {
		if event.Device == nil || !strings.HasPrefix(strings.ToLower(event.Device.Name), strings.ToLower(f.Device)) {
			return false
		}
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader streams events from a CBOR event file.
type Reader struct {
	src     io.ReadCloser
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader opens path and reads every event.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens path and reads the events matching filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewStreamReader(f, filter), nil
}

// NewStreamReader reads events matching filter from r. Close closes r.
func NewStreamReader(r io.ReadCloser, filter Filter) *Reader {
	return &Reader{src: r, decoder: NewDecoder(r), filter: filter}
}

// Next returns the next matching event, or io.EOF at the end of the stream.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// ReadAll returns every remaining matching event.
func (r *Reader) ReadAll() ([]Event, error) {
	var out []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, event)
	}
}

// Close closes the underlying source.
func (r *Reader) Close() error {
	return r.src.Close()
}
