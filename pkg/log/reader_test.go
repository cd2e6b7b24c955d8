package log

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

func writeEvents(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.slog")

	l, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	for _, e := range events {
		l.Log(e)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func attempts(events []Event) []uint64 {
	out := make([]uint64, len(events))
	for i, e := range events {
		out[i] = e.Attempt
	}
	return out
}

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleEvents() []Event {
	return []Event{
		{Timestamp: base, SupervisorID: "s1", Category: CategoryAttempt, Attempt: 1},
		{Timestamp: base.Add(time.Second), SupervisorID: "s1", Category: CategoryMiss, Transport: transport.KindClassic, Attempt: 2},
		{Timestamp: base.Add(2 * time.Second), SupervisorID: "s1", Category: CategoryBind, Transport: transport.KindLowEnergy, Attempt: 3,
			Device: &DeviceInfo{Name: "SK-1234"}},
		{Timestamp: base.Add(3 * time.Second), SupervisorID: "s2", Category: CategoryReject, Transport: transport.KindClassic, Attempt: 4,
			Device: &DeviceInfo{Name: "Sphero-RGB"}},
	}
}

func TestReaderIteratesInOrder(t *testing.T) {
	path := writeEvents(t, sampleEvents())

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if diff := cmp.Diff([]uint64{1, 2, 3, 4}, attempts(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Next after end = %v, want io.EOF", err)
	}
}

func TestReaderEmptyFile(t *testing.T) {
	path := writeEvents(t, nil)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Next = %v, want io.EOF", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.slog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFilteredReader(t *testing.T) {
	path := writeEvents(t, sampleEvents())

	classic := transport.KindClassic
	bind := CategoryBind
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   []uint64
	}{
		{"all", Filter{}, []uint64{1, 2, 3, 4}},
		{"supervisor", Filter{SupervisorID: "s2"}, []uint64{4}},
		{"category", Filter{Category: &bind}, []uint64{3}},
		{"transport", Filter{Transport: &classic}, []uint64{2, 4}},
		{"device prefix", Filter{Device: "sk-"}, []uint64{3}},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, []uint64{2, 3}},
		{"combined", Filter{SupervisorID: "s1", Transport: &classic}, []uint64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader: %v", err)
			}
			defer r.Close()

			got, err := r.ReadAll()
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if diff := cmp.Diff(tt.want, attempts(got)); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStreamReaderCorrupt(t *testing.T) {
	data, err := EncodeEvent(Event{Timestamp: base, Category: CategoryAttempt, Attempt: 1})
	if err != nil {
		t.Fatal(err)
	}
	data = append(data, 0xff, 0xff)

	r := NewStreamReader(io.NopCloser(bytes.NewReader(data)), Filter{})
	if _, err := r.Next(); err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if _, err := r.Next(); err == nil || err == io.EOF {
		t.Errorf("second Next = %v, want decode error", err)
	}
}
