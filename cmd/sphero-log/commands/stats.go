package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/unforgiven-development/coding-with-chrome/pkg/log"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

// Stats holds aggregate statistics about an event log.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Supervisors      map[string]*SupervisorStats
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SupervisorStats holds statistics for a single supervisor instance.
type SupervisorStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Attempts  int
	Binds     map[transport.Kind]int
	Rejects   int
	Errors    int

	// FirstBindAttempt is the attempt that produced the first bind, or 0.
	FirstBindAttempt uint64
	FirstBindAt      time.Time
}

// Collect reads every event from r into a Stats.
func Collect(r *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Supervisors:      make(map[string]*SupervisorStats),
	}

	for {
		event, err := r.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		sup, ok := stats.Supervisors[event.SupervisorID]
		if !ok {
			sup = &SupervisorStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
				Binds:     make(map[transport.Kind]int),
			}
			stats.Supervisors[event.SupervisorID] = sup
		}
		if event.Timestamp.After(sup.LastSeen) {
			sup.LastSeen = event.Timestamp
		}

		switch event.Category {
		case log.CategoryAttempt:
			sup.Attempts++
		case log.CategoryBind:
			sup.Binds[event.Transport]++
			if sup.FirstBindAttempt == 0 {
				sup.FirstBindAttempt = event.Attempt
				sup.FirstBindAt = event.Timestamp
			}
		case log.CategoryReject:
			sup.Rejects++
		case log.CategoryError:
			sup.Errors++
		}
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := Collect(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Sphero Link Event Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for c := log.CategoryAttempt; c <= log.CategoryError; c++ {
		if count := stats.EventsByCategory[c]; count > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", c.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Supervisors: %d\n", len(stats.Supervisors))
	type supInfo struct {
		id    string
		stats *SupervisorStats
	}
	sups := make([]supInfo, 0, len(stats.Supervisors))
	for id, s := range stats.Supervisors {
		sups = append(sups, supInfo{id, s})
	}
	sort.Slice(sups, func(i, j int) bool {
		return sups[i].stats.FirstSeen.Before(sups[j].stats.FirstSeen)
	})

	for _, s := range sups {
		fmt.Fprintf(w, "  [%s] %d attempts, %d classic binds, %d low-energy binds, %d rejects\n",
			shortID(s.id), s.stats.Attempts,
			s.stats.Binds[transport.KindClassic], s.stats.Binds[transport.KindLowEnergy], s.stats.Rejects)
		if s.stats.FirstBindAttempt != 0 {
			fmt.Fprintf(w, "           First bind: attempt %d after %s\n",
				s.stats.FirstBindAttempt, s.stats.FirstBindAt.Sub(s.stats.FirstSeen).Round(time.Millisecond))
		}
		if s.stats.Errors > 0 {
			fmt.Fprintf(w, "           Errors: %d\n", s.stats.Errors)
		}
	}
}
