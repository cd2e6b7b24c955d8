package ble

import (
	"sort"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

// DefaultSeenTTL is how long an advertisement keeps a peripheral visible.
const DefaultSeenTTL = 10 * time.Second

// sighting is the latest advertisement seen from one address.
type sighting struct {
	name    string
	address string
	raw     bluetooth.Address
	rssi    int16
	at      time.Time
}

// sightings remembers recent advertisements by address.
type sightings struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]sighting
}

func newSightings(ttl time.Duration) *sightings {
	if ttl <= 0 {
		ttl = DefaultSeenTTL
	}
	return &sightings{ttl: ttl, entries: make(map[string]sighting)}
}

// observe records an advertisement. Advertisements without a local name keep
// the name from an earlier one, since scan responses carry it separately.
func (s *sightings) observe(name, address string, raw bluetooth.Address, rssi int16, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		prev, ok := s.entries[address]
		if !ok {
			return
		}
		name = prev.name
	}
	s.entries[address] = sighting{name: name, address: address, raw: raw, rssi: rssi, at: at}
}

// match returns the fresh sightings whose name starts with prefix, strongest
// signal first. Stale entries are pruned.
func (s *sightings) match(prefix string, now time.Time) []sighting {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []sighting
	needle := strings.ToLower(prefix)
	for addr, e := range s.entries {
		if now.Sub(e.at) > s.ttl {
			delete(s.entries, addr)
			continue
		}
		if needle != "" && strings.HasPrefix(strings.ToLower(e.name), needle) {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].rssi != out[j].rssi {
			return out[i].rssi > out[j].rssi
		}
		return out[i].address < out[j].address
	})
	return out
}

// forget drops an address, used once a peripheral has been opened.
func (s *sightings) forget(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, address)
}
