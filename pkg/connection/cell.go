package connection

import (
	"sort"
	"sync"

	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
)

type result struct {
	kind   transport.Kind
	device transport.Device
}

// resultCell collects the outcomes of one connection attempt. Each expected
// transport reports exactly once; nil devices count as a report.
type resultCell struct {
	mu      sync.Mutex
	pending map[transport.Kind]bool
	ready   []result
	closed  bool
	notify  chan struct{}
}

func newResultCell() *resultCell {
	return &resultCell{
		pending: make(map[transport.Kind]bool),
		notify:  make(chan struct{}, 1),
	}
}

// expect registers a transport that will report into the cell.
func (c *resultCell) expect(kind transport.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[kind] = true
}

// offer records the outcome for kind. It returns false when the result was
// not taken, in which case dev has been closed.
func (c *resultCell) offer(kind transport.Kind, dev transport.Device) bool {
	c.mu.Lock()
	if c.closed || !c.pending[kind] {
		c.mu.Unlock()
		if dev != nil {
			_ = dev.Close()
		}
		return false
	}
	delete(c.pending, kind)
	if dev != nil {
		c.ready = append(c.ready, result{kind: kind, device: dev})
	}
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
	return true
}

// take removes and returns the ready results, classic first. done is true
// once every expected transport has reported.
func (c *resultCell) take() (ready []result, done bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ready = c.ready
	c.ready = nil
	sort.SliceStable(ready, func(i, j int) bool { return ready[i].kind < ready[j].kind })
	return ready, len(c.pending) == 0
}

// close refuses further offers and closes results nobody took.
func (c *resultCell) close() int {
	c.mu.Lock()
	leftover := c.ready
	c.ready = nil
	c.closed = true
	c.mu.Unlock()

	for _, r := range leftover {
		_ = r.device.Close()
	}
	return len(leftover)
}
