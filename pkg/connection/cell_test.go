package connection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unforgiven-development/coding-with-chrome/pkg/transport"
	"github.com/unforgiven-development/coding-with-chrome/pkg/transport/sim"
)

func TestResultCellClassicFirst(t *testing.T) {
	c := newResultCell()
	c.expect(transport.KindClassic)
	c.expect(transport.KindLowEnergy)

	le := sim.NewDevice(transport.KindLowEnergy, "SK-1", "le")
	cl := sim.NewDevice(transport.KindClassic, "Sphero", "cl")

	require.True(t, c.offer(transport.KindLowEnergy, le))
	ready, done := c.take()
	require.Len(t, ready, 1)
	assert.False(t, done)

	// Put it back alongside the classic result, as if both landed together.
	c.expect(transport.KindLowEnergy)
	require.True(t, c.offer(transport.KindLowEnergy, le))
	require.True(t, c.offer(transport.KindClassic, cl))

	ready, done = c.take()
	assert.True(t, done)
	require.Len(t, ready, 2)
	assert.Equal(t, transport.KindClassic, ready[0].kind)
	assert.Equal(t, transport.KindLowEnergy, ready[1].kind)
}

func TestResultCellNilCountsAsReport(t *testing.T) {
	c := newResultCell()
	c.expect(transport.KindClassic)

	require.True(t, c.offer(transport.KindClassic, nil))
	ready, done := c.take()
	assert.Empty(t, ready)
	assert.True(t, done)

	select {
	case <-c.notify:
	default:
		t.Error("offer did not signal")
	}
}

func TestResultCellRefusesUnexpected(t *testing.T) {
	c := newResultCell()
	c.expect(transport.KindClassic)

	dev := sim.NewDevice(transport.KindLowEnergy, "SK-1", "le")
	assert.False(t, c.offer(transport.KindLowEnergy, dev))
	assert.Equal(t, 1, dev.CloseCount())

	first := sim.NewDevice(transport.KindClassic, "Sphero", "a")
	second := sim.NewDevice(transport.KindClassic, "Sphero", "b")
	assert.True(t, c.offer(transport.KindClassic, first))
	assert.False(t, c.offer(transport.KindClassic, second), "each transport reports once")
	assert.Equal(t, 1, second.CloseCount())
}

func TestResultCellClose(t *testing.T) {
	c := newResultCell()
	c.expect(transport.KindClassic)
	c.expect(transport.KindLowEnergy)

	untaken := sim.NewDevice(transport.KindClassic, "Sphero", "cl")
	require.True(t, c.offer(transport.KindClassic, untaken))
	assert.Equal(t, 1, c.close())
	assert.Equal(t, 1, untaken.CloseCount())

	late := sim.NewDevice(transport.KindLowEnergy, "SK-1", "le")
	assert.False(t, c.offer(transport.KindLowEnergy, late))
	assert.Equal(t, 1, late.CloseCount())

	ready, done := c.take()
	assert.Empty(t, ready)
	assert.False(t, done)
}
