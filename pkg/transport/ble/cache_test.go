package ble

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/bluetooth"
)

func TestSightingsMatchByPrefix(t *testing.T) {
	now := time.Now()
	s := newSightings(time.Minute)
	s.observe("SK-1A2B", "aa", bluetooth.Address{}, -70, now)
	s.observe("BB-0001", "bb", bluetooth.Address{}, -40, now)
	s.observe("SK-9F9F", "cc", bluetooth.Address{}, -50, now)

	found := s.match("sk-", now)
	require.Len(t, found, 2)
	assert.Equal(t, "cc", found[0].address, "strongest signal first")
	assert.Equal(t, "aa", found[1].address)
}

func TestSightingsExpire(t *testing.T) {
	now := time.Now()
	s := newSightings(10 * time.Second)
	s.observe("SK-1A2B", "aa", bluetooth.Address{}, -70, now)

	assert.Len(t, s.match("SK-", now.Add(5*time.Second)), 1)
	assert.Empty(t, s.match("SK-", now.Add(11*time.Second)))
	assert.Empty(t, s.entries, "stale entry pruned")
}

func TestSightingsKeepNameFromEarlierAdvertisement(t *testing.T) {
	now := time.Now()
	s := newSightings(0)

	s.observe("", "aa", bluetooth.Address{}, -70, now)
	assert.Empty(t, s.entries, "nameless first advertisement ignored")

	s.observe("SK-1A2B", "aa", bluetooth.Address{}, -70, now)
	s.observe("", "aa", bluetooth.Address{}, -60, now.Add(time.Second))

	found := s.match("SK-", now.Add(time.Second))
	require.Len(t, found, 1)
	assert.Equal(t, "SK-1A2B", found[0].name)
	assert.Equal(t, int16(-60), found[0].rssi)
}

func TestSightingsForget(t *testing.T) {
	now := time.Now()
	s := newSightings(time.Minute)
	s.observe("SK-1A2B", "aa", bluetooth.Address{}, -70, now)
	s.forget("aa")
	assert.Empty(t, s.match("SK-", now))
}

func TestSightingsEmptyPrefixMatchesNothing(t *testing.T) {
	now := time.Now()
	s := newSightings(time.Minute)
	s.observe("SK-1A2B", "aa", bluetooth.Address{}, -70, now)
	assert.Empty(t, s.match("", now))
}
