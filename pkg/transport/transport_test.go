package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindClassic, "classic"},
		{KindLowEnergy, "low-energy"},
		{KindUnknown, "unknown"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestDescriptorMatches(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		advertised string
		want       bool
	}{
		{"exact", Sphero2, "Sphero", true},
		{"classic suffix", Sphero2, "Sphero-RGB", true},
		{"prefix", SpheroSPRKPlus, "SK-8F2A", true},
		{"case insensitive", SpheroSPRKPlus, "sk-8f2a", true},
		{"other model", SpheroSPRKPlus, "BB-1234", false},
		{"empty descriptor", Descriptor{}, "SK-8F2A", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.descriptor.Matches(tt.advertised))
		})
	}
}

func TestLookupDescriptor(t *testing.T) {
	d, ok := LookupDescriptor("sk-")
	assert.True(t, ok)
	assert.Equal(t, SpheroSPRKPlus, d)

	_, ok = LookupDescriptor("nope")
	assert.False(t, ok)
}
