package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAmountValid(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		want   bool
	}{
		{"zero", 0, true},
		{"mid-range", 80, true},
		{"max", MaxAmount, true},
		{"above max", MaxAmount + 1, false},
		{"negative", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.amount.Valid())
		})
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	ts := TimestampFromTime(at)
	assert.Equal(t, at, ts.Time())
}

func TestTimestampAfter(t *testing.T) {
	assert.True(t, Timestamp(100).After(Timestamp(99)))
	assert.False(t, Timestamp(100).After(Timestamp(100)))
	assert.False(t, Timestamp(100).After(Timestamp(101)))
}

func TestMetadataIsZero(t *testing.T) {
	assert.True(t, Metadata{}.IsZero())
	assert.False(t, Metadata{URL: "https://example.com/trust.json"}.IsZero())
	assert.False(t, Metadata{Hash: "ab"}.IsZero())
}

func TestMetadataString(t *testing.T) {
	md := Metadata{URL: "https://example.com/trust.json"}
	assert.Equal(t, "https://example.com/trust.json", md.String())

	md.Hash = "deadbeef"
	assert.Equal(t, "https://example.com/trust.json#deadbeef", md.String())
}
