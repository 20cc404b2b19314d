package token

import (
	"fmt"
	"time"
)

// MaxAmount is the largest representable reputation score.
// Scores are 16-bit quantities on the wire; anything above this range
// is rejected as an invalid parameter before it reaches the ledger.
const MaxAmount = 65535

// ID is a category identifier (the token id of the standardized
// interface). Construct via ParseID - the zero value is not valid.
type ID string

// Account is an opaque principal address. Construct via ParseAccount -
// the zero value is not valid.
type Account string

// Amount is a non-negative reputation score in [0, MaxAmount].
type Amount int64

// Valid reports whether the amount is inside the representable range.
func (a Amount) Valid() bool {
	return a >= 0 && a <= MaxAmount
}

// Timestamp is a point in time, in milliseconds since the Unix epoch.
// The zero value means "unset".
type Timestamp int64

// TimestampFromTime converts a time.Time to a millisecond Timestamp.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time converts the timestamp back to a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

// After reports whether t is strictly later than other.
func (t Timestamp) After(other Timestamp) bool {
	return t > other
}

// Metadata is a per-category descriptor: a URL pointing at the
// grade-derivation document plus an optional hex-encoded SHA-256 of its
// content. The descriptor is stored and returned opaquely - the ledger
// never interprets it.
//
// The zero value is the "unset" descriptor returned for categories that
// were registered but never had metadata written.
type Metadata struct {
	URL  string `json:"url"`
	Hash string `json:"hash,omitempty"`
}

// IsZero reports whether the descriptor has never been set.
func (m Metadata) IsZero() bool {
	return m.URL == "" && m.Hash == ""
}

func (m Metadata) String() string {
	if m.Hash == "" {
		return m.URL
	}
	return fmt.Sprintf("%s#%s", m.URL, m.Hash)
}
