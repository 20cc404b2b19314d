package store

import "github.com/roach88/repledger/internal/token"

// Balance is a stored balance record for one (category, account) pair.
//
// A record is never deleted at expiry; validity is a pure function of
// the record and the current logical time, evaluated on every read.
type Balance struct {
	TokenID token.ID
	Account token.Account
	Amount  token.Amount
	Expiry  token.Timestamp
}

// AmountAt returns the effective balance at the given logical time.
// An expired record (expiry at or before now) reads as zero.
func (b Balance) AmountAt(now token.Timestamp) token.Amount {
	if b.Expiry.After(now) {
		return b.Amount
	}
	return 0
}

// HasBalance reports whether the record holds a positive, unexpired
// balance at the given logical time.
func (b Balance) HasBalance(now token.Timestamp) bool {
	return b.AmountAt(now) > 0
}

// EventKind identifies a contract event variant.
type EventKind string

const (
	// EventMint records tokens minted to an account.
	EventMint EventKind = "mint"

	// EventBurn records a still-valid balance replaced by a re-mint.
	EventBurn EventKind = "burn"

	// EventMetadata records a metadata descriptor written for a category
	// (on registration and on every set_metadata).
	EventMetadata EventKind = "metadata"
)

// Event is one entry of the append-only contract event log.
//
// ID is a UUIDv7; Seq is the ledger's monotonic logical clock and is the
// authoritative ordering. At is the logical call time supplied by the
// invocation that produced the event.
type Event struct {
	ID      string
	Seq     int64
	Kind    EventKind
	TokenID token.ID
	Account token.Account
	Amount  token.Amount
	URL     string
	Hash    string
	At      token.Timestamp
}
