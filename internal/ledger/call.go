package ledger

import (
	"github.com/roach88/repledger/internal/token"
)

// Call is the execution context of one invocation: who is calling and
// at what logical time. Both are supplied by the host, never derived
// inside the ledger, so the same call sequence always produces the
// same state.
type Call struct {
	// Sender is the canonical account invoking the entry point.
	Sender token.Account

	// Now is the logical call time. Expiry comparisons use this value,
	// never the wall clock.
	Now token.Timestamp
}

// NewCall parses a raw sender address into a Call at the given time.
func NewCall(sender string, now token.Timestamp) (Call, error) {
	acc, err := token.ParseAccount(sender)
	if err != nil {
		return Call{}, NewInvalidParameter(err.Error())
	}
	return Call{Sender: acc, Now: now}, nil
}
