package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/repledger/internal/store"
	"github.com/roach88/repledger/internal/token"
)

// Ledger is the contract state machine over a single store.
//
// The owner is fixed at initialization and loaded once on open; it is
// never re-read or rewritten afterwards. All mutations are serialized
// through the store's single connection.
type Ledger struct {
	store *store.Store
	owner token.Account
	clock *Clock
	idGen EventIDGenerator
}

// Init initializes a fresh contract: it records the deploying account
// as the immutable owner and returns a ready ledger. Initializing an
// already-initialized store is an error.
func Init(ctx context.Context, s *store.Store, owner string, idGen EventIDGenerator) (*Ledger, error) {
	acc, err := token.ParseAccount(owner)
	if err != nil {
		return nil, NewInvalidParameter(err.Error())
	}

	inserted, err := s.WriteOwner(ctx, acc)
	if err != nil {
		return nil, fmt.Errorf("init ledger: %w", err)
	}
	if !inserted {
		return nil, fmt.Errorf("init ledger: contract is already initialized")
	}

	slog.Info("contract initialized", "owner", string(acc))

	return open(ctx, s, acc, idGen)
}

// Open opens an initialized contract, loading the owner and resuming
// the logical clock from the persisted event log.
func Open(ctx context.Context, s *store.Store, idGen EventIDGenerator) (*Ledger, error) {
	owner, err := s.ReadOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("open ledger: read owner (is the contract initialized?): %w", err)
	}
	return open(ctx, s, owner, idGen)
}

func open(ctx context.Context, s *store.Store, owner token.Account, idGen EventIDGenerator) (*Ledger, error) {
	seq, err := s.MaxEventSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	slog.Debug("ledger opened", "owner", string(owner), "clock", seq)

	return &Ledger{
		store: s,
		owner: owner,
		clock: NewClockAt(seq),
		idGen: idGen,
	}, nil
}

// Owner returns the contract owner.
func (l *Ledger) Owner() token.Account {
	return l.owner
}

// Clock returns the ledger's logical clock.
// Used for testing and introspection.
func (l *Ledger) Clock() *Clock {
	return l.clock
}

// requireOwner rejects the call unless the sender is the contract owner.
func (l *Ledger) requireOwner(call Call, entry string) error {
	if call.Sender != l.owner {
		return NewUnauthorized(entry)
	}
	return nil
}
