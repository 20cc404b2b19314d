package ledger

import (
	"context"
	"fmt"

	"github.com/roach88/repledger/internal/store"
	"github.com/roach88/repledger/internal/token"
)

// BalanceOf returns the effective score of an account in a category at
// the call time. World-readable.
//
// An account with no record, or whose record has expired, reads as 0.
// Querying an unregistered category fails with CATEGORY_NOT_FOUND.
func (l *Ledger) BalanceOf(ctx context.Context, call Call, rawID, rawAccount string) (token.Amount, error) {
	id, account, err := l.parseQueryTarget(ctx, rawID, rawAccount)
	if err != nil {
		return 0, err
	}

	b, found, err := l.store.ReadBalance(ctx, id, account)
	if err != nil {
		return 0, fmt.Errorf("balance of %s: %w", id, err)
	}
	if !found {
		return 0, nil
	}

	return b.AmountAt(call.Now), nil
}

// ExpiryOf returns the stored expiry of an account's score in a
// category. World-readable.
//
// This is a raw record read: the stored expiry is reported even when
// the score has already expired at the call time. Only an account with
// no record at all reads as 0.
func (l *Ledger) ExpiryOf(ctx context.Context, call Call, rawID, rawAccount string) (token.Timestamp, error) {
	id, account, err := l.parseQueryTarget(ctx, rawID, rawAccount)
	if err != nil {
		return 0, err
	}

	b, found, err := l.store.ReadBalance(ctx, id, account)
	if err != nil {
		return 0, fmt.Errorf("expiry of %s: %w", id, err)
	}
	if !found {
		return 0, nil
	}

	return b.Expiry, nil
}

// Events returns the full contract event log in logical-clock order.
func (l *Ledger) Events(ctx context.Context) ([]store.Event, error) {
	return l.store.ReadEvents(ctx)
}

// EventsForToken returns the event log filtered to one category.
func (l *Ledger) EventsForToken(ctx context.Context, rawID string) ([]store.Event, error) {
	id, err := token.ParseID(rawID)
	if err != nil {
		return nil, NewInvalidParameter(err.Error())
	}
	return l.store.ReadEventsForToken(ctx, id)
}

// parseQueryTarget canonicalizes a (category, account) query pair and
// verifies the category is registered.
func (l *Ledger) parseQueryTarget(ctx context.Context, rawID, rawAccount string) (token.ID, token.Account, error) {
	id, err := token.ParseID(rawID)
	if err != nil {
		return "", "", NewInvalidParameter(err.Error())
	}
	account, err := token.ParseAccount(rawAccount)
	if err != nil {
		return "", "", NewInvalidParameter(err.Error())
	}

	has, err := l.store.HasCategory(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("check category %s: %w", id, err)
	}
	if !has {
		return "", "", NewCategoryNotFound(id)
	}

	return id, account, nil
}
