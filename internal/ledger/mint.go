package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/repledger/internal/store"
	"github.com/roach88/repledger/internal/token"
)

// Mint assigns a reputation score with an expiry to an account.
// Owner-only.
//
// Minting replaces: the new {amount, expiry} pair overwrites whatever
// record exists for the pair, valid or expired. Amounts never
// accumulate across mints. If the replaced record was still valid at
// call time, a burn event for the old amount is logged before the mint
// event; replacing an expired record logs only the mint.
//
// The expiry must be strictly after the call time and the amount must
// be in [0, 65535]; otherwise the call fails with INVALID_PARAMETER
// and writes nothing.
func (l *Ledger) Mint(ctx context.Context, call Call, rawID, rawAccount string, amount token.Amount, expiry token.Timestamp) error {
	if err := l.requireOwner(call, "mint"); err != nil {
		return err
	}

	id, err := token.ParseID(rawID)
	if err != nil {
		return NewInvalidParameter(err.Error())
	}
	account, err := token.ParseAccount(rawAccount)
	if err != nil {
		return NewInvalidParameter(err.Error())
	}

	has, err := l.store.HasCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("mint %s: %w", id, err)
	}
	if !has {
		return NewCategoryNotFound(id)
	}

	if !amount.Valid() {
		return NewInvalidParameter(fmt.Sprintf("amount %d is outside [0, %d]", amount, token.MaxAmount))
	}
	if !expiry.After(call.Now) {
		return NewInvalidParameter("expiry must be strictly after the call time")
	}

	existing, found, err := l.store.ReadBalance(ctx, id, account)
	if err != nil {
		return fmt.Errorf("mint %s: %w", id, err)
	}

	var events []store.Event

	// Replacing a still-valid balance retires the old amount first.
	if found && existing.HasBalance(call.Now) {
		events = append(events, store.Event{
			ID:      l.idGen.Generate(),
			Seq:     l.clock.Next(),
			Kind:    store.EventBurn,
			TokenID: id,
			Account: account,
			Amount:  existing.Amount,
			At:      call.Now,
		})
	}

	events = append(events, store.Event{
		ID:      l.idGen.Generate(),
		Seq:     l.clock.Next(),
		Kind:    store.EventMint,
		TokenID: id,
		Account: account,
		Amount:  amount,
		At:      call.Now,
	})

	b := store.Balance{
		TokenID: id,
		Account: account,
		Amount:  amount,
		Expiry:  expiry,
	}

	if err := l.store.UpsertBalance(ctx, b, events); err != nil {
		return fmt.Errorf("mint %s: %w", id, err)
	}

	slog.Info("score minted",
		"token_id", string(id),
		"account", string(account),
		"amount", int64(amount),
		"expiry", int64(expiry),
		"replaced", found && existing.HasBalance(call.Now),
	)

	return nil
}
