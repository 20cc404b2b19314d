package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/repledger/internal/token"
)

// ReadOwner returns the contract owner.
// Returns sql.ErrNoRows if the contract has not been initialized.
func (s *Store) ReadOwner(ctx context.Context) (token.Account, error) {
	var owner string
	err := s.db.QueryRowContext(ctx, `
		SELECT owner FROM contract WHERE id = 1
	`).Scan(&owner)
	if err != nil {
		return "", err
	}
	return token.Account(owner), nil
}

// HasCategory reports whether a category id is registered.
func (s *Store) HasCategory(ctx context.Context, id token.ID) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM categories WHERE token_id = ?
	`, string(id)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return count > 0, nil
}

// ListCategories returns all registered category ids in registration
// order. Returns an empty slice (not nil) when none are registered.
func (s *Store) ListCategories(ctx context.Context) ([]token.ID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token_id FROM categories
		ORDER BY added_seq ASC, token_id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var ids []token.ID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		ids = append(ids, token.ID(id))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	if ids == nil {
		ids = []token.ID{}
	}

	return ids, nil
}

// ReadMetadata returns the metadata descriptor for a category.
// found=false means no descriptor row exists, which implies the
// category was never registered.
func (s *Store) ReadMetadata(ctx context.Context, id token.ID) (md token.Metadata, found bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT url, hash FROM metadata WHERE token_id = ?
	`, string(id)).Scan(&md.URL, &md.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return token.Metadata{}, false, nil
	}
	if err != nil {
		return token.Metadata{}, false, fmt.Errorf("read metadata: %w", err)
	}
	return md, true, nil
}

// ReadBalance returns the stored balance record for (id, account).
// found=false means no record exists; it says nothing about expiry,
// which callers must evaluate against their own logical time.
func (s *Store) ReadBalance(ctx context.Context, id token.ID, account token.Account) (b Balance, found bool, err error) {
	var amount, expiry int64
	err = s.db.QueryRowContext(ctx, `
		SELECT amount, expiry FROM balances
		WHERE token_id = ? AND account = ?
	`, string(id), string(account)).Scan(&amount, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return Balance{}, false, nil
	}
	if err != nil {
		return Balance{}, false, fmt.Errorf("read balance: %w", err)
	}

	return Balance{
		TokenID: id,
		Account: account,
		Amount:  token.Amount(amount),
		Expiry:  token.Timestamp(expiry),
	}, true, nil
}

// ReadEvents returns the full event log in logical-clock order.
// Returns an empty slice (not nil) when the log is empty.
func (s *Store) ReadEvents(ctx context.Context) ([]Event, error) {
	return s.readEvents(ctx, `
		SELECT id, seq, kind, token_id, account, amount, url, hash, at
		FROM events
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
}

// ReadEventsForToken returns the event log filtered to one category,
// in logical-clock order.
func (s *Store) ReadEventsForToken(ctx context.Context, id token.ID) ([]Event, error) {
	return s.readEvents(ctx, `
		SELECT id, seq, kind, token_id, account, amount, url, hash, at
		FROM events
		WHERE token_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, string(id))
}

func (s *Store) readEvents(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	if events == nil {
		events = []Event{}
	}

	return events, nil
}

// MaxEventSeq returns the highest logical sequence number in the event
// log, or 0 if the log is empty. Used to resume the ledger's clock.
func (s *Store) MaxEventSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM events
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("max event seq: %w", err)
	}
	return seq, nil
}

// scanEvent scans a row into an Event struct.
func scanEvent(rows *sql.Rows) (Event, error) {
	var ev Event
	var kind, tokenID, account string
	var amount, at int64

	if err := rows.Scan(
		&ev.ID, &ev.Seq, &kind, &tokenID, &account, &amount, &ev.URL, &ev.Hash, &at,
	); err != nil {
		return Event{}, fmt.Errorf("scan event: %w", err)
	}

	ev.Kind = EventKind(kind)
	ev.TokenID = token.ID(tokenID)
	ev.Account = token.Account(account)
	ev.Amount = token.Amount(amount)
	ev.At = token.Timestamp(at)

	return ev, nil
}
