package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/repledger/internal/token"
)

// WriteOwner records the contract owner. The owner row can be written
// exactly once; subsequent calls return inserted=false and leave the
// original owner untouched.
func (s *Store) WriteOwner(ctx context.Context, owner token.Account) (inserted bool, err error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO contract (id, owner)
		VALUES (1, ?)
		ON CONFLICT(id) DO NOTHING
	`, string(owner))
	if err != nil {
		return false, fmt.Errorf("write owner: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write owner: rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// InsertCategory atomically registers a category together with its
// initial metadata descriptor and appends the registration event.
// Returns inserted=false, with nothing written, if the category already
// exists (a registration is never overwritten).
func (s *Store) InsertCategory(ctx context.Context, id token.ID, md token.Metadata, ev Event) (inserted bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("insert category: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// The insert claims the slot atomically via the primary key.
	result, err := tx.ExecContext(ctx, `
		INSERT INTO categories (token_id, added_seq)
		VALUES (?, ?)
		ON CONFLICT(token_id) DO NOTHING
	`, string(id), ev.Seq)
	if err != nil {
		return false, fmt.Errorf("insert category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert category: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Already registered - nothing to commit, no event.
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO metadata (token_id, url, hash)
		VALUES (?, ?, ?)
	`, string(id), md.URL, md.Hash)
	if err != nil {
		return false, fmt.Errorf("insert category: metadata: %w", err)
	}

	if err := writeEvent(ctx, tx, ev); err != nil {
		return false, fmt.Errorf("insert category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("insert category: commit: %w", err)
	}

	return true, nil
}

// UpsertMetadata atomically overwrites the metadata descriptor for a
// category and appends the corresponding metadata event. The caller is
// responsible for having verified the category exists.
func (s *Store) UpsertMetadata(ctx context.Context, id token.ID, md token.Metadata, ev Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert metadata: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO metadata (token_id, url, hash)
		VALUES (?, ?, ?)
		ON CONFLICT(token_id) DO UPDATE SET url = excluded.url, hash = excluded.hash
	`, string(id), md.URL, md.Hash)
	if err != nil {
		return fmt.Errorf("upsert metadata: %w", err)
	}

	if err := writeEvent(ctx, tx, ev); err != nil {
		return fmt.Errorf("upsert metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert metadata: commit: %w", err)
	}

	return nil
}

// UpsertBalance atomically replaces the balance record for the pair
// (b.TokenID, b.Account) and appends the mint (and, on replacement of a
// still-valid balance, burn) events in the same transaction. Last write
// wins; amounts never accumulate across mints.
func (s *Store) UpsertBalance(ctx context.Context, b Balance, events []Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert balance: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO balances (token_id, account, amount, expiry)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(token_id, account) DO UPDATE SET amount = excluded.amount, expiry = excluded.expiry
	`, string(b.TokenID), string(b.Account), int64(b.Amount), int64(b.Expiry))
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}

	for _, ev := range events {
		if err := writeEvent(ctx, tx, ev); err != nil {
			return fmt.Errorf("upsert balance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert balance: commit: %w", err)
	}

	return nil
}

// writeEvent appends one event to the log inside an open transaction.
func writeEvent(ctx context.Context, tx *sql.Tx, ev Event) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO events (id, seq, kind, token_id, account, amount, url, hash, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		ev.ID,
		ev.Seq,
		string(ev.Kind),
		string(ev.TokenID),
		string(ev.Account),
		int64(ev.Amount),
		ev.URL,
		ev.Hash,
		int64(ev.At),
	)
	if err != nil {
		return fmt.Errorf("write event %s: %w", ev.ID, err)
	}
	return nil
}
