package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/repledger/internal/store"
	"github.com/roach88/repledger/internal/token"
)

// AddCategory registers a new reputation category under the given id,
// coupled with its initial metadata descriptor. Owner-only.
//
// Registration is permanent: an id can be registered exactly once and
// never overwritten or deleted. Registering an existing id fails with
// CATEGORY_EXISTS and writes nothing.
func (l *Ledger) AddCategory(ctx context.Context, call Call, rawID string, md token.Metadata) error {
	// The owner check comes before parameter validation: a non-owner is
	// told UNAUTHORIZED no matter what they sent.
	if err := l.requireOwner(call, "add_category"); err != nil {
		return err
	}

	id, err := token.ParseID(rawID)
	if err != nil {
		return NewInvalidParameter(err.Error())
	}

	ev := store.Event{
		ID:      l.idGen.Generate(),
		Seq:     l.clock.Next(),
		Kind:    store.EventMetadata,
		TokenID: id,
		URL:     md.URL,
		Hash:    md.Hash,
		At:      call.Now,
	}

	inserted, err := l.store.InsertCategory(ctx, id, md, ev)
	if err != nil {
		return fmt.Errorf("add category %s: %w", id, err)
	}
	if !inserted {
		return NewCategoryExists(id)
	}

	slog.Info("category registered",
		"token_id", string(id),
		"metadata_url", md.URL,
		"seq", ev.Seq,
	)

	return nil
}

// Categories returns all registered category ids in registration order.
// World-readable.
func (l *Ledger) Categories(ctx context.Context) ([]token.ID, error) {
	return l.store.ListCategories(ctx)
}
