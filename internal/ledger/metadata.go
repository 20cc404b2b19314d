package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/repledger/internal/store"
	"github.com/roach88/repledger/internal/token"
)

// SetMetadata overwrites the metadata descriptor of a registered
// category. Owner-only. The descriptor is opaque to the ledger; each
// write is logged as a metadata event.
func (l *Ledger) SetMetadata(ctx context.Context, call Call, rawID string, md token.Metadata) error {
	if err := l.requireOwner(call, "set_metadata"); err != nil {
		return err
	}

	id, err := token.ParseID(rawID)
	if err != nil {
		return NewInvalidParameter(err.Error())
	}

	has, err := l.store.HasCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("set metadata %s: %w", id, err)
	}
	if !has {
		return NewCategoryNotFound(id)
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

	if err := l.store.UpsertMetadata(ctx, id, md, ev); err != nil {
		return fmt.Errorf("set metadata %s: %w", id, err)
	}

	slog.Info("metadata written",
		"token_id", string(id),
		"metadata_url", md.URL,
		"seq", ev.Seq,
	)

	return nil
}

// TokenMetadata returns the metadata descriptor of a registered
// category. World-readable. A category registered with an empty
// descriptor returns the zero descriptor, not an error.
func (l *Ledger) TokenMetadata(ctx context.Context, rawID string) (token.Metadata, error) {
	id, err := token.ParseID(rawID)
	if err != nil {
		return token.Metadata{}, NewInvalidParameter(err.Error())
	}

	md, found, err := l.store.ReadMetadata(ctx, id)
	if err != nil {
		return token.Metadata{}, fmt.Errorf("token metadata %s: %w", id, err)
	}
	if !found {
		return token.Metadata{}, NewCategoryNotFound(id)
	}

	return md, nil
}
