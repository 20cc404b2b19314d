package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/repledger/internal/schema"
	"github.com/roach88/repledger/internal/token"
)

// Entry point names of the contract interface.
const (
	EntryAddCategory    = "add_category"
	EntrySetMetadata    = "set_metadata"
	EntryMint           = "mint"
	EntryBalanceOf      = "balance_of"
	EntryExpiryOf       = "expiry_of"
	EntryTokenMetadata  = "token_metadata"
	EntryListCategories = "list_categories"
	EntryTransfer       = "transfer"
	EntryUpdateOperator = "update_operator"
	EntryOperatorOf     = "operator_of"
)

// AddCategoryParams are the parameters of add_category.
type AddCategoryParams struct {
	ID       string         `json:"id"`
	Metadata token.Metadata `json:"metadata"`
}

// SetMetadataParams are the parameters of set_metadata.
type SetMetadataParams struct {
	ID       string         `json:"id"`
	Metadata token.Metadata `json:"metadata"`
}

// MintParams are the parameters of mint.
type MintParams struct {
	ID      string `json:"id"`
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
	Expiry  int64  `json:"expiry"`
}

// QueryParams are the parameters of balance_of and expiry_of.
type QueryParams struct {
	ID      string `json:"id"`
	Account string `json:"account"`
}

// TokenMetadataParams are the parameters of token_metadata.
type TokenMetadataParams struct {
	ID string `json:"id"`
}

// BalanceResult is the result of balance_of.
type BalanceResult struct {
	Amount int64 `json:"amount"`
}

// ExpiryResult is the result of expiry_of.
type ExpiryResult struct {
	Expiry int64 `json:"expiry"`
}

// CategoriesResult is the result of list_categories.
type CategoriesResult struct {
	IDs []token.ID `json:"ids"`
}

// Dispatch invokes a named entry point with JSON-encoded parameters.
//
// Parameters are validated against the published interface schema
// before any handler runs; malformed or ill-typed params fail with
// INVALID_PARAMETER. The transfer family rejects first, before
// validation, so it fails identically on any input. On the mutating
// entry points the owner check also precedes validation: a non-owner
// is told UNAUTHORIZED regardless of what they sent.
//
// Mutating entry points return a nil result on success.
func (l *Ledger) Dispatch(ctx context.Context, entry string, call Call, params []byte) (any, error) {
	// The disabled entry points reject unconditionally.
	switch entry {
	case EntryTransfer:
		return nil, l.Transfer(call)
	case EntryUpdateOperator:
		return nil, l.UpdateOperator(call)
	case EntryOperatorOf:
		return nil, l.OperatorOf(call)
	}

	switch entry {
	case EntryAddCategory, EntrySetMetadata, EntryMint:
		if err := l.requireOwner(call, entry); err != nil {
			return nil, err
		}
	}

	if err := schema.ValidateParams(entry, params); err != nil {
		return nil, NewInvalidParameter(err.Error())
	}

	switch entry {
	case EntryAddCategory:
		var p AddCategoryParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return nil, l.AddCategory(ctx, call, p.ID, p.Metadata)

	case EntrySetMetadata:
		var p SetMetadataParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return nil, l.SetMetadata(ctx, call, p.ID, p.Metadata)

	case EntryMint:
		var p MintParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return nil, l.Mint(ctx, call, p.ID, p.Account, token.Amount(p.Amount), token.Timestamp(p.Expiry))

	case EntryBalanceOf:
		var p QueryParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		amount, err := l.BalanceOf(ctx, call, p.ID, p.Account)
		if err != nil {
			return nil, err
		}
		return BalanceResult{Amount: int64(amount)}, nil

	case EntryExpiryOf:
		var p QueryParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		expiry, err := l.ExpiryOf(ctx, call, p.ID, p.Account)
		if err != nil {
			return nil, err
		}
		return ExpiryResult{Expiry: int64(expiry)}, nil

	case EntryTokenMetadata:
		var p TokenMetadataParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return l.TokenMetadata(ctx, p.ID)

	case EntryListCategories:
		ids, err := l.Categories(ctx)
		if err != nil {
			return nil, err
		}
		return CategoriesResult{IDs: ids}, nil

	default:
		return nil, NewInvalidParameter(fmt.Sprintf("unknown entry point %q", entry))
	}
}

// unmarshalParams decodes schema-validated params into their Go shape.
func unmarshalParams(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return NewInvalidParameter(fmt.Sprintf("decode params: %v", err))
	}
	return nil
}
