package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContractError_Error(t *testing.T) {
	err := NewCategoryNotFound("trust")
	assert.Contains(t, err.Error(), "CATEGORY_NOT_FOUND")
	assert.Contains(t, err.Error(), "trust")

	plain := NewUnauthorized("mint")
	assert.Contains(t, plain.Error(), "UNAUTHORIZED")
	assert.Contains(t, plain.Error(), "mint")
}

func TestCodeOf_Wrapped(t *testing.T) {
	// Predicates must see through fmt.Errorf wrapping.
	wrapped := fmt.Errorf("dispatch: %w", NewCategoryExists("trust"))
	assert.Equal(t, ErrCodeCategoryExists, CodeOf(wrapped))
	assert.True(t, IsCategoryExists(wrapped))
}

func TestCodeOf_NonContractError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
	assert.False(t, IsUnauthorized(errors.New("plain")))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsUnauthorized(NewUnauthorized("mint")))
	assert.True(t, IsCategoryExists(NewCategoryExists("trust")))
	assert.True(t, IsCategoryNotFound(NewCategoryNotFound("trust")))
	assert.True(t, IsInvalidParameter(NewInvalidParameter("bad")))
	assert.True(t, IsUnsupported(NewUnsupported("transfer")))

	// Codes do not cross-match.
	assert.False(t, IsUnauthorized(NewUnsupported("transfer")))
	assert.False(t, IsCategoryNotFound(NewCategoryExists("trust")))
}
