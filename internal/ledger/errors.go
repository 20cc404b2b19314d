package ledger

import (
	"errors"
	"fmt"

	"github.com/roach88/repledger/internal/token"
)

// ContractError represents a rejected invocation.
//
// Rejections include:
//   - Unauthorized: a non-owner called an owner-only entry point
//   - Category exists: registration of an already-registered id
//   - Category not found: an operation referenced an unknown id
//   - Invalid parameter: malformed id, out-of-range score, non-future expiry
//   - Unsupported: a transfer-family entry point was invoked
//
// ContractError includes structured fields for diagnostics; the Code is
// stable and safe to match on, the Message is not.
type ContractError struct {
	// Code identifies the rejection category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// TokenID identifies the affected category, when one is involved.
	TokenID token.ID
}

// ErrorCode categorizes contract rejections.
type ErrorCode string

const (
	// ErrCodeUnauthorized indicates the sender is not the contract owner.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// ErrCodeCategoryExists indicates the category id is already registered.
	ErrCodeCategoryExists ErrorCode = "CATEGORY_EXISTS"

	// ErrCodeCategoryNotFound indicates the category id is not registered.
	ErrCodeCategoryNotFound ErrorCode = "CATEGORY_NOT_FOUND"

	// ErrCodeInvalidParameter indicates a parameter failed validation.
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"

	// ErrCodeUnsupported indicates a permanently disabled entry point.
	ErrCodeUnsupported ErrorCode = "UNSUPPORTED"
)

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.TokenID != "" {
		return fmt.Sprintf("%s: %s (token=%s)", e.Code, e.Message, e.TokenID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the contract error code carried by err, or "" if err
// is not a ContractError. Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var ce *ContractError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsUnauthorized returns true if the error is an ownership rejection.
func IsUnauthorized(err error) bool {
	return CodeOf(err) == ErrCodeUnauthorized
}

// IsCategoryExists returns true if the error is a duplicate registration.
func IsCategoryExists(err error) bool {
	return CodeOf(err) == ErrCodeCategoryExists
}

// IsCategoryNotFound returns true if the error references an unknown category.
func IsCategoryNotFound(err error) bool {
	return CodeOf(err) == ErrCodeCategoryNotFound
}

// IsInvalidParameter returns true if the error is a parameter rejection.
func IsInvalidParameter(err error) bool {
	return CodeOf(err) == ErrCodeInvalidParameter
}

// IsUnsupported returns true if the error is a disabled entry point.
func IsUnsupported(err error) bool {
	return CodeOf(err) == ErrCodeUnsupported
}

// NewUnauthorized creates a ContractError for an ownership rejection.
func NewUnauthorized(entry string) *ContractError {
	return &ContractError{
		Code:    ErrCodeUnauthorized,
		Message: fmt.Sprintf("%s is restricted to the contract owner", entry),
	}
}

// NewCategoryExists creates a ContractError for a duplicate registration.
func NewCategoryExists(id token.ID) *ContractError {
	return &ContractError{
		Code:    ErrCodeCategoryExists,
		Message: "category is already registered",
		TokenID: id,
	}
}

// NewCategoryNotFound creates a ContractError for an unknown category.
func NewCategoryNotFound(id token.ID) *ContractError {
	return &ContractError{
		Code:    ErrCodeCategoryNotFound,
		Message: "category is not registered",
		TokenID: id,
	}
}

// NewInvalidParameter creates a ContractError for a parameter rejection.
func NewInvalidParameter(msg string) *ContractError {
	return &ContractError{
		Code:    ErrCodeInvalidParameter,
		Message: msg,
	}
}

// NewUnsupported creates a ContractError for a disabled entry point.
func NewUnsupported(entry string) *ContractError {
	return &ContractError{
		Code:    ErrCodeUnsupported,
		Message: fmt.Sprintf("%s is permanently disabled: reputation is not transferable", entry),
	}
}
