package token

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// maxIdentifierBytes bounds category ids and account addresses.
// Identifiers are storage keys; an unbounded key is an unbounded row.
const maxIdentifierBytes = 255

// ParseID canonicalizes and validates a category identifier.
// The returned ID is NFC-normalized; all comparisons downstream are
// byte-for-byte.
func ParseID(raw string) (ID, error) {
	s, err := canonicalize("category id", raw)
	if err != nil {
		return "", err
	}
	return ID(s), nil
}

// ParseAccount canonicalizes and validates an account address.
func ParseAccount(raw string) (Account, error) {
	s, err := canonicalize("account", raw)
	if err != nil {
		return "", err
	}
	return Account(s), nil
}

// canonicalize applies the shared identifier rules: valid UTF-8, NFC
// normalization, non-empty, bounded length, no control characters.
func canonicalize(what, raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%s must not be empty", what)
	}
	if !utf8.ValidString(raw) {
		return "", fmt.Errorf("%s is not valid UTF-8", what)
	}

	// NFC normalize at the boundary so equal-looking identifiers are equal.
	s := norm.NFC.String(raw)

	if len(s) > maxIdentifierBytes {
		return "", fmt.Errorf("%s exceeds %d bytes", what, maxIdentifierBytes)
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return "", fmt.Errorf("%s contains control character %U", what, r)
		}
	}
	return s, nil
}
