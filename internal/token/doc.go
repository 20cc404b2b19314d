// Package token defines the core value types of the reputation ledger:
// category identifiers, account addresses, score amounts, millisecond
// timestamps, and metadata descriptors.
//
// All identifier strings are canonicalized to Unicode NFC at the package
// boundary so that two visually identical identifiers can never name two
// different categories or accounts. Canonicalization happens exactly once,
// at parse time - downstream code compares identifiers byte-for-byte.
package token
