// Package ledger implements the reputation contract's entry points.
//
// The ledger is the single authority over contract state. Every entry
// point takes an explicit Call carrying the sender and the logical call
// time; the ledger never reads the wall clock or ambient identity.
//
// ARCHITECTURE:
//
// Serialized mutation:
// All state changes go through one *store.Store handle opened with a
// single connection, and each mutating entry point maps to exactly one
// store transaction. An invocation either applies completely or leaves
// state byte-identical to before.
//
// Lazy expiration:
// Expired balances are never swept. A balance record whose expiry is at
// or before the call time reads as zero; a later mint simply replaces
// the record. Validity is recomputed against the supplied call time on
// every read.
//
// Logical clock:
// Every event carries a strictly increasing seq from Clock.Next(). The
// clock resumes from the persisted event log on open, so ordering
// survives restarts. Wall-clock timestamps are never used for ordering.
package ledger
