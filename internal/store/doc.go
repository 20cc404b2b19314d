// Package store provides durable storage for the reputation ledger's
// contract state: the owner principal, the category registry, per-category
// metadata descriptors, per-(account, category) balance records, and the
// append-only contract event log.
//
// The store uses SQLite with WAL mode and a single connection. Every
// mutating entry point of the ledger maps to exactly one write method
// here, and every write method runs in one transaction - an entry point
// either commits all of its state changes and events, or none of them.
package store
