// Package schema publishes the contract interface and validates
// invocation parameters against it.
//
// The interface is declared once, in CUE (interface.cue, embedded at
// build time), and is the single source of truth for entry point names
// and parameter shapes. Dispatch validates raw JSON params against the
// CUE definitions before any handler runs, so handlers only ever see
// well-shaped input.
package schema
