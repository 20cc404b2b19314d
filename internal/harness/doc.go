// Package harness executes conformance scenarios against a fresh
// ledger and compares the resulting trace against golden files.
//
// A scenario is a YAML file describing the contract owner and a list
// of invocations with their expected outcomes. The harness runs each
// scenario on an in-memory store with deterministic event ids, so the
// same scenario always produces a byte-identical trace. Golden files
// under testdata/golden are the source of truth for expected behavior.
package harness
