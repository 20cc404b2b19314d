package testutil

import (
	"fmt"
	"sync"
)

// SeqIDGenerator generates predictable event ids for tests.
//
// Ids are "ev-000001", "ev-000002", ... in call order. This enables
// deterministic test execution and golden trace comparison: the same
// scenario always produces byte-identical event logs.
//
// Thread-safety: SeqIDGenerator is safe for concurrent use via
// internal mutex.
type SeqIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int64
}

// NewSeqIDGenerator creates a generator with the given id prefix.
// An empty prefix defaults to "ev".
func NewSeqIDGenerator(prefix string) *SeqIDGenerator {
	if prefix == "" {
		prefix = "ev"
	}
	return &SeqIDGenerator{prefix: prefix}
}

// Generate returns the next sequential id.
func (g *SeqIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%06d", g.prefix, g.n)
}

// Count returns how many ids have been generated.
func (g *SeqIDGenerator) Count() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}
