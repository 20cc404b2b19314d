package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/roach88/repledger/internal/token"
)

// openTestStore returns a fresh in-memory store for test isolation.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testEvent builds a minimal event with a unique id for the given seq.
func testEvent(kind EventKind, id token.ID, seq int64) Event {
	return Event{
		ID:      fmt.Sprintf("ev-%d", seq),
		Seq:     seq,
		Kind:    kind,
		TokenID: id,
		At:      token.Timestamp(seq * 10),
	}
}

func TestWriteOwner_Once(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	inserted, err := s.WriteOwner(ctx, "acc-owner")
	if err != nil {
		t.Fatalf("WriteOwner() failed: %v", err)
	}
	if !inserted {
		t.Fatal("first WriteOwner() should insert")
	}

	owner, err := s.ReadOwner(ctx)
	if err != nil {
		t.Fatalf("ReadOwner() failed: %v", err)
	}
	if owner != "acc-owner" {
		t.Errorf("owner = %q, want %q", owner, "acc-owner")
	}
}

func TestWriteOwner_SecondWriteIgnored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.WriteOwner(ctx, "acc-owner"); err != nil {
		t.Fatalf("WriteOwner() failed: %v", err)
	}

	inserted, err := s.WriteOwner(ctx, "acc-intruder")
	if err != nil {
		t.Fatalf("second WriteOwner() failed: %v", err)
	}
	if inserted {
		t.Error("second WriteOwner() must not insert")
	}

	owner, err := s.ReadOwner(ctx)
	if err != nil {
		t.Fatalf("ReadOwner() failed: %v", err)
	}
	if owner != "acc-owner" {
		t.Errorf("owner = %q, original owner must be preserved", owner)
	}
}

func TestReadOwner_Uninitialized(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ReadOwner(context.Background())
	if err == nil {
		t.Error("expected error reading owner of uninitialized contract")
	}
}

func TestInsertCategory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	inserted, err := s.InsertCategory(ctx, "trust", token.Metadata{}, testEvent(EventMetadata, "trust", 1))
	if err != nil {
		t.Fatalf("InsertCategory() failed: %v", err)
	}
	if !inserted {
		t.Fatal("expected category to be inserted")
	}

	has, err := s.HasCategory(ctx, "trust")
	if err != nil {
		t.Fatalf("HasCategory() failed: %v", err)
	}
	if !has {
		t.Error("category should be registered")
	}

	events, err := s.ReadEvents(ctx)
	if err != nil {
		t.Fatalf("ReadEvents() failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("event log length = %d, want 1", len(events))
	}
	if events[0].Kind != EventMetadata {
		t.Errorf("event kind = %q, want %q", events[0].Kind, EventMetadata)
	}
}

func TestInsertCategory_DuplicateWritesNothing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertCategory(ctx, "trust", token.Metadata{}, testEvent(EventMetadata, "trust", 1)); err != nil {
		t.Fatalf("InsertCategory() failed: %v", err)
	}

	inserted, err := s.InsertCategory(ctx, "trust", token.Metadata{}, testEvent(EventMetadata, "trust", 2))
	if err != nil {
		t.Fatalf("duplicate InsertCategory() failed: %v", err)
	}
	if inserted {
		t.Error("duplicate registration must not insert")
	}

	// The losing insert must not have appended an event either.
	events, err := s.ReadEvents(ctx)
	if err != nil {
		t.Fatalf("ReadEvents() failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("event log length = %d, want 1 (duplicate must write nothing)", len(events))
	}
}

func TestUpsertMetadata_Overwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertCategory(ctx, "trust", token.Metadata{}, testEvent(EventMetadata, "trust", 1)); err != nil {
		t.Fatalf("InsertCategory() failed: %v", err)
	}

	first := token.Metadata{URL: "https://example.com/v1.json"}
	if err := s.UpsertMetadata(ctx, "trust", first, testEvent(EventMetadata, "trust", 2)); err != nil {
		t.Fatalf("UpsertMetadata() failed: %v", err)
	}

	second := token.Metadata{URL: "https://example.com/v2.json", Hash: "ab12"}
	if err := s.UpsertMetadata(ctx, "trust", second, testEvent(EventMetadata, "trust", 3)); err != nil {
		t.Fatalf("second UpsertMetadata() failed: %v", err)
	}

	md, found, err := s.ReadMetadata(ctx, "trust")
	if err != nil {
		t.Fatalf("ReadMetadata() failed: %v", err)
	}
	if !found {
		t.Fatal("metadata should be present")
	}
	if md != second {
		t.Errorf("metadata = %+v, want %+v", md, second)
	}
}

func TestUpsertBalance_LastWriteWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertCategory(ctx, "trust", token.Metadata{}, testEvent(EventMetadata, "trust", 1)); err != nil {
		t.Fatalf("InsertCategory() failed: %v", err)
	}

	first := Balance{TokenID: "trust", Account: "acc-a", Amount: 5, Expiry: 100}
	if err := s.UpsertBalance(ctx, first, []Event{testEvent(EventMint, "trust", 2)}); err != nil {
		t.Fatalf("UpsertBalance() failed: %v", err)
	}

	second := Balance{TokenID: "trust", Account: "acc-a", Amount: 7, Expiry: 200}
	if err := s.UpsertBalance(ctx, second, []Event{testEvent(EventBurn, "trust", 3), testEvent(EventMint, "trust", 4)}); err != nil {
		t.Fatalf("second UpsertBalance() failed: %v", err)
	}

	b, found, err := s.ReadBalance(ctx, "trust", "acc-a")
	if err != nil {
		t.Fatalf("ReadBalance() failed: %v", err)
	}
	if !found {
		t.Fatal("balance record should exist")
	}
	if b.Amount != 7 || b.Expiry != 200 {
		t.Errorf("balance = %+v, want amount 7 expiry 200 (no accumulation)", b)
	}

	events, err := s.ReadEvents(ctx)
	if err != nil {
		t.Fatalf("ReadEvents() failed: %v", err)
	}
	if len(events) != 4 {
		t.Errorf("event log length = %d, want 4", len(events))
	}
}

func TestUpsertBalance_EventConflictRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertCategory(ctx, "trust", token.Metadata{}, testEvent(EventMetadata, "trust", 1)); err != nil {
		t.Fatalf("InsertCategory() failed: %v", err)
	}

	b := Balance{TokenID: "trust", Account: "acc-a", Amount: 5, Expiry: 100}
	// Reuse seq 1: the event insert violates the UNIQUE(seq) constraint,
	// so the balance write must roll back with it.
	err := s.UpsertBalance(ctx, b, []Event{testEvent(EventMint, "trust", 1)})
	if err == nil {
		t.Fatal("expected constraint violation")
	}

	_, found, err := s.ReadBalance(ctx, "trust", "acc-a")
	if err != nil {
		t.Fatalf("ReadBalance() failed: %v", err)
	}
	if found {
		t.Error("balance write must roll back when the event write fails")
	}
}
