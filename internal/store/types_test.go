package store

import (
	"testing"

	"github.com/roach88/repledger/internal/token"
)

func TestBalanceAmountAt(t *testing.T) {
	b := Balance{TokenID: "trust", Account: "acc-a", Amount: 80, Expiry: 100}

	tests := []struct {
		name string
		now  token.Timestamp
		want token.Amount
	}{
		{"before expiry", 50, 80},
		{"just before expiry", 99, 80},
		{"at expiry", 100, 0},
		{"after expiry", 150, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.AmountAt(tt.now); got != tt.want {
				t.Errorf("AmountAt(%d) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}

func TestBalanceHasBalance(t *testing.T) {
	b := Balance{TokenID: "trust", Account: "acc-a", Amount: 80, Expiry: 100}
	if !b.HasBalance(50) {
		t.Error("unexpired positive balance should report true")
	}
	if b.HasBalance(100) {
		t.Error("expired balance should report false")
	}

	zero := Balance{TokenID: "trust", Account: "acc-a", Amount: 0, Expiry: 100}
	if zero.HasBalance(50) {
		t.Error("zero balance should report false even before expiry")
	}
}
