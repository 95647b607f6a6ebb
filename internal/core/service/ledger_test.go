package service

import (
	"testing"

	"github.com/rl1809/minimart/internal/core/domain"
)

func TestLedgerAppendSequence(t *testing.T) {
	l := NewLedger()
	if l.NextID() != 1 {
		t.Fatalf("expected first id 1, got %d", l.NextID())
	}

	if err := l.Append(domain.Order{ID: 1, Purchaser: "Guest"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.NextID() != 2 {
		t.Errorf("expected next id 2, got %d", l.NextID())
	}

	if err := l.Append(domain.Order{ID: 5, Purchaser: "Guest"}); err == nil {
		t.Error("expected out-of-sequence append to fail")
	}
	if err := l.Append(domain.Order{ID: 2, Purchaser: "Guest"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	orders := l.All()
	if len(orders) != 2 || orders[0].ID != 1 || orders[1].ID != 2 {
		t.Errorf("unexpected ledger contents: %v", orders)
	}
}

func TestLedgerAllReturnsSnapshot(t *testing.T) {
	l := NewLedger()
	l.Append(domain.Order{ID: 1, Purchaser: "Guest"})

	snap := l.All()
	snap[0].Purchaser = "mallory"

	if l.All()[0].Purchaser != "Guest" {
		t.Error("All must return a copy, not the backing slice")
	}
}
