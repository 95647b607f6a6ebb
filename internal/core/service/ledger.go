package service

import (
	"fmt"

	"github.com/rl1809/minimart/internal/core/domain"
)

// Ledger is the append-only history of committed orders. It owns the
// order identifier counter, which starts at 1 and never skips.
type Ledger struct {
	orders []domain.Order
	nextID int
}

func NewLedger() *Ledger {
	return &Ledger{nextID: 1}
}

// NextID returns the identifier the next appended order must carry.
func (l *Ledger) NextID() int { return l.nextID }

// Append records a completed order. The order's identifier must be the
// ledger's next id; anything else is rejected.
func (l *Ledger) Append(o domain.Order) error {
	if o.ID != l.nextID {
		return fmt.Errorf("order id %d out of sequence, want %d", o.ID, l.nextID)
	}
	l.orders = append(l.orders, o)
	l.nextID++
	return nil
}

// All returns a snapshot of the recorded orders, oldest first.
func (l *Ledger) All() []domain.Order {
	out := make([]domain.Order, len(l.orders))
	copy(out, l.orders)
	return out
}
