package domain

import "time"

// Order is a committed checkout. Immutable once created.
type Order struct {
	ID        int
	Purchaser string
	Items     []string // fulfilled product names, in cart order
	Total     float64
	CreatedAt time.Time
}
