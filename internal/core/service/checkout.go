package service

import (
	"time"

	"github.com/rl1809/minimart/internal/core/domain"
)

// LineFailure records why a single cart line could not be fulfilled.
type LineFailure struct {
	Name     string
	Quantity int
	Err      error
}

// Receipt is the outcome of a commit: the created order (nil when no line
// was fulfilled), the total charged, and one entry per failed line.
type Receipt struct {
	Order    *domain.Order
	Total    float64
	Failures []LineFailure
}

// Checkout converts cart lines into stock decrements and a ledger entry.
// It is best-effort per line: a customer does not lose the whole order
// because one item sold out between add-to-cart and checkout.
type Checkout struct {
	catalog *Catalog
	ledger  *Ledger
}

func NewCheckout(catalog *Catalog, ledger *Ledger) *Checkout {
	return &Checkout{catalog: catalog, ledger: ledger}
}

// Commit processes the cart's lines in insertion order, re-resolving each
// name against the catalog and re-validating stock. Fulfilled lines
// decrement stock immediately; failed lines are skipped and reported in
// the receipt. The cart is cleared unconditionally. An empty cart fails
// with ErrEmptyCart and mutates nothing.
func (e *Checkout) Commit(cart *Cart, purchaser string) (Receipt, error) {
	if cart.Empty() {
		return Receipt{}, domain.ErrEmptyCart
	}
	defer cart.Clear()

	var (
		fulfilled []string
		total     float64
		failures  []LineFailure
	)
	for _, line := range cart.Lines() {
		p, ok := e.catalog.FindByName(line.Name)
		if !ok {
			failures = append(failures, LineFailure{line.Name, line.Quantity, domain.ErrProductNotFound})
			continue
		}
		if err := e.catalog.AdjustStock(line.Name, -line.Quantity); err != nil {
			failures = append(failures, LineFailure{line.Name, line.Quantity, err})
			continue
		}
		fulfilled = append(fulfilled, line.Name)
		total += p.Price * float64(line.Quantity)
	}

	if len(fulfilled) == 0 {
		return Receipt{Failures: failures}, nil
	}

	order := domain.Order{
		ID:        e.ledger.NextID(),
		Purchaser: purchaser,
		Items:     fulfilled,
		Total:     total,
		CreatedAt: time.Now(),
	}
	if err := e.ledger.Append(order); err != nil {
		return Receipt{Failures: failures}, err
	}
	return Receipt{Order: &order, Total: total, Failures: failures}, nil
}
