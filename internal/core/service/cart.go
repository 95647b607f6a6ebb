package service

import "github.com/rl1809/minimart/internal/core/domain"

// Cart is the ordered list of requested lines for one session. Adding a
// line validates against the catalog but reserves nothing; checkout
// re-validates every line against live stock.
type Cart struct {
	catalog *Catalog
	lines   []domain.CartLine
}

func NewCart(catalog *Catalog) *Cart {
	return &Cart{catalog: catalog}
}

// Add appends a line for quantity units of the named product.
func (c *Cart) Add(name string, quantity int) error {
	p, ok := c.catalog.FindByName(name)
	if !ok {
		return domain.ErrProductNotFound
	}
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if p.Stock < quantity {
		return &domain.InsufficientStockError{Name: name, Requested: quantity, Available: p.Stock}
	}
	c.lines = append(c.lines, domain.CartLine{Name: name, Quantity: quantity})
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() { c.lines = c.lines[:0] }

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}
