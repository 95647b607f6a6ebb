package domain

// CartLine is a requested (product, quantity) pair. The name is resolved
// against the catalog at checkout time, not copied.
type CartLine struct {
	Name     string
	Quantity int
}
