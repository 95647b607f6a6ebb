package domain

// Product is a catalog record, addressable by ID and by Name.
type Product struct {
	ID       int
	Name     string
	Category string
	Price    float64
	Stock    int
}
