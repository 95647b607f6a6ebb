package port

import "context"

// CatalogStore supplies and persists raw catalog rows of the shape
// id,name,category,price,stock. Field parsing is the catalog's job;
// a store only moves ordered rows in and out.
type CatalogStore interface {
	// Load returns all stored rows in order. A store with nothing
	// persisted yet returns an empty slice, not an error.
	Load(ctx context.Context) ([][]string, error)

	// Save replaces the persisted rows with the given snapshot.
	Save(ctx context.Context, rows [][]string) error
}
