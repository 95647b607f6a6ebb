package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rl1809/minimart/internal/core/domain"
)

const catalogFields = 5 // id, name, category, price, stock

// Catalog owns all product records. Each record is stored once and
// indexed twice, by id and by name, so a mutation through either access
// path is visible through the other.
type Catalog struct {
	byID   map[int]*domain.Product
	byName map[string]*domain.Product
}

func NewCatalog() *Catalog {
	return &Catalog{
		byID:   make(map[int]*domain.Product),
		byName: make(map[string]*domain.Product),
	}
}

// Load parses raw rows into products. A malformed row is reported in the
// returned slice and skipped; the load never aborts. Rows are numbered
// from 1 in the reported errors.
func (c *Catalog) Load(rows [][]string) []error {
	var errs []error
	for i, row := range rows {
		p, err := parseRow(row)
		if err != nil {
			errs = append(errs, &domain.ParseError{Row: i + 1, Err: err})
			continue
		}
		c.Upsert(p)
	}
	return errs
}

func parseRow(row []string) (domain.Product, error) {
	if len(row) != catalogFields {
		return domain.Product{}, fmt.Errorf("expected %d fields, got %d", catalogFields, len(row))
	}

	id, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid id %q", row[0])
	}
	name := strings.TrimSpace(row[1])
	if name == "" {
		return domain.Product{}, fmt.Errorf("empty name")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil || price < 0 {
		return domain.Product{}, fmt.Errorf("invalid price %q", row[3])
	}
	stock, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil || stock < 0 {
		return domain.Product{}, fmt.Errorf("invalid stock %q", row[4])
	}

	return domain.Product{
		ID:       id,
		Name:     name,
		Category: strings.TrimSpace(row[2]),
		Price:    price,
		Stock:    stock,
	}, nil
}

// Upsert inserts or replaces the record reachable by p.ID and p.Name.
// Re-registering an id under a new name (or a name under a new id) purges
// the stale index entry for the old key, so the two indices always
// describe the same set of records.
func (c *Catalog) Upsert(p domain.Product) {
	if prev, ok := c.byID[p.ID]; ok && prev.Name != p.Name {
		delete(c.byName, prev.Name)
	}
	if prev, ok := c.byName[p.Name]; ok && prev.ID != p.ID {
		delete(c.byID, prev.ID)
	}
	rec := p
	c.byID[rec.ID] = &rec
	c.byName[rec.Name] = &rec
}

// FindByID returns a copy of the record with the given id.
func (c *Catalog) FindByID(id int) (domain.Product, bool) {
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return *p, true
}

// FindByName returns a copy of the record with the given name.
func (c *Catalog) FindByName(name string) (domain.Product, bool) {
	p, ok := c.byName[name]
	if !ok {
		return domain.Product{}, false
	}
	return *p, true
}

// AdjustStock applies delta to the named product's stock. It fails without
// mutating anything if the product is unknown or the result would be
// negative; an insufficient-stock failure carries the available quantity.
func (c *Catalog) AdjustStock(name string, delta int) error {
	p, ok := c.byName[name]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return &domain.InsufficientStockError{Name: name, Requested: -delta, Available: p.Stock}
	}
	p.Stock += delta
	return nil
}

// Export serializes every id-indexed record as a raw row, ordered by
// ascending id so the output is deterministic. Prices are formatted with
// two decimals.
func (c *Catalog) Export() [][]string {
	ids := make([]int, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		p := c.byID[id]
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Category,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.Itoa(p.Stock),
		})
	}
	return rows
}

// Len reports the number of id-indexed records.
func (c *Catalog) Len() int { return len(c.byID) }
