package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

// MySQLStore keeps the catalog snapshot in a MySQL table. Rows are stored
// typed and converted back to the raw id,name,category,price,stock shape
// on load; the DECIMAL price is scanned as text so the two-decimal export
// format survives the round trip.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// EnsureSchema creates the catalog table if it does not exist.
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS catalog (
			id       INT PRIMARY KEY,
			name     VARCHAR(255) NOT NULL,
			category VARCHAR(255) NOT NULL,
			price    DECIMAL(10,2) NOT NULL,
			stock    INT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *MySQLStore) Load(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, price, stock FROM catalog ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var (
			id, stock             int
			name, category, price string
		)
		if err := rows.Scan(&id, &name, &category, &price, &stock); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		out = append(out, []string{
			strconv.Itoa(id), name, category, price, strconv.Itoa(stock),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}
	return out, nil
}

// Save replaces the table contents with the given snapshot in a single
// transaction.
func (s *MySQLStore) Save(ctx context.Context, rows [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog`); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog (id, name, category, price, stock)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if len(row) != 5 {
			return fmt.Errorf("catalog row has %d fields, want 5", len(row))
		}
		if _, err := stmt.ExecContext(ctx, row[0], row[1], row[2], row[3], row[4]); err != nil {
			return fmt.Errorf("insert catalog row: %w", err)
		}
	}

	return tx.Commit()
}
