package storage

import (
	"context"
	"database/sql"
	"os"
	"reflect"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/minimart?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	return db
}

func TestMySQLStoreRoundTrip(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	store := NewMySQLStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema failed: %v", err)
	}

	rows := [][]string{
		{"1", "Widget", "tools", "2.00", "5"},
		{"2", "Gadget", "tools", "10.00", "1"},
	}
	if err := store.Save(ctx, rows); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("round trip mismatch:\ngot  %v\nwant %v", got, rows)
	}
}

func TestMySQLStoreSaveReplaces(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	store := NewMySQLStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema failed: %v", err)
	}

	if err := store.Save(ctx, [][]string{{"1", "Widget", "tools", "2.00", "5"}}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := store.Save(ctx, [][]string{{"3", "Gizmo", "tools", "1.50", "7"}}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 1 || got[0][0] != "3" {
		t.Errorf("expected the second snapshot only, got %v", got)
	}
}

func TestMySQLStoreRejectsShortRow(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	store := NewMySQLStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema failed: %v", err)
	}

	if err := store.Save(ctx, [][]string{{"1", "Widget"}}); err == nil {
		t.Error("expected error for a row with missing fields")
	}
}
