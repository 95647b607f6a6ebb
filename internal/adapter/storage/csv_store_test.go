package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCSVStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	store := NewCSVStore(path)
	ctx := context.Background()

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

func TestCSVStoreMissingFile(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "absent.csv"))

	rows, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("expected empty catalog for missing file, got error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}

func TestCSVStoreQuotedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	store := NewCSVStore(path)
	ctx := context.Background()

	rows := [][]string{{"1", "Widget, Large", "tools", "2.00", "5"}}
	if err := store.Save(ctx, rows); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("comma in name did not survive the round trip: %v", got)
	}
}

func TestCSVStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	store := NewCSVStore(path)
	ctx := context.Background()

	store.Save(ctx, [][]string{
		{"1", "Widget", "tools", "2.00", "5"},
		{"2", "Gadget", "tools", "10.00", "1"},
	})
	store.Save(ctx, [][]string{{"3", "Gizmo", "tools", "1.50", "7"}})

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 1 || got[0][1] != "Gizmo" {
		t.Errorf("expected the second snapshot only, got %v", got)
	}
}
