package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_CreatesTables(t *testing.T) {
	db := newTestDB(t)

	ctx := context.Background()
	rows, err := db.db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		t.Fatalf("query sqlite_master error: %v", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan error: %v", err)
		}
		tables = append(tables, name)
	}

	found := false
	for _, tbl := range tables {
		if tbl == "preferences" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected table %q not found in %v", "preferences", tables)
	}
}

func TestNew_FileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mailpane.db")
	ctx := context.Background()

	db, err := New(path)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := db.Set(ctx, "collapsed", "true"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	db, err = New(path)
	if err != nil {
		t.Fatalf("New() reopen error: %v", err)
	}
	defer db.Close()

	got, err := db.Get(ctx, "collapsed")
	if err != nil {
		t.Fatalf("Get() after reopen error: %v", err)
	}
	if got != "true" {
		t.Errorf("Get() = %q, want %q", got, "true")
	}
}
