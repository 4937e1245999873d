package db

import (
	"os"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestNew(t *testing.T) {
	database := newTestDB(t)

	var count int
	err := database.conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv_store'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query schema: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected kv_store table, got %d", count)
	}
}

func TestNew_WALMode(t *testing.T) {
	database := newTestDB(t)

	var journalMode string
	if err := database.conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected WAL mode, got %s", journalMode)
	}
}

func TestNew_CreatesParentDir(t *testing.T) {
	path := t.TempDir() + "/nested/dir/rinselog.db"
	database, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = database.Close() }()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestGetPut(t *testing.T) {
	database := newTestDB(t)

	if _, ok, err := database.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want absent without error", ok, err)
	}

	if err := database.Put("slot_v1", `[1]`); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := database.Put("slot_v1", `[1,2]`); err != nil {
		t.Fatalf("second Put() error = %v", err)
	}

	got, ok, err := database.Get("slot_v1")
	if err != nil || !ok {
		t.Fatalf("Get() ok %v, err %v", ok, err)
	}
	if got != `[1,2]` {
		t.Errorf("Get() = %q, want last write", got)
	}

	if _, ok, err := database.UpdatedAt("slot_v1"); err != nil || !ok {
		t.Errorf("UpdatedAt() ok %v, err %v", ok, err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/reopen.db"

	first, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := first.Put("k", "v"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	_ = first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = second.Close() }()

	if got, ok, _ := second.Get("k"); !ok || got != "v" {
		t.Errorf("Get() after reopen = %q, %v", got, ok)
	}
}
