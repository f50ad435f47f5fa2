package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func setupKV(t *testing.T) *SQLKV {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todod-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db, DialectSQLite); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	kv, err := NewSQLKV(db, DialectSQLite)
	if err != nil {
		t.Fatalf("new kv: %v", err)
	}
	return kv
}

func TestSQLKVGetMissingKey(t *testing.T) {
	kv := setupKV(t)
	value, ok, err := kv.Get(context.Background(), KeyTasks)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("expected absent key, got ok=%v value=%q", ok, value)
	}
}

func TestSQLKVSetOverwrites(t *testing.T) {
	kv := setupKV(t)
	ctx := context.Background()

	if err := kv.Set(ctx, KeyTasks, `[]`); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := kv.Set(ctx, KeyTasks, `[{"id":1}]`); err != nil {
		t.Fatalf("second set: %v", err)
	}
	value, ok, err := kv.Get(ctx, KeyTasks)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != `[{"id":1}]` {
		t.Fatalf("unexpected value: %q", value)
	}

	var rows int
	if err := kv.db.QueryRow(`SELECT COUNT(*) FROM kv_store`).Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected a single row after overwrite, got %d", rows)
	}
}

func TestSQLKVKeysAreIndependent(t *testing.T) {
	kv := setupKV(t)
	ctx := context.Background()
	if err := kv.Set(ctx, KeyVisited, "true"); err != nil {
		t.Fatalf("set visited: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, KeyTasks); ok {
		t.Fatal("expected tasks key to stay absent")
	}
	if v, ok, _ := kv.Get(ctx, KeyVisited); !ok || v != "true" {
		t.Fatalf("unexpected visited value: ok=%v v=%q", ok, v)
	}
}

func TestOpenSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	first, err := Open(ctx, Options{Driver: DriverSQLite, DSN: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set(ctx, KeyTasks, `["kept"]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(ctx, Options{Driver: DriverSQLite, DSN: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	value, ok, err := second.Get(ctx, KeyTasks)
	if err != nil || !ok || value != `["kept"]` {
		t.Fatalf("unexpected value after reopen: %q ok=%v err=%v", value, ok, err)
	}
}

func TestNewSQLKVRejectsUnknownDialect(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if _, err := NewSQLKV(db, DialectPostgres); err == nil {
		t.Fatal("expected error for postgres dialect on database/sql kv")
	}
}
