package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileKVPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "todod.json")

	kv, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok, err := kv.Get(ctx, KeyTasks); err != nil || ok {
		t.Fatalf("fresh file should be empty, ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, KeyTasks, `[{"id":1}]`); err != nil {
		t.Fatalf("set tasks: %v", err)
	}
	if err := kv.Set(ctx, KeyVisited, "true"); err != nil {
		t.Fatalf("set visited: %v", err)
	}
	_ = kv.Close()

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be renamed away, stat err=%v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, err := reopened.Get(ctx, KeyTasks)
	if err != nil || !ok || v != `[{"id":1}]` {
		t.Fatalf("unexpected tasks value %q ok=%v err=%v", v, ok, err)
	}
	if v, ok, _ := reopened.Get(ctx, KeyVisited); !ok || v != "true" {
		t.Fatalf("unexpected visited value %q ok=%v", v, ok)
	}
}

func TestFileKVRecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todod.json")
	corrupt := []byte(`{"tasks": "[{\"id\":1`)
	if err := os.WriteFile(path, corrupt, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	kv, err := Open(ctx, Options{Driver: DriverFile, DSN: path})
	if err != nil {
		t.Fatalf("corrupt file should open empty, got %v", err)
	}
	if _, ok, err := kv.Get(ctx, KeyTasks); err != nil || ok {
		t.Fatalf("expected no tasks key, ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, KeyTasks, "[]"); err != nil {
		t.Fatalf("recovered kv should accept writes: %v", err)
	}

	kept, err := os.ReadFile(path + ".corrupt")
	if err != nil {
		t.Fatalf("corrupt document should be kept aside: %v", err)
	}
	if string(kept) != string(corrupt) {
		t.Fatalf("kept document changed: %q", kept)
	}
}

func TestFileKVClosed(t *testing.T) {
	kv, err := OpenFile(filepath.Join(t.TempDir(), "todod.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = kv.Close()
	if err := kv.Set(context.Background(), KeyTasks, "[]"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
