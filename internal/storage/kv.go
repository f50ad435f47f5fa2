package storage

import (
	"context"
	"errors"
)

// Keys used by the task store.
const (
	KeyTasks   = "tasks"
	KeyVisited = "hasVisited"
)

var (
	ErrClosed        = errors.New("storage: closed")
	ErrUnknownDriver = errors.New("storage: unknown driver")
)

// KV is the persistence collaborator: a flat string key-value store that
// survives across sessions.
type KV interface {
	// Get reports ok=false when the key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
