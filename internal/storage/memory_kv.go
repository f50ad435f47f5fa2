package storage

import (
	"context"
	"sync"
)

// MemoryKV is an in-process KV. Writes counts Set calls so callers can
// assert on persistence behaviour.
type MemoryKV struct {
	mu     sync.RWMutex
	m      map[string]string
	writes int
	closed bool
	// FailWrites makes Set return the given error when non-nil.
	FailWrites error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

func (k *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.closed {
		return "", false, ErrClosed
	}
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *MemoryKV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return ErrClosed
	}
	if k.FailWrites != nil {
		return k.FailWrites
	}
	k.m[key] = value
	k.writes++
	return nil
}

func (k *MemoryKV) Writes() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.writes
}

func (k *MemoryKV) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.closed = true
	return nil
}
