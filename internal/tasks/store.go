// Package tasks owns the ordered task list and mirrors it to a storage.KV
// after every mutation.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/todod/internal/logger"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/storage"
)

// OnboardingTexts are installed once, on the first run against an empty store.
var OnboardingTexts = []string{
	"Welcome to your To-Do List!",
	"Press space to mark tasks complete",
	"Press d to delete tasks",
}

type Stats struct {
	Total     int
	Completed int
}

func (s Stats) Pending() int { return s.Total - s.Completed }

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	items  []model.Task
	lastID int64
	now    func() time.Time
	log    *slog.Logger
}

func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		items: make([]model.Task, 0),
		now:   time.Now,
		log:   logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one. Absent or
// malformed data yields an empty list; only backend errors are returned.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, storage.KeyTasks)
	if err != nil {
		return fmt.Errorf("tasks: load: %w", err)
	}

	items := make([]model.Task, 0)
	if ok {
		decoded, decodeErr := decodeList(raw)
		if decodeErr != nil {
			s.log.Warn("discarding unreadable task list", "error", decodeErr, "bytes", len(raw))
		} else {
			items = decoded
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	for _, t := range items {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	s.log.Debug("task list loaded", "count", len(items))
	return nil
}

func decodeList(raw string) ([]model.Task, error) {
	if strings.TrimSpace(raw) == "" {
		return make([]model.Task, 0), nil
	}
	var items []model.Task
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if err := model.ValidateList(items); err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]model.Task, 0)
	}
	return items, nil
}

// Add appends a task with trimmed text. Empty text returns model.ErrEmptyText
// without touching the list or storage.
func (s *Store) Add(ctx context.Context, text string) (model.Task, error) {
	trimmed, err := model.NormalizeText(text)
	if err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC().Truncate(time.Millisecond)
	task := model.Task{
		ID:        s.nextIDLocked(now.UnixMilli()),
		Text:      trimmed,
		CreatedAt: now,
	}
	s.items = append(s.items, task)
	return task, s.persistLocked(ctx)
}

// Toggle flips the completion flag of id. A missing id is not an error.
func (s *Store) Toggle(ctx context.Context, id int64) (completed bool, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false, false, nil
	}
	s.items[i].Completed = !s.items[i].Completed
	return s.items[i].Completed, true, s.persistLocked(ctx)
}

// Delete removes the first task with id and returns it.
func (s *Store) Delete(ctx context.Context, id int64) (model.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.Task{}, false, nil
	}
	removed := s.items[i]
	next := make([]model.Task, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	s.items = next
	return removed, true, s.persistLocked(ctx)
}

// ClearCompleted drops completed tasks, preserving the order of the rest.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]model.Task, 0, len(s.items))
	for _, t := range s.items {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	return removed, s.persistLocked(ctx)
}

// ClearAll empties the list. Asking the user first is the caller's job.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := len(s.items)
	s.items = make([]model.Task, 0)
	return removed, s.persistLocked(ctx)
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Total: len(s.items)}
	for _, t := range s.items {
		if t.Completed {
			st.Completed++
		}
	}
	return st
}

// Tasks returns a copy of the list in display order.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Seed installs OnboardingTexts when the list is empty and the visited flag
// has never been written. The flag is set afterwards so seeding happens at
// most once per storage lifetime.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) > 0 {
		return false, nil
	}
	_, visited, err := s.kv.Get(ctx, storage.KeyVisited)
	if err != nil {
		return false, fmt.Errorf("tasks: read visited flag: %w", err)
	}
	if visited {
		return false, nil
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	base := now.UnixMilli() - int64(len(OnboardingTexts))
	for i, text := range OnboardingTexts {
		s.items = append(s.items, model.Task{
			ID:        s.nextIDLocked(base + int64(i)),
			Text:      text,
			CreatedAt: now,
		})
	}
	if err := s.persistLocked(ctx); err != nil {
		return true, err
	}
	if err := s.kv.Set(ctx, storage.KeyVisited, "true"); err != nil {
		return true, fmt.Errorf("tasks: set visited flag: %w", err)
	}
	s.log.Info("seeded onboarding tasks", "count", len(OnboardingTexts))
	return true, nil
}

func (s *Store) nextIDLocked(candidate int64) int64 {
	if candidate <= s.lastID {
		candidate = s.lastID + 1
	}
	s.lastID = candidate
	return candidate
}

func (s *Store) indexLocked(id int64) int {
	for i, t := range s.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("tasks: encode: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyTasks, string(payload)); err != nil {
		s.log.Error("persist task list failed", "error", err, "count", len(s.items))
		return fmt.Errorf("tasks: persist: %w", err)
	}
	return nil
}
