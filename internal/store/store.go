// Package store owns the persisted task collection. Every operation reads
// the whole collection from its storage slot, and every mutation writes the
// whole collection back, inside one critical section.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
)

// DefaultKey is the slot holding the task collection.
const DefaultKey = "savedTasks"

var (
	ErrNotFound = errors.New("store: task not found")
	ErrClosed   = errors.New("store: closed")
)

type Option func(*Store)

// WithKey overrides the slot name.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDFunc replaces the id generator. Generated ids that collide with an
// existing task are discarded and regenerated.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithOnChange registers a callback run after every mutation that wrote the
// collection. It runs outside the store lock.
func WithOnChange(fn func()) Option {
	return func(s *Store) { s.onChange = fn }
}

type Store struct {
	mu       sync.Mutex
	backend  storage.Backend
	key      string
	newID    func() string
	log      zerolog.Logger
	onChange func()
	closed   bool
}

func Open(ctx context.Context, backend storage.Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, errors.New("store: nil backend")
	}
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		newID:   newID,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	tasks := s.load(ctx)
	s.log.Debug().Str("key", s.key).Int("tasks", len(tasks)).Msg("task store opened")
	return s, nil
}

// Close releases the backend. Mutations after Close return ErrClosed and
// queries return empty results.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.backend.Close()
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *Store) load(ctx context.Context) []model.Task {
	return storage.Load(s.log.WithContext(ctx), s.backend, s.key, []model.Task{})
}

func (s *Store) read(ctx context.Context) ([]model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false
	}
	return s.load(ctx), true
}

// mutate runs fn over the current collection and persists the result when fn
// reports a change.
func (s *Store) mutate(ctx context.Context, op string, fn func([]model.Task) ([]model.Task, bool, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	next, changed, err := fn(s.load(ctx))
	if err == nil && changed {
		if err = storage.Save(ctx, s.backend, s.key, next); err != nil {
			s.log.Error().Err(err).Str("op", op).Msg("failed to persist tasks")
		}
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if changed && s.onChange != nil {
		s.onChange()
	}
	return nil
}

// List returns the collection in insertion order.
func (s *Store) List(ctx context.Context) []model.Task {
	tasks, _ := s.read(ctx)
	return tasks
}

// Create validates the draft, assigns a fresh id and appends the task. Nothing
// is written when validation fails.
func (s *Store) Create(ctx context.Context, d model.TaskDraft) (model.Task, error) {
	if errs := model.ValidateDraft(d); !errs.Empty() {
		return model.Task{}, &model.ValidationError{Errors: errs}
	}
	var created model.Task
	err := s.mutate(ctx, "create", func(tasks []model.Task) ([]model.Task, bool, error) {
		created = d.Task(s.uniqueID(tasks))
		return append(tasks, created), true, nil
	})
	if err != nil {
		return model.Task{}, err
	}
	s.log.Debug().Str("op", "create").Str("task_id", created.ID).Msg("task created")
	return created.Clone(), nil
}

func (s *Store) uniqueID(tasks []model.Task) string {
	taken := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		taken[t.ID] = true
	}
	for {
		id := s.newID()
		if id != "" && !taken[id] {
			return id
		}
	}
}

// Update replaces the task whose id matches. The stored record always keeps
// id, whatever t.ID says. An unknown id returns ErrNotFound and writes
// nothing.
func (s *Store) Update(ctx context.Context, id string, t model.Task) (model.Task, error) {
	t = t.Clone()
	t.ID = id
	if errs := model.ValidateTask(t); !errs.Empty() {
		return model.Task{}, &model.ValidationError{Errors: errs}
	}
	err := s.mutate(ctx, "update", func(tasks []model.Task) ([]model.Task, bool, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return nil, false, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		tasks[i] = t
		return tasks, true, nil
	})
	if err != nil {
		return model.Task{}, err
	}
	s.log.Debug().Str("op", "update").Str("task_id", id).Msg("task updated")
	return t.Clone(), nil
}

// Remove deletes the task with id. Removing an unknown id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	removed := false
	err := s.mutate(ctx, "remove", func(tasks []model.Task) ([]model.Task, bool, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return tasks, false, nil
		}
		removed = true
		return append(tasks[:i], tasks[i+1:]...), true, nil
	})
	if err != nil {
		return err
	}
	if removed {
		s.log.Debug().Str("op", "remove").Str("task_id", id).Msg("task removed")
	}
	return nil
}

// FindByID reports false when no task has id.
func (s *Store) FindByID(ctx context.Context, id string) (model.Task, bool) {
	tasks, _ := s.read(ctx)
	if i := indexOf(tasks, id); i >= 0 {
		return tasks[i], true
	}
	return model.Task{}, false
}

func (s *Store) FilterByCategory(ctx context.Context, c model.Category) []model.Task {
	tasks, _ := s.read(ctx)
	return FilterByCategory(tasks, c)
}

func (s *Store) Search(ctx context.Context, query string) []model.Task {
	tasks, _ := s.read(ctx)
	return Search(tasks, query)
}

func (s *Store) Summary(ctx context.Context, recentLimit int) Summary {
	tasks, _ := s.read(ctx)
	return Summarize(tasks, recentLimit)
}

func (s *Store) Previews(ctx context.Context, limit int) []CategoryPreview {
	tasks, _ := s.read(ctx)
	return Previews(tasks, limit)
}

func indexOf(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
