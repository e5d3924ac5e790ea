package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

// Meta carries the fields every stored record has. Entities embed it.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Meta) meta() *Meta { return m }

type record[T any] interface {
	*T
	meta() *Meta
}

// Store persists one collection as a single JSON file. Every operation is a
// full read of the file; mutations re-read, modify in memory, and write the
// whole file back while holding the write lock, so two writers to the same
// collection serialize instead of losing an update.
type Store[T any, PT record[T]] struct {
	path string
	mu   sync.RWMutex
}

func New[T any, PT record[T]](dir, filename string) *Store[T, PT] {
	return &Store[T, PT]{path: filepath.Join(dir, filename)}
}

// Read returns the full collection. A missing file reads as empty.
func (s *Store[T, PT]) Read() ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readLocked()
}

func (s *Store[T, PT]) readLocked() ([]T, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return out, nil
}

// Write replaces the entire collection.
func (s *Store[T, PT]) Write(records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(records)
}

func (s *Store[T, PT]) writeLocked(records []T) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", s.path, err)
	}
	if records == nil {
		records = []T{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// FindByID returns the record with the given id or ErrNotFound.
func (s *Store[T, PT]) FindByID(id string) (T, error) {
	var zero T
	records, err := s.Read()
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if PT(&rec).meta().ID == id {
			return rec, nil
		}
	}
	return zero, ErrNotFound
}

// FindOne returns the first record matching pred. A nil pred matches
// everything.
func (s *Store[T, PT]) FindOne(pred func(T) bool) (T, bool, error) {
	var zero T
	records, err := s.Read()
	if err != nil {
		return zero, false, err
	}
	for _, rec := range records {
		if pred == nil || pred(rec) {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

// FindAll returns every record matching pred, in stored order.
func (s *Store[T, PT]) FindAll(pred func(T) bool) ([]T, error) {
	records, err := s.Read()
	if err != nil {
		return nil, err
	}
	if pred == nil {
		return records, nil
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Create assigns a fresh id and timestamps, appends, persists, and returns
// the stored record.
func (s *Store[T, PT]) Create(rec T) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return zero, err
	}
	m := PT(&rec).meta()
	m.ID = uuid.NewString()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	records = append(records, rec)
	if err := s.writeLocked(records); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update applies mutate to the record with the given id, refreshes
// updatedAt, persists, and returns the updated record. The id and createdAt
// survive whatever mutate does.
func (s *Store[T, PT]) Update(id string, mutate func(*T)) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return zero, err
	}
	for i := range records {
		m := PT(&records[i]).meta()
		if m.ID != id {
			continue
		}
		created := m.CreatedAt
		mutate(&records[i])
		m = PT(&records[i]).meta()
		m.ID = id
		m.CreatedAt = created
		m.UpdatedAt = time.Now().UTC()
		if err := s.writeLocked(records); err != nil {
			return zero, err
		}
		return records[i], nil
	}
	return zero, ErrNotFound
}

// Delete removes the record with the given id, or returns ErrNotFound.
func (s *Store[T, PT]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return err
	}
	for i := range records {
		if PT(&records[i]).meta().ID == id {
			records = append(records[:i], records[i+1:]...)
			return s.writeLocked(records)
		}
	}
	return ErrNotFound
}

func (s *Store[T, PT]) Count(pred func(T) bool) (int, error) {
	records, err := s.FindAll(pred)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *Store[T, PT]) Exists(pred func(T) bool) (bool, error) {
	_, ok, err := s.FindOne(pred)
	return ok, err
}
