// Package likes keeps the persisted set of liked song ids.
package likes

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Key is the key-value entry holding the comma-joined liked ids.
const Key = "liked_songs"

// KV is the string key-value surface the set is persisted to.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Store reads and writes the whole set on every call. Toggle is atomic per
// store.
type Store struct {
	mu sync.Mutex
	kv KV
}

// New creates a store over kv.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// IsLiked reports whether id is in the set.
func (s *Store) IsLiked(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.readLocked()
	if err != nil {
		return false, err
	}
	return lo.Contains(ids, id), nil
}

// Toggle adds id if absent, removes it otherwise, and persists the set
// before returning the new membership.
func (s *Store) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.readLocked()
	if err != nil {
		return false, err
	}

	liked := !lo.Contains(ids, id)
	if liked {
		ids = append(ids, id)
	} else {
		ids = lo.Without(ids, id)
	}
	if err := s.kv.Set(Key, join(ids)); err != nil {
		return !liked, fmt.Errorf("write liked set: %w", err)
	}
	return liked, nil
}

// All returns the liked ids in insertion order.
func (s *Store) All() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *Store) readLocked() ([]string, error) {
	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("read liked set: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return Split(raw), nil
}

// Split parses a comma-joined id list, dropping blanks and duplicates.
func Split(raw string) []string {
	parts := lo.Map(strings.Split(raw, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Uniq(lo.Compact(parts))
}

// Append adds id to a comma-joined list unless it is already present.
func Append(raw, id string) string {
	ids := Split(raw)
	if id == "" || slices.Contains(ids, id) {
		return join(ids)
	}
	return join(append(ids, id))
}

func join(ids []string) string {
	return strings.Join(ids, ",")
}

// MemoryKV is an in-memory KV.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

func (kv *MemoryKV) Get(key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	return v, ok, nil
}

func (kv *MemoryKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = value
	return nil
}
