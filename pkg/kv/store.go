// Package kv provides a generic thread-safe in-memory index.
package kv

import (
	"cmp"
	"slices"
	"sync"
)

// Store is a thread-safe generic key-value index with ordered keys.
type Store[K cmp.Ordered, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates a new key-value store.
func New[K cmp.Ordered, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Replace swaps the whole content of the store for items. Readers see
// either the old or the new content, never a mix.
func (s *Store[K, V]) Replace(items map[K]V) {
	data := make(map[K]V, len(items))
	for k, v := range items {
		data[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Filter returns the values for which keep reports true, in ascending key
// order.
func (s *Store[K, V]) Filter(keep func(K, V) bool) []V {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]K, 0, len(s.data))
	for k, v := range s.data {
		if keep(k, v) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	out := make([]V, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.data[k])
	}
	return out
}
