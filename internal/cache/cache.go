// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import "sync"

// Store is a keyed store synchronized with Missing and Sync.
//
// Store is safe for concurrent use.
// Store must not be copied after creation (has mutex).
type Store[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// New creates an empty store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{entries: make(map[K]V)}
}

// Get retrieves a value.
// Returns (value, true) if found, (zero, false) otherwise.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Keys returns the stored keys in unspecified order.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]K, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// Missing returns the keys from want that are not stored, without
// duplicates and in the order of want. It only takes the read lock.
func (s *Store[K, V]) Missing(want []K) []K {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []K
	seen := make(map[K]struct{}, len(want))
	for _, k := range want {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := s.entries[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// Sync makes the stored key set equal to want, restricted to keys that are
// either already stored or present in fresh. Entries whose key is not in want
// are evicted; fresh values are inserted unless an entry already exists.
//
// release, when non-nil, receives every evicted value and every fresh value
// that was not inserted. It is called after the lock is released.
func (s *Store[K, V]) Sync(want []K, fresh map[K]V, release func(K, V)) {
	wanted := make(map[K]struct{}, len(want))
	for _, k := range want {
		wanted[k] = struct{}{}
	}

	type dropped struct {
		key K
		val V
	}
	var drop []dropped

	s.mu.Lock()
	for k, v := range s.entries {
		if _, ok := wanted[k]; !ok {
			delete(s.entries, k)
			drop = append(drop, dropped{k, v})
		}
	}
	for k, v := range fresh {
		_, isWanted := wanted[k]
		_, exists := s.entries[k]
		if !isWanted || exists {
			drop = append(drop, dropped{k, v})
			continue
		}
		s.entries[k] = v
	}
	s.mu.Unlock()

	if release == nil {
		return
	}
	for _, d := range drop {
		release(d.key, d.val)
	}
}

// Clear removes all entries, passing each to release when non-nil.
func (s *Store[K, V]) Clear(release func(K, V)) {
	s.mu.Lock()
	old := s.entries
	s.entries = make(map[K]V)
	s.mu.Unlock()

	if release == nil {
		return
	}
	for k, v := range old {
		release(k, v)
	}
}
