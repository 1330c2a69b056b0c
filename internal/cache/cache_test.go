// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"slices"
	"strconv"
	"sync"
	"testing"
)

type value struct{ id int }

func TestMissing(t *testing.T) {
	s := New[string, *value]()
	s.Sync([]string{"a"}, map[string]*value{"a": {1}}, nil)

	got := s.Missing([]string{"a", "b", "c", "b"})
	want := []string{"b", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
	if got := s.Missing([]string{"a"}); len(got) != 0 {
		t.Errorf("Missing() = %v, want empty", got)
	}
}

func TestSyncEvictsAndInserts(t *testing.T) {
	s := New[string, *value]()
	a, b := &value{1}, &value{2}
	s.Sync([]string{"a", "b"}, map[string]*value{"a": a, "b": b}, nil)

	var released []string
	c := &value{3}
	s.Sync([]string{"b", "c"}, map[string]*value{"c": c}, func(k string, _ *value) {
		released = append(released, k)
	})

	keys := s.Keys()
	slices.Sort(keys)
	if !slices.Equal(keys, []string{"b", "c"}) {
		t.Errorf("Keys() = %v, want [b c]", keys)
	}
	if got, _ := s.Get("b"); got != b {
		t.Error("unchanged entry b was replaced")
	}
	if !slices.Equal(released, []string{"a"}) {
		t.Errorf("released = %v, want [a]", released)
	}
}

func TestSyncReleasesRedundantFresh(t *testing.T) {
	s := New[string, *value]()
	orig := &value{1}
	s.Sync([]string{"a"}, map[string]*value{"a": orig}, nil)

	var released []*value
	dup, unwanted := &value{2}, &value{3}
	s.Sync([]string{"a"}, map[string]*value{"a": dup, "x": unwanted}, func(_ string, v *value) {
		released = append(released, v)
	})

	if got, _ := s.Get("a"); got != orig {
		t.Error("existing entry must win over a fresh duplicate")
	}
	if _, ok := s.Get("x"); ok {
		t.Error("fresh value for an unwanted key must not be inserted")
	}
	if len(released) != 2 {
		t.Errorf("released %d values, want 2", len(released))
	}
}

func TestClear(t *testing.T) {
	s := New[int, *value]()
	s.Sync([]int{1, 2}, map[int]*value{1: {1}, 2: {2}}, nil)

	n := 0
	s.Clear(func(int, *value) { n++ })
	if n != 2 || s.Len() != 0 {
		t.Errorf("Clear released %d, Len() = %d", n, s.Len())
	}
}

func TestConcurrentReadersDuringSync(t *testing.T) {
	s := New[string, int]()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				key := strconv.Itoa((i + j) % 10)
				_ = s.Missing([]string{key})
				_, _ = s.Get(key)
			}
		}()
	}
	for j := range 20 {
		key := strconv.Itoa(j % 10)
		s.Sync([]string{key}, map[string]int{key: j}, nil)
	}
	wg.Wait()
}

func BenchmarkMissingAllPresent(b *testing.B) {
	s := New[string, int]()
	keys := make([]string, 32)
	fresh := make(map[string]int, 32)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
		fresh[keys[i]] = i
	}
	s.Sync(keys, fresh, nil)

	b.ResetTimer()
	for b.Loop() {
		_ = s.Missing(keys)
	}
}
