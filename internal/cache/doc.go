// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a keyed store for expensive-to-build values that
// are synchronized against a requested key set in two phases.
//
// # Diff, build, commit
//
// Building a value (compiling a GPU program, for instance) must not happen
// while holding the lock other readers need, and unchanged keys must never be
// rebuilt. Store splits a sync into:
//
//	missing := store.Missing(keys)         // read lock, no building
//	fresh := build(missing)                // no lock held
//	store.Sync(keys, fresh, release)       // write lock: evict stale, insert fresh
//
// Values evicted by Sync, or fresh values that lost a race with a concurrent
// commit, are handed to release exactly once.
package cache
