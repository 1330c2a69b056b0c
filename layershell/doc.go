// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layershell models the layer-shell protocol objects the compositor
// core consumes: surface state (anchor, exclusive zone, stacking layer,
// keyboard interactivity), the per-output layer map that arranges surfaces,
// and an in-memory Surface implementation for tests and demos.
//
// Wire encoding is not handled here; a protocol server adapts its objects
// to the Surface interface.
package layershell
