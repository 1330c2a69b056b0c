// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layerfx is the layer-surface lifecycle and shader pipeline of a
// compositing display server.
//
// # Overview
//
// Auxiliary surfaces (panels, launchers, wallpapers, backdrops) arrive through
// the layer-shell protocol. layerfx tracks each one from creation through
// mapping, content updates, unmapping and destruction, and renders it with
// program-driven open and close transitions backed by a cache of compiled GPU
// programs.
//
// # Architecture
//
// The library is organized into:
//   - compositor: reacts to protocol events and commits, owns the unmapped set,
//     the mapped map and the closing collection
//   - layer: per-surface render state (Mapped), the closing animator (Closing),
//     animation-kind classification and resolved layer rules
//   - shader: the program registry with built-in WGSL programs, custom
//     per-purpose overrides and the color-filter cache
//   - render: renderer contracts, draw elements and snapshots; render/software
//     is a CPU implementation used by tests and the demo
//   - anim, config, geom, shadow, layershell: supporting pieces
//
// # Threading
//
// Everything runs on the thread that owns the rendering context. Animation
// progress is evaluated from a shared clock at render time; nothing blocks.
//
// # Logging
//
// layerfx is silent by default. Use [SetLogger] to route diagnostics to a
// [log/slog.Logger].
package layerfx
