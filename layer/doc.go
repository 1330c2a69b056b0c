// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layer holds the render state of layer surfaces.
//
// A Mapped is created when a layer surface first commits content and lives
// until it unmaps. It resolves layer rules, plays the open animation, keeps
// a snapshot of the last rendered content and draws the surface, its popups
// and its shadow. When the surface goes away, the snapshot becomes a
// Closing that plays the close animation on its own.
//
// Layer surfaces are classified into kinds (bar, wallpaper, launcher) that
// pick the timing and shader used for their transitions.
package layer
