// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compositor coordinates the lifecycle of layer surfaces.
//
// State receives layer-shell protocol events (surface creation, commits,
// destruction, popups) and keeps every surface in exactly one of two sets:
// unmapped surfaces waiting for content, and mapped surfaces with a
// layer.Mapped render state. Unmapping or destroying a mapped surface turns
// its last snapshot into a closing animation that outlives the surface.
//
// # Threading
//
// State is NOT safe for concurrent use. All events, frame callbacks and
// configuration reloads must come from the thread that owns the rendering
// context.
//
// # Frame Loop
//
// A host drives a frame as:
//
//	st.AdvanceAnimations()
//	st.RenderOutput(out, render.TargetOutput, push)
//	if st.AreAnimationsOngoing(out) {
//	    // schedule another frame
//	}
package compositor
