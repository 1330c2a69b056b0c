// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"slices"

	"github.com/gogpu/layerfx/layershell"
	"github.com/gogpu/layerfx/render"
)

// OutputResized re-arranges the output's layer map after a mode change or
// a layer surface change and queues a redraw.
func (s *State) OutputResized(out *Output) {
	out.layers.SetOutputSize(out.size)
	out.layers.Arrange()

	for _, l := range out.layers.Layers() {
		m := s.mapped[l.ID()]
		if m == nil {
			continue
		}
		m.UpdateSizes(out.size, out.scale)
		if geo, ok := out.layers.LayerGeometry(l); ok {
			m.UpdateRenderElements(geo.Size)
		}
	}
	out.queueRedraw()
}

// QueueRedraw asks for a new frame on out.
func (s *State) QueueRedraw(out *Output) { out.queueRedraw() }

// AdvanceAnimations finishes done animations. Call it once per frame
// before rendering.
func (s *State) AdvanceAnimations() {
	for _, m := range s.mapped {
		m.AdvanceAnimations()
	}
	s.closing = slices.DeleteFunc(s.closing, func(c *closingLayer) bool {
		return c.animation.IsDone()
	})
}

// AreAnimationsOngoing reports whether out needs another frame.
func (s *State) AreAnimationsOngoing(out *Output) bool {
	for _, c := range s.closing {
		if c.output == out && !c.animation.IsDone() {
			return true
		}
	}
	for _, l := range out.layers.Layers() {
		if m := s.mapped[l.ID()]; m != nil && m.AreAnimationsOngoing() {
			return true
		}
	}
	return false
}

// RenderLayer pushes the elements of one stacking layer of out, front to
// back: popups, then mapped surfaces with the most recently mapped on top,
// then close animations. forBackdrop selects the surfaces placed within
// the backdrop instead of those drawn on the layer.
//
// Pushed elements may hold program handles; release them with
// render.ReleaseAll after the frame.
func (s *State) RenderLayer(
	out *Output,
	target render.Target,
	stacking layershell.Layer,
	forBackdrop bool,
	push func(render.Element),
) {
	surfaces := out.layers.LayersOn(stacking)
	slices.Reverse(surfaces)

	for _, l := range surfaces {
		m := s.mapped[l.ID()]
		if m == nil || m.PlaceWithinBackdrop() != forBackdrop {
			continue
		}
		if geo, ok := out.layers.LayerGeometry(l); ok {
			m.RenderPopups(geo.Loc, target, push)
		}
	}
	for _, l := range surfaces {
		m := s.mapped[l.ID()]
		if m == nil || m.PlaceWithinBackdrop() != forBackdrop {
			continue
		}
		if geo, ok := out.layers.LayerGeometry(l); ok {
			m.RenderNormal(s.renderer, geo.Loc, target, push)
		}
	}
	for i := len(s.closing) - 1; i >= 0; i-- {
		c := s.closing[i]
		if c.output != out || c.layer != stacking || c.forBackdrop != forBackdrop {
			continue
		}
		if e := c.animation.Render(s.renderer, target); e != nil {
			push(e)
		}
	}
}

// RenderOutput pushes every layer of out, front to back, with the
// backdrop surfaces last.
func (s *State) RenderOutput(out *Output, target render.Target, push func(render.Element)) {
	for _, l := range []layershell.Layer{
		layershell.LayerOverlay,
		layershell.LayerTop,
		layershell.LayerBottom,
		layershell.LayerBackground,
	} {
		s.RenderLayer(out, target, l, false, push)
	}
	s.RenderLayer(out, target, layershell.LayerBackground, true, push)
}
