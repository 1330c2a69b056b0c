// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"slices"

	"github.com/gogpu/layerfx"
	"github.com/gogpu/layerfx/anim"
	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/layer"
	"github.com/gogpu/layerfx/layershell"
)

// NewLayerSurface handles a new layer surface. output is the output the
// client asked for, or nil for the active one. stacking is the initial
// stacking layer; the committed state takes over from the first commit.
//
// When no output can be found the client is told to close the surface
// and nil is returned.
func (s *State) NewLayerSurface(
	surface layershell.Surface,
	output *Output,
	stacking layershell.Layer,
	namespace string,
) *layershell.LayerSurface {
	if output == nil {
		output = s.layout.ActiveOutput()
	}
	if output == nil {
		layerfx.Logger().Warn("compositor: no output for new layer surface, closing",
			"namespace", namespace)
		surface.SendClose()
		return nil
	}

	id := surface.ID()
	if _, ok := s.unmapped[id]; ok {
		layerfx.Logger().Error("compositor: layer surface created twice", "surface", id)
	}
	s.unmapped[id] = struct{}{}

	l := layershell.NewLayerSurface(surface, namespace)
	if err := output.layers.MapLayer(l); err != nil {
		layerfx.Logger().Error("compositor: mapping layer surface", "surface", id, "err", err)
	}
	layerfx.Logger().Debug("compositor: new layer surface",
		"surface", id, "namespace", l.Namespace(), "layer", stacking, "output", output.name)
	return l
}

// LayerDestroyed handles the destruction of a layer surface. A mapped
// surface starts its close animation.
func (s *State) LayerDestroyed(surface layershell.Surface) {
	id := surface.ID()
	delete(s.unmapped, id)
	s.tree.Remove(id)
	if s.onDemandFocus != nil && s.onDemandFocus.ID() == id {
		s.onDemandFocus = nil
	}

	out, l := s.findLayer(id)
	if out == nil {
		if m, ok := s.mapped[id]; ok {
			layerfx.Logger().Error("compositor: mapped layer surface without output", "surface", id)
			m.Release()
			delete(s.mapped, id)
		}
		return
	}

	geo, hasGeo := out.layers.LayerGeometry(l)
	if m, ok := s.mapped[id]; ok {
		delete(s.mapped, id)
		if hasGeo {
			s.startCloseAnimation(out, l, geo, m)
		} else {
			m.Release()
		}
	}

	out.layers.UnmapLayer(l)
	s.OutputResized(out)
}

// NewPopup places a popup created for a layer surface.
func (s *State) NewPopup(parent *layershell.LayerSurface, popup *layershell.Popup) {
	out, l := s.findLayer(parent.ID())
	if out == nil {
		return
	}
	geo, ok := out.layers.LayerGeometry(l)
	if !ok {
		return
	}
	s.popups.Unconstrain(popup, geo, geom.Rect{Size: out.size})
}

// HandleCommit processes a commit on id, which may be a layer surface or
// one of its subsurfaces. It reports whether the commit belonged to a
// layer surface.
func (s *State) HandleCommit(id layershell.SurfaceID) bool {
	root := s.tree.Root(id)
	out, l := s.findLayer(root)
	if out == nil {
		return false
	}

	if id != root {
		// Unsynchronized subsurface commit.
		out.queueRedraw()
		return true
	}

	// Arrange first so the initial configure respects the client's size.
	out.layers.Arrange()

	surface := l.Surface()
	if surface.IsMapped() {
		s.handleMappedCommit(out, l)
	} else {
		s.handleUnmappedCommit(out, l)
	}

	s.OutputResized(out)
	return true
}

func (s *State) handleMappedCommit(out *Output, l *layershell.LayerSurface) {
	id := l.ID()
	m, wasMapped := s.mapped[id]

	// A fast remap supersedes its own close animation.
	s.closing = slices.DeleteFunc(s.closing, func(c *closingLayer) bool {
		return c.surface.ID() == id
	})

	if !wasMapped {
		if _, ok := s.unmapped[id]; !ok {
			layerfx.Logger().Error("compositor: mapping a layer surface that was not unmapped", "surface", id)
		}
		delete(s.unmapped, id)

		rules := layer.ComputeRules(s.config.LayerRules, l.Namespace(), s.atStartup)
		kind := layer.ResolveAnimationKind(l.CachedState())
		animCfg, program := kind.OpenAnim(&s.config.Animations)

		m = layer.NewMapped(l, rules, out.size, out.scale, s.clock, s.config)
		m.StartOpenAnimation(animCfg, program)
		s.mapped[id] = m

		layerfx.Logger().Debug("compositor: layer surface mapped",
			"surface", id, "namespace", l.Namespace(), "kind", kind)
	}

	if geo, ok := out.layers.LayerGeometry(l); ok {
		m.UpdateRenderElements(geo.Size)
	}

	// Keep a fresh snapshot so a null-buffer unmap still has contents to
	// animate.
	m.StoreUnmapSnapshot(s.renderer)

	if !wasMapped && l.CachedState().KeyboardInteractivity == layershell.KeyboardOnDemand {
		s.onDemandFocus = l
	}
}

func (s *State) handleUnmappedCommit(out *Output, l *layershell.LayerSurface) {
	id := l.ID()
	geo, hasGeo := out.layers.LayerGeometry(l)

	if m, ok := s.mapped[id]; ok {
		delete(s.mapped, id)
		if hasGeo {
			s.startCloseAnimation(out, l, geo, m)
		} else {
			m.Release()
		}
		// It has to go through the initial commit again.
		s.unmapped[id] = struct{}{}
		if s.onDemandFocus == l {
			s.onDemandFocus = nil
		}
		layerfx.Logger().Debug("compositor: layer surface unmapped", "surface", id)
		return
	}

	surface := l.Surface()
	if !surface.InitialConfigureSent() {
		surface.SendScaleTransform(out.scale, out.transform)
		surface.SendConfigure()
	}
	// Otherwise Arrange already sent a configure if one was needed.
}

func (s *State) startCloseAnimation(out *Output, l *layershell.LayerSurface, geo geom.Rect, m *layer.Mapped) {
	kind := layer.ResolveAnimationKind(l.CachedState())
	animCfg, program := kind.CloseAnim(&s.config.Animations)

	snap := m.TakeUnmapSnapshot()
	if snap == nil {
		m.StoreUnmapSnapshot(s.renderer)
		snap = m.TakeUnmapSnapshot()
	}
	if snap == nil {
		layerfx.Logger().Warn("compositor: error starting layer close animation: missing snapshot",
			"surface", l.ID())
		return
	}
	if snap.IsEmpty() {
		layerfx.Logger().Warn("compositor: error starting layer close animation: snapshot is empty",
			"surface", l.ID())
		return
	}

	a := anim.New(s.clock, 0, 1, 0, animCfg.Config())
	c, err := layer.NewClosing(s.renderer, snap, out.scale, geo, a, program)
	if err != nil {
		layerfx.Logger().Warn("compositor: error starting layer close animation",
			"surface", l.ID(), "err", err)
		return
	}

	s.closing = append(s.closing, &closingLayer{
		output:      out,
		surface:     l,
		layer:       l.Layer(),
		forBackdrop: m.PlaceWithinBackdrop(),
		animation:   c,
	})
	layerfx.Logger().Debug("compositor: layer close animation started",
		"surface", l.ID(), "kind", kind)
}
