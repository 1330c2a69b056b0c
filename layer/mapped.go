// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"math"
	"time"

	"github.com/gogpu/layerfx"
	"github.com/gogpu/layerfx/anim"
	"github.com/gogpu/layerfx/config"
	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/layershell"
	"github.com/gogpu/layerfx/render"
	"github.com/gogpu/layerfx/shader"
	"github.com/gogpu/layerfx/shadow"
)

// Mapped is the render state of a mapped layer surface.
type Mapped struct {
	surface *layershell.LayerSurface
	rules   ResolvedRules

	// Placeholder drawn instead of the contents on blocked-out targets.
	blockOut *render.SolidColorBuffer

	viewSize geom.Size
	scale    float64

	shadow *shadow.Shadow

	open      *OpenAnimation
	offscreen *render.OffscreenData
	snapshot  *render.Snapshot

	clock *anim.Clock
}

// NewMapped creates the render state for a surface that just mapped.
func NewMapped(
	surface *layershell.LayerSurface,
	rules ResolvedRules,
	viewSize geom.Size,
	scale float64,
	clock *anim.Clock,
	cfg *config.Config,
) *Mapped {
	return &Mapped{
		surface:  surface,
		rules:    rules,
		blockOut: render.NewSolidColorBuffer(geom.Size{}, [4]float32{0, 0, 0, 1}),
		viewSize: viewSize,
		scale:    scale,
		shadow:   shadow.New(shadowConfig(cfg, rules)),
		clock:    clock,
	}
}

// Layer surfaces only get a shadow when a rule turns it on.
func shadowConfig(cfg *config.Config, rules ResolvedRules) config.Shadow {
	sc := cfg.Layout.Shadow
	sc.On = false
	return sc.MergeWith(rules.Shadow)
}

// UpdateConfig re-derives the shadow settings from cfg.
func (m *Mapped) UpdateConfig(cfg *config.Config) {
	m.shadow.UpdateConfig(shadowConfig(cfg, m.rules))
}

// UpdateSizes records the output size and scale.
func (m *Mapped) UpdateSizes(viewSize geom.Size, scale float64) {
	m.viewSize = viewSize
	m.scale = scale
}

// UpdateRenderElements resizes the block-out placeholder and the shadow to
// the surface size (logical).
func (m *Mapped) UpdateRenderElements(size geom.Size) {
	size = size.RoundInPhysical(m.scale)
	m.blockOut.Resize(size)
	m.shadow.UpdateRenderElements(size, m.rules.CornerRadius(), m.scale, 1)
}

// StoreUnmapSnapshot captures the current contents for a later close
// animation, replacing the previous snapshot.
func (m *Mapped) StoreUnmapSnapshot(r render.Renderer) {
	var contents, blockedOut []render.Element
	m.renderInner(r, geom.Point{}, render.TargetOutput, func(e render.Element) {
		contents = append(contents, e)
	})
	m.renderInner(r, geom.Point{}, render.TargetScreencast, func(e render.Element) {
		blockedOut = append(blockedOut, e)
	})

	m.snapshot.Release()
	m.snapshot = &render.Snapshot{
		Contents:           contents,
		BlockedOutContents: blockedOut,
		BlockOutFrom:       m.rules.BlockOutFrom,
		Size:               m.surface.CachedState().Size,
		Scale:              m.scale,
	}
}

// TakeUnmapSnapshot returns the stored snapshot and forgets it.
func (m *Mapped) TakeUnmapSnapshot() *render.Snapshot {
	s := m.snapshot
	m.snapshot = nil
	return s
}

// Release drops resources held by the stored snapshot.
func (m *Mapped) Release() {
	m.snapshot.Release()
	m.snapshot = nil
}

// OffscreenData returns what the open animation rendered offscreen during
// the current frame, or nil.
func (m *Mapped) OffscreenData() *render.OffscreenData { return m.offscreen }

// AdvanceAnimations drops the open animation once it is done.
func (m *Mapped) AdvanceAnimations() {
	if m.open != nil && m.open.IsDone() {
		m.open = nil
	}
}

// StartOpenAnimation starts the open animation. It does nothing while one
// is already running.
func (m *Mapped) StartOpenAnimation(cfg config.Anim, program shader.ProgramType) {
	if m.open != nil {
		return
	}
	m.open = NewOpenAnimation(anim.New(m.clock, 0, 1, 0, cfg.Config()), program)
}

// ResetOpenAnimationState cancels the open animation.
func (m *Mapped) ResetOpenAnimationState() {
	m.open = nil
	m.offscreen = nil
}

// OpenAnimation returns the running open animation, or nil.
func (m *Mapped) OpenAnimation() *OpenAnimation { return m.open }

// AreAnimationsOngoing reports whether the surface needs more frames.
func (m *Mapped) AreAnimationsOngoing() bool {
	return m.rules.BabaIsFloat || (m.open != nil && !m.open.IsDone())
}

// Surface returns the layer surface.
func (m *Mapped) Surface() *layershell.LayerSurface { return m.surface }

// Rules returns the resolved rules.
func (m *Mapped) Rules() ResolvedRules { return m.rules }

// RecomputeLayerRules resolves rules again and reports whether the result
// changed.
func (m *Mapped) RecomputeLayerRules(rules []config.LayerRule, atStartup bool) bool {
	next := ComputeRules(rules, m.surface.Namespace(), atStartup)
	if next.Equal(m.rules) {
		return false
	}
	m.rules = next
	return true
}

// PlaceWithinBackdrop reports whether the surface is drawn inside the
// overview backdrop instead of on its layer.
func (m *Mapped) PlaceWithinBackdrop() bool {
	if !m.rules.PlaceWithinBackdrop {
		return false
	}
	st := m.surface.CachedState()
	return st.Layer == layershell.LayerBackground && st.ExclusiveZone.IsDontCare()
}

// BobOffset returns the floating offset, zero unless BabaIsFloat is set.
func (m *Mapped) BobOffset() geom.Point {
	if !m.rules.BabaIsFloat {
		return geom.Point{}
	}
	y := bobOffset(m.clock.Now(), m.viewSize.H)
	return geom.Pt(0, geom.RoundLogicalInPhysical(m.scale, y))
}

func bobOffset(now time.Duration, viewHeight float64) float64 {
	y := math.Sin(now.Seconds() / 3.6 * 2 * math.Pi)
	return viewHeight / 96 * (y - 1)
}

// RenderNormal pushes the elements of the surface at loc (logical), front
// to back. While the open animation runs, the contents are composited into
// one animated element.
//
// Pushed elements may hold program handles; release them with
// render.ReleaseAll after the frame.
func (m *Mapped) RenderNormal(r render.Renderer, loc geom.Point, target render.Target, push func(render.Element)) {
	alpha := m.rules.Alpha()
	loc = loc.Add(m.BobOffset())

	m.offscreen = nil

	if m.open != nil && !target.ShouldBlockOut(m.rules.BlockOutFrom) {
		if m.renderOpen(r, loc, alpha, push) {
			m.renderShadow(r, loc, push)
			return
		}
	}
	m.renderInner(r, loc, target, push)
}

func (m *Mapped) renderOpen(r render.Renderer, loc geom.Point, alpha float32, push func(render.Element)) bool {
	elems := render.SurfaceTreeElements(m.surface.Surface(), geom.Point{}, m.scale, 1, render.KindScanoutCandidate)
	if len(elems) == 0 {
		return false
	}

	geoSize := m.surface.CachedState().Size
	if geoSize.IsEmpty() {
		geoSize = render.EncompassingGeo(elems).Size.ToLogical(m.scale)
	}
	if geoSize.IsEmpty() {
		return false
	}

	elem, data, err := m.open.Render(r, elems, geoSize, loc, m.scale, alpha)
	if err != nil {
		layerfx.Logger().Warn("layer: error rendering open animation",
			"namespace", m.surface.Namespace(), "err", err)
		return false
	}
	m.offscreen = m.offscreen.Merge(data)
	push(elem)
	return true
}

func (m *Mapped) renderInner(r render.Renderer, loc geom.Point, target render.Target, push func(render.Element)) {
	alpha := m.rules.Alpha()
	if target.ShouldBlockOut(m.rules.BlockOutFrom) {
		push(m.blockOut.Element(loc.ToPhysicalRound(m.scale), m.scale, alpha, render.KindUnspecified))
	} else {
		render.PushSurfaceTree(m.surface.Surface(), loc.ToPhysicalRound(m.scale), m.scale, alpha,
			render.KindScanoutCandidate, push)
	}
	m.renderShadow(r, loc, push)
}

func (m *Mapped) renderShadow(r render.Renderer, loc geom.Point, push func(render.Element)) {
	m.shadow.Render(r, loc.RoundInPhysical(m.scale), push)
}

// RenderPopups pushes the popups of the surface at loc (logical). Nothing
// is drawn on targets the surface is blocked out from.
func (m *Mapped) RenderPopups(loc geom.Point, target render.Target, push func(render.Element)) {
	if target.ShouldBlockOut(m.rules.BlockOutFrom) {
		return
	}
	alpha := m.rules.Alpha()
	loc = loc.Add(m.BobOffset())
	for _, p := range m.surface.Surface().Popups() {
		render.PushSurfaceTree(p.Surface, loc.Add(p.Offset).ToPhysicalRound(m.scale), m.scale, alpha,
			render.KindScanoutCandidate, push)
	}
}
