// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shadow draws drop shadows around surfaces.
package shadow

import (
	"image"
	"math"

	"github.com/gogpu/layerfx/config"
	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/internal/filter"
	"github.com/gogpu/layerfx/render"
	"github.com/gogpu/layerfx/shader"
)

// Shadow is the shadow sub-element of a surface.
type Shadow struct {
	config config.Shadow

	size   geom.Size
	radius geom.CornerRadius
	scale  float64
	alpha  float32

	// CPU rendition, rebuilt when its parameters change.
	cached    *render.ImageTexture
	cachedFor filter.BoxShadow
}

// New creates a shadow with cfg.
func New(cfg config.Shadow) *Shadow {
	return &Shadow{config: cfg, scale: 1, alpha: 1}
}

// Config returns the current config.
func (s *Shadow) Config() config.Shadow { return s.config }

// UpdateConfig replaces the config.
func (s *Shadow) UpdateConfig(cfg config.Shadow) {
	s.config = cfg
}

// UpdateRenderElements sets the geometry of the casting surface. size is
// logical and already rounded to physical pixels.
func (s *Shadow) UpdateRenderElements(size geom.Size, radius geom.CornerRadius, scale float64, alpha float32) {
	s.size = size
	s.radius = radius
	s.scale = scale
	s.alpha = alpha
}

// boxShadow returns the physical-pixel shadow description and the physical
// location of the shadow box relative to the surface location.
func (s *Shadow) boxShadow() (filter.BoxShadow, geom.Point) {
	spread := s.config.Spread
	box := geom.Rect{
		Loc:  geom.Pt(s.config.Offset.X-spread, s.config.Offset.Y-spread),
		Size: geom.Sz(s.size.W+2*spread, s.size.H+2*spread),
	}.ToPhysicalRound(s.scale)

	sp := float32(spread)
	radius := geom.CornerRadius{
		TopLeft:     max(s.radius.TopLeft+sp, 0),
		TopRight:    max(s.radius.TopRight+sp, 0),
		BottomRight: max(s.radius.BottomRight+sp, 0),
		BottomLeft:  max(s.radius.BottomLeft+sp, 0),
	}.ScaledBy(float32(s.scale))

	bs := filter.BoxShadow{
		Size:   image.Pt(int(box.Size.W), int(box.Size.H)),
		Radius: radius.Array(),
		Sigma:  s.config.Softness / 2 * s.scale,
		Color:  s.config.Color,
	}
	if !s.config.DrawBehindWindow {
		win := geom.Rect{Size: s.size}.ToPhysicalRound(s.scale)
		bs.Cutout = image.Rect(
			int(win.Loc.X-box.Loc.X), int(win.Loc.Y-box.Loc.Y),
			int(win.Right()-box.Loc.X), int(win.Bottom()-box.Loc.Y),
		)
	}
	return bs, box.Loc
}

func (s *Shadow) texture(bs filter.BoxShadow) *render.ImageTexture {
	if s.cached == nil || s.cachedFor != bs {
		s.cached = render.NewImageTexture(bs.Render())
		s.cachedFor = bs
	}
	return s.cached
}

// Render pushes the shadow for a surface at loc (logical). Nothing is
// pushed when the shadow is off or the surface is empty.
//
// The pushed element may hold a program handle; release it with
// render.ReleaseAll after the frame.
func (s *Shadow) Render(r render.Renderer, loc geom.Point, push func(render.Element)) {
	if !s.config.On || s.size.IsEmpty() {
		return
	}

	bs, boxLoc := s.boxShadow()
	if bs.Size.X <= 0 || bs.Size.Y <= 0 {
		return
	}
	pad := float64(bs.Pad())
	origin := loc.ToPhysicalRound(s.scale).Add(boxLoc)
	dst := geom.Rect{
		Loc:  geom.Pt(origin.X-pad, origin.Y-pad),
		Size: geom.Sz(float64(bs.Size.X)+2*pad, float64(bs.Size.Y)+2*pad),
	}

	fallback := render.NewTextureElement(s.texture(bs), dst, s.alpha, render.KindUnspecified)
	prog := r.Context().Program(shader.Shadow)
	if prog == nil {
		push(fallback)
		return
	}

	boxSize := geom.Sz(float64(bs.Size.X), float64(bs.Size.Y))
	unit := geom.R(0, 0, 1, 1)
	inputToGeo := geom.RectToRect(unit, geom.R(-pad, -pad, dst.Size.W, dst.Size.H))
	windowInputToGeo := geom.RectToRect(unit, geom.R(boxLoc.X-pad, boxLoc.Y-pad, dst.Size.W, dst.Size.H))
	winSize := s.size.ToPhysicalRound(s.scale)
	if s.config.DrawBehindWindow {
		winSize = geom.Size{}
	}

	radius := s.radius.ScaledBy(float32(s.scale)).Array()
	uniforms := shader.ShadowUniforms(inputToGeo, windowInputToGeo,
		s.config.Color, bs.Radius, radius, boxSize, winSize,
		float32(bs.Sigma), s.alpha)

	elem := render.NewShaderElement(prog, uniforms, nil, dst, s.alpha)
	elem.Fallback = fallback
	push(elem)
}

// Extents returns how far the shadow reaches past the surface on each side,
// in logical pixels: left, top, right, bottom.
func (s *Shadow) Extents() (left, top, right, bottom float64) {
	if !s.config.On {
		return 0, 0, 0, 0
	}
	reach := s.config.Spread + math.Ceil(s.config.Softness/2*3)
	off := s.config.Offset
	return max(reach-off.X, 0), max(reach-off.Y, 0), max(reach+off.X, 0), max(reach+off.Y, 0)
}
