// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"image"

	"github.com/gogpu/layerfx/anim"
	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/render"
	"github.com/gogpu/layerfx/shader"
)

// OpenAnimation plays the open transition of a freshly mapped surface.
type OpenAnimation struct {
	anim    *anim.Animation
	program shader.ProgramType
	seed    float32
}

// NewOpenAnimation creates an open animation driven by a 0 to 1 animation.
func NewOpenAnimation(a *anim.Animation, program shader.ProgramType) *OpenAnimation {
	return &OpenAnimation{
		anim:    a,
		program: program,
		seed:    shader.RandomSeed(uint64(render.NewElementID())),
	}
}

// IsDone reports whether the animation finished.
func (o *OpenAnimation) IsDone() bool { return o.anim.IsDone() }

// Program returns the program purpose the animation draws with.
func (o *OpenAnimation) Program() shader.ProgramType { return o.program }

// Render composites elems into an offscreen texture and returns a single
// element drawing it at loc (logical) with the animation applied.
// elems are positioned relative to the surface origin in physical pixels.
func (o *OpenAnimation) Render(
	r render.Renderer,
	elems []render.Element,
	geoSize geom.Size,
	loc geom.Point,
	scale float64,
	alpha float32,
) (render.Element, *render.OffscreenData, error) {
	size := geoSize.ToPhysicalRound(scale)
	tex, err := r.RenderToTexture(elems, image.Pt(int(size.W), int(size.H)), scale)
	if err != nil {
		return nil, nil, err
	}

	progress := float32(o.anim.Value())
	dst := geom.Rect{Loc: loc.ToPhysicalRound(scale), Size: size}
	elem := animatedElement(r, o.program, tex, dst, progress, o.seed, alpha, openFallback)

	data := &render.OffscreenData{ID: elem.ID()}
	for _, e := range elems {
		data.Elements = append(data.Elements, e.ID())
	}
	return elem, data, nil
}

// openFallback grows from half size while fading in.
func openFallback(tex render.Texture, dst geom.Rect, progress, alpha float32) render.Element {
	p := shader.Clamp01(progress)
	return render.NewTextureElement(tex, dst.ScaleAround(0.5+float64(p)/2), alpha*p, render.KindUnspecified)
}

// closeFallback fades out in place.
func closeFallback(tex render.Texture, dst geom.Rect, progress, alpha float32) render.Element {
	return render.NewTextureElement(tex, dst, alpha*(1-shader.Clamp01(progress)), render.KindUnspecified)
}

type fallbackFunc func(tex render.Texture, dst geom.Rect, progress, alpha float32) render.Element

// animatedElement draws tex at dst through the program for t, or through
// fallback when the context has no such program.
func animatedElement(
	r render.Renderer,
	t shader.ProgramType,
	tex render.Texture,
	dst geom.Rect,
	progress, seed, alpha float32,
	fallback fallbackFunc,
) render.Element {
	fb := fallback(tex, dst, progress, alpha)
	prog := r.Context().Program(t)
	if prog == nil {
		return fb
	}

	unit := geom.R(0, 0, 1, 1)
	geo := geom.Rect{Size: dst.Size}
	uniforms := shader.AnimationUniforms(
		geom.RectToRect(unit, geo),
		geom.RectToRect(geo, unit),
		dst.Size, progress, seed, alpha,
	)
	elem := render.NewShaderElement(prog, uniforms, tex, dst, alpha)
	elem.Fallback = fb
	return elem
}
