// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"sync/atomic"

	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/shader"
)

// ElementID identifies a draw element across frames.
type ElementID uint64

var elementIDs atomic.Uint64

// NewElementID returns a process-unique element ID.
func NewElementID() ElementID {
	return ElementID(elementIDs.Add(1))
}

// Kind hints how an element may be presented.
type Kind uint8

const (
	KindUnspecified Kind = iota
	// KindScanoutCandidate marks elements that could go to a hardware plane.
	KindScanoutCandidate
)

// Element is one draw primitive. Geometry is in physical pixels.
type Element interface {
	ID() ElementID
	Geometry() geom.Rect
}

// SurfaceElement draws a client buffer.
type SurfaceElement struct {
	id    ElementID
	Image image.Image
	Dst   geom.Rect
	Alpha float32
	Kind  Kind
}

// NewSurfaceElement creates an element drawing img into dst.
func NewSurfaceElement(img image.Image, dst geom.Rect, alpha float32, kind Kind) *SurfaceElement {
	return &SurfaceElement{id: NewElementID(), Image: img, Dst: dst, Alpha: alpha, Kind: kind}
}

func (e *SurfaceElement) ID() ElementID       { return e.id }
func (e *SurfaceElement) Geometry() geom.Rect { return e.Dst }

// SolidColorElement fills a rectangle with a straight-alpha color.
type SolidColorElement struct {
	id    ElementID
	Dst   geom.Rect
	Color [4]float32
	Alpha float32
	Kind  Kind
}

func (e *SolidColorElement) ID() ElementID       { return e.id }
func (e *SolidColorElement) Geometry() geom.Rect { return e.Dst }

// TextureElement draws an offscreen texture scaled into Dst.
type TextureElement struct {
	id      ElementID
	Texture Texture
	Dst     geom.Rect
	Alpha   float32
	Kind    Kind
}

// NewTextureElement creates an element drawing tex into dst.
func NewTextureElement(tex Texture, dst geom.Rect, alpha float32, kind Kind) *TextureElement {
	return &TextureElement{id: NewElementID(), Texture: tex, Dst: dst, Alpha: alpha, Kind: kind}
}

func (e *TextureElement) ID() ElementID       { return e.id }
func (e *TextureElement) Geometry() geom.Rect { return e.Dst }

// ShaderElement draws Dst with a program.
//
// Texture is the program's input, if it samples one. Renderers that cannot
// run programs draw Fallback instead, or Texture when Fallback is nil.
type ShaderElement struct {
	id       ElementID
	Program  *shader.Program
	Uniforms []shader.Uniform
	Texture  Texture
	Dst      geom.Rect
	Alpha    float32
	Fallback Element
}

// NewShaderElement creates an element owning prog. The element must be
// released after the frame it was drawn in.
func NewShaderElement(prog *shader.Program, uniforms []shader.Uniform, tex Texture, dst geom.Rect, alpha float32) *ShaderElement {
	return &ShaderElement{
		id:       NewElementID(),
		Program:  prog,
		Uniforms: uniforms,
		Texture:  tex,
		Dst:      dst,
		Alpha:    alpha,
	}
}

func (e *ShaderElement) ID() ElementID       { return e.id }
func (e *ShaderElement) Geometry() geom.Rect { return e.Dst }

// Release drops the element's program handle.
func (e *ShaderElement) Release() {
	e.Program.Release()
	e.Program = nil
}

// Releaser is implemented by elements holding GPU resources.
type Releaser interface {
	Release()
}

// ReleaseAll releases every element that holds resources.
func ReleaseAll(elems []Element) {
	for _, e := range elems {
		if r, ok := e.(Releaser); ok {
			r.Release()
		}
	}
}

// EncompassingGeo returns the union of the element geometries.
func EncompassingGeo(elems []Element) geom.Rect {
	var out geom.Rect
	for i, e := range elems {
		if i == 0 {
			out = e.Geometry()
			continue
		}
		out = out.Union(e.Geometry())
	}
	return out
}
