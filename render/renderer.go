// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "image"

// Texture is an offscreen render result.
type Texture interface {
	// Size returns the texture size in physical pixels.
	Size() image.Point
}

// Renderer composites element lists.
//
// Renderers are NOT thread-safe. Each renderer should be used from the
// goroutine that owns its Context.
type Renderer interface {
	// Context returns the rendering context the renderer draws with.
	Context() *Context

	// RenderToTexture composites elems, front to back, into a new texture
	// of the given physical size. Element geometry is relative to the
	// texture origin.
	RenderToTexture(elems []Element, size image.Point, scale float64) (Texture, error)
}

// ImageTexture is a CPU-backed texture.
type ImageTexture struct {
	Img *image.RGBA
}

// NewImageTexture wraps img.
func NewImageTexture(img *image.RGBA) *ImageTexture {
	return &ImageTexture{Img: img}
}

// Size returns the image size.
func (t *ImageTexture) Size() image.Point { return t.Img.Bounds().Size() }
