// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/layerfx/geom"
	pixcolor "github.com/gogpu/layerfx/internal/color"
	"github.com/gogpu/layerfx/render"
)

// ErrEmptyTarget is returned when rendering into a zero-sized texture.
var ErrEmptyTarget = errors.New("software: empty render target")

// Renderer is a CPU compositor.
//
// Renderer is NOT thread-safe.
type Renderer struct {
	ctx    *render.Context
	scaler draw.Scaler
}

// New creates a renderer drawing for ctx.
func New(ctx *render.Context) *Renderer {
	return &Renderer{ctx: ctx, scaler: draw.ApproxBiLinear}
}

// Context implements render.Renderer.
func (r *Renderer) Context() *render.Context { return r.ctx }

// RenderToTexture implements render.Renderer.
func (r *Renderer) RenderToTexture(elems []render.Element, size image.Point, _ float64) (render.Texture, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrEmptyTarget, size)
	}
	img := image.NewRGBA(image.Rectangle{Max: size})
	if err := r.Draw(img, elems); err != nil {
		return nil, err
	}
	return render.NewImageTexture(img), nil
}

// Draw composites elems over dst. The first element ends up on top.
func (r *Renderer) Draw(dst *image.RGBA, elems []render.Element) error {
	for i := len(elems) - 1; i >= 0; i-- {
		if err := r.drawElement(dst, elems[i], 1); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawElement(dst *image.RGBA, e render.Element, alpha float32) error {
	switch e := e.(type) {
	case *render.SurfaceElement:
		r.drawImage(dst, e.Image, e.Dst, alpha*e.Alpha)
	case *render.TextureElement:
		img, err := textureImage(e.Texture)
		if err != nil {
			return err
		}
		r.drawImage(dst, img, e.Dst, alpha*e.Alpha)
	case *render.SolidColorElement:
		fillRect(dst, e.Dst, e.Color, alpha*e.Alpha)
	case *render.ShaderElement:
		if e.Fallback != nil {
			return r.drawElement(dst, e.Fallback, alpha*e.Alpha)
		}
		if e.Texture == nil {
			return nil
		}
		img, err := textureImage(e.Texture)
		if err != nil {
			return err
		}
		r.drawImage(dst, img, e.Dst, alpha*e.Alpha)
	default:
		return fmt.Errorf("software: unsupported element %T", e)
	}
	return nil
}

func textureImage(t render.Texture) (image.Image, error) {
	tex, ok := t.(*render.ImageTexture)
	if !ok || tex == nil {
		return nil, fmt.Errorf("software: unsupported texture %T", t)
	}
	return tex.Img, nil
}

// pixelRect rounds a physical rectangle to whole pixels.
func pixelRect(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.Loc.X)), int(math.Round(r.Loc.Y)),
		int(math.Round(r.Right())), int(math.Round(r.Bottom())),
	)
}

func alphaMask(alpha float32) image.Image {
	a := math.Max(0, math.Min(1, float64(alpha)))
	return image.NewUniform(color.Alpha16{A: uint16(a * 0xffff)})
}

func (r *Renderer) drawImage(dst *image.RGBA, src image.Image, rect geom.Rect, alpha float32) {
	dr := pixelRect(rect)
	if dr.Empty() || alpha <= 0 || src == nil || src.Bounds().Empty() {
		return
	}
	if !dr.Overlaps(dst.Bounds()) {
		return
	}

	// Scale first, then blend with the alpha mask.
	scaled := image.NewRGBA(image.Rectangle{Max: dr.Size()})
	r.scaler.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)
	draw.DrawMask(dst, dr, scaled, image.Point{}, alphaMask(alpha), image.Point{}, draw.Over)
}

func fillRect(dst *image.RGBA, rect geom.Rect, c [4]float32, alpha float32) {
	dr := pixelRect(rect)
	a := c[3] * alpha
	if dr.Empty() || a <= 0 {
		return
	}
	src := image.NewUniform(pixcolor.NRGBA(c, alpha))
	draw.Draw(dst, dr, src, image.Point{}, draw.Over)
}

var _ render.Renderer = (*Renderer)(nil)
