// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/layerfx/geom"
)

// Buffer is one committed client buffer of a surface tree.
// Committed images are treated as immutable.
type Buffer struct {
	Image image.Image
	// Loc is the buffer offset from the surface origin, in logical pixels.
	Loc geom.Point
	// Size is the buffer size in logical pixels.
	Size geom.Size
}

// Surface is a tree of committed client buffers, front to back.
type Surface interface {
	Contents() []Buffer
}

// PushSurfaceTree pushes an element for every buffer of s placed at loc
// (physical pixels). Empty buffers are skipped.
func PushSurfaceTree(s Surface, loc geom.Point, scale float64, alpha float32, kind Kind, push func(Element)) {
	for _, b := range s.Contents() {
		if b.Image == nil || b.Size.IsEmpty() {
			continue
		}
		dst := geom.Rect{
			Loc:  loc.Add(b.Loc.ToPhysicalRound(scale)),
			Size: b.Size.ToPhysicalRound(scale),
		}
		push(NewSurfaceElement(b.Image, dst, alpha, kind))
	}
}

// SurfaceTreeElements collects the elements PushSurfaceTree pushes.
func SurfaceTreeElements(s Surface, loc geom.Point, scale float64, alpha float32, kind Kind) []Element {
	var out []Element
	PushSurfaceTree(s, loc, scale, alpha, kind, func(e Element) { out = append(out, e) })
	return out
}

// SolidColorBuffer is a resizable solid color fill, kept across frames so
// its element keeps a stable ID.
type SolidColorBuffer struct {
	id    ElementID
	size  geom.Size
	color [4]float32
}

// NewSolidColorBuffer creates a buffer of the given logical size.
func NewSolidColorBuffer(size geom.Size, color [4]float32) *SolidColorBuffer {
	return &SolidColorBuffer{id: NewElementID(), size: size, color: color}
}

// Resize changes the logical size.
func (b *SolidColorBuffer) Resize(size geom.Size) { b.size = size }

// SetColor changes the fill color.
func (b *SolidColorBuffer) SetColor(color [4]float32) { b.color = color }

// Size returns the logical size.
func (b *SolidColorBuffer) Size() geom.Size { return b.size }

// Color returns the fill color.
func (b *SolidColorBuffer) Color() [4]float32 { return b.color }

// Element returns the buffer drawn at loc (physical pixels).
func (b *SolidColorBuffer) Element(loc geom.Point, scale float64, alpha float32, kind Kind) *SolidColorElement {
	return &SolidColorElement{
		id:    b.id,
		Dst:   geom.Rect{Loc: loc, Size: b.size.ToPhysicalRound(scale)},
		Color: b.color,
		Alpha: alpha,
		Kind:  kind,
	}
}

// NewSolidColorElement creates a one-off solid fill.
func NewSolidColorElement(dst geom.Rect, color [4]float32, alpha float32) *SolidColorElement {
	return &SolidColorElement{id: NewElementID(), Dst: dst, Color: color, Alpha: alpha}
}
