// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geom provides the small amount of 2D geometry layer rendering needs:
// points, sizes and rectangles in logical or physical pixels, and rounding
// between the two.
//
// Values carry no unit in their type. By convention, positions handed to the
// layer package are logical and draw element geometry is physical.
package geom

import "math"

// Point represents a 2D point or offset.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// ToPhysicalRound converts a logical point to physical pixels, rounding to
// the nearest pixel.
func (p Point) ToPhysicalRound(scale float64) Point {
	return Point{X: math.Round(p.X * scale), Y: math.Round(p.Y * scale)}
}

// ToLogical converts a physical point to logical coordinates.
func (p Point) ToLogical(scale float64) Point {
	return Point{X: p.X / scale, Y: p.Y / scale}
}

// RoundInPhysical snaps a logical point to the physical pixel grid.
func (p Point) RoundInPhysical(scale float64) Point {
	return p.ToPhysicalRound(scale).ToLogical(scale)
}

// Size is a width and height.
type Size struct {
	W, H float64
}

// Sz is a convenience function to create a Size.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}

// IsEmpty reports whether either dimension is not positive.
func (s Size) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

// Mul returns the size scaled by a scalar.
func (s Size) Mul(f float64) Size {
	return Size{W: s.W * f, H: s.H * f}
}

// ToPhysicalRound converts a logical size to physical pixels.
func (s Size) ToPhysicalRound(scale float64) Size {
	return Size{W: math.Round(s.W * scale), H: math.Round(s.H * scale)}
}

// ToLogical converts a physical size to logical coordinates.
func (s Size) ToLogical(scale float64) Size {
	return Size{W: s.W / scale, H: s.H / scale}
}

// RoundInPhysical snaps a logical size to the physical pixel grid.
func (s Size) RoundInPhysical(scale float64) Size {
	return s.ToPhysicalRound(scale).ToLogical(scale)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Loc  Point
	Size Size
}

// R is a convenience function to create a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{Loc: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Loc.X + r.Size.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Loc.Y + r.Size.H }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Size.IsEmpty() }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Loc.X + r.Size.W/2, Y: r.Loc.Y + r.Size.H/2}
}

// Translate returns the rectangle moved by offset.
func (r Rect) Translate(offset Point) Rect {
	return Rect{Loc: r.Loc.Add(offset), Size: r.Size}
}

// Union returns the smallest rectangle containing both r and o. Empty
// rectangles do not contribute.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x0 := math.Min(r.Loc.X, o.Loc.X)
	y0 := math.Min(r.Loc.Y, o.Loc.Y)
	x1 := math.Max(r.Right(), o.Right())
	y1 := math.Max(r.Bottom(), o.Bottom())
	return R(x0, y0, x1-x0, y1-y0)
}

// ScaleAround scales the rectangle by f keeping its center fixed.
func (r Rect) ScaleAround(f float64) Rect {
	c := r.Center()
	size := r.Size.Mul(f)
	return Rect{Loc: Point{X: c.X - size.W/2, Y: c.Y - size.H/2}, Size: size}
}

// ToPhysicalRound converts a logical rectangle to physical pixels.
func (r Rect) ToPhysicalRound(scale float64) Rect {
	return Rect{Loc: r.Loc.ToPhysicalRound(scale), Size: r.Size.ToPhysicalRound(scale)}
}

// RoundLogicalInPhysical rounds a single logical coordinate to the physical
// pixel grid.
func RoundLogicalInPhysical(scale, v float64) float64 {
	return math.Round(v*scale) / scale
}

// CornerRadius holds per-corner radii in logical pixels.
type CornerRadius struct {
	TopLeft     float32 `toml:"top-left"`
	TopRight    float32 `toml:"top-right"`
	BottomRight float32 `toml:"bottom-right"`
	BottomLeft  float32 `toml:"bottom-left"`
}

// Uniform returns a radius with all four corners equal.
func Uniform(r float32) CornerRadius {
	return CornerRadius{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

// Array returns the radii in top-left, top-right, bottom-right, bottom-left
// order, the layout programs expect.
func (c CornerRadius) Array() [4]float32 {
	return [4]float32{c.TopLeft, c.TopRight, c.BottomRight, c.BottomLeft}
}

// ScaledBy returns the radii multiplied by f.
func (c CornerRadius) ScaledBy(f float32) CornerRadius {
	return CornerRadius{
		TopLeft:     c.TopLeft * f,
		TopRight:    c.TopRight * f,
		BottomRight: c.BottomRight * f,
		BottomLeft:  c.BottomLeft * f,
	}
}
