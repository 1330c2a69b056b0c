// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"
	"math"

	pixcolor "github.com/gogpu/layerfx/internal/color"
)

// BoxShadow describes a blurred rounded-rectangle shadow.
type BoxShadow struct {
	// Size of the shadow-casting box in pixels.
	Size image.Point
	// Radius per corner: top-left, top-right, bottom-right, bottom-left.
	Radius [4]float32
	// Sigma is the blur standard deviation in pixels.
	Sigma float64
	// Color is straight-alpha RGBA in [0, 1].
	Color [4]float32
	// Cutout, when not empty, is cleared after blurring. It is given in box
	// coordinates and hides the shadow behind the casting window.
	Cutout image.Rectangle
}

// Pad returns how far the blurred shadow extends past the box on each side.
func (s BoxShadow) Pad() int {
	return KernelHalfSize(s.Sigma)
}

// Render rasterizes the shadow into a premultiplied image. The box occupies
// [Pad, Pad+Size) in the result.
func (s BoxShadow) Render() *image.RGBA {
	if s.Size.X <= 0 || s.Size.Y <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	pad := s.Pad()
	w, h := s.Size.X+2*pad, s.Size.Y+2*pad

	mask := make([]float32, w*h)
	for y := range s.Size.Y {
		for x := range s.Size.X {
			mask[(y+pad)*w+x+pad] = float32(roundedCoverage(float64(x)+0.5, float64(y)+0.5, s.Size, s.Radius))
		}
	}
	blurAlpha(mask, w, h, s.Sigma)

	if !s.Cutout.Empty() {
		cut := s.Cutout.Add(image.Pt(pad, pad)).Intersect(image.Rect(0, 0, w, h))
		for y := cut.Min.Y; y < cut.Max.Y; y++ {
			for x := cut.Min.X; x < cut.Max.X; x++ {
				mask[y*w+x] = 0
			}
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, m := range mask {
		if m <= 0 {
			continue
		}
		c := pixcolor.RGBA(s.Color, m)
		px := img.Pix[i*4 : i*4+4 : i*4+4]
		px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
	}
	return img
}

// roundedCoverage returns 1 inside the rounded box and 0 outside, with a
// one-pixel antialiased edge at the corners.
func roundedCoverage(x, y float64, size image.Point, radius [4]float32) float64 {
	w, h := float64(size.X), float64(size.Y)
	var cx, cy, r float64
	switch {
	case x < float64(radius[0]) && y < float64(radius[0]):
		r = float64(radius[0])
		cx, cy = r, r
	case x > w-float64(radius[1]) && y < float64(radius[1]):
		r = float64(radius[1])
		cx, cy = w-r, r
	case x > w-float64(radius[2]) && y > h-float64(radius[2]):
		r = float64(radius[2])
		cx, cy = w-r, h-r
	case x < float64(radius[3]) && y > h-float64(radius[3]):
		r = float64(radius[3])
		cx, cy = r, h-r
	default:
		return 1
	}
	d := math.Hypot(x-cx, y-cy)
	return math.Max(0, math.Min(1, r-d+0.5))
}
