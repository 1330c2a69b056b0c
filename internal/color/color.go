// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package color converts the float colors used in configuration and
// uniforms to 8-bit pixels.
package color

import "image/color"

// F32 is a straight-alpha RGBA color with components in [0, 1].
type F32 = [4]float32

// Unit8 converts v in [0, 1] to 0..255, clamping and rounding.
func Unit8(v float32) uint8 {
	return Scale8(v * 255)
}

// Scale8 rounds v, already in 0..255, clamping out-of-range values.
func Scale8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// NRGBA returns c with its alpha multiplied by alpha, as straight 8-bit.
func NRGBA(c F32, alpha float32) color.NRGBA {
	return color.NRGBA{R: Unit8(c[0]), G: Unit8(c[1]), B: Unit8(c[2]), A: Unit8(c[3] * alpha)}
}

// RGBA returns c with its alpha multiplied by coverage, premultiplied.
func RGBA(c F32, coverage float32) color.RGBA {
	a := c[3] * coverage
	return color.RGBA{R: Unit8(c[0] * a), G: Unit8(c[1] * a), B: Unit8(c[2] * a), A: Unit8(a)}
}
