// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software implements render.Renderer on the CPU.
//
// It composites elements into *image.RGBA with golang.org/x/image/draw.
// Programs are not executed: a ShaderElement draws its Fallback element, or
// its input texture when no fallback is set. The renderer serves as the
// reference backend for tests and for the layerdemo command.
//
// Example:
//
//	ctx := render.NewContext(gputypes.TextureFormatRGBA8Unorm)
//	r := software.New(ctx)
//	frame := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
//	r.Draw(frame, elems)
package software
