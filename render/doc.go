// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the rendering contracts layer surfaces are drawn
// through.
//
// A Context represents one GPU rendering context and owns its shader
// registry. A Renderer produces draw Elements and composites element lists
// into offscreen textures. Elements are ordered front to back: the first
// element of a list is drawn on top.
//
// # Key Principle
//
// The package RECEIVES a GPU device from the host compositor, it does NOT
// create one. NewContextFromDevice takes the shared device handle and only
// reads the surface format from it; shader compilation goes through the
// shader.Compiler the host passes to InitShaders.
//
// # Shader Initialization
//
// InitShaders must be called once, right after the context is created and
// before the first frame:
//
//	ctx := render.NewContextFromDevice(handle)
//	ctx.InitShaders(shader.NewNagaCompiler(halDevice))
//
//	reg, err := ctx.Shaders()
//	if err != nil {
//	    // programming error: InitShaders was never called
//	}
//
// In builds with the layerfxdebug tag, Shaders panics instead of returning
// ErrShadersNotInitialized.
//
// # Capture Targets
//
// Each frame is rendered for a Target. Surfaces with a block-out policy are
// replaced by a solid placeholder on the capture targets the policy names.
package render
