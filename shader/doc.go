// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader holds the GPU programs used to draw layer-surface effects.
//
// A Registry compiles the built-in programs once per rendering context and
// keeps user overrides per animation purpose. Program resolution follows a
// fallback chain:
//
//	kind-specific override -> generic layer override -> built-in -> nil
//
// A nil result means the caller draws without a program (plain alpha fade).
//
// # Ownership
//
// The registry owns every compiled program. Callers receive reference
// counted handles from Registry.Program and must Release them when done:
//
//	prog := reg.Program(shader.LayerBarOpen)
//	if prog != nil {
//	    defer prog.Release()
//	    // draw with prog.Module()
//	}
//
// Replacing an override releases the registry's handle to the old program.
// The underlying module is destroyed once the last holder releases, so a
// frame in flight keeps drawing with the handle it already cloned.
//
// # Custom sources
//
// Override sources define a single function that is wrapped with a fixed
// prelude (uniforms, textures, sampler) and epilogue (fragment entry point):
//
//	fn open_color(coords_geo: vec3<f32>, size_geo: vec3<f32>) -> vec4<f32>
//	fn close_color(coords_geo: vec3<f32>, size_geo: vec3<f32>) -> vec4<f32>
//	fn resize_color(coords_curr_geo: vec3<f32>, size_curr_geo: vec3<f32>) -> vec4<f32>
//	fn color_filter(color: vec4<f32>) -> vec4<f32>
package shader
