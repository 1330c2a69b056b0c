// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	_ "embed"
	"strings"
)

//go:embed shaders/common_vertex.wgsl
var commonVertexSource string

//go:embed shaders/border.wgsl
var borderShaderSource string

//go:embed shaders/shadow.wgsl
var shadowShaderSource string

//go:embed shaders/clipped_surface.wgsl
var clippedSurfaceShaderSource string

//go:embed shaders/gradient_fade.wgsl
var gradientFadeShaderSource string

//go:embed shaders/resize.wgsl
var resizeShaderSource string

//go:embed shaders/open.wgsl
var openShaderSource string

//go:embed shaders/close.wgsl
var closeShaderSource string

//go:embed shaders/resize_prelude.wgsl
var resizePrelude string

//go:embed shaders/resize_epilogue.wgsl
var resizeEpilogue string

//go:embed shaders/open_prelude.wgsl
var openPrelude string

//go:embed shaders/open_epilogue.wgsl
var openEpilogue string

//go:embed shaders/close_prelude.wgsl
var closePrelude string

//go:embed shaders/close_epilogue.wgsl
var closeEpilogue string

//go:embed shaders/color_filter_prelude.wgsl
var colorFilterPrelude string

//go:embed shaders/color_filter_epilogue.wgsl
var colorFilterEpilogue string

// Wrap returns the complete program source for a user function of the
// given purpose. Fixed purposes are returned with the vertex stage only.
func Wrap(t ProgramType, src string) string {
	return wrap(t.family(), src)
}

// WrapColorFilter returns the complete program source for a color filter.
func WrapColorFilter(src string) string {
	return wrap(familyColorFilter, src)
}

func wrap(f family, src string) string {
	var prelude, epilogue string
	switch f {
	case familyResize:
		prelude, epilogue = resizePrelude, resizeEpilogue
	case familyOpen:
		prelude, epilogue = openPrelude, openEpilogue
	case familyClose:
		prelude, epilogue = closePrelude, closeEpilogue
	case familyColorFilter:
		prelude, epilogue = colorFilterPrelude, colorFilterEpilogue
	}

	var b strings.Builder
	b.Grow(len(commonVertexSource) + len(prelude) + len(src) + len(epilogue) + 2)
	b.WriteString(commonVertexSource)
	b.WriteByte('\n')
	b.WriteString(prelude)
	b.WriteString(src)
	b.WriteByte('\n')
	b.WriteString(epilogue)
	return b.String()
}
