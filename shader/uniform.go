// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/layerfx/geom"
)

// UniformType is the WGSL type of a uniform member.
type UniformType uint8

const (
	Float1 UniformType = iota // f32
	Float2                    // vec2<f32>
	Float4                    // vec4<f32>
	Matrix3                   // mat3x3<f32>
)

// Uniform is one member of a program's uniform struct.
type Uniform struct {
	Name  string
	Type  UniformType
	Value [9]float32
}

// F1 builds an f32 uniform.
func F1(name string, v float32) Uniform {
	return Uniform{Name: name, Type: Float1, Value: [9]float32{v}}
}

// F2 builds a vec2<f32> uniform.
func F2(name string, x, y float32) Uniform {
	return Uniform{Name: name, Type: Float2, Value: [9]float32{x, y}}
}

// F4 builds a vec4<f32> uniform.
func F4(name string, v [4]float32) Uniform {
	return Uniform{Name: name, Type: Float4, Value: [9]float32{v[0], v[1], v[2], v[3]}}
}

// Mat3 builds a mat3x3<f32> uniform.
func Mat3(name string, m geom.Mat3) Uniform {
	return Uniform{Name: name, Type: Matrix3, Value: m}
}

// alignment and size in 32-bit words under WGSL uniform address space rules.
func (t UniformType) layout() (align, size int) {
	switch t {
	case Float2:
		return 2, 2
	case Float4:
		return 4, 4
	case Matrix3:
		return 4, 12
	default:
		return 1, 1
	}
}

// Pack lays the uniforms out in declaration order as a WGSL uniform struct.
// The result length is a multiple of four words.
func Pack(uniforms []Uniform) []float32 {
	var out []float32
	for _, u := range uniforms {
		align, size := u.Type.layout()
		for len(out)%align != 0 {
			out = append(out, 0)
		}
		if u.Type == Matrix3 {
			for col := range 3 {
				out = append(out, u.Value[col*3], u.Value[col*3+1], u.Value[col*3+2], 0)
			}
			continue
		}
		out = append(out, u.Value[:size]...)
	}
	for len(out)%4 != 0 {
		out = append(out, 0)
	}
	return out
}

// Clamp01 clamps progress to [0, 1].
func Clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

// RandomSeed derives a stable per-animation seed in [0, 1) from id.
func RandomSeed(id uint64) float32 {
	return math32.Mod(float32(id%4096)*0.6180339887, 1)
}

// AnimationUniforms returns the uniforms of the open and close programs.
func AnimationUniforms(inputToGeo, geoToTex geom.Mat3, geoSize geom.Size, progress, seed, alpha float32) []Uniform {
	return []Uniform{
		Mat3("input_to_geo", inputToGeo),
		Mat3("geo_to_tex", geoToTex),
		F2("geo_size", float32(geoSize.W), float32(geoSize.H)),
		F1("progress", progress),
		F1("clamped_progress", Clamp01(progress)),
		F1("random_seed", seed),
		F1("alpha", alpha),
	}
}

// ShadowUniforms returns the uniforms of the shadow program.
func ShadowUniforms(inputToGeo, windowInputToGeo geom.Mat3, color, radius, windowRadius [4]float32,
	geoSize, windowGeoSize geom.Size, sigma, alpha float32,
) []Uniform {
	return []Uniform{
		Mat3("input_to_geo", inputToGeo),
		Mat3("window_input_to_geo", windowInputToGeo),
		F4("shadow_color", color),
		F4("corner_radius", radius),
		F4("window_corner_radius", windowRadius),
		F2("geo_size", float32(geoSize.W), float32(geoSize.H)),
		F2("window_geo_size", float32(windowGeoSize.W), float32(windowGeoSize.H)),
		F1("sigma", sigma),
		F1("alpha", alpha),
	}
}

// ColorFilterUniforms returns the uniforms of a color-filter program.
func ColorFilterUniforms(alpha float32) []Uniform {
	return []Uniform{F1("alpha", alpha)}
}
