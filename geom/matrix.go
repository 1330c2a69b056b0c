// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

// Mat3 is a 3x3 matrix in column-major order, the layout a WGSL mat3x3<f32>
// uniform expects. It is used for 2D homogeneous transforms:
//
//	| m[0] m[3] m[6] |
//	| m[1] m[4] m[7] |
//	| m[2] m[5] m[8] |
type Mat3 [9]float32

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float32) Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		x, y, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float32) Mat3 {
	return Mat3{
		x, 0, 0,
		0, y, 0,
		0, 0, 1,
	}
}

// Mul multiplies two matrices (m * o).
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for col := range 3 {
		for row := range 3 {
			var sum float32
			for k := range 3 {
				sum += m[k*3+row] * o[col*3+k]
			}
			r[col*3+row] = sum
		}
	}
	return r
}

// TransformPoint applies the transform to a point.
func (m Mat3) TransformPoint(x, y float32) (float32, float32) {
	return m[0]*x + m[3]*y + m[6], m[1]*x + m[4]*y + m[7]
}

// RectToRect returns the transform mapping the from rectangle onto the to
// rectangle. A degenerate from rectangle yields the identity.
func RectToRect(from, to Rect) Mat3 {
	if from.IsEmpty() {
		return Identity()
	}
	sx := float32(to.Size.W / from.Size.W)
	sy := float32(to.Size.H / from.Size.H)
	return Translate(float32(to.Loc.X), float32(to.Loc.Y)).
		Mul(Scale(sx, sy)).
		Mul(Translate(float32(-from.Loc.X), float32(-from.Loc.Y)))
}
