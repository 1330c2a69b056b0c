// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package anim

import (
	"fmt"
	"math"
)

// Curve is an easing curve mapping progress in [0, 1] to eased progress.
type Curve int

const (
	Linear Curve = iota
	EaseOutQuad
	EaseOutCubic
	EaseOutExpo
	EaseInOutCubic
	Smoothstep
)

var curveNames = map[Curve]string{
	Linear:         "linear",
	EaseOutQuad:    "ease-out-quad",
	EaseOutCubic:   "ease-out-cubic",
	EaseOutExpo:    "ease-out-expo",
	EaseInOutCubic: "ease-in-out-cubic",
	Smoothstep:     "smoothstep",
}

// String returns the configuration name of the curve.
func (c Curve) String() string {
	if name, ok := curveNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Curve(%d)", int(c))
}

// ParseCurve returns the curve with the given configuration name.
func ParseCurve(name string) (Curve, error) {
	for c, n := range curveNames {
		if n == name {
			return c, nil
		}
	}
	return Linear, fmt.Errorf("anim: unknown easing curve %q", name)
}

// Apply evaluates the curve at x, which is clamped to [0, 1].
func (c Curve) Apply(x float64) float64 {
	x = math.Max(0, math.Min(1, x))
	switch c {
	case EaseOutQuad:
		return 1 - (1-x)*(1-x)
	case EaseOutCubic:
		return 1 - math.Pow(1-x, 3)
	case EaseOutExpo:
		if x == 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*x)
	case EaseInOutCubic:
		if x < 0.5 {
			return 4 * x * x * x
		}
		return 1 - math.Pow(-2*x+2, 3)/2
	case Smoothstep:
		return x * x * (3 - 2*x)
	default:
		return x
	}
}
