// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package anim

import (
	"math"
	"time"
)

const floatEpsilon = 1e-9

// SpringParams describes a damped harmonic oscillator of unit mass.
type SpringParams struct {
	DampingRatio float64
	Stiffness    float64
	Epsilon      float64
}

// damping returns the damping coefficient for the ratio and stiffness.
func (p SpringParams) damping() float64 {
	return p.DampingRatio * 2 * math.Sqrt(p.Stiffness)
}

// Spring is a closed-form spring animation from From to To.
type Spring struct {
	From            float64
	To              float64
	InitialVelocity float64
	Params          SpringParams
}

// ValueAt returns the spring position t after the start.
func (s Spring) ValueAt(t time.Duration) float64 {
	secs := t.Seconds()
	beta := s.Params.damping() / 2
	omega0 := math.Sqrt(s.Params.Stiffness)
	x0 := s.From - s.To
	v0 := s.InitialVelocity
	envelope := math.Exp(-beta * secs)

	switch {
	case math.Abs(beta-omega0) <= floatEpsilon:
		// Critically damped.
		return s.To + envelope*(x0+(beta*x0+v0)*secs)
	case beta < omega0:
		omega1 := math.Sqrt(omega0*omega0 - beta*beta)
		return s.To + envelope*(x0*math.Cos(omega1*secs)+((beta*x0+v0)/omega1)*math.Sin(omega1*secs))
	default:
		omega2 := math.Sqrt(beta*beta - omega0*omega0)
		return s.To + envelope*(x0*math.Cosh(omega2*secs)+((beta*x0+v0)/omega2)*math.Sinh(omega2*secs))
	}
}

// Duration returns the time after which the spring stays within epsilon of
// its target.
func (s Spring) Duration() time.Duration {
	beta := s.Params.damping() / 2
	if beta <= floatEpsilon {
		return time.Duration(math.MaxInt64)
	}
	if math.Abs(s.To-s.From) <= floatEpsilon {
		return 0
	}

	omega0 := math.Sqrt(s.Params.Stiffness)
	if math.Abs(beta-omega0) <= floatEpsilon || beta < omega0 {
		x0 := -math.Log(s.Params.Epsilon) / beta
		return time.Duration(x0 * float64(time.Second))
	}

	// Overdamped: the envelope bound is loose, walk in millisecond steps.
	for ms := 1; ms <= 60_000; ms++ {
		t := time.Duration(ms) * time.Millisecond
		if math.Abs(s.ValueAt(t)-s.To) <= s.Params.Epsilon {
			return t
		}
	}
	return time.Minute
}

// ClampedDuration returns the first time the spring reaches its target, or
// false if it does not within three seconds.
func (s Spring) ClampedDuration() (time.Duration, bool) {
	beta := s.Params.damping() / 2
	if beta <= floatEpsilon {
		return 0, false
	}
	if math.Abs(s.To-s.From) <= floatEpsilon {
		return 0, true
	}

	i := 1
	y := s.ValueAt(time.Millisecond)
	for (s.To-s.From > floatEpsilon && s.To-y > s.Params.Epsilon) ||
		(s.From-s.To > floatEpsilon && y-s.To > s.Params.Epsilon) {
		if i > 3000 {
			return 0, false
		}
		i++
		y = s.ValueAt(time.Duration(i) * time.Millisecond)
	}
	return time.Duration(i) * time.Millisecond, true
}
