// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package anim

import "time"

// Config selects how an animation progresses: an easing curve over a fixed
// duration, or a spring.
type Config struct {
	// Off makes the animation finish instantly.
	Off bool

	// Spring, when non-nil, takes precedence over Duration and Curve.
	Spring *SpringParams

	Duration time.Duration
	Curve    Curve
}

// Easing returns an easing configuration.
func Easing(d time.Duration, c Curve) Config {
	return Config{Duration: d, Curve: c}
}

// Animation is a stateless animation between two values.
type Animation struct {
	clock *Clock

	from            float64
	to              float64
	initialVelocity float64

	startTime       time.Duration
	duration        time.Duration
	clampedDuration time.Duration

	spring *Spring
	curve  Curve
}

// New creates an animation starting now.
func New(clock *Clock, from, to, initialVelocity float64, cfg Config) *Animation {
	a := &Animation{
		clock:           clock,
		from:            from,
		to:              to,
		initialVelocity: initialVelocity,
		startTime:       clock.Now(),
		curve:           cfg.Curve,
	}

	if cfg.Off || clock.ShouldCompleteInstantly() {
		return a
	}

	if cfg.Spring != nil {
		s := &Spring{From: from, To: to, InitialVelocity: initialVelocity, Params: *cfg.Spring}
		a.spring = s
		a.duration = s.Duration()
		if d, ok := s.ClampedDuration(); ok {
			a.clampedDuration = d
		} else {
			a.clampedDuration = a.duration
		}
		return a
	}

	a.duration = cfg.Duration
	a.clampedDuration = cfg.Duration
	return a
}

// From returns the start value.
func (a *Animation) From() float64 { return a.from }

// To returns the target value.
func (a *Animation) To() float64 { return a.to }

// StartTime returns the clock time the animation started at.
func (a *Animation) StartTime() time.Duration { return a.startTime }

// EndTime returns the clock time at which the animation is done.
func (a *Animation) EndTime() time.Duration { return a.startTime + a.duration }

// ValueAt returns the value at clock time t.
func (a *Animation) ValueAt(t time.Duration) float64 {
	if t >= a.EndTime() {
		return a.to
	}
	if t <= a.startTime {
		return a.from
	}
	passed := t - a.startTime

	if a.spring != nil {
		return a.spring.ValueAt(passed)
	}
	x := float64(passed) / float64(a.duration)
	return a.from + (a.to-a.from)*a.curve.Apply(x)
}

// Value returns the value at the current clock time.
func (a *Animation) Value() float64 {
	return a.ValueAt(a.clock.Now())
}

// ClampedValue returns the value, but jumps to the target once it has been
// reached, so spring overshoot never leaves the [from, to] range afterwards.
func (a *Animation) ClampedValue() float64 {
	now := a.clock.Now()
	if now >= a.startTime+a.clampedDuration {
		return a.to
	}
	return a.ValueAt(now)
}

// IsDone reports whether the animation has finished.
func (a *Animation) IsDone() bool {
	return a.clock.Now() >= a.EndTime()
}

// IsClampedDone reports whether the animation has reached its target at
// least once.
func (a *Animation) IsClampedDone() bool {
	return a.clock.Now() >= a.startTime+a.clampedDuration
}
