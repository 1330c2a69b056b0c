// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package anim evaluates animations against a shared monotonic clock.
//
// An [Animation] is a pure function of time: its value, end time and
// completion are computed from the clock on demand, never by ticking. Every
// animation created from the same [Clock] observes the same "now" for a frame.
package anim

import "time"

// Clock is a shared, adjustable monotonic clock.
//
// A real clock follows the monotonic system time since creation. A manual
// clock only moves when Advance or SetTime is called, which makes it the
// clock of choice in tests.
//
// The rate scales how fast animation time passes relative to real time, and
// complete-instantly makes every new animation finish at once. Both mirror
// the animation "slowdown" and "off" settings.
type Clock struct {
	manual  bool
	origin  time.Time
	nowFunc func() time.Time

	// Adjusted time is base + (raw - rawBase) * rate.
	manualRaw time.Duration
	rawBase   time.Duration
	base      time.Duration
	rate      float64

	completeInstantly bool
}

// NewClock creates a clock driven by the monotonic system time.
func NewClock() *Clock {
	now := time.Now()
	return &Clock{origin: now, nowFunc: time.Now, rate: 1}
}

// NewManualClock creates a clock that starts at zero and only moves when told.
func NewManualClock() *Clock {
	return &Clock{manual: true, rate: 1}
}

func (c *Clock) raw() time.Duration {
	if c.manual {
		return c.manualRaw
	}
	return c.nowFunc().Sub(c.origin)
}

// Now returns the current adjusted time.
func (c *Clock) Now() time.Duration {
	elapsed := c.raw() - c.rawBase
	return c.base + time.Duration(float64(elapsed)*c.rate)
}

// Advance moves a manual clock forward by d. It is a no-op on a real clock.
func (c *Clock) Advance(d time.Duration) {
	if !c.manual || d <= 0 {
		return
	}
	c.manualRaw += d
}

// SetTime sets the raw time of a manual clock. Time never moves backwards.
func (c *Clock) SetTime(t time.Duration) {
	if !c.manual || t <= c.manualRaw {
		return
	}
	c.manualRaw = t
}

// Rate returns the current time rate.
func (c *Clock) Rate() float64 {
	return c.rate
}

// SetRate changes how fast adjusted time passes. Non-positive rates are
// ignored. The adjusted time stays continuous across the change.
func (c *Clock) SetRate(rate float64) {
	if rate <= 0 || rate == c.rate {
		return
	}
	c.base = c.Now()
	c.rawBase = c.raw()
	c.rate = rate
}

// ShouldCompleteInstantly reports whether new animations finish immediately.
func (c *Clock) ShouldCompleteInstantly() bool {
	return c.completeInstantly
}

// SetCompleteInstantly sets whether new animations finish immediately.
func (c *Clock) SetCompleteInstantly(v bool) {
	c.completeInstantly = v
}
