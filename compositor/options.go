// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import "github.com/gogpu/layerfx/anim"

// Option configures a State during creation.
//
// Example:
//
//	st := compositor.New(layout, cfg, renderer,
//	    compositor.WithClock(anim.NewManualClock()),
//	    compositor.AtStartup())
type Option func(*options)

type options struct {
	clock     *anim.Clock
	popups    PopupConstrainer
	atStartup bool
}

func defaultOptions() options {
	return options{
		clock:  nil, // Created from the config if nil
		popups: ClampConstrainer{},
	}
}

// WithClock sets the clock animations are driven by.
func WithClock(c *anim.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithPopupConstrainer replaces the popup placement policy.
func WithPopupConstrainer(p PopupConstrainer) Option {
	return func(o *options) {
		o.popups = p
	}
}

// AtStartup marks the session as starting up, for rules matching
// at-startup. Call State.EndStartup once startup is over.
func AtStartup() Option {
	return func(o *options) {
		o.atStartup = true
	}
}
