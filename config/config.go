// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config holds the configuration consumed by the layer pipeline:
// per-kind open and close animations with optional custom shaders, shadow
// defaults, layer rules and color filters.
//
// Configuration is written in TOML with kebab-case keys:
//
//	[animations]
//	slowdown = 1.0
//
//	[animations.layer-bar-open]
//	duration-ms = 250
//	curve = "ease-out-cubic"
//
//	[animations.layer-wallpaper-close]
//	custom-shader = """
//	fn close_color(coords_geo: vec3<f32>, size_geo: vec3<f32>) -> vec4<f32> { ... }
//	"""
//
//	[[layer-rule]]
//	match = [{ namespace = "^waybar$" }]
//	opacity = 0.9
//	shadow = { on = true }
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gogpu/layerfx/anim"
	"github.com/gogpu/layerfx/geom"
)

// Config is the root configuration.
type Config struct {
	Animations   Animations  `toml:"animations"`
	Layout       Layout      `toml:"layout"`
	LayerRules   []LayerRule `toml:"layer-rule"`
	ColorFilters []string    `toml:"color-filters"`
}

// Animations configures every transition the pipeline plays.
type Animations struct {
	// Off completes every animation instantly.
	Off bool `toml:"off"`
	// Slowdown stretches animation time; 2 plays everything at half speed.
	Slowdown float64 `toml:"slowdown"`

	WindowOpen   Anim `toml:"window-open"`
	WindowClose  Anim `toml:"window-close"`
	WindowResize Anim `toml:"window-resize"`

	// LayerOpen and LayerClose carry the custom shaders shared by every
	// layer kind that does not set its own.
	LayerOpen  Anim `toml:"layer-open"`
	LayerClose Anim `toml:"layer-close"`

	LayerBarOpen        Anim `toml:"layer-bar-open"`
	LayerBarClose       Anim `toml:"layer-bar-close"`
	LayerWallpaperOpen  Anim `toml:"layer-wallpaper-open"`
	LayerWallpaperClose Anim `toml:"layer-wallpaper-close"`
	LayerLauncherOpen   Anim `toml:"layer-launcher-open"`
	LayerLauncherClose  Anim `toml:"layer-launcher-close"`
}

// Anim is a single animation: timing plus an optional custom shader.
type Anim struct {
	Off          bool    `toml:"off"`
	DurationMs   int     `toml:"duration-ms"`
	Curve        string  `toml:"curve"`
	Spring       *Spring `toml:"spring"`
	CustomShader string  `toml:"custom-shader"`
}

// Spring parameters of a spring animation.
type Spring struct {
	DampingRatio float64 `toml:"damping-ratio"`
	Stiffness    float64 `toml:"stiffness"`
	Epsilon      float64 `toml:"epsilon"`
}

// Config converts the timing part to an animation config.
func (a Anim) Config() anim.Config {
	if a.Spring != nil {
		return anim.Config{
			Off: a.Off,
			Spring: &anim.SpringParams{
				DampingRatio: a.Spring.DampingRatio,
				Stiffness:    a.Spring.Stiffness,
				Epsilon:      a.Spring.Epsilon,
			},
		}
	}
	// Validated on load; unknown names fall back to linear.
	curve, _ := anim.ParseCurve(a.Curve)
	return anim.Config{
		Off:      a.Off,
		Duration: time.Duration(a.DurationMs) * time.Millisecond,
		Curve:    curve,
	}
}

func (a Anim) validate(name string) error {
	if a.Spring != nil {
		s := a.Spring
		if s.DampingRatio <= 0 || s.Stiffness <= 0 || s.Epsilon <= 0 {
			return fmt.Errorf("%s: spring parameters must be positive", name)
		}
		return nil
	}
	if a.DurationMs < 0 {
		return fmt.Errorf("%s: duration-ms must not be negative", name)
	}
	if _, err := anim.ParseCurve(a.Curve); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Layout holds the layout-wide defaults layer surfaces inherit.
type Layout struct {
	Shadow Shadow `toml:"shadow"`
}

// Shadow configures drop shadows.
type Shadow struct {
	On               bool       `toml:"on"`
	Softness         float64    `toml:"softness"`
	Spread           float64    `toml:"spread"`
	Offset           geom.Point `toml:"offset"`
	DrawBehindWindow bool       `toml:"draw-behind-window"`
	Color            Color      `toml:"color"`
}

// ShadowRule overrides parts of the shadow config for matching surfaces.
type ShadowRule struct {
	On               bool        `toml:"on"`
	Off              bool        `toml:"off"`
	Softness         *float64    `toml:"softness"`
	Spread           *float64    `toml:"spread"`
	Offset           *geom.Point `toml:"offset"`
	DrawBehindWindow *bool       `toml:"draw-behind-window"`
	Color            *Color      `toml:"color"`
}

// MergeWith applies a rule on top of the config. Off wins over On.
func (s Shadow) MergeWith(r ShadowRule) Shadow {
	if r.On {
		s.On = true
	}
	if r.Off {
		s.On = false
	}
	if r.Softness != nil {
		s.Softness = *r.Softness
	}
	if r.Spread != nil {
		s.Spread = *r.Spread
	}
	if r.Offset != nil {
		s.Offset = *r.Offset
	}
	if r.DrawBehindWindow != nil {
		s.DrawBehindWindow = *r.DrawBehindWindow
	}
	if r.Color != nil {
		s.Color = *r.Color
	}
	return s
}

// MergeRule merges another rule into r; fields set in o take precedence.
func (r ShadowRule) MergeRule(o ShadowRule) ShadowRule {
	if o.On {
		r.On, r.Off = true, false
	}
	if o.Off {
		r.On, r.Off = false, true
	}
	if o.Softness != nil {
		r.Softness = o.Softness
	}
	if o.Spread != nil {
		r.Spread = o.Spread
	}
	if o.Offset != nil {
		r.Offset = o.Offset
	}
	if o.DrawBehindWindow != nil {
		r.DrawBehindWindow = o.DrawBehindWindow
	}
	if o.Color != nil {
		r.Color = o.Color
	}
	return r
}

// Color is a straight-alpha RGBA color in [0, 1].
// In TOML it is written as "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa".
type Color [4]float32

// UnmarshalText parses a hex color.
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "#")
	switch len(s) {
	case 3, 4:
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		s = b.String()
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return fmt.Errorf("config: invalid color %q", text)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("config: invalid color %q: %w", text, err)
	}
	for i := range 4 {
		c[i] = float32(raw[i]) / 255
	}
	return nil
}

// MarshalText formats the color as "#rrggbbaa".
func (c Color) MarshalText() ([]byte, error) {
	var raw [4]byte
	for i := range 4 {
		v := c[i]*255 + 0.5
		raw[i] = byte(max(0, min(255, v)))
	}
	return []byte("#" + hex.EncodeToString(raw[:])), nil
}

// BlockOutFrom names the capture targets a surface is hidden from.
type BlockOutFrom string

const (
	BlockOutScreencast    BlockOutFrom = "screencast"
	BlockOutScreenCapture BlockOutFrom = "screen-capture"
)

// LayerRule adjusts how matching layer surfaces are rendered.
type LayerRule struct {
	Matches  []Match `toml:"match"`
	Excludes []Match `toml:"exclude"`

	Opacity              *float32           `toml:"opacity"`
	GeometryCornerRadius *geom.CornerRadius `toml:"geometry-corner-radius"`
	Shadow               ShadowRule         `toml:"shadow"`
	BlockOutFrom         BlockOutFrom       `toml:"block-out-from"`
	PlaceWithinBackdrop  *bool              `toml:"place-within-backdrop"`
	BabaIsFloat          *bool              `toml:"baba-is-float"`
}

// Match selects layer surfaces by namespace and startup state.
type Match struct {
	Namespace *Regex `toml:"namespace"`
	AtStartup *bool  `toml:"at-startup"`
}

// Regex is a regular expression decoded from a TOML string.
type Regex struct {
	*regexp.Regexp
}

// UnmarshalText compiles the expression.
func (r *Regex) UnmarshalText(text []byte) error {
	re, err := regexp.Compile(string(text))
	if err != nil {
		return fmt.Errorf("config: invalid regex: %w", err)
	}
	r.Regexp = re
	return nil
}

// MarshalText returns the expression source.
func (r Regex) MarshalText() ([]byte, error) {
	if r.Regexp == nil {
		return nil, nil
	}
	return []byte(r.String()), nil
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Default returns the built-in configuration.
func Default() *Config {
	open := Anim{DurationMs: 200, Curve: anim.EaseOutExpo.String()}
	closing := Anim{DurationMs: 150, Curve: anim.EaseOutQuad.String()}
	return &Config{
		Animations: Animations{
			Slowdown:            1,
			WindowOpen:          open,
			WindowClose:         closing,
			WindowResize:        Anim{Spring: &Spring{DampingRatio: 1, Stiffness: 800, Epsilon: 0.0001}},
			LayerOpen:           open,
			LayerClose:          closing,
			LayerBarOpen:        open,
			LayerBarClose:       closing,
			LayerWallpaperOpen:  open,
			LayerWallpaperClose: closing,
			LayerLauncherOpen:   open,
			LayerLauncherClose:  closing,
		},
		Layout: Layout{
			Shadow: Shadow{
				Softness: 30,
				Spread:   5,
				Offset:   geom.Pt(0, 5),
				Color:    Color{0, 0, 0, 0.44},
			},
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	a := &c.Animations
	if a.Slowdown <= 0 {
		return fmt.Errorf("%w: animations.slowdown must be positive", ErrInvalid)
	}
	anims := []struct {
		name string
		anim Anim
	}{
		{"window-open", a.WindowOpen},
		{"window-close", a.WindowClose},
		{"window-resize", a.WindowResize},
		{"layer-open", a.LayerOpen},
		{"layer-close", a.LayerClose},
		{"layer-bar-open", a.LayerBarOpen},
		{"layer-bar-close", a.LayerBarClose},
		{"layer-wallpaper-open", a.LayerWallpaperOpen},
		{"layer-wallpaper-close", a.LayerWallpaperClose},
		{"layer-launcher-open", a.LayerLauncherOpen},
		{"layer-launcher-close", a.LayerLauncherClose},
	}
	for _, an := range anims {
		if err := an.anim.validate("animations." + an.name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}

	for i, r := range c.LayerRules {
		if r.Opacity != nil && (*r.Opacity < 0 || *r.Opacity > 1) {
			return fmt.Errorf("%w: layer-rule[%d].opacity must be in [0, 1]", ErrInvalid, i)
		}
		switch r.BlockOutFrom {
		case "", BlockOutScreencast, BlockOutScreenCapture:
		default:
			return fmt.Errorf("%w: layer-rule[%d].block-out-from %q", ErrInvalid, i, r.BlockOutFrom)
		}
	}
	return nil
}
