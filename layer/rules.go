// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"github.com/gogpu/layerfx/config"
	"github.com/gogpu/layerfx/geom"
)

// ResolvedRules is the result of applying every matching layer rule to a
// surface.
type ResolvedRules struct {
	Opacity              *float32
	GeometryCornerRadius *geom.CornerRadius
	Shadow               config.ShadowRule
	BlockOutFrom         config.BlockOutFrom
	PlaceWithinBackdrop  bool
	BabaIsFloat          bool
}

// ComputeRules resolves rules for a surface with the given namespace.
// Rules apply in order; fields set by later rules win.
func ComputeRules(rules []config.LayerRule, namespace string, atStartup bool) ResolvedRules {
	var out ResolvedRules
	for _, r := range rules {
		if !ruleApplies(r, namespace, atStartup) {
			continue
		}
		if r.Opacity != nil {
			out.Opacity = r.Opacity
		}
		if r.GeometryCornerRadius != nil {
			out.GeometryCornerRadius = r.GeometryCornerRadius
		}
		out.Shadow = out.Shadow.MergeRule(r.Shadow)
		if r.BlockOutFrom != "" {
			out.BlockOutFrom = r.BlockOutFrom
		}
		if r.PlaceWithinBackdrop != nil {
			out.PlaceWithinBackdrop = *r.PlaceWithinBackdrop
		}
		if r.BabaIsFloat != nil {
			out.BabaIsFloat = *r.BabaIsFloat
		}
	}
	return out
}

func ruleApplies(r config.LayerRule, namespace string, atStartup bool) bool {
	if len(r.Matches) > 0 {
		hit := false
		for _, m := range r.Matches {
			if matches(m, namespace, atStartup) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for _, m := range r.Excludes {
		if matches(m, namespace, atStartup) {
			return false
		}
	}
	return true
}

func matches(m config.Match, namespace string, atStartup bool) bool {
	if m.Namespace != nil && m.Namespace.Regexp != nil && !m.Namespace.MatchString(namespace) {
		return false
	}
	if m.AtStartup != nil && *m.AtStartup != atStartup {
		return false
	}
	return true
}

// Alpha returns the opacity clamped to [0, 1], 1 when unset.
func (r ResolvedRules) Alpha() float32 {
	if r.Opacity == nil {
		return 1
	}
	return max(0, min(1, *r.Opacity))
}

// CornerRadius returns the geometry corner radius, zero when unset.
func (r ResolvedRules) CornerRadius() geom.CornerRadius {
	if r.GeometryCornerRadius == nil {
		return geom.CornerRadius{}
	}
	return *r.GeometryCornerRadius
}

// Equal compares the values behind the rule pointers.
func (r ResolvedRules) Equal(o ResolvedRules) bool {
	return eq(r.Opacity, o.Opacity) &&
		eq(r.GeometryCornerRadius, o.GeometryCornerRadius) &&
		shadowRuleEqual(r.Shadow, o.Shadow) &&
		r.BlockOutFrom == o.BlockOutFrom &&
		r.PlaceWithinBackdrop == o.PlaceWithinBackdrop &&
		r.BabaIsFloat == o.BabaIsFloat
}

func shadowRuleEqual(a, b config.ShadowRule) bool {
	return a.On == b.On && a.Off == b.Off &&
		eq(a.Softness, b.Softness) &&
		eq(a.Spread, b.Spread) &&
		eq(a.Offset, b.Offset) &&
		eq(a.DrawBehindWindow, b.DrawBehindWindow) &&
		eq(a.Color, b.Color)
}

func eq[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
