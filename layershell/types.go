// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layershell

import (
	"math/bits"
	"strings"

	"github.com/gogpu/layerfx/geom"
)

// Anchor is the set of output edges a surface is pinned to.
type Anchor uint8

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight

	AnchorAll = AnchorTop | AnchorBottom | AnchorLeft | AnchorRight
)

// Contains reports whether every edge in o is in a.
func (a Anchor) Contains(o Anchor) bool { return a&o == o }

// Count returns the number of anchored edges.
func (a Anchor) Count() int { return bits.OnesCount8(uint8(a)) }

func (a Anchor) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	for _, e := range []struct {
		bit  Anchor
		name string
	}{{AnchorTop, "top"}, {AnchorBottom, "bottom"}, {AnchorLeft, "left"}, {AnchorRight, "right"}} {
		if a&e.bit != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// ExclusiveZone is the space a surface reserves from its output edge.
//
// Positive values reserve that many logical pixels (Exclusive). Zero
// (Neutral) reserves nothing but respects other surfaces' zones. Negative
// values (DontCare) ignore other zones and extend to the output edges.
type ExclusiveZone int32

const (
	Neutral  ExclusiveZone = 0
	DontCare ExclusiveZone = -1
)

// Exclusive returns a zone reserving n pixels. Non-positive n is Neutral.
func Exclusive(n int32) ExclusiveZone {
	if n <= 0 {
		return Neutral
	}
	return ExclusiveZone(n)
}

// IsExclusive reports whether the zone reserves space.
func (z ExclusiveZone) IsExclusive() bool { return z > 0 }

// IsDontCare reports whether the surface ignores other zones.
func (z ExclusiveZone) IsDontCare() bool { return z < 0 }

// Amount returns the reserved pixels, or 0.
func (z ExclusiveZone) Amount() int32 { return max(int32(z), 0) }

// Layer is the stacking layer of a surface, bottom to top.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerBottom:
		return "bottom"
	case LayerTop:
		return "top"
	case LayerOverlay:
		return "overlay"
	}
	return "unknown"
}

// KeyboardInteractivity is how a surface wants keyboard focus.
type KeyboardInteractivity uint8

const (
	KeyboardNone KeyboardInteractivity = iota
	KeyboardExclusive
	KeyboardOnDemand
)

// Transform is an output transform.
type Transform uint8

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

// Margin is the per-edge margin in logical pixels.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// State is the committed (cached) state of a layer surface.
type State struct {
	Anchor                Anchor
	ExclusiveZone         ExclusiveZone
	Layer                 Layer
	KeyboardInteractivity KeyboardInteractivity
	// Size requested by the client; a zero dimension asks to be stretched
	// between opposite anchors.
	Size   geom.Size
	Margin Margin
}

// SurfaceID identifies a protocol surface.
type SurfaceID uint64
