// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layershell

import (
	"errors"
	"slices"

	"github.com/gogpu/layerfx/geom"
)

// ErrAlreadyMapped is returned when a surface is mapped into a map twice.
var ErrAlreadyMapped = errors.New("layershell: surface already in layer map")

// Map arranges the layer surfaces of one output.
//
// Map is NOT safe for concurrent use.
type Map struct {
	size     geom.Size
	layers   []*LayerSurface
	geometry map[SurfaceID]geom.Rect
	zone     geom.Rect
}

// NewMap creates an empty map for an output of the given logical size.
func NewMap(outputSize geom.Size) *Map {
	return &Map{
		size:     outputSize,
		geometry: make(map[SurfaceID]geom.Rect),
		zone:     geom.Rect{Size: outputSize},
	}
}

// SetOutputSize changes the output size. Call Arrange afterwards.
func (m *Map) SetOutputSize(size geom.Size) { m.size = size }

// OutputSize returns the logical output size.
func (m *Map) OutputSize() geom.Size { return m.size }

// MapLayer adds l to the map.
func (m *Map) MapLayer(l *LayerSurface) error {
	if m.LayerForSurface(l.ID()) != nil {
		return ErrAlreadyMapped
	}
	m.layers = append(m.layers, l)
	return nil
}

// UnmapLayer removes l from the map.
func (m *Map) UnmapLayer(l *LayerSurface) {
	m.layers = slices.DeleteFunc(m.layers, func(o *LayerSurface) bool { return o.ID() == l.ID() })
	delete(m.geometry, l.ID())
}

// LayerForSurface returns the layer surface with the given ID, or nil.
func (m *Map) LayerForSurface(id SurfaceID) *LayerSurface {
	for _, l := range m.layers {
		if l.ID() == id {
			return l
		}
	}
	return nil
}

// LayerGeometry returns the arranged geometry of l.
func (m *Map) LayerGeometry(l *LayerSurface) (geom.Rect, bool) {
	r, ok := m.geometry[l.ID()]
	return r, ok
}

// Layers returns the mapped layer surfaces in map order.
func (m *Map) Layers() []*LayerSurface {
	return slices.Clone(m.layers)
}

// LayersOn returns the surfaces on the given stacking layer, in map order.
func (m *Map) LayersOn(layer Layer) []*LayerSurface {
	var out []*LayerSurface
	for _, l := range m.layers {
		if l.Layer() == layer {
			out = append(out, l)
		}
	}
	return out
}

// NonExclusiveZone returns the output area not reserved by exclusive zones.
func (m *Map) NonExclusiveZone() geom.Rect { return m.zone }

// Arrange recomputes every surface's geometry and the non-exclusive zone,
// and configures surfaces whose size changed.
//
// Surfaces are placed in map order, higher stacking layers first; each
// exclusive zone shrinks the area left for the following surfaces.
func (m *Map) Arrange() {
	output := geom.Rect{Size: m.size}
	zone := output

	order := slices.Clone(m.layers)
	slices.SortStableFunc(order, func(a, b *LayerSurface) int {
		return int(b.Layer()) - int(a.Layer())
	})

	for _, l := range order {
		st := l.CachedState()
		bounds := zone
		if st.ExclusiveZone.IsDontCare() {
			bounds = output
		}

		geo := place(st, bounds)
		m.geometry[l.ID()] = geo

		if st.ExclusiveZone.IsExclusive() {
			zone = shrink(zone, st)
		}

		l.surface.SetPendingSize(geo.Size)
		l.surface.SendPendingConfigure()
	}
	m.zone = zone
}

func place(st State, bounds geom.Rect) geom.Rect {
	a, mg := st.Anchor, st.Margin
	w, h := st.Size.W, st.Size.H

	if w == 0 && a.Contains(AnchorLeft|AnchorRight) {
		w = max(bounds.Size.W-mg.Left-mg.Right, 0)
	}
	if h == 0 && a.Contains(AnchorTop|AnchorBottom) {
		h = max(bounds.Size.H-mg.Top-mg.Bottom, 0)
	}

	var x, y float64
	switch {
	case a.Contains(AnchorLeft) && !a.Contains(AnchorRight):
		x = bounds.Loc.X + mg.Left
	case a.Contains(AnchorRight) && !a.Contains(AnchorLeft):
		x = bounds.Right() - w - mg.Right
	default:
		x = bounds.Loc.X + (bounds.Size.W-w)/2
	}
	switch {
	case a.Contains(AnchorTop) && !a.Contains(AnchorBottom):
		y = bounds.Loc.Y + mg.Top
	case a.Contains(AnchorBottom) && !a.Contains(AnchorTop):
		y = bounds.Bottom() - h - mg.Bottom
	default:
		y = bounds.Loc.Y + (bounds.Size.H-h)/2
	}
	return geom.R(x, y, w, h)
}

// shrink removes the surface's exclusive zone from zone. The zone applies
// to the single edge the surface is attached to; surfaces anchored to
// opposite edges or to no clear edge reserve nothing.
func shrink(zone geom.Rect, st State) geom.Rect {
	n := float64(st.ExclusiveZone.Amount())
	a, mg := st.Anchor, st.Margin

	switch {
	case a == AnchorTop || a == AnchorTop|AnchorLeft|AnchorRight:
		n += mg.Top
		zone.Loc.Y += n
		zone.Size.H -= n
	case a == AnchorBottom || a == AnchorBottom|AnchorLeft|AnchorRight:
		zone.Size.H -= n + mg.Bottom
	case a == AnchorLeft || a == AnchorLeft|AnchorTop|AnchorBottom:
		n += mg.Left
		zone.Loc.X += n
		zone.Size.W -= n
	case a == AnchorRight || a == AnchorRight|AnchorTop|AnchorBottom:
		zone.Size.W -= n + mg.Right
	}
	zone.Size.W = max(zone.Size.W, 0)
	zone.Size.H = max(zone.Size.H, 0)
	return zone
}
