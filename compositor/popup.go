// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/layershell"
)

// PopupConstrainer places a new popup so it stays usable.
type PopupConstrainer interface {
	// Unconstrain adjusts popup.Offset. parent is the parent surface
	// geometry and bounds the area the popup should stay in, both in
	// output coordinates.
	Unconstrain(popup *layershell.Popup, parent, bounds geom.Rect)
}

// ClampConstrainer slides popups back inside the bounds.
type ClampConstrainer struct{}

// Unconstrain implements PopupConstrainer.
func (ClampConstrainer) Unconstrain(popup *layershell.Popup, parent, bounds geom.Rect) {
	var ext geom.Rect
	for _, b := range popup.Surface.Contents() {
		ext = ext.Union(geom.Rect{Loc: b.Loc, Size: b.Size})
	}
	if ext.IsEmpty() {
		return
	}

	r := ext.Translate(parent.Loc.Add(popup.Offset))
	var dx, dy float64
	if r.Right() > bounds.Right() {
		dx = bounds.Right() - r.Right()
	}
	if r.Loc.X+dx < bounds.Loc.X {
		dx = bounds.Loc.X - r.Loc.X
	}
	if r.Bottom() > bounds.Bottom() {
		dy = bounds.Bottom() - r.Bottom()
	}
	if r.Loc.Y+dy < bounds.Loc.Y {
		dy = bounds.Loc.Y - r.Loc.Y
	}
	popup.Offset = popup.Offset.Add(geom.Pt(dx, dy))
}
