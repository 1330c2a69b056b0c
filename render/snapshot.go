// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/layerfx/config"
	"github.com/gogpu/layerfx/geom"
)

// Snapshot is the captured content of a surface, kept to draw it after the
// live surface is gone. Element geometry is relative to the surface origin.
type Snapshot struct {
	Contents           []Element
	BlockedOutContents []Element
	BlockOutFrom       config.BlockOutFrom
	// Size is the logical surface size at capture time.
	Size geom.Size
	// Scale is the output scale the elements were produced at.
	Scale float64
}

// IsEmpty reports whether neither variant has elements. A nil snapshot is
// empty.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (len(s.Contents) == 0 && len(s.BlockedOutContents) == 0)
}

// ElementsFor returns the variant to draw on target.
func (s *Snapshot) ElementsFor(target Target) []Element {
	if target.ShouldBlockOut(s.BlockOutFrom) {
		return s.BlockedOutContents
	}
	return s.Contents
}

// OffscreenData records what went into an offscreen-composited element.
type OffscreenData struct {
	// ID of the composited element.
	ID ElementID
	// Elements are the IDs rendered into the offscreen texture.
	Elements []ElementID
}

// Merge folds o into d. A nil d takes o; otherwise d takes o's ID and o's
// element IDs are appended.
func (d *OffscreenData) Merge(o *OffscreenData) *OffscreenData {
	if o == nil {
		return d
	}
	if d == nil {
		cp := *o
		cp.Elements = append([]ElementID(nil), o.Elements...)
		return &cp
	}
	d.ID = o.ID
	d.Elements = append(d.Elements, o.Elements...)
	return d
}

// Release drops the program handles held by the snapshot's elements.
func (s *Snapshot) Release() {
	if s == nil {
		return
	}
	ReleaseAll(s.Contents)
	ReleaseAll(s.BlockedOutContents)
}
