// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layershell

import "errors"

// ErrParentCycle is returned when a parent would make a surface its own
// ancestor.
var ErrParentCycle = errors.New("layershell: subsurface parent cycle")

// Tree tracks subsurface parents so commits can be resolved to their root.
type Tree struct {
	parents map[SurfaceID]SurfaceID
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{parents: make(map[SurfaceID]SurfaceID)}
}

// SetParent records child as a subsurface of parent.
func (t *Tree) SetParent(child, parent SurfaceID) error {
	if t.Root(parent) == child {
		return ErrParentCycle
	}
	t.parents[child] = parent
	return nil
}

// Remove forgets id and detaches its children.
func (t *Tree) Remove(id SurfaceID) {
	delete(t.parents, id)
	for c, p := range t.parents {
		if p == id {
			delete(t.parents, c)
		}
	}
}

// Root returns the topmost ancestor of id, or id itself.
func (t *Tree) Root(id SurfaceID) SurfaceID {
	for {
		p, ok := t.parents[id]
		if !ok {
			return id
		}
		id = p
	}
}
