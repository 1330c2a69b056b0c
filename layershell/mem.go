// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layershell

import (
	"sync/atomic"

	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/render"
)

var surfaceIDs atomic.Uint64

// NewSurfaceID returns a process-unique surface ID.
func NewSurfaceID() SurfaceID {
	return SurfaceID(surfaceIDs.Add(1))
}

// MemSurface is an in-memory Surface. It records what the compositor sends
// so tests and demos can inspect it.
type MemSurface struct {
	id      SurfaceID
	state   State
	buffers []render.Buffer
	popups  []Popup

	pendingSize geom.Size
	sentSize    geom.Size
	configured  bool

	// Configures lists every configured size, in order.
	Configures []geom.Size
	// Closed is set once SendClose was called.
	Closed bool
	// Scale and Transform are the last values sent.
	Scale     float64
	Transform Transform
}

// NewMemSurface creates an unmapped surface with the given state.
func NewMemSurface(state State) *MemSurface {
	return &MemSurface{id: NewSurfaceID(), state: state}
}

// Attach commits content. Committing no buffers is a null commit that
// unmaps the surface.
func (s *MemSurface) Attach(buffers ...render.Buffer) {
	s.buffers = buffers
}

// SetState replaces the cached state.
func (s *MemSurface) SetState(st State) { s.state = st }

// SetPopups replaces the popup list.
func (s *MemSurface) SetPopups(popups ...Popup) { s.popups = popups }

// ID implements Surface.
func (s *MemSurface) ID() SurfaceID { return s.id }

// CachedState implements Surface.
func (s *MemSurface) CachedState() State { return s.state }

// Contents implements render.Surface.
func (s *MemSurface) Contents() []render.Buffer { return s.buffers }

// IsMapped implements Surface.
func (s *MemSurface) IsMapped() bool { return len(s.buffers) > 0 }

// InitialConfigureSent implements Surface.
func (s *MemSurface) InitialConfigureSent() bool { return s.configured }

// SetPendingSize implements Surface.
func (s *MemSurface) SetPendingSize(size geom.Size) { s.pendingSize = size }

// SendPendingConfigure implements Surface.
func (s *MemSurface) SendPendingConfigure() {
	if s.configured && s.pendingSize != s.sentSize {
		s.SendConfigure()
	}
}

// SendConfigure implements Surface.
func (s *MemSurface) SendConfigure() {
	s.configured = true
	s.sentSize = s.pendingSize
	s.Configures = append(s.Configures, s.pendingSize)
}

// SendScaleTransform implements Surface.
func (s *MemSurface) SendScaleTransform(scale float64, t Transform) {
	s.Scale, s.Transform = scale, t
}

// SendClose implements Surface.
func (s *MemSurface) SendClose() { s.Closed = true }

// Popups implements Surface.
func (s *MemSurface) Popups() []Popup { return s.popups }

var _ Surface = (*MemSurface)(nil)

// BufferSurface is a render.Surface made of fixed buffers, used for popups.
type BufferSurface []render.Buffer

// Contents implements render.Surface.
func (b BufferSurface) Contents() []render.Buffer { return b }
