// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layershell

import (
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/render"
)

// Popup is a popup surface attached to a layer surface.
type Popup struct {
	Surface render.Surface
	// Offset of the popup buffer from the layer surface origin, logical.
	Offset geom.Point
}

// Surface is a layer-shell protocol object together with its root
// wl_surface content.
type Surface interface {
	render.Surface

	ID() SurfaceID
	CachedState() State

	// IsMapped reports whether the last commit attached content.
	IsMapped() bool

	// InitialConfigureSent reports whether a configure was ever sent.
	InitialConfigureSent() bool

	// SetPendingSize records the size for the next configure.
	SetPendingSize(size geom.Size)

	// SendPendingConfigure sends a configure if the initial configure was
	// sent and the pending size differs from the last one sent.
	SendPendingConfigure()

	// SendConfigure sends the pending state unconditionally.
	SendConfigure()

	// SendScaleTransform tells the client the output scale and transform.
	SendScaleTransform(scale float64, t Transform)

	// SendClose asks the client to destroy the surface.
	SendClose()

	// Popups returns the popups of the surface, topmost first.
	Popups() []Popup
}

// LayerSurface is a Surface placed in a layer map.
type LayerSurface struct {
	surface   Surface
	namespace string
}

// NewLayerSurface wraps s. The namespace is normalized to NFC so rules
// match regardless of how the client composed it.
func NewLayerSurface(s Surface, namespace string) *LayerSurface {
	return &LayerSurface{surface: s, namespace: norm.NFC.String(namespace)}
}

// Surface returns the protocol object.
func (l *LayerSurface) Surface() Surface { return l.surface }

// ID returns the surface ID.
func (l *LayerSurface) ID() SurfaceID { return l.surface.ID() }

// Namespace returns the client-chosen namespace.
func (l *LayerSurface) Namespace() string { return l.namespace }

// CachedState returns the committed state.
func (l *LayerSurface) CachedState() State { return l.surface.CachedState() }

// Layer returns the committed stacking layer.
func (l *LayerSurface) Layer() Layer { return l.surface.CachedState().Layer }
