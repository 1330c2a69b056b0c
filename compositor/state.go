// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"github.com/gogpu/layerfx/anim"
	"github.com/gogpu/layerfx/config"
	"github.com/gogpu/layerfx/layer"
	"github.com/gogpu/layerfx/layershell"
	"github.com/gogpu/layerfx/render"
)

// State is the layer-surface lifecycle coordinator.
type State struct {
	layout   Layout
	config   *config.Config
	renderer render.Renderer
	clock    *anim.Clock
	popups   PopupConstrainer

	tree *layershell.Tree

	// Every live layer surface is in exactly one of these.
	unmapped map[layershell.SurfaceID]struct{}
	mapped   map[layershell.SurfaceID]*layer.Mapped

	closing []*closingLayer

	onDemandFocus *layershell.LayerSurface
	atStartup     bool
}

// closingLayer is a close animation outliving its surface.
type closingLayer struct {
	output      *Output
	surface     *layershell.LayerSurface
	layer       layershell.Layer
	forBackdrop bool
	animation   *layer.Closing
}

// New creates a coordinator. renderer captures snapshots and draws frames;
// its context must have shaders initialized.
func New(layout Layout, cfg *config.Config, renderer render.Renderer, opts ...Option) *State {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = anim.NewClock()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	s := &State{
		layout:    layout,
		config:    cfg,
		renderer:  renderer,
		clock:     o.clock,
		popups:    o.popups,
		tree:      layershell.NewTree(),
		unmapped:  make(map[layershell.SurfaceID]struct{}),
		mapped:    make(map[layershell.SurfaceID]*layer.Mapped),
		atStartup: o.atStartup,
	}
	s.applyClockConfig()
	s.reloadShaders()
	return s
}

// Config returns the configuration in effect.
func (s *State) Config() *config.Config { return s.config }

// Clock returns the animation clock.
func (s *State) Clock() *anim.Clock { return s.clock }

// Tree returns the subsurface tree commits are resolved through.
func (s *State) Tree() *layershell.Tree { return s.tree }

// IsUnmapped reports whether id is waiting for its first content.
func (s *State) IsUnmapped(id layershell.SurfaceID) bool {
	_, ok := s.unmapped[id]
	return ok
}

// Mapped returns the render state of a mapped surface, or nil.
func (s *State) Mapped(id layershell.SurfaceID) *layer.Mapped { return s.mapped[id] }

// ClosingCount returns the number of running close animations.
func (s *State) ClosingCount() int { return len(s.closing) }

// IsClosing reports whether a close animation runs for id.
func (s *State) IsClosing(id layershell.SurfaceID) bool {
	for _, c := range s.closing {
		if c.surface.ID() == id {
			return true
		}
	}
	return false
}

// OnDemandFocus returns the on-demand surface that asked for keyboard
// focus when it mapped, or nil.
func (s *State) OnDemandFocus() *layershell.LayerSurface { return s.onDemandFocus }

// ClearOnDemandFocus drops the focus request once the host handled it.
func (s *State) ClearOnDemandFocus() { s.onDemandFocus = nil }

// EndStartup ends the startup phase and re-resolves rules that depend
// on it.
func (s *State) EndStartup() {
	if !s.atStartup {
		return
	}
	s.atStartup = false
	s.recomputeRules()
}

// findLayer returns the output and layer surface for id.
func (s *State) findLayer(id layershell.SurfaceID) (*Output, *layershell.LayerSurface) {
	for _, o := range s.layout.Outputs() {
		if l := o.layers.LayerForSurface(id); l != nil {
			return o, l
		}
	}
	return nil, nil
}

func (s *State) outputOf(id layershell.SurfaceID) *Output {
	o, _ := s.findLayer(id)
	return o
}

func (s *State) applyClockConfig() {
	a := s.config.Animations
	s.clock.SetCompleteInstantly(a.Off)
	if a.Slowdown > 0 {
		s.clock.SetRate(1 / a.Slowdown)
	}
}
