// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/layerfx/anim"
	"github.com/gogpu/layerfx/config"
	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/render"
	"github.com/gogpu/layerfx/shader"
)

var (
	// ErrEmptySnapshot is returned for a snapshot with nothing to draw.
	ErrEmptySnapshot = errors.New("layer: snapshot is empty")
	// ErrEmptyGeometry is returned for a zero-sized closing surface.
	ErrEmptyGeometry = errors.New("layer: closing geometry is empty")
)

// Closing plays the close animation of a surface that is already gone.
type Closing struct {
	anim    *anim.Animation
	program shader.ProgramType
	seed    float32

	texture           render.Texture
	blockedOutTexture render.Texture
	blockOutFrom      config.BlockOutFrom

	// Frozen logical geometry.
	geo   geom.Rect
	scale float64
}

// NewClosing renders both snapshot variants to textures and returns the
// animation. The snapshot's elements are released either way.
func NewClosing(
	r render.Renderer,
	snap *render.Snapshot,
	scale float64,
	geo geom.Rect,
	a *anim.Animation,
	program shader.ProgramType,
) (*Closing, error) {
	defer snap.Release()

	if snap.IsEmpty() {
		return nil, ErrEmptySnapshot
	}
	size := geo.Size.ToPhysicalRound(scale)
	if size.IsEmpty() {
		return nil, ErrEmptyGeometry
	}
	px := image.Pt(int(size.W), int(size.H))

	c := &Closing{
		anim:         a,
		program:      program,
		seed:         shader.RandomSeed(uint64(render.NewElementID())),
		blockOutFrom: snap.BlockOutFrom,
		geo:          geo,
		scale:        scale,
	}

	var err error
	if len(snap.Contents) > 0 {
		if c.texture, err = r.RenderToTexture(snap.Contents, px, scale); err != nil {
			return nil, fmt.Errorf("layer: rendering closing contents: %w", err)
		}
	}
	if len(snap.BlockedOutContents) > 0 {
		if c.blockedOutTexture, err = r.RenderToTexture(snap.BlockedOutContents, px, scale); err != nil {
			return nil, fmt.Errorf("layer: rendering blocked-out closing contents: %w", err)
		}
	}
	return c, nil
}

// IsDone reports whether the animation finished.
func (c *Closing) IsDone() bool { return c.anim.IsDone() }

// Geometry returns the frozen logical geometry.
func (c *Closing) Geometry() geom.Rect { return c.geo }

// Render returns the element for the current frame, or nil when the
// variant for target has no content.
//
// A returned element may hold a program handle; release it with
// render.ReleaseAll after the frame.
func (c *Closing) Render(r render.Renderer, target render.Target) render.Element {
	tex := c.texture
	if target.ShouldBlockOut(c.blockOutFrom) {
		tex = c.blockedOutTexture
	}
	if tex == nil {
		return nil
	}

	progress := float32(c.anim.Value())
	dst := c.geo.ToPhysicalRound(c.scale)
	return animatedElement(r, c.program, tex, dst, progress, c.seed, 1, closeFallback)
}
