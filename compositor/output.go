// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/layershell"
)

// Output is a monitor with its layer map.
type Output struct {
	name      string
	size      geom.Size
	scale     float64
	transform layershell.Transform
	layers    *layershell.Map

	redraws int
}

// NewOutput creates an output of the given logical size and scale.
func NewOutput(name string, size geom.Size, scale float64) *Output {
	return &Output{
		name:   name,
		size:   size,
		scale:  scale,
		layers: layershell.NewMap(size),
	}
}

// Name returns the connector name.
func (o *Output) Name() string { return o.name }

// Size returns the logical size.
func (o *Output) Size() geom.Size { return o.size }

// Scale returns the fractional scale.
func (o *Output) Scale() float64 { return o.scale }

// Transform returns the output transform.
func (o *Output) Transform() layershell.Transform { return o.transform }

// SetTransform changes the transform.
func (o *Output) SetTransform(t layershell.Transform) { o.transform = t }

// SetMode changes the logical size and scale. Call State.OutputResized
// afterwards.
func (o *Output) SetMode(size geom.Size, scale float64) {
	o.size = size
	o.scale = scale
}

// Layers returns the output's layer map.
func (o *Output) Layers() *layershell.Map { return o.layers }

// TakeRedraw reports whether a redraw was queued and clears the request.
func (o *Output) TakeRedraw() bool {
	queued := o.redraws > 0
	o.redraws = 0
	return queued
}

func (o *Output) queueRedraw() { o.redraws++ }

// Layout provides the outputs layer surfaces can be placed on.
type Layout interface {
	// Outputs returns every output.
	Outputs() []*Output
	// ActiveOutput returns the focused output, or nil.
	ActiveOutput() *Output
}

// StaticLayout is a fixed list of outputs.
type StaticLayout struct {
	outputs []*Output
	active  *Output
}

// NewStaticLayout creates a layout whose first output is active.
func NewStaticLayout(outputs ...*Output) *StaticLayout {
	l := &StaticLayout{outputs: outputs}
	if len(outputs) > 0 {
		l.active = outputs[0]
	}
	return l
}

// Outputs implements Layout.
func (l *StaticLayout) Outputs() []*Output { return l.outputs }

// ActiveOutput implements Layout.
func (l *StaticLayout) ActiveOutput() *Output { return l.active }

// SetActive focuses o. A nil o leaves no output active.
func (l *StaticLayout) SetActive(o *Output) { l.active = o }
