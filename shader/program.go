// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"sync/atomic"

	"github.com/gogpu/layerfx"
)

// Module is a compiled driver object produced by a Compiler.
type Module any

// Compiler turns complete program sources into driver objects.
type Compiler interface {
	// Compile builds a module from a complete WGSL source.
	Compile(label, source string) (Module, error)

	// Destroy frees a module returned by Compile.
	Destroy(m Module) error
}

var programIDs atomic.Uint64

// compiled is the shared state behind every handle to one program.
type compiled struct {
	id       uint64
	label    string
	source   string
	module   Module
	compiler Compiler
	refs     atomic.Int32
}

func (c *compiled) unref() {
	if c.refs.Add(-1) != 0 {
		return
	}
	if err := c.compiler.Destroy(c.module); err != nil {
		layerfx.Logger().Warn("shader: destroy program failed",
			"label", c.label, "err", err)
	}
}

// Program is a reference-counted handle to a compiled program.
//
// Each handle is released independently; releasing the same handle twice
// has no further effect.
type Program struct {
	c        *compiled
	released atomic.Bool
}

func newProgram(compiler Compiler, label, source string, module Module) *Program {
	c := &compiled{
		id:       programIDs.Add(1),
		label:    label,
		source:   source,
		module:   module,
		compiler: compiler,
	}
	c.refs.Store(1)
	return &Program{c: c}
}

// Clone returns a new handle to the same program.
// Cloning a released handle returns nil.
func (p *Program) Clone() *Program {
	if p == nil || p.released.Load() {
		return nil
	}
	p.c.refs.Add(1)
	return &Program{c: p.c}
}

// Release drops this handle. The module is destroyed with the last handle.
func (p *Program) Release() {
	if p == nil || !p.released.CompareAndSwap(false, true) {
		return
	}
	p.c.unref()
}

// Module returns the compiled driver object.
func (p *Program) Module() Module { return p.c.module }

// ID identifies the compiled program. Clones share the ID.
func (p *Program) ID() uint64 { return p.c.id }

// Label returns the debug label the program was compiled with.
func (p *Program) Label() string { return p.c.label }

// Source returns the unwrapped source the program was compiled from.
func (p *Program) Source() string { return p.c.source }

// Refs returns the number of live handles.
func (p *Program) Refs() int { return int(p.c.refs.Load()) }
