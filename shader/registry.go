// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/layerfx"
	"github.com/gogpu/layerfx/internal/cache"
)

// ErrNotCustomizable is returned when an override is set for a fixed purpose.
var ErrNotCustomizable = errors.New("shader: program type is not customizable")

type builtin uint8

const (
	builtinBorder builtin = iota
	builtinShadow
	builtinClippedSurface
	builtinGradientFade
	builtinResize
	builtinOpen
	builtinClose

	numBuiltins
)

var builtinSources = [numBuiltins]struct {
	label  string
	family family
	source string
}{
	builtinBorder:         {"border", familyNone, borderShaderSource},
	builtinShadow:         {"shadow", familyNone, shadowShaderSource},
	builtinClippedSurface: {"clipped-surface", familyNone, clippedSurfaceShaderSource},
	builtinGradientFade:   {"gradient-fade", familyNone, gradientFadeShaderSource},
	builtinResize:         {"resize", familyResize, resizeShaderSource},
	builtinOpen:           {"open", familyOpen, openShaderSource},
	builtinClose:          {"close", familyClose, closeShaderSource},
}

// builtinFor returns the built-in program serving t.
func builtinFor(t ProgramType) builtin {
	switch t {
	case Border:
		return builtinBorder
	case Shadow:
		return builtinShadow
	case ClippedSurface:
		return builtinClippedSurface
	case GradientFade:
		return builtinGradientFade
	case WindowResize:
		return builtinResize
	}
	switch t.family() {
	case familyOpen:
		return builtinOpen
	case familyClose:
		return builtinClose
	}
	return numBuiltins
}

// Registry holds the compiled programs of one rendering context.
//
// Registry is safe for concurrent use, although compositors normally drive
// it from the thread that owns the rendering context.
type Registry struct {
	compiler Compiler

	mu       sync.RWMutex
	builtins [numBuiltins]*Program
	custom   [numProgramTypes]*Program

	filters *cache.Store[string, *Program]
}

// NewRegistry compiles every built-in program with c.
//
// A built-in that fails to compile is logged and left empty; purposes
// relying on it resolve to nil.
func NewRegistry(c Compiler) *Registry {
	r := &Registry{
		compiler: c,
		filters:  cache.New[string, *Program](),
	}
	for i, b := range builtinSources {
		prog, err := r.compile(b.label, b.family, b.source)
		if err != nil {
			layerfx.Logger().Warn("shader: compile built-in program failed",
				"program", b.label, "err", err)
			continue
		}
		r.builtins[i] = prog
	}
	return r
}

func (r *Registry) compile(label string, f family, src string) (*Program, error) {
	m, err := r.compiler.Compile(label, wrap(f, src))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", label, err)
	}
	return newProgram(r.compiler, label, src, m), nil
}

// Program resolves t to a program handle, or nil when none is available.
// The caller owns the returned handle and must Release it.
func (r *Registry) Program(t ProgramType) *Program {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t.Customizable() {
		if p := r.custom[t]; p != nil {
			return p.Clone()
		}
		if g := t.generic(); g != t {
			if p := r.custom[g]; p != nil {
				return p.Clone()
			}
		}
	}
	if b := builtinFor(t); b < numBuiltins {
		return r.builtins[b].Clone()
	}
	return nil
}

// CustomSource returns the source of the override installed for t.
func (r *Registry) CustomSource(t ProgramType) (string, bool) {
	if t >= numProgramTypes {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p := r.custom[t]; p != nil {
		return p.Source(), true
	}
	return "", false
}

// SetCustomProgram compiles src as the override for t and swaps it in.
// An empty src removes the override. An unchanged src is not recompiled.
//
// On compile failure the previous override stays installed.
func (r *Registry) SetCustomProgram(t ProgramType, src string) error {
	if !t.Customizable() {
		return fmt.Errorf("%w: %s", ErrNotCustomizable, t)
	}
	if cur, ok := r.CustomSource(t); ok && cur == src {
		return nil
	}

	var prog *Program
	if src != "" {
		var err error
		prog, err = r.compile("custom-"+t.String(), t.family(), src)
		if err != nil {
			layerfx.Logger().Warn("shader: compile custom program failed",
				"program", t.String(), "err", err)
			return err
		}
	}

	r.mu.Lock()
	prev := r.custom[t]
	r.custom[t] = prog
	r.mu.Unlock()

	prev.Release()
	return nil
}

// SetColorFilterPrograms makes the color-filter cache hold exactly srcs.
//
// Sources already cached are kept without recompiling; missing ones are
// compiled without holding the cache lock. Sources that fail to compile
// are logged, skipped, and reported in the joined error.
func (r *Registry) SetColorFilterPrograms(srcs []string) error {
	missing := r.filters.Missing(srcs)

	fresh := make(map[string]*Program, len(missing))
	var errs []error
	for _, src := range missing {
		prog, err := r.compile("color-filter", familyColorFilter, src)
		if err != nil {
			layerfx.Logger().Warn("shader: compile color filter failed", "err", err)
			errs = append(errs, err)
			continue
		}
		fresh[src] = prog
	}

	r.filters.Sync(srcs, fresh, func(_ string, p *Program) { p.Release() })
	return errors.Join(errs...)
}

// ColorFilterProgram returns a handle to the cached program for src.
func (r *Registry) ColorFilterProgram(src string) *Program {
	p, ok := r.filters.Get(src)
	if !ok {
		return nil
	}
	return p.Clone()
}

// ColorFilterCount returns the number of cached color-filter programs.
func (r *Registry) ColorFilterCount() int {
	return r.filters.Len()
}

// Destroy releases every program the registry holds.
// Handles cloned by callers stay valid until released.
func (r *Registry) Destroy() {
	r.mu.Lock()
	builtins := r.builtins
	custom := r.custom
	r.builtins = [numBuiltins]*Program{}
	r.custom = [numProgramTypes]*Program{}
	r.mu.Unlock()

	for _, p := range builtins {
		p.Release()
	}
	for _, p := range custom {
		p.Release()
	}
	r.filters.Clear(func(_ string, p *Program) { p.Release() })
}
