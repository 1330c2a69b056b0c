// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/layerfx"
	"github.com/gogpu/layerfx/shader"
)

// ErrShadersNotInitialized is returned by Context.Shaders before InitShaders.
var ErrShadersNotInitialized = errors.New("render: InitShaders must be called when creating the renderer")

// DeviceHandle provides GPU device access from the host compositor.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

var contextIDs atomic.Uint64

// Context is one rendering context and the programs compiled for it.
type Context struct {
	id     uint64
	format gputypes.TextureFormat

	mu      sync.Mutex
	shaders *shader.Registry
}

// NewContext creates a context rendering to the given format.
func NewContext(format gputypes.TextureFormat) *Context {
	return &Context{
		id:     contextIDs.Add(1),
		format: format,
	}
}

// NewContextFromDevice creates a context for the surface format of a
// host-provided device.
func NewContextFromDevice(handle DeviceHandle) *Context {
	return NewContext(handle.SurfaceFormat())
}

// ID uniquely identifies the context within the process.
func (c *Context) ID() uint64 { return c.id }

// Format returns the output texture format.
func (c *Context) Format() gputypes.TextureFormat { return c.format }

// InitShaders compiles the built-in programs with compiler.
//
// Calling it a second time is a bug: it is logged and the existing
// registry is kept.
func (c *Context) InitShaders(compiler shader.Compiler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.shaders != nil {
		layerfx.Logger().Error("render: shaders were already compiled", "context", c.id)
		return
	}
	c.shaders = shader.NewRegistry(compiler)
}

// Shaders returns the context's registry.
func (c *Context) Shaders() (*shader.Registry, error) {
	c.mu.Lock()
	reg := c.shaders
	c.mu.Unlock()

	if reg == nil {
		if debugChecks {
			panic(ErrShadersNotInitialized)
		}
		return nil, ErrShadersNotInitialized
	}
	return reg, nil
}

// MustShaders is like Shaders but panics when InitShaders was not called.
func (c *Context) MustShaders() *shader.Registry {
	reg, err := c.Shaders()
	if err != nil {
		panic(err)
	}
	return reg
}

// Program resolves a program from the context's registry. It returns nil
// when the registry is missing or has nothing for t.
func (c *Context) Program(t shader.ProgramType) *shader.Program {
	reg, err := c.Shaders()
	if err != nil {
		layerfx.Logger().Warn("render: no shader registry", "err", err)
		return nil
	}
	return reg.Program(t)
}

// Destroy releases the registry's programs.
func (c *Context) Destroy() {
	c.mu.Lock()
	reg := c.shaders
	c.shaders = nil
	c.mu.Unlock()

	if reg != nil {
		reg.Destroy()
	}
}

// NullDeviceHandle is a DeviceHandle without a GPU.
// Used for software rendering and tests.
type NullDeviceHandle struct {
	Format gputypes.TextureFormat
}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports a software adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "null", Type: gpucontext.AdapterTypeSoftware}
}

// SurfaceFormat returns the configured format.
func (h NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat { return h.Format }

var _ DeviceHandle = NullDeviceHandle{}
