// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// NagaCompiler compiles WGSL with naga and creates HAL shader modules.
//
// With a nil device it only validates: Compile returns the SPIR-V words
// and Destroy is a no-op.
type NagaCompiler struct {
	device hal.Device
}

// NewNagaCompiler creates a compiler that creates modules on device.
func NewNagaCompiler(device hal.Device) *NagaCompiler {
	return &NagaCompiler{device: device}
}

// NewNagaCompilerFromProvider uses the HAL device shared by a host
// application. The provider must implement HalDevice() any returning a
// hal.Device.
func NewNagaCompilerFromProvider(provider gpucontext.DeviceProvider) (*NagaCompiler, error) {
	type halProvider interface {
		HalDevice() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, errors.New("shader: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, errors.New("shader: provider HalDevice is not hal.Device")
	}
	return NewNagaCompiler(device), nil
}

// CompileSPIRV compiles WGSL source to little-endian SPIR-V words.
func CompileSPIRV(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// Compile implements Compiler.
func (c *NagaCompiler) Compile(label, source string) (Module, error) {
	words, err := CompileSPIRV(source)
	if err != nil {
		return nil, err
	}
	if c.device == nil {
		return words, nil
	}

	module, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module %q: %w", label, err)
	}
	return module, nil
}

// Destroy implements Compiler.
func (c *NagaCompiler) Destroy(m Module) error {
	switch m := m.(type) {
	case hal.ShaderModule:
		if c.device == nil {
			return errors.New("shader: no device to destroy module")
		}
		c.device.DestroyShaderModule(m)
	case []uint32, nil:
	default:
		return fmt.Errorf("shader: unexpected module type %T", m)
	}
	return nil
}
