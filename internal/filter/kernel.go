// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"math"
	"sync"
)

// GaussianKernel generates a 1D Gaussian kernel with standard deviation
// sigma. The kernel is normalized so all values sum to 1.0.
//
// The kernel size is 2 * ceil(sigma * 3) + 1, which covers 99.7% of the
// distribution. For sigma <= 0 it returns the identity kernel [1.0].
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1.0}
	}

	halfSize := KernelHalfSize(sigma)
	size := halfSize*2 + 1
	kernel := make([]float32, size)

	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := range size {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	invSum := float32(1.0 / sum)
	for i := range kernel {
		kernel[i] *= invSum
	}
	return kernel
}

// KernelHalfSize returns how many pixels a blur with sigma reaches.
func KernelHalfSize(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	return int(math.Ceil(sigma * 3))
}

// kernelCache caches computed kernels keyed by sigma * 100.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int][]float32
	maxLen int
}

var defaultKernelCache = &kernelCache{cache: make(map[int][]float32), maxLen: 64}

func (c *kernelCache) get(sigma float64) []float32 {
	key := int(sigma * 100)

	c.mu.RLock()
	if kernel, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := GaussianKernel(float64(key) / 100)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		clear(c.cache)
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

// CachedGaussianKernel returns a cached kernel for sigma, quantized to 0.01.
func CachedGaussianKernel(sigma float64) []float32 {
	return defaultKernelCache.get(sigma)
}

// blurAlpha applies a separable Gaussian blur to a single-channel buffer
// in place, with edge extension.
func blurAlpha(buf []float32, width, height int, sigma float64) {
	kernel := CachedGaussianKernel(sigma)
	half := len(kernel) / 2
	if half == 0 {
		return
	}
	temp := make([]float32, len(buf))

	for y := range height {
		row := buf[y*width : (y+1)*width]
		for x := range width {
			var sum float32
			for k, w := range kernel {
				kx := min(max(x+k-half, 0), width-1)
				sum += row[kx] * w
			}
			temp[y*width+x] = sum
		}
	}

	for y := range height {
		for x := range width {
			var sum float32
			for k, w := range kernel {
				ky := min(max(y+k-half, 0), height-1)
				sum += temp[ky*width+x] * w
			}
			buf[y*width+x] = sum
		}
	}
}
