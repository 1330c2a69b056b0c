// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package filter provides the CPU image effects the software renderer uses
// where a GPU program would run:
//   - Gaussian blur kernels (separable, cached per radius)
//   - Rounded-rectangle box shadows (mask + blur + colorize)
package filter
