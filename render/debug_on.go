// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build layerfxdebug

package render

const debugChecks = true
