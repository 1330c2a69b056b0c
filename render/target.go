// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/layerfx/config"

// Target is what a frame is being rendered for.
type Target uint8

const (
	// TargetOutput is a regular frame on a monitor.
	TargetOutput Target = iota
	// TargetScreencast is a frame for a screencast stream.
	TargetScreencast
	// TargetScreenCapture is a frame for a screenshot or screen copy.
	TargetScreenCapture
)

func (t Target) String() string {
	switch t {
	case TargetOutput:
		return "output"
	case TargetScreencast:
		return "screencast"
	case TargetScreenCapture:
		return "screen-capture"
	}
	return "unknown"
}

// ShouldBlockOut reports whether a surface with policy b must be hidden on t.
//
// BlockOutScreencast hides from screencasts only. BlockOutScreenCapture
// hides from screencasts and screen captures. Outputs are never blocked.
func (t Target) ShouldBlockOut(b config.BlockOutFrom) bool {
	switch b {
	case config.BlockOutScreencast:
		return t == TargetScreencast
	case config.BlockOutScreenCapture:
		return t != TargetOutput
	}
	return false
}
