// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "fmt"

// ProgramType identifies the purpose a program serves.
type ProgramType uint8

const (
	Border ProgramType = iota
	Shadow
	ClippedSurface
	GradientFade
	WindowResize
	WindowClose
	WindowOpen
	LayerClose
	LayerOpen
	LayerBarClose
	LayerBarOpen
	LayerWallpaperClose
	LayerWallpaperOpen
	LayerLauncherClose
	LayerLauncherOpen

	numProgramTypes
)

var programTypeNames = [numProgramTypes]string{
	Border:              "border",
	Shadow:              "shadow",
	ClippedSurface:      "clipped-surface",
	GradientFade:        "gradient-fade",
	WindowResize:        "window-resize",
	WindowClose:         "window-close",
	WindowOpen:          "window-open",
	LayerClose:          "layer-close",
	LayerOpen:           "layer-open",
	LayerBarClose:       "layer-bar-close",
	LayerBarOpen:        "layer-bar-open",
	LayerWallpaperClose: "layer-wallpaper-close",
	LayerWallpaperOpen:  "layer-wallpaper-open",
	LayerLauncherClose:  "layer-launcher-close",
	LayerLauncherOpen:   "layer-launcher-open",
}

// String returns the kebab-case name of the purpose.
func (t ProgramType) String() string {
	if t < numProgramTypes {
		return programTypeNames[t]
	}
	return fmt.Sprintf("ProgramType(%d)", uint8(t))
}

// Customizable reports whether a user override can be installed for t.
// Border, Shadow, ClippedSurface and GradientFade are fixed.
func (t ProgramType) Customizable() bool {
	return t >= WindowResize && t < numProgramTypes
}

// ProgramTypes returns every purpose in declaration order.
func ProgramTypes() []ProgramType {
	out := make([]ProgramType, numProgramTypes)
	for i := range out {
		out[i] = ProgramType(i)
	}
	return out
}

// family selects the prelude/epilogue pair a source is wrapped with.
type family uint8

const (
	familyNone family = iota
	familyResize
	familyOpen
	familyClose
	familyColorFilter
)

func (t ProgramType) family() family {
	switch t {
	case WindowResize:
		return familyResize
	case WindowOpen, LayerOpen, LayerBarOpen, LayerWallpaperOpen, LayerLauncherOpen:
		return familyOpen
	case WindowClose, LayerClose, LayerBarClose, LayerWallpaperClose, LayerLauncherClose:
		return familyClose
	default:
		return familyNone
	}
}

// generic returns the generic layer purpose a kind-specific purpose falls
// back to, or t itself when there is none.
func (t ProgramType) generic() ProgramType {
	switch t {
	case LayerBarClose, LayerWallpaperClose, LayerLauncherClose:
		return LayerClose
	case LayerBarOpen, LayerWallpaperOpen, LayerLauncherOpen:
		return LayerOpen
	default:
		return t
	}
}
