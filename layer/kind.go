// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"github.com/gogpu/layerfx/config"
	"github.com/gogpu/layerfx/layershell"
	"github.com/gogpu/layerfx/shader"
)

// AnimationKind classifies a layer surface for its open and close
// transitions.
type AnimationKind uint8

const (
	// KindBar is a surface reserving an exclusive zone, like a panel.
	KindBar AnimationKind = iota
	// KindWallpaper is a non-exclusive surface stretched over all four edges.
	KindWallpaper
	// KindLauncher is everything else.
	KindLauncher
)

func (k AnimationKind) String() string {
	switch k {
	case KindBar:
		return "bar"
	case KindWallpaper:
		return "wallpaper"
	case KindLauncher:
		return "launcher"
	}
	return "unknown"
}

// ResolveAnimationKind classifies a surface from its committed state.
func ResolveAnimationKind(st layershell.State) AnimationKind {
	switch {
	case st.ExclusiveZone.IsExclusive():
		return KindBar
	case st.Anchor == layershell.AnchorAll:
		return KindWallpaper
	default:
		return KindLauncher
	}
}

// OpenAnim returns the open timing and program for the kind.
func (k AnimationKind) OpenAnim(a *config.Animations) (config.Anim, shader.ProgramType) {
	switch k {
	case KindBar:
		return a.LayerBarOpen, shader.LayerBarOpen
	case KindWallpaper:
		return a.LayerWallpaperOpen, shader.LayerWallpaperOpen
	default:
		return a.LayerLauncherOpen, shader.LayerLauncherOpen
	}
}

// CloseAnim returns the close timing and program for the kind.
func (k AnimationKind) CloseAnim(a *config.Animations) (config.Anim, shader.ProgramType) {
	switch k {
	case KindBar:
		return a.LayerBarClose, shader.LayerBarClose
	case KindWallpaper:
		return a.LayerWallpaperClose, shader.LayerWallpaperClose
	default:
		return a.LayerLauncherClose, shader.LayerLauncherClose
	}
}
