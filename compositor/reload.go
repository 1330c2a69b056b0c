// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"github.com/gogpu/layerfx"
	"github.com/gogpu/layerfx/config"
	"github.com/gogpu/layerfx/shader"
)

// ReloadConfig applies a new configuration: animation clock settings,
// layer rules and shadows of mapped surfaces, custom shader programs and
// color filters.
func (s *State) ReloadConfig(cfg *config.Config) {
	s.config = cfg
	s.applyClockConfig()

	for id, m := range s.mapped {
		changed := m.RecomputeLayerRules(cfg.LayerRules, s.atStartup)
		m.UpdateConfig(cfg)
		if out := s.outputOf(id); out != nil {
			if changed {
				s.OutputResized(out)
			}
			out.queueRedraw()
		}
	}

	s.reloadShaders()
	for _, o := range s.layout.Outputs() {
		o.queueRedraw()
	}
}

func (s *State) recomputeRules() {
	for id, m := range s.mapped {
		if !m.RecomputeLayerRules(s.config.LayerRules, s.atStartup) {
			continue
		}
		m.UpdateConfig(s.config)
		if out := s.outputOf(id); out != nil {
			s.OutputResized(out)
		}
	}
}

func (s *State) reloadShaders() {
	reg, err := s.renderer.Context().Shaders()
	if err != nil {
		layerfx.Logger().Warn("compositor: cannot reload shaders", "err", err)
		return
	}

	for t, src := range customShaders(&s.config.Animations) {
		// Failures are logged by the registry and keep the previous program.
		_ = reg.SetCustomProgram(t, src)
	}
	_ = reg.SetColorFilterPrograms(s.config.ColorFilters)
}

// customShaders maps every customizable purpose to its configured source.
func customShaders(a *config.Animations) map[shader.ProgramType]string {
	return map[shader.ProgramType]string{
		shader.WindowResize:        a.WindowResize.CustomShader,
		shader.WindowOpen:          a.WindowOpen.CustomShader,
		shader.WindowClose:         a.WindowClose.CustomShader,
		shader.LayerOpen:           a.LayerOpen.CustomShader,
		shader.LayerClose:          a.LayerClose.CustomShader,
		shader.LayerBarOpen:        a.LayerBarOpen.CustomShader,
		shader.LayerBarClose:       a.LayerBarClose.CustomShader,
		shader.LayerWallpaperOpen:  a.LayerWallpaperOpen.CustomShader,
		shader.LayerWallpaperClose: a.LayerWallpaperClose.CustomShader,
		shader.LayerLauncherOpen:   a.LayerLauncherOpen.CustomShader,
		shader.LayerLauncherClose:  a.LayerLauncherClose.CustomShader,
	}
}
