// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/layerfx/anim"
	"github.com/gogpu/layerfx/config"
	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/layershell"
	"github.com/gogpu/layerfx/render"
	"github.com/gogpu/layerfx/render/software"
	"github.com/gogpu/layerfx/shader"
)

// countingCompiler hands out unique modules and records destroys.
type countingCompiler struct {
	n         int
	destroyed []string
}

func (c *countingCompiler) Compile(label, src string) (shader.Module, error) {
	if strings.Contains(src, "BROKEN") {
		return nil, errors.New("syntax error")
	}
	c.n++
	return fmt.Sprintf("%s#%d", label, c.n), nil
}

func (c *countingCompiler) Destroy(m shader.Module) error {
	c.destroyed = append(c.destroyed, m.(string))
	return nil
}

func (c *countingCompiler) destroysOf(label string) int {
	n := 0
	for _, d := range c.destroyed {
		if strings.HasPrefix(d, label+"#") {
			n++
		}
	}
	return n
}

type harness struct {
	st     *State
	out    *Output
	layout *StaticLayout
	clock  *anim.Clock
	comp   *countingCompiler
}

func testConfig() *config.Config {
	cfg := config.Default()
	linear := func(ms int) config.Anim { return config.Anim{DurationMs: ms, Curve: "linear"} }
	a := &cfg.Animations
	a.LayerBarOpen, a.LayerBarClose = linear(100), linear(100)
	a.LayerLauncherOpen, a.LayerLauncherClose = linear(100), linear(100)
	a.LayerWallpaperOpen, a.LayerWallpaperClose = linear(400), linear(300)
	return cfg
}

func newHarness(t *testing.T, cfg *config.Config, opts ...Option) *harness {
	t.Helper()
	comp := &countingCompiler{}
	ctx := render.NewContext(gputypes.TextureFormatRGBA8Unorm)
	ctx.InitShaders(comp)
	t.Cleanup(ctx.Destroy)

	out := NewOutput("DP-1", geom.Sz(200, 100), 1)
	layout := NewStaticLayout(out)
	clock := anim.NewManualClock()
	opts = append([]Option{WithClock(clock)}, opts...)
	return &harness{
		st:     New(layout, cfg, software.New(ctx), opts...),
		out:    out,
		layout: layout,
		clock:  clock,
		comp:   comp,
	}
}

func redBuffer(w, h int) render.Buffer {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 255, A: 255}), image.Point{}, draw.Src)
	return render.Buffer{Image: img, Size: geom.Sz(float64(w), float64(h))}
}

// create adds a surface and performs its initial empty commit.
func (h *harness) create(t *testing.T, st layershell.State, namespace string) (*layershell.MemSurface, *layershell.LayerSurface) {
	t.Helper()
	s := layershell.NewMemSurface(st)
	l := h.st.NewLayerSurface(s, nil, st.Layer, namespace)
	require.NotNil(t, l)
	require.True(t, h.st.HandleCommit(s.ID()))
	return s, l
}

func (h *harness) attach(s *layershell.MemSurface, buffers ...render.Buffer) {
	s.Attach(buffers...)
	h.st.HandleCommit(s.ID())
}

func (h *harness) render(stacking layershell.Layer) []render.Element {
	var out []render.Element
	h.st.RenderLayer(h.out, render.TargetOutput, stacking, false, func(e render.Element) { out = append(out, e) })
	return out
}

// requireTracked checks a live surface is in exactly one of the sets.
func (h *harness) requireTracked(t *testing.T, id layershell.SurfaceID) {
	t.Helper()
	unmapped := h.st.IsUnmapped(id)
	mapped := h.st.Mapped(id) != nil
	require.True(t, unmapped != mapped, "unmapped=%v mapped=%v", unmapped, mapped)
}

var (
	wallpaperState = layershell.State{
		Anchor:        layershell.AnchorAll,
		ExclusiveZone: layershell.DontCare,
		Layer:         layershell.LayerBackground,
	}
	barState = layershell.State{
		Anchor:        layershell.AnchorTop | layershell.AnchorLeft | layershell.AnchorRight,
		ExclusiveZone: layershell.Exclusive(20),
		Layer:         layershell.LayerTop,
		Size:          geom.Sz(0, 20),
	}
	launcherState = layershell.State{
		Layer:                 layershell.LayerOverlay,
		KeyboardInteractivity: layershell.KeyboardOnDemand,
		Size:                  geom.Sz(100, 50),
	}
)

func TestNewLayerSurfaceWithoutOutput(t *testing.T) {
	h := newHarness(t, testConfig())
	h.layout.SetActive(nil)

	s := layershell.NewMemSurface(launcherState)
	assert.Nil(t, h.st.NewLayerSurface(s, nil, launcherState.Layer, "menu"))
	assert.True(t, s.Closed)
	assert.False(t, h.st.IsUnmapped(s.ID()))
	assert.False(t, h.st.HandleCommit(s.ID()), "rejected surfaces are unknown")
}

func TestNewLayerSurfaceExplicitOutput(t *testing.T) {
	h := newHarness(t, testConfig())
	second := NewOutput("HDMI-1", geom.Sz(300, 300), 2)
	h.layout.outputs = append(h.layout.outputs, second)

	s := layershell.NewMemSurface(launcherState)
	l := h.st.NewLayerSurface(s, second, launcherState.Layer, "menu")
	require.NotNil(t, l)
	assert.NotNil(t, second.Layers().LayerForSurface(s.ID()))
	assert.Nil(t, h.out.Layers().LayerForSurface(s.ID()))
	h.requireTracked(t, s.ID())
}

func TestInitialConfigure(t *testing.T) {
	h := newHarness(t, testConfig())
	h.out.SetTransform(layershell.Transform90)

	s, _ := h.create(t, barState, "bar")
	require.Len(t, s.Configures, 1)
	assert.Equal(t, geom.Sz(200, 20), s.Configures[0], "arranged before configuring")
	assert.Equal(t, 1.0, s.Scale)
	assert.Equal(t, layershell.Transform90, s.Transform)

	h.st.HandleCommit(s.ID())
	assert.Len(t, s.Configures, 1, "initial configure is sent once")
	h.requireTracked(t, s.ID())
}

func TestWallpaperMapThenNullCommit(t *testing.T) {
	cfg := testConfig()
	cfg.Animations.LayerWallpaperClose.CustomShader = "fn close_color() {}"
	h := newHarness(t, cfg)

	s, _ := h.create(t, wallpaperState, "wallpaper")
	id := s.ID()
	assert.True(t, h.st.IsUnmapped(id))

	h.attach(s, redBuffer(200, 100))
	h.requireTracked(t, id)
	m := h.st.Mapped(id)
	require.NotNil(t, m)
	open := m.OpenAnimation()
	require.NotNil(t, open)
	assert.Equal(t, shader.LayerWallpaperOpen, open.Program())

	h.clock.Advance(399 * time.Millisecond)
	assert.True(t, h.st.AreAnimationsOngoing(h.out), "wallpaper-open timing")
	h.clock.Advance(time.Millisecond)
	assert.False(t, h.st.AreAnimationsOngoing(h.out))

	h.attach(s)
	h.requireTracked(t, id)
	assert.Nil(t, h.st.Mapped(id))
	assert.True(t, h.st.IsUnmapped(id))
	require.Equal(t, 1, h.st.ClosingCount())
	assert.True(t, h.st.IsClosing(id))

	elems := h.render(layershell.LayerBackground)
	require.Len(t, elems, 1)
	se, ok := elems[0].(*render.ShaderElement)
	require.True(t, ok)
	assert.Equal(t, "custom-layer-wallpaper-close", se.Program.Label())
	assert.Equal(t, geom.R(0, 0, 200, 100), se.Dst)
	render.ReleaseAll(elems)

	h.clock.Advance(299 * time.Millisecond)
	h.st.AdvanceAnimations()
	assert.Equal(t, 1, h.st.ClosingCount(), "wallpaper-close timing")
	h.clock.Advance(time.Millisecond)
	h.st.AdvanceAnimations()
	assert.Equal(t, 0, h.st.ClosingCount())
	assert.False(t, h.st.AreAnimationsOngoing(h.out))
}

func TestRemapBeforeCloseFinishes(t *testing.T) {
	h := newHarness(t, testConfig())
	s, _ := h.create(t, barState, "bar")
	h.attach(s, redBuffer(200, 20))
	h.clock.Advance(time.Second)
	h.st.AdvanceAnimations()

	h.attach(s)
	require.Equal(t, 1, h.st.ClosingCount())

	h.clock.Advance(10 * time.Millisecond)
	h.attach(s, redBuffer(200, 20))
	assert.Equal(t, 0, h.st.ClosingCount(), "stale close entry is dropped")
	m := h.st.Mapped(s.ID())
	require.NotNil(t, m)
	assert.NotNil(t, m.OpenAnimation())
	h.requireTracked(t, s.ID())

	elems := h.render(layershell.LayerTop)
	assert.Len(t, elems, 1, "only the open animation draws")
	render.ReleaseAll(elems)
}

func TestEmptySnapshotSkipsClosing(t *testing.T) {
	h := newHarness(t, testConfig())
	s, _ := h.create(t, launcherState, "menu")

	// Content without a drawable image.
	h.attach(s, render.Buffer{Size: geom.Sz(100, 50)})
	require.NotNil(t, h.st.Mapped(s.ID()))

	h.attach(s)
	assert.Equal(t, 0, h.st.ClosingCount())
	h.requireTracked(t, s.ID())
}

func TestCommitAlreadyMappedRefreshesSnapshot(t *testing.T) {
	h := newHarness(t, testConfig())
	s, _ := h.create(t, launcherState, "menu")
	h.attach(s, redBuffer(100, 50))
	m := h.st.Mapped(s.ID())

	// Drop the snapshot taken while mapping, a new commit must store one.
	m.TakeUnmapSnapshot().Release()
	h.attach(s, redBuffer(100, 50))
	assert.Same(t, m, h.st.Mapped(s.ID()))
	snap := m.TakeUnmapSnapshot()
	require.NotNil(t, snap)
	assert.False(t, snap.IsEmpty())
}

func TestLayerDestroyed(t *testing.T) {
	h := newHarness(t, testConfig())

	s, _ := h.create(t, launcherState, "menu")
	h.attach(s, redBuffer(100, 50))
	require.Same(t, s, h.st.OnDemandFocus().Surface())

	h.st.LayerDestroyed(s)
	assert.False(t, h.st.IsUnmapped(s.ID()))
	assert.Nil(t, h.st.Mapped(s.ID()))
	assert.Nil(t, h.out.Layers().LayerForSurface(s.ID()))
	assert.Equal(t, 1, h.st.ClosingCount())
	assert.Nil(t, h.st.OnDemandFocus(), "focus request dropped with the surface")

	u, _ := h.create(t, barState, "bar")
	h.st.LayerDestroyed(u)
	assert.False(t, h.st.IsUnmapped(u.ID()))
	assert.Equal(t, 1, h.st.ClosingCount(), "unmapped surfaces do not animate")
	assert.Equal(t, geom.R(0, 0, 200, 100), h.out.Layers().NonExclusiveZone())
}

func TestSubsurfaceCommit(t *testing.T) {
	h := newHarness(t, testConfig())
	s, _ := h.create(t, barState, "bar")
	h.out.TakeRedraw()

	child := layershell.NewSurfaceID()
	require.NoError(t, h.st.Tree().SetParent(child, s.ID()))
	s.Attach(redBuffer(10, 10))

	assert.True(t, h.st.HandleCommit(child))
	assert.True(t, h.out.TakeRedraw())
	assert.True(t, h.st.IsUnmapped(s.ID()), "subsurface commits do not map the root")

	assert.False(t, h.st.HandleCommit(layershell.NewSurfaceID()))
}

func TestOnDemandFocusOnFirstMapOnly(t *testing.T) {
	h := newHarness(t, testConfig())
	s, l := h.create(t, launcherState, "menu")
	assert.Nil(t, h.st.OnDemandFocus())

	h.attach(s, redBuffer(100, 50))
	assert.Same(t, l, h.st.OnDemandFocus())

	h.st.ClearOnDemandFocus()
	h.attach(s, redBuffer(100, 50))
	assert.Nil(t, h.st.OnDemandFocus())

	b, _ := h.create(t, barState, "bar")
	h.attach(b, redBuffer(200, 20))
	assert.Nil(t, h.st.OnDemandFocus(), "keyboard-none surfaces never ask")
}

func TestOnDemandFocusClearedOnNullCommit(t *testing.T) {
	h := newHarness(t, testConfig())
	s, l := h.create(t, launcherState, "menu")
	h.attach(s, redBuffer(100, 50))
	require.Same(t, l, h.st.OnDemandFocus())

	h.attach(s)
	assert.True(t, h.st.IsUnmapped(s.ID()))
	assert.Nil(t, h.st.OnDemandFocus())
}

func TestRenderLayerOrder(t *testing.T) {
	h := newHarness(t, testConfig())
	first, _ := h.create(t, launcherState, "first")
	second, _ := h.create(t, launcherState, "second")
	h.attach(first, redBuffer(100, 50))
	h.attach(second, redBuffer(100, 50))
	h.clock.Advance(time.Second)
	h.st.AdvanceAnimations()

	assert.Empty(t, h.render(layershell.LayerTop))

	elems := h.render(layershell.LayerOverlay)
	require.Len(t, elems, 2)
	assert.Same(t, second.Contents()[0].Image, elems[0].(*render.SurfaceElement).Image, "latest on top")
	assert.Equal(t, geom.R(50, 25, 100, 50), elems[0].Geometry())

	var all []render.Element
	h.st.RenderOutput(h.out, render.TargetOutput, func(e render.Element) { all = append(all, e) })
	assert.Len(t, all, 2)
}

func TestBackdropSurfacesRenderSeparately(t *testing.T) {
	cfg := testConfig()
	cfg.LayerRules = []config.LayerRule{{PlaceWithinBackdrop: ptr(true)}}
	h := newHarness(t, cfg)

	s, _ := h.create(t, wallpaperState, "bg")
	h.attach(s, redBuffer(200, 100))
	h.clock.Advance(time.Second)
	h.st.AdvanceAnimations()

	assert.Empty(t, h.render(layershell.LayerBackground))
	var elems []render.Element
	h.st.RenderLayer(h.out, render.TargetOutput, layershell.LayerBackground, true, func(e render.Element) { elems = append(elems, e) })
	assert.Len(t, elems, 1)
}

func ptr[T any](v T) *T { return &v }

func TestNewPopupIsClamped(t *testing.T) {
	h := newHarness(t, testConfig())
	_, l := h.create(t, launcherState, "menu")

	p := layershell.Popup{
		Surface: layershell.BufferSurface{redBuffer(80, 40)},
		Offset:  geom.Pt(90, 40),
	}
	h.st.NewPopup(l, &p)
	assert.Equal(t, geom.Pt(70, 35), p.Offset)
}

func TestReloadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Animations.LayerBarOpen.CustomShader = "fn open_color() { a }"
	h := newHarness(t, cfg)

	reg := h.st.renderer.Context().MustShaders()
	src, ok := reg.CustomSource(shader.LayerBarOpen)
	require.True(t, ok)
	assert.Equal(t, "fn open_color() { a }", src)

	s, _ := h.create(t, barState, "bar")
	h.attach(s, redBuffer(200, 20))

	next := testConfig()
	next.Animations.LayerBarOpen.CustomShader = "fn open_color() { b }"
	next.Animations.LayerLauncherClose.CustomShader = "BROKEN"
	next.ColorFilters = []string{"fn color_filter() {}"}
	next.LayerRules = []config.LayerRule{{Opacity: ptr[float32](0.5)}}
	h.st.ReloadConfig(next)

	assert.Equal(t, 1, h.comp.destroysOf("custom-layer-bar-open"), "previous program destroyed once")
	_, ok = reg.CustomSource(shader.LayerLauncherClose)
	assert.False(t, ok, "broken source is not installed")
	assert.Equal(t, 1, reg.ColorFilterCount())
	assert.InDelta(t, 0.5, h.st.Mapped(s.ID()).Rules().Alpha(), 1e-6)

	h.st.ReloadConfig(next)
	assert.Equal(t, 1, h.comp.destroysOf("custom-layer-bar-open"), "unchanged source kept")
}

func TestReloadConfigClock(t *testing.T) {
	cfg := testConfig()
	h := newHarness(t, cfg)

	next := testConfig()
	next.Animations.Slowdown = 2
	next.Animations.Off = true
	h.st.ReloadConfig(next)
	assert.Equal(t, 0.5, h.clock.Rate())
	assert.True(t, h.clock.ShouldCompleteInstantly())

	s, _ := h.create(t, barState, "bar")
	h.attach(s, redBuffer(200, 20))
	assert.False(t, h.st.AreAnimationsOngoing(h.out))
}

func TestEndStartup(t *testing.T) {
	cfg := testConfig()
	cfg.LayerRules = []config.LayerRule{{
		Matches: []config.Match{{AtStartup: ptr(true)}},
		Opacity: ptr[float32](0.3),
	}}
	h := newHarness(t, cfg, AtStartup())

	s, _ := h.create(t, barState, "bar")
	h.attach(s, redBuffer(200, 20))
	assert.InDelta(t, 0.3, h.st.Mapped(s.ID()).Rules().Alpha(), 1e-6)

	h.st.EndStartup()
	assert.Equal(t, float32(1), h.st.Mapped(s.ID()).Rules().Alpha())
}

func TestOutputResized(t *testing.T) {
	h := newHarness(t, testConfig())
	s, l := h.create(t, barState, "bar")
	h.attach(s, redBuffer(200, 20))

	h.out.SetMode(geom.Sz(400, 200), 1)
	h.st.OutputResized(h.out)
	geo, ok := h.out.Layers().LayerGeometry(l)
	require.True(t, ok)
	assert.Equal(t, geom.R(0, 0, 400, 20), geo)
	assert.Equal(t, geom.Sz(400, 20), s.Configures[len(s.Configures)-1])
	assert.True(t, h.out.TakeRedraw())
}
