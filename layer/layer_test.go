// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
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

// stubCompiler fails the labels in fail.
type stubCompiler struct{ fail map[string]bool }

func (c stubCompiler) Compile(label, _ string) (shader.Module, error) {
	if c.fail[label] {
		return nil, errors.New("unsupported")
	}
	return label, nil
}

func (stubCompiler) Destroy(shader.Module) error { return nil }

func newRenderer(fail ...string) *software.Renderer {
	c := stubCompiler{fail: make(map[string]bool)}
	for _, f := range fail {
		c.fail[f] = true
	}
	ctx := render.NewContext(gputypes.TextureFormatRGBA8Unorm)
	ctx.InitShaders(c)
	return software.New(ctx)
}

func redBuffer(w, h int) render.Buffer {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 255, A: 255}), image.Point{}, draw.Src)
	return render.Buffer{Image: img, Size: geom.Sz(float64(w), float64(h))}
}

func newSurface(st layershell.State, namespace string) (*layershell.MemSurface, *layershell.LayerSurface) {
	s := layershell.NewMemSurface(st)
	s.Attach(redBuffer(100, 50))
	return s, layershell.NewLayerSurface(s, namespace)
}

func newMapped(t *testing.T, rules ResolvedRules) (*Mapped, *anim.Clock) {
	t.Helper()
	_, l := newSurface(layershell.State{Anchor: layershell.AnchorTop, Size: geom.Sz(100, 50)}, "test")
	clock := anim.NewManualClock()
	m := NewMapped(l, rules, geom.Sz(1000, 800), 1, clock, config.Default())
	m.UpdateRenderElements(geom.Sz(100, 50))
	return m, clock
}

func collect(fn func(push func(render.Element))) []render.Element {
	var out []render.Element
	fn(func(e render.Element) { out = append(out, e) })
	return out
}

func ptr[T any](v T) *T { return &v }

func TestResolveAnimationKind(t *testing.T) {
	tests := []struct {
		name string
		st   layershell.State
		want AnimationKind
	}{
		{"bar", layershell.State{Anchor: layershell.AnchorTop, ExclusiveZone: layershell.Exclusive(30)}, KindBar},
		{"bar on all edges", layershell.State{Anchor: layershell.AnchorAll, ExclusiveZone: layershell.Exclusive(1)}, KindBar},
		{"wallpaper", layershell.State{Anchor: layershell.AnchorAll, ExclusiveZone: layershell.DontCare}, KindWallpaper},
		{"wallpaper neutral", layershell.State{Anchor: layershell.AnchorAll}, KindWallpaper},
		{"launcher corner", layershell.State{Anchor: layershell.AnchorTop | layershell.AnchorLeft, ExclusiveZone: layershell.DontCare}, KindLauncher},
		{"launcher floating", layershell.State{}, KindLauncher},
		{"three edges", layershell.State{Anchor: layershell.AnchorTop | layershell.AnchorLeft | layershell.AnchorRight}, KindLauncher},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAnimationKind(tt.st))
		})
	}
}

func TestKindAnimations(t *testing.T) {
	a := config.Default().Animations
	a.LayerWallpaperOpen.DurationMs = 999
	a.LayerBarClose.DurationMs = 111

	cfg, prog := KindWallpaper.OpenAnim(&a)
	assert.Equal(t, 999, cfg.DurationMs)
	assert.Equal(t, shader.LayerWallpaperOpen, prog)

	cfg, prog = KindBar.CloseAnim(&a)
	assert.Equal(t, 111, cfg.DurationMs)
	assert.Equal(t, shader.LayerBarClose, prog)

	_, prog = KindLauncher.OpenAnim(&a)
	assert.Equal(t, shader.LayerLauncherOpen, prog)
	_, prog = KindLauncher.CloseAnim(&a)
	assert.Equal(t, shader.LayerLauncherClose, prog)
	assert.Equal(t, "wallpaper", KindWallpaper.String())
}

func TestComputeRules(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[[layer-rule]]
opacity = 0.5
block-out-from = "screencast"

[[layer-rule]]
match = [{ namespace = "^waybar$" }]
opacity = 0.9
shadow = { on = true, softness = 10.0 }

[[layer-rule]]
match = [{ namespace = "^way" }]
exclude = [{ at-startup = true }]
baba-is-float = true
`))
	require.NoError(t, err)

	r := ComputeRules(cfg.LayerRules, "waybar", false)
	assert.InDelta(t, 0.9, r.Alpha(), 1e-6)
	assert.True(t, r.Shadow.On)
	require.NotNil(t, r.Shadow.Softness)
	assert.Equal(t, 10.0, *r.Shadow.Softness)
	assert.Equal(t, config.BlockOutScreencast, r.BlockOutFrom)
	assert.True(t, r.BabaIsFloat)

	r = ComputeRules(cfg.LayerRules, "waybar", true)
	assert.False(t, r.BabaIsFloat, "excluded at startup")

	r = ComputeRules(cfg.LayerRules, "launcher", false)
	assert.InDelta(t, 0.5, r.Alpha(), 1e-6)
	assert.False(t, r.Shadow.On)

	assert.True(t, ComputeRules(cfg.LayerRules, "waybar", false).Equal(ComputeRules(cfg.LayerRules, "waybar", false)))
	assert.False(t, r.Equal(ComputeRules(cfg.LayerRules, "waybar", false)))
}

func TestRulesAlphaClamped(t *testing.T) {
	assert.Equal(t, float32(1), ResolvedRules{}.Alpha())
	assert.Equal(t, float32(1), ResolvedRules{Opacity: ptr[float32](3)}.Alpha())
	assert.Equal(t, float32(0), ResolvedRules{Opacity: ptr[float32](-1)}.Alpha())
}

func TestMappedShadowNeedsRule(t *testing.T) {
	r := newRenderer()
	cfg := config.Default()
	cfg.Layout.Shadow.On = true

	_, l := newSurface(layershell.State{Size: geom.Sz(100, 50)}, "x")
	m := NewMapped(l, ResolvedRules{}, geom.Sz(1000, 800), 1, anim.NewManualClock(), cfg)
	m.UpdateRenderElements(geom.Sz(100, 50))
	elems := collect(func(push func(render.Element)) { m.RenderNormal(r, geom.Pt(0, 0), render.TargetOutput, push) })
	require.Len(t, elems, 1, "layouts' shadow does not apply to layer surfaces")

	m = NewMapped(l, ResolvedRules{Shadow: config.ShadowRule{On: true}}, geom.Sz(1000, 800), 1, anim.NewManualClock(), cfg)
	m.UpdateRenderElements(geom.Sz(100, 50))
	elems = collect(func(push func(render.Element)) { m.RenderNormal(r, geom.Pt(0, 0), render.TargetOutput, push) })
	require.Len(t, elems, 2)
	assert.IsType(t, &render.SurfaceElement{}, elems[0])
	assert.IsType(t, &render.ShaderElement{}, elems[1], "shadow comes after the contents")
	render.ReleaseAll(elems)
}

func TestStartOpenAnimationIdempotent(t *testing.T) {
	m, clock := newMapped(t, ResolvedRules{})
	open := config.Anim{DurationMs: 100}

	assert.False(t, m.AreAnimationsOngoing())
	m.StartOpenAnimation(open, shader.LayerBarOpen)
	first := m.OpenAnimation()
	require.NotNil(t, first)

	clock.Advance(50 * time.Millisecond)
	m.StartOpenAnimation(config.Anim{DurationMs: 1000}, shader.LayerLauncherOpen)
	assert.Same(t, first, m.OpenAnimation())
	assert.True(t, m.AreAnimationsOngoing())

	clock.Advance(50 * time.Millisecond)
	assert.False(t, m.AreAnimationsOngoing(), "only the first animation runs")

	m.AdvanceAnimations()
	assert.Nil(t, m.OpenAnimation())

	m.StartOpenAnimation(open, shader.LayerBarOpen)
	require.NotNil(t, m.OpenAnimation())
	m.ResetOpenAnimationState()
	assert.Nil(t, m.OpenAnimation())
}

func TestBobOffset(t *testing.T) {
	m, clock := newMapped(t, ResolvedRules{})
	assert.Equal(t, geom.Point{}, m.BobOffset())

	m, clock = newMapped(t, ResolvedRules{BabaIsFloat: true})
	assert.True(t, m.AreAnimationsOngoing())

	// sin(0) - 1 = -1, so the surface starts one amplitude up.
	assert.Equal(t, geom.Pt(0, -8), m.BobOffset().RoundInPhysical(1))

	clock.Advance(900 * time.Millisecond)
	assert.Equal(t, geom.Pt(0, 0), m.BobOffset(), "top of the swing")

	assert.InDelta(t, -16, bobOffset(2700*time.Millisecond, 768), 1e-9)
}

func TestPlaceWithinBackdrop(t *testing.T) {
	tests := []struct {
		name string
		rule bool
		st   layershell.State
		want bool
	}{
		{"all set", true, layershell.State{Layer: layershell.LayerBackground, ExclusiveZone: layershell.DontCare}, true},
		{"no rule", false, layershell.State{Layer: layershell.LayerBackground, ExclusiveZone: layershell.DontCare}, false},
		{"wrong layer", true, layershell.State{Layer: layershell.LayerBottom, ExclusiveZone: layershell.DontCare}, false},
		{"neutral zone", true, layershell.State{Layer: layershell.LayerBackground}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, l := newSurface(tt.st, "bg")
			m := NewMapped(l, ResolvedRules{PlaceWithinBackdrop: tt.rule}, geom.Sz(10, 10), 1, anim.NewManualClock(), config.Default())
			assert.Equal(t, tt.want, m.PlaceWithinBackdrop())
		})
	}
}

func TestRecomputeLayerRules(t *testing.T) {
	m, _ := newMapped(t, ResolvedRules{})
	var rules []config.LayerRule
	assert.False(t, m.RecomputeLayerRules(rules, false))

	rules = append(rules, config.LayerRule{Opacity: ptr[float32](0.5)})
	assert.True(t, m.RecomputeLayerRules(rules, false))
	assert.False(t, m.RecomputeLayerRules(rules, false))
	assert.InDelta(t, 0.5, m.Rules().Alpha(), 1e-6)
}

func TestRenderNormalDirect(t *testing.T) {
	r := newRenderer()
	m, _ := newMapped(t, ResolvedRules{Opacity: ptr[float32](0.5)})

	elems := collect(func(push func(render.Element)) { m.RenderNormal(r, geom.Pt(10, 20), render.TargetOutput, push) })
	require.Len(t, elems, 1)
	se := elems[0].(*render.SurfaceElement)
	assert.Equal(t, geom.R(10, 20, 100, 50), se.Dst)
	assert.Equal(t, float32(0.5), se.Alpha)
	assert.Nil(t, m.OffscreenData())
}

func TestRenderNormalOpenAnimation(t *testing.T) {
	r := newRenderer()
	m, clock := newMapped(t, ResolvedRules{})
	m.StartOpenAnimation(config.Anim{DurationMs: 100}, shader.LayerWallpaperOpen)
	clock.Advance(50 * time.Millisecond)

	elems := collect(func(push func(render.Element)) { m.RenderNormal(r, geom.Pt(10, 20), render.TargetOutput, push) })
	require.Len(t, elems, 1)
	se, ok := elems[0].(*render.ShaderElement)
	require.True(t, ok, "built-in open program is used")
	assert.Equal(t, geom.R(10, 20, 100, 50), se.Dst)
	require.NotNil(t, se.Texture)
	assert.Equal(t, image.Pt(100, 50), se.Texture.Size())
	require.NotNil(t, se.Fallback)

	data := m.OffscreenData()
	require.NotNil(t, data)
	assert.Equal(t, se.ID(), data.ID)
	assert.Len(t, data.Elements, 1)
	render.ReleaseAll(elems)

	// Offscreen bookkeeping is reset on every frame.
	m.ResetOpenAnimationState()
	elems = collect(func(push func(render.Element)) { m.RenderNormal(r, geom.Pt(0, 0), render.TargetOutput, push) })
	assert.Nil(t, m.OffscreenData())
	assert.IsType(t, &render.SurfaceElement{}, elems[0])
}

func TestRenderNormalOpenFallback(t *testing.T) {
	r := newRenderer("open")
	m, clock := newMapped(t, ResolvedRules{})
	m.StartOpenAnimation(config.Anim{DurationMs: 100}, shader.LayerBarOpen)
	clock.Advance(50 * time.Millisecond)

	elems := collect(func(push func(render.Element)) { m.RenderNormal(r, geom.Pt(0, 0), render.TargetOutput, push) })
	require.Len(t, elems, 1)
	te, ok := elems[0].(*render.TextureElement)
	require.True(t, ok)
	assert.InDelta(t, 0.5, te.Alpha, 1e-6)
	assert.Equal(t, geom.R(12.5, 6.25, 75, 37.5), te.Dst)
}

func TestRenderNormalOpenAnimationOff(t *testing.T) {
	r := newRenderer("open")
	m, _ := newMapped(t, ResolvedRules{})
	m.StartOpenAnimation(config.Anim{Off: true}, shader.LayerBarOpen)
	assert.False(t, m.AreAnimationsOngoing())

	// Not advanced yet: the finished animation must draw at full progress.
	elems := collect(func(push func(render.Element)) { m.RenderNormal(r, geom.Pt(0, 0), render.TargetOutput, push) })
	require.Len(t, elems, 1)
	te, ok := elems[0].(*render.TextureElement)
	require.True(t, ok)
	assert.InDelta(t, 1, te.Alpha, 1e-6)
	assert.Equal(t, geom.R(0, 0, 100, 50), te.Dst)
	render.ReleaseAll(elems)
}

func TestRenderNormalOpenDegenerate(t *testing.T) {
	r := newRenderer()
	s, l := newSurface(layershell.State{}, "empty")
	s.Attach()
	m := NewMapped(l, ResolvedRules{}, geom.Sz(10, 10), 1, anim.NewManualClock(), config.Default())
	m.StartOpenAnimation(config.Anim{DurationMs: 100}, shader.LayerBarOpen)

	elems := collect(func(push func(render.Element)) { m.RenderNormal(r, geom.Pt(0, 0), render.TargetOutput, push) })
	assert.Empty(t, elems)
	assert.Nil(t, m.OffscreenData())
}

func TestRenderNormalOpenUsesBufferExtent(t *testing.T) {
	r := newRenderer()
	// A stretched surface commits size 0 and lets the buffer decide.
	_, l := newSurface(layershell.State{Anchor: layershell.AnchorAll}, "bg")
	m := NewMapped(l, ResolvedRules{}, geom.Sz(10, 10), 1, anim.NewManualClock(), config.Default())
	m.StartOpenAnimation(config.Anim{DurationMs: 100}, shader.LayerWallpaperOpen)

	elems := collect(func(push func(render.Element)) { m.RenderNormal(r, geom.Pt(0, 0), render.TargetOutput, push) })
	require.Len(t, elems, 1)
	assert.Equal(t, geom.Sz(100, 50), elems[0].Geometry().Size)
	render.ReleaseAll(elems)
}

func TestRenderNormalBlockOut(t *testing.T) {
	r := newRenderer()
	m, _ := newMapped(t, ResolvedRules{BlockOutFrom: config.BlockOutScreencast})
	m.StartOpenAnimation(config.Anim{DurationMs: 100}, shader.LayerBarOpen)

	elems := collect(func(push func(render.Element)) { m.RenderNormal(r, geom.Pt(5, 5), render.TargetScreencast, push) })
	require.Len(t, elems, 1)
	sc, ok := elems[0].(*render.SolidColorElement)
	require.True(t, ok, "blocked targets never see the contents")
	assert.Equal(t, geom.R(5, 5, 100, 50), sc.Dst)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, sc.Color)

	elems = collect(func(push func(render.Element)) { m.RenderNormal(r, geom.Pt(5, 5), render.TargetScreenCapture, push) })
	assert.IsType(t, &render.ShaderElement{}, elems[0], "screen capture is not blocked")
	render.ReleaseAll(elems)
}

func TestRenderPopups(t *testing.T) {
	s, l := newSurface(layershell.State{Size: geom.Sz(100, 50)}, "menu")
	s.SetPopups(layershell.Popup{
		Surface: layershell.BufferSurface{redBuffer(20, 30)},
		Offset:  geom.Pt(10, 40),
	})

	m := NewMapped(l, ResolvedRules{}, geom.Sz(10, 10), 2, anim.NewManualClock(), config.Default())
	elems := collect(func(push func(render.Element)) { m.RenderPopups(geom.Pt(1, 1), render.TargetOutput, push) })
	require.Len(t, elems, 1)
	assert.Equal(t, geom.R(22, 82, 40, 60), elems[0].Geometry())

	m = NewMapped(l, ResolvedRules{BlockOutFrom: config.BlockOutScreenCapture}, geom.Sz(10, 10), 1, anim.NewManualClock(), config.Default())
	elems = collect(func(push func(render.Element)) { m.RenderPopups(geom.Pt(0, 0), render.TargetScreenCapture, push) })
	assert.Empty(t, elems)
}

func TestStoreUnmapSnapshot(t *testing.T) {
	r := newRenderer()
	m, _ := newMapped(t, ResolvedRules{BlockOutFrom: config.BlockOutScreencast})
	assert.Nil(t, m.TakeUnmapSnapshot())

	m.StoreUnmapSnapshot(r)
	m.StoreUnmapSnapshot(r)
	snap := m.TakeUnmapSnapshot()
	require.NotNil(t, snap)
	assert.Nil(t, m.TakeUnmapSnapshot())

	require.Len(t, snap.Contents, 1)
	assert.IsType(t, &render.SurfaceElement{}, snap.Contents[0])
	assert.Equal(t, geom.Pt(0, 0), snap.Contents[0].Geometry().Loc)
	require.Len(t, snap.BlockedOutContents, 1)
	assert.IsType(t, &render.SolidColorElement{}, snap.BlockedOutContents[0])
	assert.Equal(t, config.BlockOutScreencast, snap.BlockOutFrom)
	assert.Equal(t, geom.Sz(100, 50), snap.Size)
	assert.False(t, snap.IsEmpty())
}

func closingFor(t *testing.T, r render.Renderer, rules ResolvedRules) (*Closing, *anim.Clock) {
	t.Helper()
	m, clock := newMapped(t, rules)
	m.StoreUnmapSnapshot(r)
	a := anim.New(clock, 0, 1, 0, anim.Easing(100*time.Millisecond, anim.Linear))
	c, err := NewClosing(r, m.TakeUnmapSnapshot(), 1, geom.R(10, 10, 100, 50), a, shader.LayerBarClose)
	require.NoError(t, err)
	return c, clock
}

func TestClosing(t *testing.T) {
	r := newRenderer()
	c, clock := closingFor(t, r, ResolvedRules{})

	e := c.Render(r, render.TargetOutput)
	require.NotNil(t, e)
	se, ok := e.(*render.ShaderElement)
	require.True(t, ok)
	assert.Equal(t, geom.R(10, 10, 100, 50), se.Dst)
	render.ReleaseAll([]render.Element{e})

	assert.False(t, c.IsDone())
	clock.Advance(100 * time.Millisecond)
	assert.True(t, c.IsDone())
	assert.Equal(t, geom.R(10, 10, 100, 50), c.Geometry())
}

func TestClosingFallbackFades(t *testing.T) {
	r := newRenderer("close")
	c, clock := closingFor(t, r, ResolvedRules{})

	clock.Advance(25 * time.Millisecond)
	te, ok := c.Render(r, render.TargetOutput).(*render.TextureElement)
	require.True(t, ok)
	assert.InDelta(t, 0.75, te.Alpha, 1e-6)
	assert.Equal(t, geom.R(10, 10, 100, 50), te.Dst)
}

func TestClosingBlockedOutVariant(t *testing.T) {
	r := newRenderer("close")
	c, _ := closingFor(t, r, ResolvedRules{BlockOutFrom: config.BlockOutScreencast})

	out := c.Render(r, render.TargetOutput).(*render.TextureElement)
	cast := c.Render(r, render.TargetScreencast).(*render.TextureElement)
	assert.NotSame(t, out.Texture, cast.Texture)

	img := cast.Texture.(*render.ImageTexture).Img
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(50, 25), "placeholder is black")
	img = out.Texture.(*render.ImageTexture).Img
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(50, 25))
}

func TestNewClosingErrors(t *testing.T) {
	r := newRenderer()
	clock := anim.NewManualClock()
	a := anim.New(clock, 0, 1, 0, anim.Config{})

	_, err := NewClosing(r, nil, 1, geom.R(0, 0, 10, 10), a, shader.LayerBarClose)
	assert.ErrorIs(t, err, ErrEmptySnapshot)

	_, err = NewClosing(r, &render.Snapshot{}, 1, geom.R(0, 0, 10, 10), a, shader.LayerBarClose)
	assert.ErrorIs(t, err, ErrEmptySnapshot)

	snap := &render.Snapshot{Contents: []render.Element{render.NewSolidColorElement(geom.R(0, 0, 1, 1), [4]float32{1, 1, 1, 1}, 1)}}
	_, err = NewClosing(r, snap, 1, geom.Rect{}, a, shader.LayerBarClose)
	assert.ErrorIs(t, err, ErrEmptyGeometry)
}
