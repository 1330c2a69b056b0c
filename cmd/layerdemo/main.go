// Command layerdemo plays a scripted layer-shell session and writes every
// frame as a PNG.
//
// A wallpaper, a bar and a launcher map one after another; the launcher
// then unmaps with a null commit and the bar is destroyed, so the frames
// show open and close animations of every kind.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/layerfx"
	"github.com/gogpu/layerfx/anim"
	"github.com/gogpu/layerfx/compositor"
	"github.com/gogpu/layerfx/config"
	"github.com/gogpu/layerfx/geom"
	"github.com/gogpu/layerfx/layershell"
	"github.com/gogpu/layerfx/render"
	"github.com/gogpu/layerfx/render/software"
	"github.com/gogpu/layerfx/shader"
)

func main() {
	var (
		width   = flag.Int("width", 640, "output width in logical pixels")
		height  = flag.Int("height", 400, "output height in logical pixels")
		scale   = flag.Float64("scale", 1, "output scale")
		frames  = flag.Int("frames", 60, "number of frames")
		fps     = flag.Int("fps", 30, "frames per second")
		outDir  = flag.String("output", "frames", "output directory")
		cfgPath = flag.String("config", "", "TOML config file")
		watch   = flag.Bool("watch", false, "reload the config file when it changes")
		verbose = flag.Bool("v", false, "log lifecycle events")
	)
	flag.Parse()

	if *frames < 8 {
		log.Fatalf("Need at least 8 frames, got %d", *frames)
	}

	if *verbose {
		layerfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reloads := make(chan *config.Config, 1)
	if *watch && *cfgPath != "" {
		go func() {
			err := config.Watch(ctx, *cfgPath, func(c *config.Config) {
				select {
				case reloads <- c:
				default:
				}
			})
			if err != nil && ctx.Err() == nil {
				log.Printf("Config watch stopped: %v", err)
			}
		}()
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	rctx := render.NewContextFromDevice(render.NullDeviceHandle{Format: gputypes.TextureFormatRGBA8Unorm})
	// Without a device, naga only validates the WGSL.
	rctx.InitShaders(shader.NewNagaCompiler(nil))
	defer rctx.Destroy()
	renderer := software.New(rctx)

	out := compositor.NewOutput("demo-1", geom.Sz(float64(*width), float64(*height)), *scale)
	clock := anim.NewManualClock()
	st := compositor.New(compositor.NewStaticLayout(out), cfg, renderer, compositor.WithClock(clock))

	s := newScript(st, *width, *height, *frames)
	frameTime := time.Second / time.Duration(max(*fps, 1))
	px := geom.Sz(float64(*width), float64(*height)).ToPhysicalRound(*scale)

	for i := range *frames {
		if ctx.Err() != nil {
			break
		}
		select {
		case c := <-reloads:
			st.ReloadConfig(c)
			log.Printf("Config reloaded")
		default:
		}

		s.step(i)
		st.AdvanceAnimations()

		var elems []render.Element
		st.RenderOutput(out, render.TargetOutput, func(e render.Element) { elems = append(elems, e) })

		img := image.NewRGBA(image.Rect(0, 0, int(px.W), int(px.H)))
		draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
		err := renderer.Draw(img, elems)
		render.ReleaseAll(elems)
		if err != nil {
			log.Fatalf("Failed to render frame %d: %v", i, err)
		}

		name := filepath.Join(*outDir, fmt.Sprintf("frame_%03d.png", i))
		if err := savePNG(name, img); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		clock.Advance(frameTime)
	}

	log.Printf("Wrote %d frames to %s (%dx%d)\n", *frames, *outDir, int(px.W), int(px.H))
}

// script maps and unmaps the demo surfaces at fixed frames.
type script struct {
	st     *compositor.State
	w, h   int
	frames int

	wallpaper, bar, launcher *layershell.MemSurface
}

func newScript(st *compositor.State, w, h, frames int) *script {
	return &script{st: st, w: w, h: h, frames: frames}
}

func (s *script) step(i int) {
	switch i {
	case 0:
		s.wallpaper = s.create(layershell.State{
			Anchor:        layershell.AnchorAll,
			ExclusiveZone: layershell.DontCare,
			Layer:         layershell.LayerBackground,
		}, "wallpaper")
		s.commit(s.wallpaper, gradient(s.w, s.h, color.RGBA{40, 60, 120, 255}, color.RGBA{120, 40, 90, 255}))
	case s.frames / 6:
		s.bar = s.create(layershell.State{
			Anchor:        layershell.AnchorTop | layershell.AnchorLeft | layershell.AnchorRight,
			ExclusiveZone: layershell.Exclusive(28),
			Layer:         layershell.LayerTop,
			Size:          geom.Sz(0, 28),
		}, "bar")
		s.commit(s.bar, gradient(s.w, 28, color.RGBA{30, 30, 30, 255}, color.RGBA{60, 60, 60, 255}))
	case s.frames / 3:
		s.launcher = s.create(layershell.State{
			Layer:                 layershell.LayerOverlay,
			KeyboardInteractivity: layershell.KeyboardOnDemand,
			Size:                  geom.Sz(float64(s.w/2), float64(s.h/3)),
		}, "launcher")
		s.commit(s.launcher, gradient(s.w/2, s.h/3, color.RGBA{230, 230, 230, 255}, color.RGBA{180, 190, 210, 255}))
	case s.frames / 2:
		s.launcher.Attach()
		s.st.HandleCommit(s.launcher.ID())
	case s.frames * 3 / 4:
		s.st.LayerDestroyed(s.bar)
	}
}

// create adds a surface and does the initial empty commit.
func (s *script) create(st layershell.State, namespace string) *layershell.MemSurface {
	surf := layershell.NewMemSurface(st)
	if s.st.NewLayerSurface(surf, nil, st.Layer, namespace) == nil {
		log.Fatalf("No output for %s", namespace)
	}
	s.st.HandleCommit(surf.ID())
	return surf
}

func (s *script) commit(surf *layershell.MemSurface, img *image.RGBA) {
	b := img.Bounds()
	surf.Attach(render.Buffer{Image: img, Size: geom.Sz(float64(b.Dx()), float64(b.Dy()))})
	s.st.HandleCommit(surf.ID())
}

// gradient returns a vertical gradient from top to bottom.
func gradient(w, h int, top, bottom color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	for y := range img.Bounds().Dy() {
		t := float64(y) / float64(max(h-1, 1))
		c := color.RGBA{
			R: lerp(top.R, bottom.R, t),
			G: lerp(top.G, bottom.G, t),
			B: lerp(top.B, bottom.B, t),
			A: 255,
		}
		draw.Draw(img, image.Rect(0, y, img.Bounds().Dx(), y+1), image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
