// Package viewer runs the toon sphere in an SDL window with keyboard and
// mouse controls.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/toon-sphere/internal/config"
	"github.com/Faultbox/toon-sphere/internal/engine/debug"
	"github.com/Faultbox/toon-sphere/internal/engine/gpu"
	"github.com/Faultbox/toon-sphere/internal/engine/input"
	"github.com/Faultbox/toon-sphere/internal/engine/window"
	"github.com/Faultbox/toon-sphere/internal/logger"
	"github.com/Faultbox/toon-sphere/internal/scene"
)

// pausedPollDelay is how long the paused loop sleeps between event polls, in ms.
const pausedPollDelay = 16

// Viewer is the SDL host for the frame renderer.
type Viewer struct {
	cfg      *config.Config
	window   *window.Window
	input    *input.Input
	scene    *Scene
	controls *Controls
	watcher  *scene.Watcher
	shots    *debug.ScreenshotCapture

	screenshotRequested bool
}

// New opens the window and performs setup. Asset decoding runs
// concurrently with window creation; GPU uploads happen once both are done.
func New(ctx context.Context, cfg *config.Config) (*Viewer, error) {
	type loaded struct {
		assets *Assets
		err    error
	}
	pending := make(chan loaded, 1)
	go func() {
		a, err := LoadAssets(ctx, cfg.Assets)
		pending <- loaded{a, err}
	}()

	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer resources AFTER window, since the OpenGL context must exist
	if err := gpu.Init(); err != nil {
		win.Close()
		return nil, err
	}

	var res loaded
	select {
	case res = <-pending:
	case <-ctx.Done():
		win.Close()
		return nil, ctx.Err()
	}
	if res.err != nil {
		win.Close()
		return nil, fmt.Errorf("loading assets: %w", res.err)
	}

	sc, err := NewScene(cfg, res.assets, win)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("setting up scene: %w", err)
	}

	v := &Viewer{
		cfg:    cfg,
		window: win,
		input:  input.New(),
		scene:  sc,
		controls: &Controls{
			Params:   sc.Params,
			Camera:   sc.Camera,
			Renderer: sc.Renderer,
		},
		shots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "toonsphere",
			debug.ParseFormat(cfg.Debug.ScreenshotFormat)),
	}

	if cfg.Assets.ParamsFile != "" {
		v.watcher, err = scene.Watch(cfg.Assets.ParamsFile)
		if err != nil {
			// The viewer still works without live parameters.
			logger.Warn("parameter file not watched", zap.String("path", cfg.Assets.ParamsFile), zap.Error(err))
		}
	}

	logger.Info("viewer ready")
	return v, nil
}

// Run drives the renderer once per display refresh until quit or a fatal
// frame error.
func (v *Viewer) Run() error {
	v.scene.Renderer.Start()

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		quit := v.input.Update()
		for _, event := range v.input.Events() {
			switch v.controls.Handle(event) {
			case ActionQuit:
				quit = true
			case ActionScreenshot:
				v.screenshotRequested = true
			case ActionSaveSettings:
				if err := v.scene.SaveSettings(v.cfg); err != nil {
					logger.Error("save failed", zap.Error(err))
				}
			case ActionNone:
			default:
				logger.Debug("control", zap.Stringer("params", v.scene.Params.Snapshot()))
			}
		}
		if quit {
			return nil
		}

		v.applyPatches()

		if !v.scene.Renderer.Running() {
			// Nothing is drawn while paused; keep the last presented frame.
			sdl.Delay(pausedPollDelay)
			continue
		}

		if err := v.scene.Renderer.Tick(dt); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if v.screenshotRequested {
			v.screenshotRequested = false
			v.captureScreenshot()
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.cfg.Debug.ShowFPS {
				v.window.SetTitle(fmt.Sprintf("%s - %d fps", v.cfg.Window.Title, frameCount))
			}
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// applyPatches drains pending live parameter changes without blocking.
func (v *Viewer) applyPatches() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case p := <-v.watcher.Patches():
			if changed := v.scene.Params.Apply(p); len(changed) > 0 {
				logger.Info("parameters reloaded", zap.Strings("changed", changed))
			}
		case err := <-v.watcher.Errors():
			logger.Warn("parameter file", zap.Error(err))
		default:
			return
		}
	}
}

// captureScreenshot reads the back buffer on the render thread and encodes
// it in the background.
func (v *Viewer) captureScreenshot() {
	width, height := v.window.Size()
	pixels := gpu.ReadPixels(width, height)
	go func() {
		path, err := v.shots.CaptureFromPixels(pixels, width, height)
		if err != nil {
			logger.Error("screenshot failed", zap.Error(err))
			return
		}
		logger.Info("screenshot saved", zap.String("path", path))
	}()
}

// Close releases the scene, watcher and window.
func (v *Viewer) Close() {
	logger.Debug("closing viewer")
	if v.watcher != nil {
		_ = v.watcher.Close()
	}
	if v.scene != nil {
		v.scene.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
