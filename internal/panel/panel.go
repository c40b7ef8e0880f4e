// Package panel hosts the toon sphere inside a Dear ImGui window with
// widgets for every shading parameter.
package panel

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/toon-sphere/internal/config"
	"github.com/Faultbox/toon-sphere/internal/engine/debug"
	"github.com/Faultbox/toon-sphere/internal/engine/framebuffer"
	"github.com/Faultbox/toon-sphere/internal/engine/gpu"
	"github.com/Faultbox/toon-sphere/internal/logger"
	"github.com/Faultbox/toon-sphere/internal/scene"
	"github.com/Faultbox/toon-sphere/internal/viewer"
)

// App is the ImGui host. All fields are touched only from the frame
// callback, which runs on the thread owning the GL context.
type App struct {
	cfg     *config.Config
	backend backend.Backend[sdlbackend.SDLWindowFlags]

	scene    *viewer.Scene
	fb       *framebuffer.Framebuffer
	watcher  *scene.Watcher
	loader   *textureLoader
	shots    *debug.ScreenshotCapture
	aspect   float32
	lastTime time.Time

	drag                orbitDrag
	screenshotRequested bool
	status              string
	err                 error
}

// New creates the ImGui window and sets up the scene. Assets are decoded
// while the window and GL context come up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	type loaded struct {
		assets *viewer.Assets
		err    error
	}
	pending := make(chan loaded, 1)
	go func() {
		a, err := viewer.LoadAssets(ctx, cfg.Assets)
		pending <- loaded{a, err}
	}()

	app := &App{
		cfg:    cfg,
		loader: newTextureLoader(),
		shots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "toonpanel",
			debug.ParseFormat(cfg.Debug.ScreenshotFormat)),
		aspect: float32(cfg.Window.Width) / float32(cfg.Window.Height),
	}

	var err error
	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("failed to create backend: %w", err)
	}
	app.backend.SetBgColor(imgui.NewVec4(0.08, 0.08, 0.09, 1.0))
	app.backend.CreateWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)

	// Function pointers need the context created by CreateWindow.
	if err := gpu.Init(); err != nil {
		return nil, err
	}

	var res loaded
	select {
	case res = <-pending:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.err != nil {
		return nil, fmt.Errorf("loading assets: %w", res.err)
	}

	app.fb, err = framebuffer.New(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return nil, err
	}
	app.scene, err = viewer.NewScene(cfg, res.assets, app.fb)
	if err != nil {
		app.fb.Destroy()
		return nil, fmt.Errorf("setting up scene: %w", err)
	}

	if cfg.Assets.ParamsFile != "" {
		app.watcher, err = scene.Watch(cfg.Assets.ParamsFile)
		if err != nil {
			logger.Warn("parameter file not watched", zap.String("path", cfg.Assets.ParamsFile), zap.Error(err))
		}
	}

	logger.Info("panel ready")
	return app, nil
}

// Run starts the renderer and blocks until the window closes. It returns
// the frame error that stopped it, if any.
func (app *App) Run() error {
	app.scene.Renderer.Start()
	app.lastTime = time.Now()
	app.backend.Run(app.render)
	return app.err
}

// Close releases the scene, the offscreen target and the watcher.
func (app *App) Close() {
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	if app.scene != nil {
		app.scene.Close()
	}
	if app.fb != nil {
		app.fb.Destroy()
	}
}

func (app *App) render() {
	if app.err != nil {
		return
	}

	app.applyPatches()
	app.pollTextures()

	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF12)) {
		app.screenshotRequested = true
	}
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyEscape)) {
		app.backend.SetShouldClose(true)
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	contentHeight := workSize.Y - statusHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, contentHeight))
	if imgui.BeginV("Controls", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+controlsWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-controlsWidth, contentHeight))
	if imgui.BeginV("View", nil, flags) {
		app.renderView()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusHeight))
	if imgui.BeginV("Status", nil, flags|imgui.WindowFlagsNoTitleBar) {
		r := app.scene.Renderer
		imgui.Text(fmt.Sprintf("t=%.1fs  frames=%d", r.Elapsed(), r.Frames()))
		if app.status != "" {
			imgui.SameLine()
			imgui.TextDisabled(app.status)
		}
	}
	imgui.End()
}

// renderView draws the sphere into the offscreen target sized to the
// available space, then shows it as an image that takes orbit input.
func (app *App) renderView() {
	now := time.Now()
	dt := now.Sub(app.lastTime).Seconds()
	app.lastTime = now

	avail := imgui.ContentRegionAvail()
	w, h := fitView(avail.X, avail.Y, app.aspect)
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	app.fb.Resize(pixelSize(w, h, scale.X, scale.Y))

	restore := app.fb.Bind()
	err := app.scene.Renderer.Tick(dt)
	restore()
	if err != nil {
		app.fail(err)
		return
	}
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureScreenshot()
	}

	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(app.fb.ColorTexture()))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(w, h),
		imgui.NewVec2(0, 1), // GL rows are bottom-up
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.1, 0.1, 0.1, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	mousePos := imgui.MousePos()
	dx, dy := app.drag.update(imgui.IsItemClicked(), imgui.IsMouseDown(imgui.MouseButtonLeft), mousePos.X, mousePos.Y)
	if dx != 0 || dy != 0 {
		app.scene.Camera.OnDragDelta(dx, dy)
	}

	if imgui.IsItemHovered() {
		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.scene.Camera.OnWheelDelta(-wheel)
		}
	}
}

func (app *App) renderControls() {
	p := app.scene.Params
	v := p.Snapshot()

	imgui.Text("Shading")
	imgui.Separator()
	if imgui.Checkbox("Texture", &v.TextureEnabled) {
		p.SetTextureEnabled(v.TextureEnabled)
	}
	if imgui.Checkbox("Rotation", &v.RotationEnabled) {
		p.SetRotationEnabled(v.RotationEnabled)
	}
	if imgui.Checkbox("Edge", &v.EdgeEnabled) {
		p.SetEdgeEnabled(v.EdgeEnabled)
	}

	gradient := int32(v.GradientSteps)
	imgui.SetNextItemWidth(-1)
	if imgui.SliderIntV("##Gradient", &gradient, scene.MinGradientSteps, scene.MaxGradientSteps, "gradient %d", imgui.SliderFlagsNone) {
		p.SetGradientSteps(int(gradient))
	}
	imgui.SetNextItemWidth(-1)
	if imgui.SliderFloatV("##Inflate", &v.InflateAmount, scene.MinInflate, scene.MaxInflate, "inflate %.2f", imgui.SliderFlagsNone) {
		p.SetInflateAmount(v.InflateAmount)
	}

	imgui.Separator()
	imgui.Text("Base color")
	changed := false
	for i, label := range [3]string{"##R", "##G", "##B"} {
		imgui.SetNextItemWidth(-1)
		if imgui.SliderFloatV(label, &v.BaseColor[i], 0, 1, label[2:]+" %.2f", imgui.SliderFlagsNone) {
			changed = true
		}
	}
	if changed {
		p.SetBaseColor(v.BaseColor)
	}

	imgui.Separator()
	imgui.Text("Texture filter")
	for _, mode := range scene.FilterModes() {
		if imgui.SelectableBoolV(mode.String(), mode == v.FilterMode, 0, imgui.NewVec2(0, 0)) {
			p.SetFilterMode(mode)
		}
	}

	imgui.Separator()
	r := app.scene.Renderer
	label := "Pause"
	if !r.Running() {
		label = "Resume"
	}
	if imgui.Button(label) {
		if r.Running() {
			r.Stop()
		} else {
			r.Start()
		}
	}
	imgui.SameLine()
	if imgui.Button("Reset Camera") {
		app.scene.Camera.Reset()
	}
	if imgui.Button("Load Texture...") {
		app.openTextureDialog()
	}
	imgui.SameLine()
	if imgui.Button("Screenshot") {
		app.screenshotRequested = true
	}
	if imgui.Button("Save Settings") {
		if err := app.scene.SaveSettings(app.cfg); err != nil {
			logger.Error("save failed", zap.Error(err))
			app.status = "save failed"
		} else {
			app.status = "settings saved"
		}
	}
	imgui.TextDisabled("(Drag to orbit, scroll to zoom)")
}

// openTextureDialog runs the native dialog off the UI thread. The chosen
// file is decoded in the background and uploaded by pollTextures.
func (app *App) openTextureDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Images", "png", "jpg", "jpeg", "gif", "bmp", "webp", "tga").
			Filter("All Files", "*").
			Title("Load Texture").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog", zap.Error(err))
			}
			return
		}
		app.loader.load(filename)
	}()
}

func (app *App) pollTextures() {
	r, ok := app.loader.poll()
	if !ok {
		return
	}
	if r.err != nil {
		logger.Error("texture load failed", zap.String("path", r.path), zap.Error(r.err))
		app.status = "texture load failed: " + filepath.Base(r.path)
		return
	}
	app.scene.ReplaceTexture(r.img)
	app.status = "texture: " + filepath.Base(r.path)
	logger.Info("texture replaced", zap.String("path", r.path))
}

func (app *App) applyPatches() {
	if app.watcher == nil {
		return
	}
	for {
		select {
		case p := <-app.watcher.Patches():
			if changed := app.scene.Params.Apply(p); len(changed) > 0 {
				logger.Info("parameters reloaded", zap.Strings("changed", changed))
				app.status = "parameters reloaded"
			}
		case err := <-app.watcher.Errors():
			logger.Warn("parameter file", zap.Error(err))
		default:
			return
		}
	}
}

// captureScreenshot saves the offscreen target, so the panel widgets are
// not part of the image.
func (app *App) captureScreenshot() {
	width, height := app.fb.Size()
	pixels := app.fb.ReadPixels()
	go func() {
		path, err := app.shots.CaptureFromPixels(pixels, width, height)
		if err != nil {
			logger.Error("screenshot failed", zap.Error(err))
			return
		}
		logger.Info("screenshot saved", zap.String("path", path))
	}()
	app.status = "screenshot requested"
}

// fail records a fatal frame error and closes the window.
func (app *App) fail(err error) {
	logger.Error("render error", zap.Error(err))
	app.err = fmt.Errorf("render error: %w", err)
	app.backend.SetShouldClose(true)
}
