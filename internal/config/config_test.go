package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/toon-sphere/internal/scene"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if cfg.Camera.Distance != 5 || cfg.Camera.MinDistance != 1 || cfg.Camera.MaxDistance != 10 {
		t.Errorf("unexpected camera defaults %+v", cfg.Camera)
	}

	if cfg.Render.Params != scene.DefaultValues() {
		t.Errorf("expected default render params, got %+v", cfg.Render.Params)
	}
	if cfg.Render.Sphere.LatSegments != 64 || cfg.Render.Sphere.LonSegments != 64 {
		t.Errorf("expected 64x64 sphere, got %dx%d", cfg.Render.Sphere.LatSegments, cfg.Render.Sphere.LonSegments)
	}

	if cfg.Assets.Texture != "" || cfg.Assets.ShaderDir != "" || cfg.Assets.ParamsFile != "" {
		t.Errorf("expected empty asset paths, got %+v", cfg.Assets)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true

camera:
  distance: 7
  max_distance: 15

render:
  params:
    rotation: true
    filter: LINEAR_MIPMAP_LINEAR
    gradient: 6
    color: [1, 0.5, 0.25]
  sphere:
    lat_segments: 32

assets:
  texture: earth.png
  params_file: live.yaml

debug:
  screenshot_format: webp

logging:
  level: "debug"
  log_file: "toonsphere.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || !cfg.Window.Fullscreen {
		t.Errorf("window not loaded: %+v", cfg.Window)
	}
	if cfg.Camera.Distance != 7 || cfg.Camera.MaxDistance != 15 {
		t.Errorf("camera not loaded: %+v", cfg.Camera)
	}
	if cfg.Camera.MinDistance != 1 {
		t.Errorf("expected min_distance to keep default 1, got %g", cfg.Camera.MinDistance)
	}

	p := cfg.Render.Params
	if !p.RotationEnabled {
		t.Error("expected rotation to be enabled")
	}
	if p.FilterMode != scene.FilterLinearMipmapLinear {
		t.Errorf("expected LINEAR_MIPMAP_LINEAR, got %s", p.FilterMode)
	}
	if p.GradientSteps != 6 {
		t.Errorf("expected gradient 6, got %d", p.GradientSteps)
	}
	if p.BaseColor != [3]float32{1, 0.5, 0.25} {
		t.Errorf("unexpected color %v", p.BaseColor)
	}
	if !p.EdgeEnabled {
		t.Error("expected edge to keep its default")
	}

	if cfg.Render.Sphere.LatSegments != 32 || cfg.Render.Sphere.LonSegments != 64 {
		t.Errorf("unexpected sphere %+v", cfg.Render.Sphere)
	}
	if cfg.Assets.Texture != "earth.png" || cfg.Assets.ParamsFile != "live.yaml" {
		t.Errorf("assets not loaded: %+v", cfg.Assets)
	}
	if cfg.Debug.ScreenshotFormat != "webp" {
		t.Errorf("expected webp screenshots, got %s", cfg.Debug.ScreenshotFormat)
	}
	if cfg.Logging.LogFile != "toonsphere.log" {
		t.Errorf("expected log file 'toonsphere.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	cases := map[string]string{
		"syntax": "window:\n  width: not a number\n  invalid syntax here\n",
		"filter": "render:\n  params:\n    filter: TRILINEAR\n",
		"color":  "render:\n  params:\n    color: [1, 2]\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, name+".yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"camera", func(c *Config) { c.Camera.MinDistance = 0 }, "min_distance"},
		{"segments", func(c *Config) { c.Render.Sphere.LonSegments = 2 }, "segments"},
		{"radius", func(c *Config) { c.Render.Sphere.Radius = -1 }, "radius"},
		{"format", func(c *Config) { c.Debug.ScreenshotFormat = "gif" }, "screenshot_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCameraOptions(t *testing.T) {
	cfg := Default()
	cfg.Camera.Distance = 3
	opts := cfg.CameraOptions()
	if opts.Distance != 3 || opts.MinDistance != 1 || opts.MaxDistance != 10 {
		t.Errorf("unexpected options %+v", opts)
	}
	if opts.Up.Y != 1 {
		t.Errorf("expected +Y up, got %+v", opts.Up)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "asset flags",
			setup: func() {
				*flagTexture = "moon.jpg"
				*flagShaders = "shaders"
				*flagParams = "params.yaml"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.Texture != "moon.jpg" || cfg.Assets.ShaderDir != "shaders" || cfg.Assets.ParamsFile != "params.yaml" {
					t.Errorf("asset flags not applied: %+v", cfg.Assets)
				}
			},
			teardown: func() {
				*flagTexture = ""
				*flagShaders = ""
				*flagParams = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  sphere:\n    radius: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected invalid config to be rejected")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.Params.FilterMode = scene.FilterNearestMipmapLinear
	cfg.Assets.Texture = "earth.png"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if !strings.Contains(string(data), "NEAREST_MIPMAP_LINEAR") {
		t.Errorf("expected filter name in saved YAML:\n%s", data)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Render.Params != cfg.Render.Params || loaded.Assets != cfg.Assets {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded.Render, cfg.Render)
	}
}

func TestSaveParamsNextLoadUsesThem(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if err := os.WriteFile("config.yaml", []byte("render:\n  params:\n    gradient: 4\nwindow:\n  width: 1600\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagFullscreen = true
	*flagTexture = "moon.jpg"
	cfg, err := Load()
	*flagFullscreen = false
	*flagTexture = ""
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Path() != "./config.yaml" {
		t.Errorf("expected loaded path ./config.yaml, got %q", cfg.Path())
	}

	v := cfg.Render.Params
	v.GradientSteps = 9
	if err := cfg.SaveParams(v); err != nil {
		t.Fatalf("SaveParams failed: %v", err)
	}
	if cfg.Render.Params.GradientSteps != 9 {
		t.Errorf("expected in-memory gradient 9, got %d", cfg.Render.Params.GradientSteps)
	}

	next, err := Load()
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if next.Render.Params.GradientSteps != 9 {
		t.Errorf("expected next start gradient 9, got %d", next.Render.Params.GradientSteps)
	}
	if next.Window.Width != 1600 {
		t.Errorf("expected file width 1600 kept, got %d", next.Window.Width)
	}
	if next.Window.Fullscreen || next.Assets.Texture != "" {
		t.Errorf("flag overrides were persisted: fullscreen=%v texture=%q", next.Window.Fullscreen, next.Assets.Texture)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "xdg", "toon-sphere", "config.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected no user config file to be written, stat err: %v", err)
	}
}

func TestSaveParamsWithoutConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	*flagDebug = true
	cfg, err := Load()
	*flagDebug = false
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	userPath := filepath.Join(tmpDir, "xdg", "toon-sphere", "config.yaml")
	if cfg.Path() != userPath {
		t.Errorf("expected %s, got %s", userPath, cfg.Path())
	}

	v := cfg.Render.Params
	v.FilterMode = scene.FilterNearest
	if err := cfg.SaveParams(v); err != nil {
		t.Fatalf("SaveParams failed: %v", err)
	}

	next, err := Load()
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if next.Render.Params.FilterMode != scene.FilterNearest {
		t.Errorf("expected saved filter NEAREST, got %v", next.Render.Params.FilterMode)
	}
	if next.Logging.Level != "info" || next.Debug.ShowFPS {
		t.Errorf("debug flag was persisted: level=%s show_fps=%v", next.Logging.Level, next.Debug.ShowFPS)
	}
}
