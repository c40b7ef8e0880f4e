// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/toon-sphere/internal/engine/camera"
	"github.com/Faultbox/toon-sphere/internal/scene"
	"github.com/Faultbox/toon-sphere/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Render  RenderConfig  `yaml:"render"`
	Assets  AssetsConfig  `yaml:"assets"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`

	// path is the file the config was read from; empty when none was found.
	path string
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	Distance         float32 `yaml:"distance"`
	MinDistance      float32 `yaml:"min_distance"`
	MaxDistance      float32 `yaml:"max_distance"`
	DragSensitivity  float32 `yaml:"drag_sensitivity"`
	WheelSensitivity float32 `yaml:"wheel_sensitivity"`
}

// RenderConfig holds the startup render parameters and sphere tessellation.
type RenderConfig struct {
	Params scene.Values `yaml:"params"`
	Sphere SphereConfig `yaml:"sphere"`
}

// SphereConfig describes the generated sphere mesh.
type SphereConfig struct {
	LatSegments int        `yaml:"lat_segments"`
	LonSegments int        `yaml:"lon_segments"`
	Radius      float32    `yaml:"radius"`
	Color       [4]float32 `yaml:"color,flow"`
}

// AssetsConfig holds asset paths. Empty paths select built-in fallbacks.
type AssetsConfig struct {
	Texture    string `yaml:"texture"`     // image file; empty uses a checkerboard
	ShaderDir  string `yaml:"shader_dir"`  // toon.vert/toon.frag; empty uses embedded sources
	ParamsFile string `yaml:"params_file"` // live-reloaded render parameters
}

// DebugConfig holds debugging aids.
type DebugConfig struct {
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or webp
	ShowFPS          bool   `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Toon Sphere",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Distance:         5,
			MinDistance:      1,
			MaxDistance:      10,
			DragSensitivity:  0.005,
			WheelSensitivity: 1,
		},
		Render: RenderConfig{
			Params: scene.DefaultValues(),
			Sphere: SphereConfig{
				LatSegments: 64,
				LonSegments: 64,
				Radius:      1,
				Color:       [4]float32{1, 1, 1, 1},
			},
		},
		Debug: DebugConfig{
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CameraOptions converts the camera settings into orbit camera options
// looking at the origin.
func (c *Config) CameraOptions() camera.Options {
	return camera.Options{
		Distance:         c.Camera.Distance,
		MinDistance:      c.Camera.MinDistance,
		MaxDistance:      c.Camera.MaxDistance,
		DragSensitivity:  c.Camera.DragSensitivity,
		WheelSensitivity: c.Camera.WheelSensitivity,
		Up:               math.Vec3{X: 0, Y: 1, Z: 0},
	}
}

// Validate reports settings that cannot produce a working viewer.
// Render parameters are not checked here; they are clamped on use.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.MinDistance <= 0 {
		errs = append(errs, fmt.Errorf("camera min_distance %g must be positive", c.Camera.MinDistance))
	}
	if c.Render.Sphere.LatSegments < 3 || c.Render.Sphere.LonSegments < 3 {
		errs = append(errs, fmt.Errorf("sphere segments %dx%d must be at least 3",
			c.Render.Sphere.LatSegments, c.Render.Sphere.LonSegments))
	}
	if c.Render.Sphere.Radius <= 0 {
		errs = append(errs, fmt.Errorf("sphere radius %g must be positive", c.Render.Sphere.Radius))
	}
	switch c.Debug.ScreenshotFormat {
	case "png", "webp":
	default:
		errs = append(errs, fmt.Errorf("screenshot_format %q must be png or webp", c.Debug.ScreenshotFormat))
	}
	return errors.Join(errs...)
}
