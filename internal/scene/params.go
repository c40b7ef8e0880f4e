// Package scene holds the runtime-tunable shading parameters.
package scene

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Parameter ranges exposed to control surfaces.
const (
	MinGradientSteps = 3
	MaxGradientSteps = 10

	MinInflate  float32 = 0.01
	MaxInflate  float32 = 1.0
	InflateStep float32 = 0.01
)

// Values is a plain copy of every parameter. It is the YAML shape used by
// the config file and the value the renderer reads once per frame.
type Values struct {
	TextureEnabled  bool       `yaml:"texture"`
	RotationEnabled bool       `yaml:"rotation"`
	FilterMode      FilterMode `yaml:"filter"`
	GradientSteps   int        `yaml:"gradient"`
	EdgeEnabled     bool       `yaml:"edge"`
	InflateAmount   float32    `yaml:"inflate"`
	BaseColor       [3]float32 `yaml:"color,flow"`
}

// DefaultValues returns the startup parameters.
func DefaultValues() Values {
	return Values{
		TextureEnabled:  true,
		RotationEnabled: false,
		FilterMode:      FilterLinear,
		GradientSteps:   4,
		EdgeEnabled:     true,
		InflateAmount:   0.5,
		BaseColor:       [3]float32{1, 1, 1},
	}
}

func (v Values) String() string {
	return fmt.Sprintf("texture=%t rotation=%t filter=%s gradient=%d edge=%t inflate=%.2f color=%v",
		v.TextureEnabled, v.RotationEnabled, v.FilterMode, v.GradientSteps, v.EdgeEnabled, v.InflateAmount, v.BaseColor)
}

// Params is the mutable parameter set. It has a single owner, the render
// thread: control surfaces change it only through the setters, which clamp
// out-of-range input instead of rejecting it.
type Params struct {
	v Values
}

// NewParams creates a parameter set initialised from v, clamped.
func NewParams(v Values) *Params {
	p := &Params{v: DefaultValues()}
	p.SetTextureEnabled(v.TextureEnabled)
	p.SetRotationEnabled(v.RotationEnabled)
	p.SetFilterMode(v.FilterMode)
	p.SetGradientSteps(v.GradientSteps)
	p.SetEdgeEnabled(v.EdgeEnabled)
	p.SetInflateAmount(v.InflateAmount)
	p.SetBaseColor(v.BaseColor)
	return p
}

// Snapshot returns a copy of the current values.
func (p *Params) Snapshot() Values {
	return p.v
}

// TextureEnabled reports whether the sphere is textured or flat-colored.
func (p *Params) TextureEnabled() bool { return p.v.TextureEnabled }

// RotationEnabled reports whether the model spins with elapsed time.
func (p *Params) RotationEnabled() bool { return p.v.RotationEnabled }

// FilterMode returns the texture filter; always a valid mode.
func (p *Params) FilterMode() FilterMode { return p.v.FilterMode }

// GradientSteps returns the toon band count, within [3, 10].
func (p *Params) GradientSteps() int { return p.v.GradientSteps }

// EdgeEnabled reports whether the outline pass is drawn.
func (p *Params) EdgeEnabled() bool { return p.v.EdgeEnabled }

// InflateAmount returns the outline inflation along normals, within [0.01, 1.0].
func (p *Params) InflateAmount() float32 { return p.v.InflateAmount }

// BaseColor returns the material color with components in [0, 1].
func (p *Params) BaseColor() [3]float32 { return p.v.BaseColor }

// SetTextureEnabled toggles texturing.
func (p *Params) SetTextureEnabled(on bool) { p.v.TextureEnabled = on }

// SetRotationEnabled toggles auto-rotation.
func (p *Params) SetRotationEnabled(on bool) { p.v.RotationEnabled = on }

// SetEdgeEnabled toggles the outline pass.
func (p *Params) SetEdgeEnabled(on bool) { p.v.EdgeEnabled = on }

// SetFilterMode sets the texture filter. Unknown modes fall back to LINEAR.
func (p *Params) SetFilterMode(f FilterMode) {
	if !f.Valid() {
		f = FilterLinear
	}
	p.v.FilterMode = f
}

// SetGradientSteps sets the number of toon bands, clamped to [3, 10].
func (p *Params) SetGradientSteps(n int) {
	if n < MinGradientSteps {
		n = MinGradientSteps
	}
	if n > MaxGradientSteps {
		n = MaxGradientSteps
	}
	p.v.GradientSteps = n
}

// SetInflateAmount sets the outline inflation, clamped to [0.01, 1.0].
func (p *Params) SetInflateAmount(a float32) {
	p.v.InflateAmount = clamp(a, MinInflate, MaxInflate)
}

// SetBaseColor sets the material color; components are clamped to [0, 1].
func (p *Params) SetBaseColor(c [3]float32) {
	for i := range c {
		c[i] = clamp(c[i], 0, 1)
	}
	p.v.BaseColor = c
}

func clamp(v, lo, hi float32) float32 {
	if math32.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
