package scene

import (
	"gopkg.in/yaml.v3"
)

// Patch is a partial parameter update from an external control surface.
// Nil fields leave the current value untouched.
type Patch struct {
	TextureEnabled  *bool       `yaml:"texture"`
	RotationEnabled *bool       `yaml:"rotation"`
	FilterMode      *FilterMode `yaml:"filter"`
	GradientSteps   *int        `yaml:"gradient"`
	EdgeEnabled     *bool       `yaml:"edge"`
	InflateAmount   *float32    `yaml:"inflate"`
	BaseColor       *[3]float32 `yaml:"color,flow"`
}

// ParsePatch decodes a YAML document into a Patch.
func ParsePatch(data []byte) (Patch, error) {
	var p Patch
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Patch{}, err
	}
	return p, nil
}

// Empty reports whether the patch sets nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Apply applies every set field through the clamping setters and returns
// the names of the parameters whose value changed.
func (p *Params) Apply(patch Patch) []string {
	before := p.v

	if patch.TextureEnabled != nil {
		p.SetTextureEnabled(*patch.TextureEnabled)
	}
	if patch.RotationEnabled != nil {
		p.SetRotationEnabled(*patch.RotationEnabled)
	}
	if patch.FilterMode != nil {
		p.SetFilterMode(*patch.FilterMode)
	}
	if patch.GradientSteps != nil {
		p.SetGradientSteps(*patch.GradientSteps)
	}
	if patch.EdgeEnabled != nil {
		p.SetEdgeEnabled(*patch.EdgeEnabled)
	}
	if patch.InflateAmount != nil {
		p.SetInflateAmount(*patch.InflateAmount)
	}
	if patch.BaseColor != nil {
		p.SetBaseColor(*patch.BaseColor)
	}

	return before.diff(p.v)
}

// diff lists the YAML names of the fields that differ between v and other.
func (v Values) diff(other Values) []string {
	var changed []string
	if v.TextureEnabled != other.TextureEnabled {
		changed = append(changed, "texture")
	}
	if v.RotationEnabled != other.RotationEnabled {
		changed = append(changed, "rotation")
	}
	if v.FilterMode != other.FilterMode {
		changed = append(changed, "filter")
	}
	if v.GradientSteps != other.GradientSteps {
		changed = append(changed, "gradient")
	}
	if v.EdgeEnabled != other.EdgeEnabled {
		changed = append(changed, "edge")
	}
	if v.InflateAmount != other.InflateAmount {
		changed = append(changed, "inflate")
	}
	if v.BaseColor != other.BaseColor {
		changed = append(changed, "color")
	}
	return changed
}
