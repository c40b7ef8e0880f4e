package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	p := NewParams(DefaultValues())
	assert.True(t, p.TextureEnabled())
	assert.False(t, p.RotationEnabled())
	assert.Equal(t, FilterLinear, p.FilterMode())
	assert.Equal(t, 4, p.GradientSteps())
	assert.True(t, p.EdgeEnabled())
	assert.Equal(t, float32(0.5), p.InflateAmount())
	assert.Equal(t, [3]float32{1, 1, 1}, p.BaseColor())
}

func TestSettersClamp(t *testing.T) {
	p := NewParams(DefaultValues())

	tests := []struct {
		name  string
		apply func()
		check func() bool
	}{
		{"gradient below range", func() { p.SetGradientSteps(1) }, func() bool { return p.GradientSteps() == 3 }},
		{"gradient above range", func() { p.SetGradientSteps(42) }, func() bool { return p.GradientSteps() == 10 }},
		{"gradient in range", func() { p.SetGradientSteps(7) }, func() bool { return p.GradientSteps() == 7 }},
		{"inflate below range", func() { p.SetInflateAmount(-3) }, func() bool { return p.InflateAmount() == MinInflate }},
		{"inflate above range", func() { p.SetInflateAmount(2) }, func() bool { return p.InflateAmount() == MaxInflate }},
		{"inflate NaN", func() { p.SetInflateAmount(math32.NaN()) }, func() bool { return p.InflateAmount() == MinInflate }},
		{"inflate in range", func() { p.SetInflateAmount(0.25) }, func() bool { return p.InflateAmount() == 0.25 }},
		{"unknown filter", func() { p.SetFilterMode(FilterMode(99)) }, func() bool { return p.FilterMode() == FilterLinear }},
		{"mipmap filter", func() { p.SetFilterMode(FilterNearestMipmapLinear) }, func() bool { return p.FilterMode() == FilterNearestMipmapLinear }},
		{"texture off", func() { p.SetTextureEnabled(false) }, func() bool { return !p.TextureEnabled() }},
		{"rotation off", func() { p.SetRotationEnabled(false) }, func() bool { return !p.RotationEnabled() }},
		{"edge off", func() { p.SetEdgeEnabled(false) }, func() bool { return !p.EdgeEnabled() }},
		{"color components", func() { p.SetBaseColor([3]float32{-1, 0.5, 3}) }, func() bool { return p.BaseColor() == [3]float32{0, 0.5, 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.apply()
			assert.True(t, tt.check())
		})
	}
}

func TestNewParamsClampsValues(t *testing.T) {
	v := DefaultValues()
	v.GradientSteps = 0
	v.InflateAmount = 9
	p := NewParams(v)

	assert.Equal(t, MinGradientSteps, p.GradientSteps())
	assert.Equal(t, MaxInflate, p.InflateAmount())
}

func TestSnapshotIsACopy(t *testing.T) {
	p := NewParams(DefaultValues())
	snap := p.Snapshot()
	p.SetEdgeEnabled(false)
	assert.True(t, snap.EdgeEnabled)
	assert.False(t, p.Snapshot().EdgeEnabled)
}

func TestValuesYAML(t *testing.T) {
	data, err := yaml.Marshal(DefaultValues())
	assert.NoError(t, err)
	assert.Contains(t, string(data), "filter: LINEAR")

	var v Values
	assert.NoError(t, yaml.Unmarshal([]byte("filter: linear_mipmap_nearest\ngradient: 6\ncolor: [0.5, 0.25, 1]\n"), &v))
	assert.Equal(t, FilterLinearMipmapNearest, v.FilterMode)
	assert.Equal(t, 6, v.GradientSteps)
	assert.Equal(t, [3]float32{0.5, 0.25, 1}, v.BaseColor)

	assert.Error(t, yaml.Unmarshal([]byte("filter: TRILINEAR\n"), &v))
}
