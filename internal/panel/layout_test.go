package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitView(t *testing.T) {
	tests := []struct {
		name         string
		availW       float32
		availH       float32
		aspect       float32
		wantW, wantH float32
	}{
		{"width bound", 800, 600, 2, 800, 400},
		{"height bound", 800, 300, 2, 600, 300},
		{"exact", 640, 480, 4.0 / 3.0, 640, 480},
		{"invalid aspect is square", 500, 300, 0, 300, 300},
		{"tiny region", 10, 10, 1, minViewSize, minViewSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitView(tt.availW, tt.availH, tt.aspect)
			assert.InDelta(t, tt.wantW, w, 1e-3)
			assert.InDelta(t, tt.wantH, h, 1e-3)
		})
	}
}

func TestPixelSize(t *testing.T) {
	w, h := pixelSize(400, 300, 2, 2)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	w, h = pixelSize(100.4, 50.6, 0, -1)
	assert.Equal(t, 100, w)
	assert.Equal(t, 51, h)
}

func TestOrbitDrag(t *testing.T) {
	var d orbitDrag

	// A drag that starts outside the view is ignored while it crosses the image.
	dx, dy := d.update(false, true, 10, 10)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	dx, dy = d.update(false, true, 300, 200)
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	d.update(false, false, 300, 200)

	// Pressing on the view starts the drag at the press position.
	dx, dy = d.update(true, true, 100, 100)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	dx, dy = d.update(false, true, 110, 95)
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(-5), dy)

	// It keeps orbiting outside the image until release.
	dx, _ = d.update(false, true, 500, 95)
	assert.Equal(t, float32(390), dx)

	d.update(false, false, 500, 95)
	dx, dy = d.update(false, true, 520, 90)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}
