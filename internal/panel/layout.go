package panel

// Layout constants, in logical pixels.
const (
	controlsWidth = float32(300)
	statusHeight  = float32(26)
	minViewSize   = float32(64)
)

// fitView returns the largest size with the given aspect ratio that fits
// inside the available region, never smaller than minViewSize.
func fitView(availW, availH, aspect float32) (w, h float32) {
	if aspect <= 0 {
		aspect = 1
	}
	w, h = availW, availW/aspect
	if h > availH {
		h = availH
		w = h * aspect
	}
	return max(w, minViewSize), max(h, minViewSize)
}

// pixelSize converts a logical size to framebuffer pixels.
func pixelSize(w, h, scaleX, scaleY float32) (int, int) {
	if scaleX <= 0 {
		scaleX = 1
	}
	if scaleY <= 0 {
		scaleY = 1
	}
	return int(w*scaleX + 0.5), int(h*scaleY + 0.5)
}

// orbitDrag follows a left-button drag that started on the view image.
// Drags that start elsewhere never move the camera, even when they pass
// over the image.
type orbitDrag struct {
	active       bool
	lastX, lastY float32
}

// update advances the drag by one frame and returns the pointer motion to
// apply to the camera. pressedOnView reports a left press on the image this
// frame, down whether the left button is held.
func (d *orbitDrag) update(pressedOnView, down bool, x, y float32) (dx, dy float32) {
	switch {
	case pressedOnView:
		d.active = true
	case !down:
		d.active = false
	case d.active:
		dx, dy = x-d.lastX, y-d.lastY
	}
	d.lastX, d.lastY = x, y
	return dx, dy
}
