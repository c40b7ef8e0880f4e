// Package camera provides the orbit camera that feeds view transforms to the renderer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/toon-sphere/pkg/math"
)

// elevationLimit keeps the camera just short of the poles so the up vector
// never becomes parallel to the view direction.
const elevationLimit = math32.Pi/2 - 0.001

// Options configures an OrbitCamera.
type Options struct {
	Distance    float32
	MinDistance float32
	MaxDistance float32

	// Radians per pixel of drag.
	DragSensitivity float32
	// Distance units per wheel unit.
	WheelSensitivity float32

	Target math.Vec3
	Up     math.Vec3
}

// DefaultOptions returns the viewer's camera setup.
func DefaultOptions() Options {
	return Options{
		Distance:         5.0,
		MinDistance:      1.0,
		MaxDistance:      10.0,
		DragSensitivity:  0.005,
		WheelSensitivity: 1.0,
		Up:               math.Vec3{X: 0, Y: 1, Z: 0},
	}
}

// OrbitCamera orbits around a target point.
// Motion is directly proportional to pointer deltas, with no inertia.
type OrbitCamera struct {
	opts Options

	// Spherical coordinates
	distance  float32
	azimuth   float32 // around the up axis, radians
	elevation float32 // above the horizon, radians
}

// New creates an orbit camera. Inverted distance bounds are swapped and the
// initial distance is clamped into them.
func New(opts Options) *OrbitCamera {
	if opts.MinDistance > opts.MaxDistance {
		opts.MinDistance, opts.MaxDistance = opts.MaxDistance, opts.MinDistance
	}
	if opts.Up == (math.Vec3{}) {
		opts.Up = math.Vec3{X: 0, Y: 1, Z: 0}
	}
	opts.Distance = clamp(opts.Distance, opts.MinDistance, opts.MaxDistance)

	c := &OrbitCamera{opts: opts}
	c.Reset()
	return c
}

// Reset restores the state the camera was constructed with.
func (c *OrbitCamera) Reset() {
	c.distance = c.opts.Distance
	c.azimuth = 0
	c.elevation = 0
}

// OnDragDelta rotates the camera by a pointer drag delta in pixels.
func (c *OrbitCamera) OnDragDelta(dx, dy float32) {
	c.azimuth += dx * c.opts.DragSensitivity
	c.elevation = clamp(c.elevation+dy*c.opts.DragSensitivity, -elevationLimit, elevationLimit)
}

// OnWheelDelta moves the camera toward (negative) or away from (positive) the target.
func (c *OrbitCamera) OnWheelDelta(dz float32) {
	c.distance = clamp(c.distance+dz*c.opts.WheelSensitivity, c.opts.MinDistance, c.opts.MaxDistance)
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() math.Vec3 {
	cosE := math32.Cos(c.elevation)
	offset := math.Vec3{
		X: c.distance * cosE * math32.Sin(c.azimuth),
		Y: c.distance * math32.Sin(c.elevation),
		Z: c.distance * cosE * math32.Cos(c.azimuth),
	}
	return c.opts.Target.Add(offset)
}

// Update returns the view matrix for the current state. The renderer calls it
// once at the start of every frame.
func (c *OrbitCamera) Update() math.Mat4 {
	return math.LookAt(c.Eye(), c.opts.Target, c.opts.Up)
}

// Distance returns the distance from the target.
func (c *OrbitCamera) Distance() float32 { return c.distance }

// Azimuth returns the horizontal angle in radians.
func (c *OrbitCamera) Azimuth() float32 { return c.azimuth }

// Elevation returns the vertical angle in radians.
func (c *OrbitCamera) Elevation() float32 { return c.elevation }

// Bounds returns the distance limits.
func (c *OrbitCamera) Bounds() (minDistance, maxDistance float32) {
	return c.opts.MinDistance, c.opts.MaxDistance
}

func clamp(v, lo, hi float32) float32 {
	if math32.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
