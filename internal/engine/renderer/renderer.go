// Package renderer draws the toon-shaded sphere one frame at a time.
//
// The host owns the loop: it calls Tick once per display refresh and the
// renderer issues the whole frame through a gpu.Device.
package renderer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/toon-sphere/internal/engine/gpu"
	"github.com/Faultbox/toon-sphere/internal/engine/shader"
	"github.com/Faultbox/toon-sphere/internal/engine/texture"
	"github.com/Faultbox/toon-sphere/internal/logger"
	"github.com/Faultbox/toon-sphere/internal/scene"
	"github.com/Faultbox/toon-sphere/pkg/math"
)

// Projection and animation constants.
const (
	FieldOfView  = 45.0
	NearPlane    = 0.1
	FarPlane     = 20.0
	AngularSpeed = 0.5 // radians per second
)

var (
	// ClearColor is the background color.
	ClearColor = [4]float32{0.1, 0.1, 0.1, 1.0}

	// LightDirection is pushed as is. It is deliberately not normalized.
	LightDirection = math.Vec3{X: 1, Y: 1, Z: 1}

	yAxis = math.Vec3{X: 0, Y: 1, Z: 0}
)

// ErrMissingDependency is returned by New when a dependency is nil or no
// texture is bound to unit 0.
var ErrMissingDependency = errors.New("renderer: missing dependency")

// Surface reports the current drawable size in pixels.
type Surface interface {
	Size() (width, height int)
}

// Camera produces the view matrix for a frame.
type Camera interface {
	Update() math.Mat4
}

// Deps are the resources the renderer draws with. Setup code creates and
// owns them; the renderer never creates or destroys GPU objects.
type Deps struct {
	Device   gpu.Device
	Program  *shader.Program
	Mesh     *gpu.MeshBuffers
	Textures *texture.Units
	Camera   Camera
	Params   *scene.Params
	Surface  Surface
}

// FrameTransforms are the matrices computed for the last frame.
type FrameTransforms struct {
	Model          math.Mat4
	View           math.Mat4
	Projection     math.Mat4
	ViewProjection math.Mat4
	Normal         math.Mat4
	MVP            math.Mat4
}

// FrameRenderer renders the sphere with an outline pass and a shaded pass.
type FrameRenderer struct {
	deps Deps

	running bool
	elapsed float64
	frames  uint64

	last FrameTransforms
}

// New validates deps and returns a stopped renderer.
func New(deps Deps) (*FrameRenderer, error) {
	missing := func(name string) error {
		return fmt.Errorf("%w: %s", ErrMissingDependency, name)
	}
	switch {
	case deps.Device == nil:
		return nil, missing("device")
	case deps.Program == nil:
		return nil, missing("program")
	case deps.Mesh == nil:
		return nil, missing("mesh")
	case deps.Textures == nil:
		return nil, missing("textures")
	case !hasUnit(deps.Textures, 0):
		return nil, missing("texture unit 0")
	case deps.Camera == nil:
		return nil, missing("camera")
	case deps.Params == nil:
		return nil, missing("params")
	case deps.Surface == nil:
		return nil, missing("surface")
	}
	return &FrameRenderer{deps: deps, last: identityTransforms()}, nil
}

func hasUnit(u *texture.Units, unit int) bool {
	_, ok := u.Get(unit)
	return ok
}

// Start resumes ticking. Elapsed time continues from where it stopped.
func (r *FrameRenderer) Start() {
	if !r.running {
		r.running = true
		logger.Debug("renderer started", zap.Float64("elapsed", r.elapsed))
	}
}

// Stop pauses ticking. Stopped ticks draw nothing and do not advance time.
func (r *FrameRenderer) Stop() {
	if r.running {
		r.running = false
		logger.Debug("renderer stopped", zap.Float64("elapsed", r.elapsed), zap.Uint64("frames", r.frames))
	}
}

// Running reports whether Tick renders.
func (r *FrameRenderer) Running() bool { return r.running }

// Elapsed returns the animation time in seconds.
func (r *FrameRenderer) Elapsed() float64 { return r.elapsed }

// Frames returns the number of frames rendered.
func (r *FrameRenderer) Frames() uint64 { return r.frames }

// Transforms returns the matrices of the last rendered frame.
func (r *FrameRenderer) Transforms() FrameTransforms { return r.last }

// Tick advances time by dt seconds and renders a frame. It is a no-op while
// stopped. Negative deltas do not move time backwards.
func (r *FrameRenderer) Tick(dt float64) error {
	if !r.running {
		return nil
	}
	if dt > 0 {
		r.elapsed += dt
	}
	return r.RenderFrame()
}

// RenderFrame issues one complete frame at the current elapsed time.
// A device error is returned unchanged in meaning; the frame is not retried.
func (r *FrameRenderer) RenderFrame() error {
	dev := r.deps.Device
	prog := r.deps.Program
	params := r.deps.Params.Snapshot()

	// Clear and fixed state.
	width, height := r.deps.Surface.Size()
	dev.Viewport(0, 0, int32(width), int32(height))
	dev.Clear(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	dev.Enable(gpu.DepthTest)
	dev.Enable(gpu.CullFace)

	// Transforms.
	t := r.transforms(width, height, params.RotationEnabled)
	r.last = t

	// Uniforms.
	dev.UseProgram(prog.ID)
	dev.Uniform3f(prog.Uniform(shader.UniformLightDirection), LightDirection.Array())
	dev.Uniform3f(prog.Uniform(shader.UniformGlobalColor), params.BaseColor)
	dev.Uniform1i(prog.Uniform(shader.UniformIsTexture), boolToInt(params.TextureEnabled))
	dev.Uniform1f(prog.Uniform(shader.UniformGradient), float32(params.GradientSteps))
	dev.Uniform1f(prog.Uniform(shader.UniformInflate), params.InflateAmount)
	dev.UniformMatrix4(prog.Uniform(shader.UniformModel), t.Model)
	dev.UniformMatrix4(prog.Uniform(shader.UniformNormalMatrix), t.Normal)
	dev.UniformMatrix4(prog.Uniform(shader.UniformMVP), t.MVP)

	// Sampler state, per bound unit.
	minFilter := gpu.Filter(params.FilterMode)
	magFilter := MagFilterFor(params.FilterMode)
	r.deps.Textures.Each(func(unit int, tex gpu.Texture) {
		dev.Uniform1i(prog.Uniform(fmt.Sprintf("textureUnit%d", unit)), int32(unit))
		dev.BindTexture(unit, tex)
		dev.SetTextureFilter(minFilter, magFilter)
	})

	// Outline pass, then shaded pass over the same buffers.
	dev.BindMesh(r.deps.Mesh)
	isEdge := prog.Uniform(shader.UniformIsEdge)
	if params.EdgeEnabled {
		dev.CullFace(gpu.FaceFront)
		dev.Uniform1i(isEdge, 1)
		dev.DrawElements(r.deps.Mesh.IndexCount)
	}
	dev.CullFace(gpu.FaceBack)
	dev.Uniform1i(isEdge, 0)
	dev.DrawElements(r.deps.Mesh.IndexCount)

	if err := dev.Err(); err != nil {
		return fmt.Errorf("frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

func (r *FrameRenderer) transforms(width, height int, rotate bool) FrameTransforms {
	view := r.deps.Camera.Update()

	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	projection := math.Perspective(FieldOfView, aspect, NearPlane, FarPlane)
	viewProjection := math.Multiply(projection, view)

	model := math.Identity()
	if rotate {
		model = math.Rotate(model, float32(r.elapsed*AngularSpeed), yAxis)
	}

	return FrameTransforms{
		Model:          model,
		View:           view,
		Projection:     projection,
		ViewProjection: viewProjection,
		Normal:         model.Inverse().Transpose(),
		MVP:            math.Multiply(viewProjection, model),
	}
}

// MagFilterFor returns the magnification filter for a filter mode.
// Mipmap modes are invalid for magnification and fall back to linear.
func MagFilterFor(f scene.FilterMode) gpu.Filter {
	switch f {
	case scene.FilterNearest:
		return gpu.FilterNearest
	case scene.FilterLinear:
		return gpu.FilterLinear
	default:
		return gpu.FilterLinear
	}
}

func identityTransforms() FrameTransforms {
	id := math.Identity()
	return FrameTransforms{Model: id, View: id, Projection: id, ViewProjection: id, Normal: id, MVP: id}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
