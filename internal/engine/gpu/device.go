// Package gpu defines the graphics device boundary used by the frame renderer
// and its OpenGL implementation.
package gpu

import (
	"errors"

	"github.com/Faultbox/toon-sphere/pkg/math"
)

// Opaque GPU object handles. They are created by setup code and only
// referenced by the renderer.
type (
	Program     uint32
	Buffer      uint32
	VertexArray uint32
	Texture     uint32
)

// Location is a uniform location. -1 means the uniform is not active and
// uploads to it are ignored.
type Location int32

// NoLocation marks an inactive uniform.
const NoLocation Location = -1

// Face selects which polygon face is culled.
type Face int

const (
	FaceBack Face = iota
	FaceFront
)

func (f Face) String() string {
	if f == FaceFront {
		return "FRONT"
	}
	return "BACK"
}

// Capability is a toggleable pipeline state.
type Capability int

const (
	DepthTest Capability = iota
	CullFace
)

// Filter is a texture sampling filter.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapNearest
	FilterLinearMipmapLinear
)

// ErrContextLost is reported when the device can no longer render.
var ErrContextLost = errors.New("graphics context lost")

// Device is the set of draw-time operations the renderer issues.
// All methods must be called on the thread that owns the context.
type Device interface {
	Viewport(x, y, width, height int32)
	Clear(r, g, b, a float32)
	Enable(c Capability)
	CullFace(f Face)

	UseProgram(p Program)
	Uniform1i(loc Location, v int32)
	Uniform1f(loc Location, v float32)
	Uniform3f(loc Location, v [3]float32)
	UniformMatrix4(loc Location, m math.Mat4)

	BindTexture(unit int, tex Texture)
	SetTextureFilter(minFilter, magFilter Filter)

	BindMesh(m *MeshBuffers)
	DrawElements(count int32)

	// Err reports a pending device error, if any.
	Err() error
}
