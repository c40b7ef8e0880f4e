package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/toon-sphere/internal/logger"
	"github.com/Faultbox/toon-sphere/pkg/math"
)

var glFilters = [...]int32{
	FilterNearest:              gl.NEAREST,
	FilterLinear:               gl.LINEAR,
	FilterNearestMipmapNearest: gl.NEAREST_MIPMAP_NEAREST,
	FilterNearestMipmapLinear:  gl.NEAREST_MIPMAP_LINEAR,
	FilterLinearMipmapNearest:  gl.LINEAR_MIPMAP_NEAREST,
	FilterLinearMipmapLinear:   gl.LINEAR_MIPMAP_LINEAR,
}

// Init loads the OpenGL function pointers for the current context.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	return nil
}

// GLDevice implements Device on the current OpenGL context.
type GLDevice struct{}

// NewGLDevice returns a device for the current context.
// IMPORTANT: gl.Init must have succeeded on this thread.
func NewGLDevice() *GLDevice {
	return &GLDevice{}
}

func (d *GLDevice) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *GLDevice) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *GLDevice) Enable(c Capability) {
	switch c {
	case DepthTest:
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	case CullFace:
		gl.Enable(gl.CULL_FACE)
	}
}

func (d *GLDevice) CullFace(f Face) {
	if f == FaceFront {
		gl.CullFace(gl.FRONT)
		return
	}
	gl.CullFace(gl.BACK)
}

func (d *GLDevice) UseProgram(p Program) {
	gl.UseProgram(uint32(p))
}

func (d *GLDevice) Uniform1i(loc Location, v int32) {
	gl.Uniform1i(int32(loc), v)
}

func (d *GLDevice) Uniform1f(loc Location, v float32) {
	gl.Uniform1f(int32(loc), v)
}

func (d *GLDevice) Uniform3f(loc Location, v [3]float32) {
	gl.Uniform3f(int32(loc), v[0], v[1], v[2])
}

func (d *GLDevice) UniformMatrix4(loc Location, m math.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, m.Ptr())
}

func (d *GLDevice) BindTexture(unit int, tex Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

// SetTextureFilter applies to the texture bound by the last BindTexture.
func (d *GLDevice) SetTextureFilter(minFilter, magFilter Filter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilters[minFilter])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilters[magFilter])
}

func (d *GLDevice) BindMesh(m *MeshBuffers) {
	gl.BindVertexArray(uint32(m.VAO))
}

func (d *GLDevice) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_SHORT, nil)
}

func (d *GLDevice) Err() error {
	code := gl.GetError()
	switch code {
	case gl.NO_ERROR:
		return nil
	case gl.OUT_OF_MEMORY:
		return fmt.Errorf("%w: GL_OUT_OF_MEMORY", ErrContextLost)
	default:
		return fmt.Errorf("gl error 0x%x", code)
	}
}

// ReadPixels reads the bound framebuffer as bottom-up RGBA rows.
func ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
