// Package shader compiles the toon shading program and resolves its
// attribute and uniform bindings.
package shader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/toon-sphere/internal/engine/gpu"
	"github.com/Faultbox/toon-sphere/internal/logger"
)

// Uniform names the toon program exposes. They must match the shader
// sources exactly.
const (
	UniformMVP            = "mvpMatrix"
	UniformNormalMatrix   = "normalMatrix"
	UniformModel          = "mMatrix"
	UniformLightDirection = "lightDirection"
	UniformTextureUnit0   = "textureUnit0"
	UniformGlobalColor    = "globalColor"
	UniformIsTexture      = "isTexture"
	UniformGradient       = "gradient"
	UniformIsEdge         = "isEdge"
	UniformInflate        = "inflate"
)

// Attribute names bound to the fixed gpu attribute slots before linking.
var Attributes = map[string]uint32{
	"position": gpu.AttribPosition,
	"normal":   gpu.AttribNormal,
	"texCoord": gpu.AttribTexCoord,
}

// Uniforms is the full uniform contract. mMatrix is optional.
var Uniforms = []string{
	UniformMVP,
	UniformNormalMatrix,
	UniformModel,
	UniformLightDirection,
	UniformTextureUnit0,
	UniformGlobalColor,
	UniformIsTexture,
	UniformGradient,
	UniformIsEdge,
	UniformInflate,
}

// Program is a linked program with its resolved uniform locations.
type Program struct {
	ID       gpu.Program
	uniforms map[string]gpu.Location
}

// NewProgram wraps an already linked program with known locations.
// Names missing from locs resolve to gpu.NoLocation.
func NewProgram(id gpu.Program, locs map[string]gpu.Location) *Program {
	p := &Program{ID: id, uniforms: make(map[string]gpu.Location, len(locs))}
	for name, loc := range locs {
		p.uniforms[name] = loc
	}
	return p
}

// Uniform returns the location of name, or gpu.NoLocation if the program
// does not use it.
func (p *Program) Uniform(name string) gpu.Location {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return gpu.NoLocation
}

// Load compiles and links the toon program and resolves every uniform of
// the contract. Uniforms the driver optimised away are logged, not fatal.
func Load(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc, Attributes)
	if err != nil {
		return nil, err
	}

	locs := make(map[string]gpu.Location, len(Uniforms))
	for _, name := range Uniforms {
		loc := gl.GetUniformLocation(id, gl.Str(name+"\x00"))
		if loc < 0 {
			log := logger.Warn
			if name == UniformModel {
				log = logger.Debug
			}
			log("uniform not active", zap.String("name", name), zap.Uint32("program", id))
			continue
		}
		locs[name] = gpu.Location(loc)
	}

	logger.Debug("toon program loaded", zap.Uint32("program", id), zap.Int("uniforms", len(locs)))
	return NewProgram(gpu.Program(id), locs), nil
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(uint32(p.ID))
		p.ID = 0
	}
}

// CompileProgram compiles vertex and fragment shaders, binds the given
// attribute names to their slots and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string, attribs map[string]uint32) (uint32, error) {
	// Compile vertex shader
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	// Compile fragment shader
	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	for name, slot := range attribs {
		gl.BindAttribLocation(program, slot, gl.Str(name+"\x00"))
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log[:logLen]))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log[:logLen]))
	}

	return shader, nil
}

// Sources is a vertex/fragment source pair.
type Sources struct {
	Vertex   string
	Fragment string
}

// LoadSources reads toon.vert and toon.frag from dir. An empty dir
// returns the embedded sources.
func LoadSources(dir string) (Sources, error) {
	if dir == "" {
		return Sources{Vertex: ToonVertexShader, Fragment: ToonFragmentShader}, nil
	}
	vs, err := os.ReadFile(filepath.Join(dir, "toon.vert"))
	if err != nil {
		return Sources{}, fmt.Errorf("reading vertex shader: %w", err)
	}
	fs, err := os.ReadFile(filepath.Join(dir, "toon.frag"))
	if err != nil {
		return Sources{}, fmt.Errorf("reading fragment shader: %w", err)
	}
	return Sources{Vertex: string(vs), Fragment: string(fs)}, nil
}
