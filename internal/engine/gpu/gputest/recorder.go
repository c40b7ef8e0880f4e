// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"

	"github.com/Faultbox/toon-sphere/internal/engine/gpu"
	"github.com/Faultbox/toon-sphere/pkg/math"
)

// Call is one recorded device operation.
type Call struct {
	Op    string
	Loc   gpu.Location
	Int   int32
	Float float32
	Vec3  [3]float32
	Mat   math.Mat4
	Face  gpu.Face
	Cap   gpu.Capability
	Min   gpu.Filter
	Mag   gpu.Filter
	Unit  int
	Tex   gpu.Texture
	Rect  [4]int32
}

// Recorder records every call in order. Set Fail to make Err return it.
type Recorder struct {
	Calls []Call
	Fail  error
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Ops returns the operation names in call order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Filter returns the calls with the given op.
func (r *Recorder) Filter(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// CullFaces returns the culled faces in the order they were set.
func (r *Recorder) CullFaces() []gpu.Face {
	var faces []gpu.Face
	for _, c := range r.Filter("CullFace") {
		faces = append(faces, c.Face)
	}
	return faces
}

// Uniforms returns the uniform calls made to loc.
func (r *Recorder) Uniforms(loc gpu.Location) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Loc == loc && len(c.Op) > 7 && c.Op[:7] == "Uniform" {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) add(c Call) { r.Calls = append(r.Calls, c) }

func (r *Recorder) Viewport(x, y, w, h int32) {
	r.add(Call{Op: "Viewport", Rect: [4]int32{x, y, w, h}})
}

func (r *Recorder) Clear(cr, cg, cb, ca float32) {
	r.add(Call{Op: "Clear", Vec3: [3]float32{cr, cg, cb}, Float: ca})
}

func (r *Recorder) Enable(c gpu.Capability) { r.add(Call{Op: "Enable", Cap: c}) }
func (r *Recorder) CullFace(f gpu.Face)     { r.add(Call{Op: "CullFace", Face: f}) }
func (r *Recorder) UseProgram(p gpu.Program) {
	r.add(Call{Op: "UseProgram", Int: int32(p)})
}

func (r *Recorder) Uniform1i(loc gpu.Location, v int32) {
	r.add(Call{Op: "Uniform1i", Loc: loc, Int: v})
}

func (r *Recorder) Uniform1f(loc gpu.Location, v float32) {
	r.add(Call{Op: "Uniform1f", Loc: loc, Float: v})
}

func (r *Recorder) Uniform3f(loc gpu.Location, v [3]float32) {
	r.add(Call{Op: "Uniform3f", Loc: loc, Vec3: v})
}

func (r *Recorder) UniformMatrix4(loc gpu.Location, m math.Mat4) {
	r.add(Call{Op: "UniformMatrix4", Loc: loc, Mat: m})
}

func (r *Recorder) BindTexture(unit int, tex gpu.Texture) {
	r.add(Call{Op: "BindTexture", Unit: unit, Tex: tex})
}

func (r *Recorder) SetTextureFilter(minFilter, magFilter gpu.Filter) {
	r.add(Call{Op: "SetTextureFilter", Min: minFilter, Mag: magFilter})
}

func (r *Recorder) BindMesh(m *gpu.MeshBuffers) {
	r.add(Call{Op: "BindMesh", Int: int32(m.VAO)})
}

func (r *Recorder) DrawElements(count int32) {
	r.add(Call{Op: "DrawElements", Int: count})
}

func (r *Recorder) Err() error {
	return r.Fail
}

func (c Call) String() string {
	return fmt.Sprintf("%s(loc=%d)", c.Op, c.Loc)
}

var _ gpu.Device = (*Recorder)(nil)
