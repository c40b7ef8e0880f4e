package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/toon-sphere/internal/engine/geometry"
)

// Fixed attribute slots shared with the shader program setup.
const (
	AttribPosition uint32 = 0
	AttribNormal   uint32 = 1
	AttribTexCoord uint32 = 2
)

// MeshBuffers holds the GPU copy of a mesh: one vertex buffer per attribute
// stream and a 16-bit index buffer, recorded in a vertex array.
type MeshBuffers struct {
	VAO        VertexArray
	Streams    [3]Buffer // position, normal, texCoord
	IBO        Buffer
	IndexCount int32
}

// UploadMesh copies a mesh into GPU buffers.
func UploadMesh(m *geometry.Mesh) (*MeshBuffers, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}
	if m.IndexCount() == 0 {
		return nil, fmt.Errorf("mesh has no indices")
	}

	mb := &MeshBuffers{IndexCount: int32(m.IndexCount())}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	mb.VAO = VertexArray(vao)

	streams := []struct {
		slot uint32
		size int32
		data []float32
	}{
		{AttribPosition, 3, m.Positions},
		{AttribNormal, 3, m.Normals},
		{AttribTexCoord, 2, m.TexCoords},
	}
	for i, s := range streams {
		var vbo uint32
		gl.GenBuffers(1, &vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(s.data)*4, gl.Ptr(s.data), gl.STATIC_DRAW)
		gl.VertexAttribPointerWithOffset(s.slot, s.size, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(s.slot)
		mb.Streams[i] = Buffer(vbo)
	}

	var ibo uint32
	gl.GenBuffers(1, &ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*2, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	mb.IBO = Buffer(ibo)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		mb.Destroy()
		return nil, fmt.Errorf("uploading mesh: gl error 0x%x", code)
	}
	return mb, nil
}

// Destroy releases the buffers.
func (mb *MeshBuffers) Destroy() {
	for i := range mb.Streams {
		if mb.Streams[i] != 0 {
			b := uint32(mb.Streams[i])
			gl.DeleteBuffers(1, &b)
			mb.Streams[i] = 0
		}
	}
	if mb.IBO != 0 {
		b := uint32(mb.IBO)
		gl.DeleteBuffers(1, &b)
		mb.IBO = 0
	}
	if mb.VAO != 0 {
		v := uint32(mb.VAO)
		gl.DeleteVertexArrays(1, &v)
		mb.VAO = 0
	}
}
