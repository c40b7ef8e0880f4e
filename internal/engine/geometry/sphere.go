// Package geometry builds procedural meshes.
package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/toon-sphere/pkg/math"
)

// MaxVertices is the largest vertex count addressable by 16-bit indices.
const MaxVertices = 1 << 16

var (
	// ErrSegments is returned for a sphere with fewer than one segment on either axis.
	ErrSegments = errors.New("segment count must be at least 1")
	// ErrRadius is returned for a non-positive radius.
	ErrRadius = errors.New("radius must be positive")
	// ErrTooManyVertices is returned when the mesh cannot be indexed with uint16.
	ErrTooManyVertices = errors.New("vertex count exceeds 16-bit index range")
)

// Mesh holds separate attribute streams for an indexed triangle list.
// It is not modified after construction.
type Mesh struct {
	Positions []float32 // 3 per vertex
	Normals   []float32 // 3 per vertex
	TexCoords []float32 // 2 per vertex
	Colors    []float32 // 4 per vertex
	Indices   []uint16
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// Validate checks that the attribute streams agree on the vertex count and
// that every index refers to an existing vertex.
func (m *Mesh) Validate() error {
	n := m.VertexCount()
	if len(m.Positions) != n*3 {
		return fmt.Errorf("positions: length %d is not a multiple of 3", len(m.Positions))
	}
	if len(m.Normals) != n*3 {
		return fmt.Errorf("normals: %d values for %d vertices", len(m.Normals), n)
	}
	if len(m.TexCoords) != n*2 {
		return fmt.Errorf("texcoords: %d values for %d vertices", len(m.TexCoords), n)
	}
	if m.Colors != nil && len(m.Colors) != n*4 {
		return fmt.Errorf("colors: %d values for %d vertices", len(m.Colors), n)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("indices: length %d is not a triangle list", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d: %d out of range (%d vertices)", i, idx, n)
		}
	}
	return nil
}

// BuildSphere tessellates a UV sphere.
//
// Vertices are emitted latitude-major, pole to pole: row i spans latitude
// θ = π·i/lat and column j spans longitude φ = 2π·j/lon, giving
// (lat+1)·(lon+1) vertices with a duplicated seam column. Texture u runs
// from 1 to 0 along longitude and v from 0 to 1 along latitude. Each cell
// emits two triangles wound counter-clockwise when seen from outside.
func BuildSphere(latSegments, lonSegments int, radius float32, color [4]float32) (*Mesh, error) {
	if latSegments < 1 || lonSegments < 1 {
		return nil, fmt.Errorf("sphere %dx%d: %w", latSegments, lonSegments, ErrSegments)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("sphere radius %v: %w", radius, ErrRadius)
	}
	vertexCount := (latSegments + 1) * (lonSegments + 1)
	if vertexCount > MaxVertices {
		return nil, fmt.Errorf("sphere %dx%d has %d vertices: %w", latSegments, lonSegments, vertexCount, ErrTooManyVertices)
	}

	m := &Mesh{
		Positions: make([]float32, 0, vertexCount*3),
		Normals:   make([]float32, 0, vertexCount*3),
		TexCoords: make([]float32, 0, vertexCount*2),
		Colors:    make([]float32, 0, vertexCount*4),
		Indices:   make([]uint16, 0, latSegments*lonSegments*6),
	}

	for i := 0; i <= latSegments; i++ {
		theta := math32.Pi / float32(latSegments) * float32(i)
		ny := math32.Cos(theta)
		ring := math32.Sin(theta)

		for j := 0; j <= lonSegments; j++ {
			phi := math32.Pi * 2 / float32(lonSegments) * float32(j)
			n := math.Vec3{X: ring * math32.Cos(phi), Y: ny, Z: ring * math32.Sin(phi)}
			p := n.Scale(radius)

			m.Positions = append(m.Positions, p.X, p.Y, p.Z)
			m.Normals = append(m.Normals, n.X, n.Y, n.Z)
			m.TexCoords = append(m.TexCoords,
				1-float32(j)/float32(lonSegments),
				float32(i)/float32(latSegments),
			)
			m.Colors = append(m.Colors, color[0], color[1], color[2], color[3])
		}
	}

	stride := lonSegments + 1
	for i := 0; i < latSegments; i++ {
		for j := 0; j < lonSegments; j++ {
			r := uint16(i*stride + j)
			below := r + uint16(stride)
			m.Indices = append(m.Indices,
				r, r+1, below+1,
				r, below+1, below,
			)
		}
	}

	return m, nil
}
