package geometry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/toon-sphere/pkg/math"
)

var white = [4]float32{1, 1, 1, 1}

func TestBuildSphereCounts(t *testing.T) {
	m, err := BuildSphere(4, 4, 1.0, white)
	require.NoError(t, err)

	assert.Equal(t, 25, m.VertexCount())
	assert.Equal(t, 96, m.IndexCount())
	assert.NoError(t, m.Validate())
}

func TestBuildSphereProperties(t *testing.T) {
	for _, tc := range []struct{ lat, lon int }{
		{3, 3}, {3, 8}, {7, 5}, {16, 32}, {64, 64},
	} {
		t.Run(fmt.Sprintf("%dx%d", tc.lat, tc.lon), func(t *testing.T) {
			m, err := BuildSphere(tc.lat, tc.lon, 2.5, white)
			require.NoError(t, err)
			require.NoError(t, m.Validate())

			assert.Equal(t, (tc.lat+1)*(tc.lon+1), m.VertexCount())
			assert.Equal(t, 6*tc.lat*tc.lon, m.IndexCount())

			for v := 0; v < m.VertexCount(); v++ {
				n := math.Vec3{X: m.Normals[v*3], Y: m.Normals[v*3+1], Z: m.Normals[v*3+2]}
				require.InDelta(t, 1, n.Length(), 1e-5, "normal %d", v)

				p := math.Vec3{X: m.Positions[v*3], Y: m.Positions[v*3+1], Z: m.Positions[v*3+2]}
				require.InDelta(t, 0, p.Sub(n.Scale(2.5)).Length(), 1e-5, "position %d", v)

				u, tv := m.TexCoords[v*2], m.TexCoords[v*2+1]
				require.True(t, u >= 0 && u <= 1 && tv >= 0 && tv <= 1, "texcoord %d = (%v, %v)", v, u, tv)
			}
		})
	}
}

func TestBuildSphereWindingFacesOutward(t *testing.T) {
	m, err := BuildSphere(8, 12, 1.0, white)
	require.NoError(t, err)

	vertex := func(i uint16) math.Vec3 {
		return math.Vec3{X: m.Positions[i*3], Y: m.Positions[i*3+1], Z: m.Positions[i*3+2]}
	}

	for tri := 0; tri < len(m.Indices); tri += 3 {
		a, b, c := vertex(m.Indices[tri]), vertex(m.Indices[tri+1]), vertex(m.Indices[tri+2])
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Length() < 1e-6 {
			// Degenerate triangles touch the poles.
			continue
		}
		centroid := a.Add(b).Add(c).Scale(1.0 / 3.0)
		require.Greater(t, n.Dot(centroid), float32(0), "triangle %d winds inward", tri/3)
	}
}

func TestBuildSphereColorAndTexCoords(t *testing.T) {
	color := [4]float32{0.2, 0.4, 0.6, 1}
	m, err := BuildSphere(2, 4, 1, color)
	require.NoError(t, err)

	assert.Equal(t, []float32{0.2, 0.4, 0.6, 1}, m.Colors[:4])
	assert.Len(t, m.Colors, m.VertexCount()*4)

	// First vertex is the north pole at u=1, v=0; last is the south pole at u=0, v=1.
	assert.Equal(t, []float32{1, 0}, m.TexCoords[:2])
	assert.Equal(t, []float32{0, 1}, m.TexCoords[len(m.TexCoords)-2:])
	assert.InDelta(t, 1, m.Positions[1], 1e-6)
	assert.InDelta(t, -1, m.Positions[len(m.Positions)-2], 1e-6)
}

func TestBuildSphereErrors(t *testing.T) {
	_, err := BuildSphere(0, 4, 1, white)
	assert.True(t, errors.Is(err, ErrSegments))

	_, err = BuildSphere(4, 4, 0, white)
	assert.True(t, errors.Is(err, ErrRadius))

	_, err = BuildSphere(4, 4, math32.NaN(), white)
	assert.True(t, errors.Is(err, ErrRadius))

	_, err = BuildSphere(300, 300, 1, white)
	assert.True(t, errors.Is(err, ErrTooManyVertices))
}

func TestValidateRejectsBadIndex(t *testing.T) {
	m := &Mesh{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		TexCoords: []float32{0, 0, 1, 0, 0, 1},
		Indices:   []uint16{0, 1, 3},
	}
	assert.Error(t, m.Validate())

	m.Indices = []uint16{0, 1, 2}
	assert.NoError(t, m.Validate())
}
