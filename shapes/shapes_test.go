package shapes

import (
	"math/rand/v2"
	"testing"

	"github.com/akmonengine/sandbox/render"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var topologies = []render.Topology{
	render.TopologyPoints,
	render.TopologyLines,
	render.TopologyLineStrip,
	render.TopologyTriangles,
	render.TopologyQuads,
}

func TestCube_AllTopologiesValid(t *testing.T) {
	for _, topology := range topologies {
		t.Run(topology.String(), func(t *testing.T) {
			mesh := Cube(topology)
			require.NoError(t, mesh.Validate())
			assert.Len(t, mesh.Vertices, 8)
			assert.Equal(t, topology, mesh.Topology)
		})
	}
}

func TestCube_QuadTable(t *testing.T) {
	mesh := Cube(render.TopologyQuads)

	require.Len(t, mesh.Indices, 24)
	// every face is 4 distinct corners sharing one coordinate
	for face := 0; face < 6; face++ {
		corners := mesh.Indices[face*4 : face*4+4]
		shared := 0
		for axis := 0; axis < 3; axis++ {
			same := true
			for _, index := range corners[1:] {
				same = same && mesh.Vertices[index][axis] == mesh.Vertices[corners[0]][axis]
			}
			if same {
				shared++
			}
		}
		assert.Equal(t, 1, shared, "face %d", face)
	}
}

func TestCube_Counts(t *testing.T) {
	assert.Len(t, Cube(render.TopologyTriangles).Indices, 36)
	assert.Len(t, Cube(render.TopologyLines).Indices, 24)
	assert.Len(t, Cube(render.TopologyLineStrip).Indices, 17)
}

func TestCube_MeshesAreIndependent(t *testing.T) {
	a := Cube(render.TopologyLines)
	b := Cube(render.TopologyLines)
	a.Vertices[0] = mgl64.Vec3{9, 9, 9}
	a.Indices[0] = 7

	assert.Equal(t, mgl64.Vec3{-0.5, -0.5, -0.5}, b.Vertices[0])
	assert.Equal(t, 0, b.Indices[0])
}

func TestSurface_AllTopologiesValid(t *testing.T) {
	for _, topology := range topologies {
		mesh := Surface(topology)
		require.NoError(t, mesh.Validate(), topology.String())
		for _, v := range mesh.Vertices {
			assert.Zero(t, v.Y())
		}
	}
}

func TestTriangle_QuadsFallBack(t *testing.T) {
	mesh := Triangle([3]mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}}, render.TopologyQuads)

	assert.Equal(t, render.TopologyTriangles, mesh.Topology)
	assert.NoError(t, mesh.Validate())
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, mesh.Vertices[2])
}

func TestParticleCloud(t *testing.T) {
	mesh := ParticleCloud(DefaultParticleCount, rand.New(rand.NewPCG(1, 2)))

	assert.Equal(t, render.TopologyPoints, mesh.Topology)
	assert.Empty(t, mesh.Indices)
	require.Len(t, mesh.Vertices, DefaultParticleCount)

	inside := 0
	for _, v := range mesh.Vertices {
		if v.Len() <= 1 {
			inside++
		}
	}
	// 3 sigma covers 99.7% of a normal radius
	assert.Greater(t, inside, DefaultParticleCount*95/100)
}

func TestParticleCloud_SameSeedSameCloud(t *testing.T) {
	a := ParticleCloud(64, rand.New(rand.NewPCG(7, 9)))
	b := ParticleCloud(64, rand.New(rand.NewPCG(7, 9)))

	assert.Equal(t, a.Vertices, b.Vertices)
}
