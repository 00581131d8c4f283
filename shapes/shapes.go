// Package shapes builds the vertex and index tables of the sandbox primitives.
// Every shape fits in the unit box centered on the origin; bodies stretch it with their scale.
package shapes

import (
	"math"
	"math/rand/v2"

	"github.com/akmonengine/sandbox/render"
	"github.com/go-gl/mathgl/mgl64"
)

const DefaultParticleCount = 500

var cubeVertices = []mgl64.Vec3{
	{-0.5, -0.5, -0.5},
	{0.5, -0.5, -0.5},
	{0.5, 0.5, -0.5},
	{-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
}

var cubeIndices = map[render.Topology][]int{
	render.TopologyTriangles: {
		0, 1, 2, 0, 2, 3,
		1, 5, 6, 1, 6, 2,
		5, 4, 7, 5, 7, 6,
		4, 0, 3, 4, 3, 7,
		3, 2, 6, 3, 6, 7,
		4, 5, 1, 4, 1, 0,
	},
	render.TopologyQuads: {
		0, 1, 2, 3,
		4, 5, 6, 7,
		0, 4, 5, 1,
		1, 5, 6, 2,
		2, 6, 7, 3,
		3, 7, 4, 0,
	},
	render.TopologyLines:     {0, 1, 1, 2, 2, 3, 3, 0, 4, 5, 5, 6, 6, 7, 7, 4, 0, 4, 1, 5, 2, 6, 3, 7},
	render.TopologyLineStrip: {0, 1, 2, 3, 0, 4, 5, 6, 7, 4, 0, 1, 5, 2, 6, 3, 7},
	render.TopologyPoints:    {0, 1, 2, 3, 4, 5, 6, 7},
}

// surface lies in the XZ plane
var surfaceVertices = []mgl64.Vec3{
	{-0.5, 0, -0.5},
	{0.5, 0, -0.5},
	{0.5, 0, 0.5},
	{-0.5, 0, 0.5},
}

var surfaceIndices = map[render.Topology][]int{
	render.TopologyTriangles: {0, 1, 2, 0, 2, 3},
	render.TopologyQuads:     {0, 1, 2, 3},
	render.TopologyLines:     {0, 1, 1, 2, 2, 3, 3, 0},
	render.TopologyLineStrip: {0, 1, 2, 3, 0},
	render.TopologyPoints:    {0, 1, 2, 3},
}

// a triangle has no quad form; quads fall back to the triangle itself
var triangleIndices = map[render.Topology][]int{
	render.TopologyTriangles: {0, 1, 2},
	render.TopologyQuads:     {0, 1, 2},
	render.TopologyLines:     {0, 1, 1, 2, 2, 0},
	render.TopologyLineStrip: {0, 1, 2, 0},
	render.TopologyPoints:    {0, 1, 2},
}

func build(vertices []mgl64.Vec3, table map[render.Topology][]int, topology render.Topology) *render.Mesh {
	indices := table[topology]
	if topology == render.TopologyQuads && len(indices)%4 != 0 {
		topology = render.TopologyTriangles
	}

	return render.NewMesh(append([]mgl64.Vec3(nil), vertices...), append([]int(nil), indices...), topology)
}

// Cube is the 8-corner unit cube
func Cube(topology render.Topology) *render.Mesh {
	return build(cubeVertices, cubeIndices, topology)
}

// Surface is a unit square lying flat in the XZ plane
func Surface(topology render.Topology) *render.Mesh {
	return build(surfaceVertices, surfaceIndices, topology)
}

// Triangle is a flat triangle in the XZ plane through the given (x, z) points
func Triangle(points [3]mgl64.Vec2, topology render.Topology) *render.Mesh {
	vertices := make([]mgl64.Vec3, len(points))
	for i, p := range points {
		vertices[i] = mgl64.Vec3{p.X(), 0, p.Y()}
	}

	return build(vertices, triangleIndices, topology)
}

// ParticleCloud scatters count points around the origin with a normally
// distributed radius whose 3 sigma is 1. It has no indices.
func ParticleCloud(count int, rng *rand.Rand) *render.Mesh {
	vertices := make([]mgl64.Vec3, count)
	for i := range vertices {
		vertices[i] = particle(rng)
	}

	return render.NewMesh(vertices, nil, render.TopologyPoints)
}

func particle(rng *rand.Rand) mgl64.Vec3 {
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)

	r := rng.NormFloat64() / 3

	return mgl64.Vec3{
		r * math.Sin(phi) * math.Cos(theta),
		r * math.Sin(phi) * math.Sin(theta),
		r * math.Cos(phi),
	}
}
