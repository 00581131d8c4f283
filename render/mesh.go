package render

import (
	"image/color"
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

const DefaultLineWidth = 1.5

// Material describes the surface response. Flat shading only reads the lights,
// the coefficients are kept for lit rendering modes.
type Material struct {
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
}

func DefaultMaterial() Material {
	return Material{
		Ambient:   0.2,
		Diffuse:   0.8,
		Specular:  0,
		Shininess: 32,
	}
}

// Mesh is the geometry of one body. Geometry and styling are fixed once the mesh
// is handed to a body; lights may be attached at any time.
type Mesh struct {
	Vertices []mgl64.Vec3
	Normals  []mgl64.Vec3
	UVs      []mgl64.Vec2
	Indices  []int
	Topology Topology

	LineColor color.RGBA
	LineWidth float64
	Material  Material

	mu     sync.RWMutex
	lights []Light
}

func NewMesh(vertices []mgl64.Vec3, indices []int, topology Topology) *Mesh {
	return &Mesh{
		Vertices:  vertices,
		Indices:   indices,
		Topology:  topology,
		LineColor: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		LineWidth: DefaultLineWidth,
		Material:  DefaultMaterial(),
	}
}

func (m *Mesh) AddLight(light Light) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lights = append(m.lights, light)
}

func (m *Mesh) Lights() []Light {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.lights)
}

// Validate checks the index list against the topology and the vertex list
func (m *Mesh) Validate() error {
	switch m.Topology {
	case TopologyPoints:
		// points read the vertex list directly
	case TopologyLineStrip:
		if len(m.Indices) == 1 {
			return errors.New("line strip needs at least 2 indices")
		}
	case TopologyLines, TopologyTriangles, TopologyQuads:
		if n := m.Topology.Arity(); len(m.Indices)%n != 0 {
			return errors.Errorf("%d indices do not group by %d for %s", len(m.Indices), n, m.Topology)
		}
	default:
		return errors.Errorf("unknown topology %d", m.Topology)
	}

	for i, index := range m.Indices {
		if index < 0 || index >= len(m.Vertices) {
			return errors.Errorf("index %d at position %d is outside %d vertices", index, i, len(m.Vertices))
		}
	}
	if len(m.Normals) > 0 && len(m.Normals) != len(m.Vertices) {
		return errors.Errorf("%d normals for %d vertices", len(m.Normals), len(m.Vertices))
	}

	return nil
}
