package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// vertex is one mesh vertex carried through the pipeline
type vertex struct {
	clip    mgl64.Vec4
	screen  mgl64.Vec2
	visible bool // inside the depth range with a usable w
}

// Paint rasterizes mesh onto canvas. Vertices go through scale, model and the
// camera's combined transform; a primitive is dropped when any vertex falls
// outside [near, far] in clip-space Z, or when all its vertices sit past the
// same viewport edge.
//
// Primitives are drawn in index order without a depth test: buffers are
// accepted for future depth-correct compositing and are not consulted.
func Paint(canvas Canvas, mesh *Mesh, scale mgl64.Vec3, model, cameraTransform mgl64.Mat4, buffers *Buffers, near, far float64) error {
	if mesh == nil {
		return errors.New("paint: nil mesh")
	}

	width, height := canvas.Size()
	transform := cameraTransform.Mul4(model).Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))

	vertices := make([]vertex, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		vertices[i] = project(transform, v, width, height, near, far)
	}

	if mesh.Topology == TopologyPoints {
		for _, v := range vertices {
			if v.visible && !offscreen(width, height, v) {
				canvas.Disc(v.screen, mesh.LineWidth, mesh.LineColor)
			}
		}
		return nil
	}

	indices := mesh.Indices
	if len(indices) == 0 {
		indices = sequence(len(vertices))
	}

	arity, step := mesh.Topology.Arity(), mesh.Topology.Step()
	if arity == 0 {
		return errors.Errorf("paint: unknown topology %d", mesh.Topology)
	}

	lights := mesh.Lights()
	primitive := make([]vertex, arity)
	points := make([]mgl64.Vec2, arity)

	for start := 0; start+arity <= len(indices); start += step {
		for k := 0; k < arity; k++ {
			index := indices[start+k]
			if index < 0 || index >= len(vertices) {
				return errors.Errorf("paint: index %d at position %d is outside %d vertices", index, start+k, len(vertices))
			}
			primitive[k] = vertices[index]
			points[k] = vertices[index].screen
		}

		if clipped(primitive) || offscreen(width, height, primitive...) {
			continue
		}

		switch mesh.Topology {
		case TopologyTriangles, TopologyQuads:
			canvas.FillPolygon(points, shade(primitive, lights))
			canvas.StrokePolygon(points, mesh.LineColor, mesh.LineWidth)
		case TopologyLines, TopologyLineStrip:
			canvas.Line(points[0], points[1], mesh.LineColor, mesh.LineWidth)
		}
	}

	return nil
}

func project(transform mgl64.Mat4, v mgl64.Vec3, width, height int, near, far float64) vertex {
	clip := transform.Mul4x1(v.Vec4(1))
	out := vertex{clip: clip}

	z, w := clip.Z(), clip.W()
	if z < near || z > far || math.Abs(w) < 1e-12 {
		return out
	}

	ndcX, ndcY := clip.X()/w, clip.Y()/w
	out.screen = mgl64.Vec2{
		(ndcX + 1) * float64(width) / 2,
		(1 - ndcY) * float64(height) / 2,
	}
	out.visible = true

	return out
}

func clipped(primitive []vertex) bool {
	for _, v := range primitive {
		if !v.visible {
			return true
		}
	}
	return false
}

// offscreen reports whether every vertex lies past the same viewport edge
func offscreen(width, height int, vertices ...vertex) bool {
	left, right, top, bottom := true, true, true, true
	w, h := float64(width), float64(height)

	for _, v := range vertices {
		x, y := v.screen.X(), v.screen.Y()
		left = left && x < 0
		right = right && x > w
		top = top && y < 0
		bottom = bottom && y > h
	}

	return left || right || top || bottom
}

// shade returns the flat grayscale fill of a face: the sum over lights of the
// cosine between the face normal and the direction to the light, clamped to [0, 1].
func shade(primitive []vertex, lights []Light) color.RGBA {
	p0 := primitive[0].clip.Vec3()
	p1 := primitive[1].clip.Vec3()
	p2 := primitive[2].clip.Vec3()

	var intensity float64
	normal := p1.Sub(p0).Cross(p2.Sub(p0))
	if normal.Len() > 1e-12 {
		normal = normal.Normalize()

		var centroid mgl64.Vec3
		for _, v := range primitive {
			centroid = centroid.Add(v.clip.Vec3())
		}
		centroid = centroid.Mul(1 / float64(len(primitive)))

		for _, light := range lights {
			toLight := light.Position.Sub(centroid)
			if toLight.Len() < 1e-12 {
				continue
			}
			intensity += math.Max(0, normal.Dot(toLight.Normalize()))
		}
	}

	g := uint8(math.Round(255 * mgl64.Clamp(intensity, 0, 1)))
	return color.RGBA{R: g, G: g, B: g, A: 255}
}

func sequence(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
