package render

// Topology tells how the index list groups vertices into primitives
type Topology int

const (
	TopologyPoints Topology = iota
	TopologyLines
	TopologyLineStrip
	TopologyTriangles
	TopologyQuads
)

func (t Topology) String() string {
	switch t {
	case TopologyPoints:
		return "points"
	case TopologyLines:
		return "lines"
	case TopologyLineStrip:
		return "line-strip"
	case TopologyTriangles:
		return "triangles"
	case TopologyQuads:
		return "quads"
	}
	return "unknown"
}

// Arity is the number of indices consumed per primitive.
func (t Topology) Arity() int {
	switch t {
	case TopologyPoints:
		return 1
	case TopologyLines, TopologyLineStrip:
		return 2
	case TopologyTriangles:
		return 3
	case TopologyQuads:
		return 4
	}
	return 0
}

// Step is how far the index window advances between primitives.
func (t Topology) Step() int {
	if t == TopologyLineStrip {
		return 1
	}
	return t.Arity()
}
