package sandbox

import (
	"github.com/akmonengine/sandbox/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultOctreeCapacity = 8
	DefaultOctreeMaxLevel = 5
)

type octreeEntry struct {
	body *actor.RigidBody
	aabb actor.AABB
}

// Octree partitions bodies by their bounds. It is rebuilt every query epoch
// (Clear then Insert) and does not support removal.
type Octree struct {
	level    int
	capacity int
	maxLevel int
	bounds   actor.AABB

	entries  []octreeEntry
	children *[8]*Octree
}

func NewOctree(bounds actor.AABB, capacity, maxLevel int) *Octree {
	return newOctreeNode(0, bounds, max(capacity, 1), max(maxLevel, 0))
}

func newOctreeNode(level int, bounds actor.AABB, capacity, maxLevel int) *Octree {
	return &Octree{
		level:    level,
		capacity: capacity,
		maxLevel: maxLevel,
		bounds:   bounds,
	}
}

func (o *Octree) Bounds() actor.AABB {
	return o.bounds
}

func (o *Octree) Level() int {
	return o.level
}

// Children returns nil until the node splits
func (o *Octree) Children() []*Octree {
	if o.children == nil {
		return nil
	}
	return o.children[:]
}

// Residents returns the bodies held by this node itself
func (o *Octree) Residents() []*actor.RigidBody {
	bodies := make([]*actor.RigidBody, len(o.entries))
	for i, e := range o.entries {
		bodies[i] = e.body
	}
	return bodies
}

// Len counts the bodies in the whole subtree
func (o *Octree) Len() int {
	n := len(o.entries)
	for _, child := range o.Children() {
		n += child.Len()
	}
	return n
}

func (o *Octree) Clear() {
	o.entries = nil
	o.children = nil
}

// index returns the octant aabb fits in, or -1 when it straddles a midpoint on any axis.
// Octant bits: X -> 1, Y -> 2, Z -> 4, set on the high side.
func (o *Octree) index(aabb actor.AABB) int {
	mid := o.bounds.Center()
	octant := 0

	for axis := 0; axis < 3; axis++ {
		switch {
		case aabb.Max[axis] < mid[axis]:
		case aabb.Min[axis] > mid[axis]:
			octant |= 1 << axis
		default:
			return -1
		}
	}

	return octant
}

func (o *Octree) split() {
	mid := o.bounds.Center()
	o.children = new([8]*Octree)

	for octant := range o.children {
		var bounds actor.AABB
		for axis := 0; axis < 3; axis++ {
			if octant&(1<<axis) != 0 {
				bounds.Min[axis], bounds.Max[axis] = mid[axis], o.bounds.Max[axis]
			} else {
				bounds.Min[axis], bounds.Max[axis] = o.bounds.Min[axis], mid[axis]
			}
		}
		o.children[octant] = newOctreeNode(o.level+1, bounds, o.capacity, o.maxLevel)
	}
}

// Insert places body in the deepest node whose octant holds its bounds entirely
func (o *Octree) Insert(body *actor.RigidBody) {
	o.insert(octreeEntry{body: body, aabb: body.AABB()})
}

func (o *Octree) insert(entry octreeEntry) {
	if o.children != nil {
		if i := o.index(entry.aabb); i >= 0 {
			o.children[i].insert(entry)
			return
		}
	}

	o.entries = append(o.entries, entry)

	if o.children == nil && len(o.entries) > o.capacity && o.level < o.maxLevel {
		o.split()

		stragglers := o.entries[:0]
		for _, e := range o.entries {
			if i := o.index(e.aabb); i >= 0 {
				o.children[i].insert(e)
			} else {
				stragglers = append(stragglers, e)
			}
		}
		clear(o.entries[len(stragglers):])
		o.entries = stragglers
	}
}

// Retrieve appends the candidates along body's containment path: the contents
// of the child it maps to, then this node's own residents. The result may
// include body itself and bodies that do not overlap it.
func (o *Octree) Retrieve(result []*actor.RigidBody, body *actor.RigidBody) []*actor.RigidBody {
	return o.retrieve(result, body.AABB())
}

func (o *Octree) retrieve(result []*actor.RigidBody, aabb actor.AABB) []*actor.RigidBody {
	if o.children != nil {
		if i := o.index(aabb); i >= 0 {
			result = o.children[i].retrieve(result, aabb)
		}
	}

	for _, e := range o.entries {
		result = append(result, e.body)
	}

	return result
}

// RetrieveBox appends every body whose bounds overlap box. A box outside the
// tree yields nothing.
func (o *Octree) RetrieveBox(result []*actor.RigidBody, box actor.AABB) []*actor.RigidBody {
	if !o.bounds.Overlaps(box) && o.level > 0 {
		return result
	}

	for _, e := range o.entries {
		if e.aabb.Overlaps(box) {
			result = append(result, e.body)
		}
	}
	for _, child := range o.Children() {
		result = child.RetrieveBox(result, box)
	}

	return result
}

// CubeBounds is a root box centered on the origin
func CubeBounds(halfSize float64) actor.AABB {
	return actor.AABB{
		Min: mgl64.Vec3{-halfSize, -halfSize, -halfSize},
		Max: mgl64.Vec3{halfSize, halfSize, halfSize},
	}
}
