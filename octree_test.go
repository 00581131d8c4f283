package sandbox

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/akmonengine/sandbox/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func TestOctree_InsertBelowCapacity(t *testing.T) {
	octree := NewOctree(CubeBounds(8), 4, 3)

	for i := 0; i < 4; i++ {
		octree.Insert(createUnitBox(mgl64.Vec3{float64(i), 0, 0}))
	}

	if octree.Children() != nil {
		t.Error("Expected no split below capacity")
	}
	if octree.Len() != 4 {
		t.Errorf("Expected 4 bodies, got %d", octree.Len())
	}
}

func TestOctree_Index(t *testing.T) {
	octree := NewOctree(CubeBounds(8), 1, 3)

	tests := []struct {
		name     string
		position mgl64.Vec3
		want     int
	}{
		{"low corner", mgl64.Vec3{-4, -4, -4}, 0},
		{"high X", mgl64.Vec3{4, -4, -4}, 1},
		{"high Y", mgl64.Vec3{-4, 4, -4}, 2},
		{"high Z", mgl64.Vec3{-4, -4, 4}, 4},
		{"high corner", mgl64.Vec3{4, 4, 4}, 7},
		{"straddles X midpoint", mgl64.Vec3{0, 4, 4}, -1},
		{"touches midpoint", mgl64.Vec3{0.5, 4, 4}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := octree.index(createUnitBox(tt.position).AABB())
			if got != tt.want {
				t.Errorf("index() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOctree_Split(t *testing.T) {
	octree := NewOctree(CubeBounds(8), 2, 3)

	low := createUnitBox(mgl64.Vec3{-4, -4, -4})
	high := createUnitBox(mgl64.Vec3{4, 4, 4})
	side := createUnitBox(mgl64.Vec3{4, -4, -4})
	octree.Insert(low)
	octree.Insert(high)
	octree.Insert(side)

	children := octree.Children()
	if len(children) != 8 {
		t.Fatalf("Expected 8 children after split, got %d", len(children))
	}
	if len(octree.Residents()) != 0 {
		t.Errorf("Expected no residents left at the root, got %d", len(octree.Residents()))
	}

	for octant, body := range map[int]*actor.RigidBody{0: low, 7: high, 1: side} {
		residents := children[octant].Residents()
		if len(residents) != 1 || residents[0] != body {
			t.Errorf("Expected octant %d to hold body %d, got %v", octant, body.ID(), residents)
		}
		if children[octant].Level() != 1 {
			t.Errorf("Expected child level 1, got %d", children[octant].Level())
		}
		if !children[octant].Bounds().Contains(body.AABB()) {
			t.Errorf("Octant %d bounds %v do not contain its body", octant, children[octant].Bounds())
		}
	}
	if octree.Len() != 3 {
		t.Errorf("Expected 3 bodies in the tree, got %d", octree.Len())
	}
}

func TestOctree_StragglersStayInNode(t *testing.T) {
	octree := NewOctree(CubeBounds(8), 1, 3)

	center := createUnitBox(mgl64.Vec3{0, 0, 0})
	corner := createUnitBox(mgl64.Vec3{4, 4, 4})
	octree.Insert(center)
	octree.Insert(corner)

	if octree.Children() == nil {
		t.Fatal("Expected a split")
	}
	residents := octree.Residents()
	if len(residents) != 1 || residents[0] != center {
		t.Errorf("Expected the centered body to stay at the root, got %v", residents)
	}
}

func TestOctree_MaxLevel(t *testing.T) {
	octree := NewOctree(CubeBounds(8), 1, 0)

	for i := 0; i < 5; i++ {
		octree.Insert(createUnitBox(mgl64.Vec3{-4, -4, float64(-i)}))
	}

	if octree.Children() != nil {
		t.Error("Expected no split at max level")
	}
	if len(octree.Residents()) != 5 {
		t.Errorf("Expected 5 residents, got %d", len(octree.Residents()))
	}
}

func TestOctree_Retrieve(t *testing.T) {
	octree := NewOctree(CubeBounds(8), 1, 3)

	center := createUnitBox(mgl64.Vec3{0, 0, 0})
	high := createUnitBox(mgl64.Vec3{4, 4, 4})
	low := createUnitBox(mgl64.Vec3{-4, -4, -4})
	octree.Insert(center)
	octree.Insert(high)
	octree.Insert(low)

	result := octree.Retrieve(nil, high)
	if !slices.Contains(result, high) || !slices.Contains(result, center) {
		t.Errorf("Expected the body and the root straddler, got %d bodies", len(result))
	}
	if slices.Contains(result, low) {
		t.Error("Expected the opposite octant to be skipped")
	}

	// a straddler only sees its own node
	result = octree.Retrieve(nil, center)
	if len(result) != 1 || result[0] != center {
		t.Errorf("Expected only the straddler itself, got %d bodies", len(result))
	}
}

// pathTo returns the nodes from o down to the node holding body, or nil when
// body is not in the subtree.
func pathTo(o *Octree, body *actor.RigidBody) []*Octree {
	if slices.Contains(o.Residents(), body) {
		return []*Octree{o}
	}
	for _, child := range o.Children() {
		if path := pathTo(child, body); path != nil {
			return append([]*Octree{o}, path...)
		}
	}

	return nil
}

func TestOctree_RetrieveCoversContainmentPath(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	octree := NewOctree(CubeBounds(16), 2, 5)

	// one small box per cell of a 2 unit grid, jittered inside its cell
	var bodies []*actor.RigidBody
	for x := -15.0; x < 16; x += 2 {
		for y := -15.0; y < 16; y += 2 {
			for z := -15.0; z < 16; z += 2 {
				if rng.Float64() > 0.1 {
					continue
				}
				jitter := mgl64.Vec3{rng.Float64() - 0.5, rng.Float64() - 0.5, rng.Float64() - 0.5}
				body := createBox(mgl64.Vec3{x, y, z}.Add(jitter), mgl64.Vec3{0.5, 0.5, 0.5}, actor.BodyTypeDynamic)
				bodies = append(bodies, body)
				octree.Insert(body)
			}
		}
	}

	if octree.Len() != len(bodies) {
		t.Fatalf("Expected %d bodies in the tree, got %d", len(bodies), octree.Len())
	}

	deepest := 0
	for _, body := range bodies {
		path := pathTo(octree, body)
		if path == nil {
			t.Fatalf("Body %d is missing from the tree", body.ID())
		}
		deepest = max(deepest, path[len(path)-1].Level())

		result := octree.Retrieve(nil, body)
		for _, node := range path {
			for _, resident := range node.Residents() {
				if !slices.Contains(result, resident) {
					t.Fatalf("Retrieve for body %d omits body %d held at level %d",
						body.ID(), resident.ID(), node.Level())
				}
			}
		}
	}

	if deepest < 2 {
		t.Errorf("Expected the tree to split over several levels, deepest node is level %d", deepest)
	}
}

func TestOctree_RetrieveBox(t *testing.T) {
	octree := NewOctree(CubeBounds(8), 1, 3)

	high := createUnitBox(mgl64.Vec3{4, 4, 4})
	low := createUnitBox(mgl64.Vec3{-4, -4, -4})
	octree.Insert(high)
	octree.Insert(low)

	result := octree.RetrieveBox(nil, actor.AABB{Min: mgl64.Vec3{3, 3, 3}, Max: mgl64.Vec3{5, 5, 5}})
	if len(result) != 1 || result[0] != high {
		t.Errorf("Expected only the high body, got %d bodies", len(result))
	}

	result = octree.RetrieveBox(nil, actor.AABB{Min: mgl64.Vec3{20, 20, 20}, Max: mgl64.Vec3{21, 21, 21}})
	if len(result) != 0 {
		t.Errorf("Expected nothing outside the tree, got %d bodies", len(result))
	}

	result = octree.RetrieveBox(nil, CubeBounds(10))
	if len(result) != 2 {
		t.Errorf("Expected both bodies, got %d", len(result))
	}
}

func TestOctree_Clear(t *testing.T) {
	octree := NewOctree(CubeBounds(8), 1, 3)
	octree.Insert(createUnitBox(mgl64.Vec3{4, 4, 4}))
	octree.Insert(createUnitBox(mgl64.Vec3{-4, -4, -4}))

	octree.Clear()

	if octree.Len() != 0 || octree.Children() != nil {
		t.Error("Expected an empty leaf after Clear")
	}
}
