package sandbox

import (
	"sync"

	"github.com/akmonengine/sandbox/actor"
	"github.com/akmonengine/sandbox/gjk"
)

// Pair is two bodies whose bounds overlap, lower id first, with the poses
// they were tested at.
type Pair struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
	PoseA actor.Pose
	PoseB actor.Pose
}

// BroadPhase rebuilds octree from bodies and returns every pair of bodies
// whose bounds overlap, each pair once.
func BroadPhase(octree *Octree, bodies []*actor.RigidBody) []Pair {
	poses := make(map[*actor.RigidBody]actor.Pose, len(bodies))
	octree.Clear()
	for _, body := range bodies {
		poses[body] = body.Pose()
		octree.Insert(body)
	}

	seen := make(map[pairKey]struct{})
	pairs := make([]Pair, 0, len(bodies))
	candidates := make([]*actor.RigidBody, 0, 32)

	for _, body := range bodies {
		pose := poses[body]
		candidates = octree.Retrieve(candidates[:0], body)

		for _, other := range candidates {
			if other == body {
				continue
			}
			otherPose, ok := poses[other]
			if !ok || !pose.AABB().Overlaps(otherPose.AABB()) {
				continue
			}

			key := makePairKey(body, other)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			if key.bodyA == body {
				pairs = append(pairs, Pair{BodyA: body, BodyB: other, PoseA: pose, PoseB: otherPose})
			} else {
				pairs = append(pairs, Pair{BodyA: other, BodyB: body, PoseA: otherPose, PoseB: pose})
			}
		}
	}

	return pairs
}

// NarrowPhase keeps the pairs whose boxes really intersect
func NarrowPhase(pairs []Pair, workersCount int) []Pair {
	pairChan := make(chan Pair, workersCount)
	collisionChan := make(chan Pair, workersCount)

	go func() {
		defer close(pairChan)
		for _, p := range pairs {
			pairChan <- p
		}
	}()

	go func() {
		var wg sync.WaitGroup
		defer close(collisionChan)

		for range max(workersCount, 1) {
			wg.Add(1)
			go func() {
				defer wg.Done()

				simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
				defer gjk.SimplexPool.Put(simplex)

				for p := range pairChan {
					simplex.Reset()
					if gjk.GJK(p.PoseA, p.PoseB, simplex) {
						collisionChan <- p
					}
				}
			}()
		}
		wg.Wait()
	}()

	collisions := make([]Pair, 0, len(pairs))
	for p := range collisionChan {
		collisions = append(collisions, p)
	}

	return collisions
}
