package sandbox

import (
	"slices"
	"sync"

	"github.com/akmonengine/sandbox/actor"
	"github.com/sirupsen/logrus"
)

const DEFAULT_WORKERS = 1

// World owns the body list and advances it in physics steps
type World struct {
	mu     sync.RWMutex
	bodies []*actor.RigidBody

	stepMu sync.Mutex

	Workers    int
	Collisions bool
	Octree     *Octree

	Events *Events
	Stats  *Stats
	log    logrus.FieldLogger
}

func NewWorld(workers int, octree *Octree, stats *Stats, log logrus.FieldLogger) *World {
	return &World{
		Workers: max(DEFAULT_WORKERS, workers),
		Octree:  octree,
		Events:  NewEvents(),
		Stats:   stats,
		log:     log.WithField("component", "world"),
	}
}

// AddBody adds a rigid body to the world
func (w *World) AddBody(body *actor.RigidBody) {
	w.mu.Lock()
	w.bodies = append(w.bodies, body)
	w.mu.Unlock()

	w.reportFallbacks(body)
}

// reportFallbacks counts the identity fallbacks the body took since the last report,
// whether at construction or after a SetScale or SetMass.
func (w *World) reportFallbacks(body *actor.RigidBody) {
	n := body.TakeInertiaFallbacks()
	if n == 0 {
		return
	}

	w.Stats.InertiaFallbacks.Add(uint64(n))
	w.Events.emit(InertiaFallbackEvent{Body: body})
	w.log.WithField("body", body.ID()).Warn("singular inertia tensor, using identity")
}

// RemoveBody removes a rigid body from the world, reporting whether it was registered
func (w *World) RemoveBody(body *actor.RigidBody) bool {
	w.mu.Lock()
	k := slices.Index(w.bodies, body)
	if k != -1 {
		w.bodies = slices.Delete(w.bodies, k, k+1)
	}
	w.mu.Unlock()

	if k == -1 {
		return false
	}
	w.Events.forget(body)

	return true
}

// Bodies returns a copy of the body list in insertion order
func (w *World) Bodies() []*actor.RigidBody {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return slices.Clone(w.bodies)
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.bodies)
}

// Step advances every body by dt. Bodies added or removed while a step runs
// are seen by the next step.
func (w *World) Step(dt float64) {
	w.stepMu.Lock()
	defer w.stepMu.Unlock()

	bodies := w.Bodies()
	w.integrate(bodies, dt)

	detect := w.Collisions && w.Octree != nil
	if detect {
		w.Events.recordCollisions(w.detectCollision(bodies))
	}

	w.Stats.Ticks.Add(1)
	w.Events.flush(detect)
}

func (w *World) integrate(bodies []*actor.RigidBody, dt float64) {
	task(w.Workers, bodies, func(body *actor.RigidBody) {
		if !body.Update(dt) {
			w.Stats.SkippedUpdates.Add(1)
			w.Events.emit(UpdateSkippedEvent{Body: body})
		}
		w.reportFallbacks(body)
	})
}

func (w *World) detectCollision(bodies []*actor.RigidBody) []Pair {
	return NarrowPhase(BroadPhase(w.Octree, bodies), w.Workers)
}
