package sandbox

import (
	"math"
	"testing"

	"github.com/akmonengine/sandbox/actor"
	"github.com/akmonengine/sandbox/render"
	"github.com/akmonengine/sandbox/shapes"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus/hooks/test"
)

// createBox creates an axis aligned box of the given size at position
func createBox(position mgl64.Vec3, scale mgl64.Vec3, bodyType actor.BodyType) *actor.RigidBody {
	return actor.NewRigidBody(
		actor.Transform{Position: position, Rotation: mgl64.QuatIdent()},
		scale,
		1.0,
		bodyType,
		shapes.Cube(render.TopologyQuads),
	)
}

func createUnitBox(position mgl64.Vec3) *actor.RigidBody {
	return createBox(position, mgl64.Vec3{1, 1, 1}, actor.BodyTypeDynamic)
}

func newTestWorld(t *testing.T, workers int) *World {
	t.Helper()

	log, _ := test.NewNullLogger()
	octree := NewOctree(CubeBounds(16), DefaultOctreeCapacity, DefaultOctreeMaxLevel)

	return NewWorld(workers, octree, &Stats{}, log)
}

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) count() int {
	return len(ec.events)
}

func (ec *eventCapture) hasEventType(eventType EventType) bool {
	for _, e := range ec.events {
		if e.Type() == eventType {
			return true
		}
	}
	return false
}
