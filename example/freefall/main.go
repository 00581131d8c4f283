package main

import (
	"fmt"
	"os"

	"github.com/akmonengine/sandbox"
	"github.com/akmonengine/sandbox/actor"
	"github.com/akmonengine/sandbox/diag"
	"github.com/akmonengine/sandbox/render"
	"github.com/akmonengine/sandbox/shapes"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// SetupWorld creates a solid floor and a spinning cube dropped above it
func SetupWorld(log logrus.FieldLogger) (*sandbox.World, *actor.RigidBody, *actor.RigidBody) {
	world := sandbox.NewWorld(2, sandbox.NewOctree(sandbox.CubeBounds(50), sandbox.DefaultOctreeCapacity, sandbox.DefaultOctreeMaxLevel), &sandbox.Stats{}, log)
	world.Collisions = true

	floor := actor.NewRigidBody(
		actor.NewTransform(),
		mgl64.Vec3{20, 0.2, 20},
		1.0,
		actor.BodyTypeSolid,
		shapes.Surface(render.TopologyQuads),
	)
	world.AddBody(floor)

	cube := actor.NewRigidBody(
		actor.NewTransformYPR(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 0, mgl64.DegToRad(30)}),
		mgl64.Vec3{1, 1, 1},
		1.0,
		actor.BodyTypeDynamic,
		shapes.Cube(render.TopologyLines),
	)
	cube.SetAngularVelocity(mgl64.Vec3{0, 2, 0})
	world.AddBody(cube)

	return world, floor, cube
}

func main() {
	log, err := diag.NewLogger("info", os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	world, _, cube := SetupWorld(log)
	world.Events.Subscribe(sandbox.COLLISION_ENTER, func(event sandbox.Event) {
		e := event.(sandbox.CollisionEnterEvent)
		fmt.Printf("  contact: body %d touches body %d\n", e.BodyA.ID(), e.BodyB.ID())
	})

	const dt float64 = 1.0 / 60.0
	const maxSteps int = 120

	for step := 0; step < maxSteps; step++ {
		world.Step(dt)

		if step%10 == 0 {
			transform := cube.Transform()
			fmt.Printf("step %3d  position %v  velocity %v  rotation %v\n",
				step+1, transform.Position, cube.Velocity(), transform.Rotation)
		}
	}

	fmt.Printf("stats: %+v\n", world.Stats.Snapshot())
}
