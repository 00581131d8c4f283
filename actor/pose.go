package actor

import "github.com/go-gl/mathgl/mgl64"

// Pose is a frozen copy of a body's placement, safe to read from any goroutine
type Pose struct {
	ID        uint64
	Transform Transform
	Box       Box
}

func (p Pose) Center() mgl64.Vec3 {
	return p.Transform.Position
}

func (p Pose) AABB() AABB {
	return p.Box.GetAABB()
}

// SupportWorld returns the world-space point of the box farthest along direction
func (p Pose) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	localDirection := p.Transform.Rotation.Conjugate().Rotate(direction)
	localSupport := p.Box.Support(localDirection)

	worldSupport := p.Transform.Rotation.Rotate(localSupport)
	return p.Transform.Position.Add(worldSupport)
}
