package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is the extent shape of a body: a unit cube stretched by the body's scale.
// It is defined by its half-extents (half-width, half-height, half-depth).
type Box struct {
	HalfExtents mgl64.Vec3
	aabb        AABB
}

// NewBox creates a box whose full dimensions equal scale
func NewBox(scale mgl64.Vec3) Box {
	return Box{HalfExtents: scale.Mul(0.5)}
}

func (b *Box) ComputeAABB(transform Transform) {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	corners := [8]mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}

	worldCorner := transform.Rotation.Rotate(corners[0]).Add(transform.Position)
	min := worldCorner
	max := worldCorner

	for i := 1; i < 8; i++ {
		worldCorner = transform.Rotation.Rotate(corners[i]).Add(transform.Position)

		for axis := 0; axis < 3; axis++ {
			min[axis] = math.Min(min[axis], worldCorner[axis])
			max[axis] = math.Max(max[axis], worldCorner[axis])
		}
	}

	b.aabb = AABB{Min: min, Max: max}
}

func (b *Box) GetAABB() AABB {
	return b.aabb
}

// ComputeInertia returns the inertia tensor of a uniform solid box of the given mass:
// diag(m(y²+z²)/12, m(x²+z²)/12, m(x²+y²)/12) over the full dimensions.
func (b *Box) ComputeInertia(mass float64) mgl64.Mat3 {
	x := b.HalfExtents.X() * 2
	y := b.HalfExtents.Y() * 2
	z := b.HalfExtents.Z() * 2

	factor := mass / 12.0

	return mgl64.Diag3(mgl64.Vec3{
		factor * (y*y + z*z),
		factor * (x*x + z*z),
		factor * (x*x + y*y),
	})
}

// Support returns the farthest local-space corner in direction
func (b *Box) Support(direction mgl64.Vec3) mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	if direction.X() < 0 {
		hx = -hx
	}
	if direction.Y() < 0 {
		hy = -hy
	}
	if direction.Z() < 0 {
		hz = -hz
	}

	return mgl64.Vec3{hx, hy, hz}
}
