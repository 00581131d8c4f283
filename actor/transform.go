package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position and orientation in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// NewTransformYPR creates a transform at position, oriented by a (pitch, yaw, roll) vector
// stored as (X, Y, Z) angles in radians.
func NewTransformYPR(position, rotation mgl64.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: YawPitchRoll(rotation),
	}
}

// Matrix returns the affine 4x4 matrix of the transform, translation in the last column.
func (t Transform) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).Mul4(t.Rotation.Mat4())
}

// YawPitchRoll builds a rotation from angles stored as X=pitch, Y=yaw, Z=roll.
// Roll is applied first, then pitch, then yaw.
func YawPitchRoll(angles mgl64.Vec3) mgl64.Quat {
	yaw := mgl64.QuatRotate(angles.Y(), mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(angles.X(), mgl64.Vec3{1, 0, 0})
	roll := mgl64.QuatRotate(angles.Z(), mgl64.Vec3{0, 0, 1})

	return yaw.Mul(pitch).Mul(roll)
}
