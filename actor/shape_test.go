package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func mat3AlmostEqual(a, b mgl64.Mat3, epsilon float64) bool {
	for i := 0; i < 9; i++ {
		if !almostEqual(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}

// =============================================================================
// Box Tests
// =============================================================================

func TestNewBox(t *testing.T) {
	box := NewBox(mgl64.Vec3{2, 4, 6})

	if !vec3AlmostEqual(box.HalfExtents, mgl64.Vec3{1, 2, 3}, 1e-12) {
		t.Errorf("HalfExtents = %v, want (1, 2, 3)", box.HalfExtents)
	}
}

func TestBoxComputeInertia(t *testing.T) {
	tests := []struct {
		name  string
		scale mgl64.Vec3
		mass  float64
		want  mgl64.Mat3
	}{
		{
			name:  "unit cube",
			scale: mgl64.Vec3{1, 1, 1},
			mass:  12,
			want:  mgl64.Diag3(mgl64.Vec3{2, 2, 2}),
		},
		{
			name:  "elongated box",
			scale: mgl64.Vec3{2, 1, 3},
			mass:  6,
			// m/12 = 0.5
			want: mgl64.Diag3(mgl64.Vec3{0.5 * (1 + 9), 0.5 * (4 + 9), 0.5 * (4 + 1)}),
		},
		{
			name:  "flat surface",
			scale: mgl64.Vec3{2, 0, 2},
			mass:  3,
			want:  mgl64.Diag3(mgl64.Vec3{1, 2, 1}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := NewBox(tt.scale)
			got := box.ComputeInertia(tt.mass)
			if !mat3AlmostEqual(got, tt.want, 1e-9) {
				t.Errorf("ComputeInertia() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxComputeAABB(t *testing.T) {
	box := NewBox(mgl64.Vec3{2, 2, 2})

	t.Run("identity", func(t *testing.T) {
		transform := NewTransform()
		transform.Position = mgl64.Vec3{5, 0, 0}
		box.ComputeAABB(transform)

		aabb := box.GetAABB()
		if !vec3AlmostEqual(aabb.Min, mgl64.Vec3{4, -1, -1}, 1e-9) || !vec3AlmostEqual(aabb.Max, mgl64.Vec3{6, 1, 1}, 1e-9) {
			t.Errorf("AABB = %v", aabb)
		}
	})

	t.Run("45 degrees around Y", func(t *testing.T) {
		transform := NewTransformYPR(mgl64.Vec3{}, mgl64.Vec3{0, math.Pi / 4, 0})
		box.ComputeAABB(transform)

		aabb := box.GetAABB()
		d := math.Sqrt2
		if !vec3AlmostEqual(aabb.Min, mgl64.Vec3{-d, -1, -d}, 1e-9) || !vec3AlmostEqual(aabb.Max, mgl64.Vec3{d, 1, d}, 1e-9) {
			t.Errorf("AABB = %v, want ±(%v, 1, %v)", aabb, d, d)
		}
	})
}

func TestBoxSupport(t *testing.T) {
	box := NewBox(mgl64.Vec3{2, 4, 6})

	tests := []struct {
		direction mgl64.Vec3
		want      mgl64.Vec3
	}{
		{mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 2, 3}},
		{mgl64.Vec3{-1, 1, -1}, mgl64.Vec3{-1, 2, -3}},
		{mgl64.Vec3{0, -0.1, 0}, mgl64.Vec3{1, -2, 3}},
	}

	for _, tt := range tests {
		if got := box.Support(tt.direction); !vec3AlmostEqual(got, tt.want, 1e-12) {
			t.Errorf("Support(%v) = %v, want %v", tt.direction, got, tt.want)
		}
	}
}

// =============================================================================
// Pose Tests
// =============================================================================

func TestPoseSupportWorld(t *testing.T) {
	rb := NewRigidBody(NewTransform(), mgl64.Vec3{2, 2, 2}, 1, BodyTypeDynamic, nil)
	rb.MoveTo(mgl64.Vec3{10, 0, 0})

	pose := rb.Pose()
	got := pose.SupportWorld(mgl64.Vec3{1, 0, 0})
	if !almostEqual(got.X(), 11, 1e-9) {
		t.Errorf("SupportWorld(+X).X = %v, want 11", got.X())
	}

	rb.RotateTo(mgl64.Vec3{0, math.Pi / 4, 0})
	pose = rb.Pose()
	got = pose.SupportWorld(mgl64.Vec3{1, 0, 0})
	if !almostEqual(got.X(), 10+math.Sqrt2, 1e-9) {
		t.Errorf("rotated SupportWorld(+X).X = %v, want %v", got.X(), 10+math.Sqrt2)
	}
	if pose.Center() != (mgl64.Vec3{10, 0, 0}) {
		t.Errorf("Center() = %v", pose.Center())
	}
}
