// Package camera turns a viewpoint into the combined projection-view matrix
// the renderer multiplies every vertex by.
package camera

import "github.com/go-gl/mathgl/mgl64"

type Kind int

const (
	KindPerspective Kind = iota
	KindOrthographic
)

func (k Kind) String() string {
	if k == KindOrthographic {
		return "2d"
	}
	return "3d"
}

// Camera is safe for concurrent use: input handlers mutate it while the
// render loop reads Transform.
type Camera interface {
	Kind() Kind
	Move(offset mgl64.Vec3)
	MoveTo(position mgl64.Vec3)
	Rotate(offset mgl64.Vec3)
	RotateTo(rotation mgl64.Vec3)
	// Zoom reports false when the call was dropped because another zoom was in progress.
	Zoom(delta float64) bool
	Resize(width, height int)
	// Transform is projection * view, recomputed on every mutation.
	Transform() mgl64.Mat4
	Position() mgl64.Vec3
	Near() float64
	Far() float64
	// ClipDepth is the clip-space Z interval kept by the renderer's depth clip.
	ClipDepth() (lo, hi float64)
}
