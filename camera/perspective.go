package camera

import (
	"math"
	"sync"

	"github.com/akmonengine/sandbox/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	MinFov = 0.1
	MaxFov = math.Pi

	// zoom deltas arrive in mouse wheel units
	fovPerZoomUnit = 1.0 / 5000
)

// Perspective is the 3D camera. Rotation holds (pitch, yaw, roll) as (X, Y, Z).
type Perspective struct {
	mu     sync.RWMutex
	zoomMu sync.Mutex

	position mgl64.Vec3
	rotation mgl64.Vec3
	fov      float64
	aspect   float64
	near     float64
	far      float64

	view       mgl64.Mat4
	projection mgl64.Mat4
	transform  mgl64.Mat4
}

func NewPerspective(position, rotation mgl64.Vec3, fov, aspect, near, far float64) *Perspective {
	c := &Perspective{
		position: position,
		rotation: rotation,
		fov:      mgl64.Clamp(fov, MinFov, MaxFov),
		aspect:   aspect,
		near:     near,
		far:      far,
	}
	c.updateView()
	c.updateProjection()

	return c
}

// DefaultPerspective looks down -Z from (0, 0, 7.5) with a 45 degree field of view
func DefaultPerspective(width, height int) *Perspective {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}

	return NewPerspective(mgl64.Vec3{0, 0, 7.5}, mgl64.Vec3{}, mgl64.DegToRad(45), aspect, 0.1, 1000)
}

func (c *Perspective) updateView() {
	// rotate the scene about the world origin, then push it away from the camera
	rotation := actor.YawPitchRoll(c.rotation).Mat4()
	c.view = mgl64.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z()).Mul4(rotation)
	c.transform = c.projection.Mul4(c.view)
}

func (c *Perspective) updateProjection() {
	c.projection = mgl64.Perspective(c.fov, c.aspect, c.near, c.far)
	c.transform = c.projection.Mul4(c.view)
}

func (c *Perspective) Kind() Kind {
	return KindPerspective
}

func (c *Perspective) Move(offset mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.position = c.position.Add(offset)
	c.updateView()
}

func (c *Perspective) MoveTo(position mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.position = position
	c.updateView()
}

func (c *Perspective) Rotate(offset mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotation = c.rotation.Add(offset)
	c.updateView()
}

func (c *Perspective) RotateTo(rotation mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotation = rotation
	c.updateView()
}

// Zoom narrows the field of view by delta/5000 radians, clamped to [MinFov, MaxFov].
func (c *Perspective) Zoom(delta float64) bool {
	if !c.zoomMu.TryLock() {
		return false
	}
	defer c.zoomMu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fov = mgl64.Clamp(c.fov-delta*fovPerZoomUnit, MinFov, MaxFov)
	c.updateProjection()

	return true
}

// Resize keeps the aspect ratio in sync with the surface; a zero height is ignored.
func (c *Perspective) Resize(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.aspect = float64(width) / float64(height)
	c.updateProjection()
}

func (c *Perspective) Transform() mgl64.Mat4 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.transform
}

func (c *Perspective) View() mgl64.Mat4 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.view
}

func (c *Perspective) Projection() mgl64.Mat4 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.projection
}

func (c *Perspective) Position() mgl64.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.position
}

func (c *Perspective) Rotation() mgl64.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.rotation
}

func (c *Perspective) Fov() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.fov
}

func (c *Perspective) Aspect() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.aspect
}

func (c *Perspective) Near() float64 {
	return c.near
}

func (c *Perspective) Far() float64 {
	return c.far
}

func (c *Perspective) ClipDepth() (float64, float64) {
	return c.near, c.far
}
