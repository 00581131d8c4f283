package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultScale is the number of pixels per world unit
	DefaultScale = 100
	MinScale     = 0.01
)

// Orthographic is the 2D camera: a view rotated around Z and a box projection
// of the surface size divided by the zoom scale.
type Orthographic struct {
	mu sync.RWMutex

	position mgl64.Vec3
	rotation float64
	scale    float64
	width    float64
	height   float64
	near     float64
	far      float64

	view       mgl64.Mat4
	projection mgl64.Mat4
	transform  mgl64.Mat4
}

func NewOrthographic(position mgl64.Vec3, rotation, scale float64, width, height int, near, far float64) *Orthographic {
	c := &Orthographic{
		position: position,
		rotation: rotation,
		scale:    max(scale, MinScale),
		width:    float64(width),
		height:   float64(height),
		near:     near,
		far:      far,
	}
	c.updateView()
	c.updateProjection()

	return c
}

func DefaultOrthographic(width, height int) *Orthographic {
	return NewOrthographic(mgl64.Vec3{0, 0, 5}, 0, DefaultScale, width, height, 0.1, 1000)
}

func (c *Orthographic) updateView() {
	translation := mgl64.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z())
	c.view = mgl64.HomogRotate3DZ(c.rotation).Mul4(translation)
	c.transform = c.projection.Mul4(c.view)
}

func (c *Orthographic) updateProjection() {
	halfWidth := c.width / (2 * c.scale)
	halfHeight := c.height / (2 * c.scale)
	c.projection = mgl64.Ortho(-halfWidth, halfWidth, -halfHeight, halfHeight, c.near, c.far)
	c.transform = c.projection.Mul4(c.view)
}

func (c *Orthographic) Kind() Kind {
	return KindOrthographic
}

func (c *Orthographic) Move(offset mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.position = c.position.Add(offset)
	c.updateView()
}

func (c *Orthographic) MoveTo(position mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.position = position
	c.updateView()
}

// Rotate turns the view around Z by offset.Z; the other axes have no meaning in 2D.
func (c *Orthographic) Rotate(offset mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotation += offset.Z()
	c.updateView()
}

func (c *Orthographic) RotateTo(rotation mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotation = rotation.Z()
	c.updateView()
}

// Zoom adds delta to the scale, never going below MinScale.
func (c *Orthographic) Zoom(delta float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scale = max(c.scale+delta, MinScale)
	c.updateProjection()

	return true
}

func (c *Orthographic) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.width, c.height = float64(width), float64(height)
	c.updateProjection()
}

func (c *Orthographic) Transform() mgl64.Mat4 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.transform
}

func (c *Orthographic) Position() mgl64.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.position
}

func (c *Orthographic) Rotation() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.rotation
}

func (c *Orthographic) Scale() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.scale
}

func (c *Orthographic) Near() float64 {
	return c.near
}

func (c *Orthographic) Far() float64 {
	return c.far
}

// ClipDepth is (-1, 1): an orthographic clip space is already normalized.
func (c *Orthographic) ClipDepth() (float64, float64) {
	return -1, 1
}
