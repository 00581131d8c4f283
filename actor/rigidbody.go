package actor

import (
	"math"
	"slices"
	"sync"

	"github.com/akmonengine/sandbox/render"
	"github.com/go-gl/mathgl/mgl64"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are moved by forces and gravity
	BodyTypeDynamic BodyType = iota

	// BodyTypeSolid bodies never move (ground, walls); Update is a no-op
	BodyTypeSolid
)

const (
	DefaultFriction       = 0.01
	DefaultAngularDamping = 0.01
)

// Material holds the per-tick velocity losses of a body
type Material struct {
	Friction       float64 // 0.0 - 1.0, fraction of linear velocity lost per tick
	AngularDamping float64 // 0.0 - 1.0, fraction of angular velocity lost per tick
}

func DefaultMaterial() Material {
	return Material{
		Friction:       DefaultFriction,
		AngularDamping: DefaultAngularDamping,
	}
}

// RigidBody represents a rigid body in the simulation.
// Physics ticks take its lock with TryLock, every other accessor blocks.
type RigidBody struct {
	mu sync.Mutex

	id       uint64
	bodyType BodyType
	material Material

	transform Transform
	scale     mgl64.Vec3
	box       Box

	// Linear motion
	velocity     mgl64.Vec3 // m/s
	acceleration mgl64.Vec3

	// Angular motion
	angularVelocity     mgl64.Vec3 // rad/s, local frame
	angularAcceleration mgl64.Vec3

	inertiaLocal        mgl64.Mat3
	inverseInertiaLocal mgl64.Mat3
	inertiaFallback     bool
	pendingFallbacks    int

	gravity *Gravity
	forces  []*Force

	mesh *render.Mesh
}

// NewRigidBody creates a body at transform, stretched by scale, drawn with mesh.
// A non-positive mass is replaced by 1.
func NewRigidBody(transform Transform, scale mgl64.Vec3, mass float64, bodyType BodyType, mesh *render.Mesh) *RigidBody {
	rb := &RigidBody{
		id:        nextBodyID(),
		bodyType:  bodyType,
		material:  DefaultMaterial(),
		transform: transform,
		scale:     scale,
		box:       NewBox(scale),
		gravity:   NewGravity(mass),
		mesh:      mesh,
	}

	rb.computeInertia()
	rb.box.ComputeAABB(rb.transform)

	return rb
}

func (rb *RigidBody) computeInertia() {
	rb.inertiaLocal = rb.box.ComputeInertia(rb.gravity.Mass())
	if singular(rb.inertiaLocal) {
		rb.inverseInertiaLocal = mgl64.Ident3()
		rb.inertiaFallback = true
		rb.pendingFallbacks++

		return
	}

	rb.inverseInertiaLocal = rb.inertiaLocal.Inv()
	rb.inertiaFallback = false
}

// singular reports whether a diagonal inertia tensor cannot be inverted.
// The determinant is compared relative to the largest moment, so tiny bodies stay invertible.
func singular(inertia mgl64.Mat3) bool {
	largest := 0.0
	for i := 0; i < 3; i++ {
		d := inertia.At(i, i)
		if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return true
		}
		largest = max(largest, d)
	}

	return math.Abs(inertia.Det()) <= 1e-12*largest*largest*largest
}

func (rb *RigidBody) ID() uint64 {
	return rb.id
}

func (rb *RigidBody) BodyType() BodyType {
	return rb.bodyType
}

// Update advances the body by dt seconds with an explicit Euler step.
// It returns false when the body was busy and the whole step was skipped.
func (rb *RigidBody) Update(dt float64) bool {
	if rb.bodyType == BodyTypeSolid {
		return true
	}
	if !rb.mu.TryLock() {
		return false
	}
	defer rb.mu.Unlock()

	mass := rb.gravity.Mass()

	totalForce := rb.gravity.Vector()
	var torque mgl64.Vec3
	for _, force := range rb.forces {
		totalForce = totalForce.Add(force.Vector())
		torque = torque.Add(force.Torque())
	}

	// ========== LINEAR ==========
	rb.acceleration = totalForce.Mul(1.0 / mass)
	rb.velocity = rb.velocity.Add(rb.acceleration.Mul(dt))
	rb.velocity = rb.velocity.Mul(1 - rb.material.Friction)
	displacement := rb.velocity.Mul(dt).Add(rb.acceleration.Mul(0.5 * dt * dt))

	// ========== ANGULAR ==========
	rb.angularAcceleration = rb.inverseInertiaLocal.Mul3x1(torque)
	rb.angularVelocity = rb.angularVelocity.Add(rb.angularAcceleration.Mul(dt))
	rb.angularVelocity = rb.angularVelocity.Mul(1 - rb.material.AngularDamping)

	// increment expressed in the body frame, composed on the right
	delta := YawPitchRoll(rb.angularVelocity.Mul(dt))
	rb.transform.Rotation = rb.transform.Rotation.Mul(delta).Normalize()
	rb.transform.Position = rb.transform.Position.Add(displacement)

	rb.box.ComputeAABB(rb.transform)

	return true
}

// AddForce registers a force applied every tick until removed
func (rb *RigidBody) AddForce(force *Force) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.forces = append(rb.forces, force)
}

// RemoveForce unregisters the force with the given id, reporting whether it was found.
func (rb *RigidBody) RemoveForce(id uint64) bool {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	i := slices.IndexFunc(rb.forces, func(f *Force) bool { return f.ID() == id })
	if i < 0 {
		return false
	}
	rb.forces = slices.Delete(rb.forces, i, i+1)

	return true
}

func (rb *RigidBody) ClearForces() {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.forces = nil
}

func (rb *RigidBody) Forces() []*Force {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return slices.Clone(rb.forces)
}

// Weight is the gravity force vector, mass * G
func (rb *RigidBody) Weight() mgl64.Vec3 {
	return rb.gravity.Vector()
}

func (rb *RigidBody) Mass() float64 {
	return rb.gravity.Mass()
}

// SetMass changes the mass, the weight and the inertia tensor
func (rb *RigidBody) SetMass(mass float64) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.gravity.SetMass(mass)
	rb.computeInertia()
}

// SetScale stretches the body; inertia and bounds follow
func (rb *RigidBody) SetScale(scale mgl64.Vec3) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.scale = scale
	rb.box = NewBox(scale)
	rb.computeInertia()
	rb.box.ComputeAABB(rb.transform)
}

func (rb *RigidBody) Scale() mgl64.Vec3 {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.scale
}

func (rb *RigidBody) Material() Material {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.material
}

func (rb *RigidBody) SetMaterial(material Material) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.material = material
}

// Move translates the body by offset
func (rb *RigidBody) Move(offset mgl64.Vec3) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.transform.Position = rb.transform.Position.Add(offset)
	rb.box.ComputeAABB(rb.transform)
}

func (rb *RigidBody) MoveTo(position mgl64.Vec3) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.transform.Position = position
	rb.box.ComputeAABB(rb.transform)
}

// RotateTo sets the orientation from (pitch, yaw, roll) angles in radians
func (rb *RigidBody) RotateTo(rotation mgl64.Vec3) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.transform.Rotation = YawPitchRoll(rotation)
	rb.box.ComputeAABB(rb.transform)
}

func (rb *RigidBody) Transform() Transform {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.transform
}

func (rb *RigidBody) SetVelocity(velocity mgl64.Vec3) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.velocity = velocity
}

func (rb *RigidBody) Velocity() mgl64.Vec3 {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.velocity
}

func (rb *RigidBody) Acceleration() mgl64.Vec3 {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.acceleration
}

func (rb *RigidBody) SetAngularVelocity(angularVelocity mgl64.Vec3) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.angularVelocity = angularVelocity
}

func (rb *RigidBody) AngularVelocity() mgl64.Vec3 {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.angularVelocity
}

func (rb *RigidBody) AngularAcceleration() mgl64.Vec3 {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.angularAcceleration
}

func (rb *RigidBody) Inertia() mgl64.Mat3 {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.inertiaLocal
}

func (rb *RigidBody) InverseInertia() mgl64.Mat3 {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.inverseInertiaLocal
}

// InertiaFallback reports whether the inertia tensor was singular and replaced by identity
func (rb *RigidBody) InertiaFallback() bool {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.inertiaFallback
}

// TakeInertiaFallbacks returns how many times the inertia tensor fell back to
// identity since the last call, and resets the count.
func (rb *RigidBody) TakeInertiaFallbacks() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	n := rb.pendingFallbacks
	rb.pendingFallbacks = 0

	return n
}

// AABB returns the world bounds computed at the last transform change
func (rb *RigidBody) AABB() AABB {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.box.GetAABB()
}

func (rb *RigidBody) Mesh() *render.Mesh {
	return rb.mesh
}

// Pose returns an immutable snapshot of the body's placement and extents
func (rb *RigidBody) Pose() Pose {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return Pose{
		ID:        rb.id,
		Transform: rb.transform,
		Box:       rb.box,
	}
}

// DrawState returns what the renderer needs to draw the body
func (rb *RigidBody) DrawState() render.DrawState {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return render.DrawState{
		ID:    rb.id,
		Mesh:  rb.mesh,
		Scale: rb.scale,
		Model: rb.transform.Matrix(),
	}
}
