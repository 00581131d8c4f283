package actor

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Gravitational acceleration applied through every body's Gravity force
var G = mgl64.Vec3{0, -9.8, 0}

// Force is a vector applied at a local offset from a body's center
type Force struct {
	mu     sync.RWMutex
	id     uint64
	vector mgl64.Vec3
	offset mgl64.Vec3
}

// NewForce creates a force applied at offset, in the body's local frame
func NewForce(vector, offset mgl64.Vec3) *Force {
	return &Force{
		id:     nextForceID(),
		vector: vector,
		offset: offset,
	}
}

func (f *Force) ID() uint64 {
	return f.id
}

func (f *Force) Vector() mgl64.Vec3 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.vector
}

func (f *Force) Offset() mgl64.Vec3 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.offset
}

// Set replaces the force vector
func (f *Force) Set(vector mgl64.Vec3) {
	f.mu.Lock()
	f.vector = vector
	f.mu.Unlock()
}

// Add accumulates delta onto the force vector
func (f *Force) Add(delta mgl64.Vec3) {
	f.mu.Lock()
	f.vector = f.vector.Add(delta)
	f.mu.Unlock()
}

// Torque is the moment of the force around the body's center, with the offset as lever.
func (f *Force) Torque() mgl64.Vec3 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.offset.Cross(f.vector)
}

// Gravity is the weight of a body: mass * G applied at the center
type Gravity struct {
	Force
	mass float64
}

// NewGravity creates the weight force of a body. A non-positive mass is replaced by 1.
func NewGravity(mass float64) *Gravity {
	g := &Gravity{Force: Force{id: nextForceID()}}
	g.SetMass(mass)

	return g
}

// SetMass updates the mass and recomputes the weight vector
func (g *Gravity) SetMass(mass float64) {
	if mass <= 0 {
		mass = 1
	}

	g.mu.Lock()
	g.mass = mass
	g.vector = G.Mul(mass)
	g.mu.Unlock()
}

func (g *Gravity) Mass() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.mass
}
