package sandbox

import (
	"sync"

	"github.com/akmonengine/sandbox/actor"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
	UPDATE_SKIPPED
	INERTIA_FALLBACK
)

type pairKey struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody
}

// makePairKey orders the pair by body id, lower first
func makePairKey(bodyA, bodyB *actor.RigidBody) pairKey {
	if bodyB.ID() < bodyA.ID() {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case COLLISION_ENTER:
		return "collision_enter"
	case COLLISION_STAY:
		return "collision_stay"
	case COLLISION_EXIT:
		return "collision_exit"
	case UPDATE_SKIPPED:
		return "update_skipped"
	case INERTIA_FALLBACK:
		return "inertia_fallback"
	}
	return "unknown"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

type CollisionEnterEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// UpdateSkippedEvent is raised when a body was busy during a physics tick
type UpdateSkippedEvent struct {
	Body *actor.RigidBody
}

func (e UpdateSkippedEvent) Type() EventType { return UPDATE_SKIPPED }

// InertiaFallbackEvent is raised when a body's inertia tensor is singular as it joins the
// world, or becomes singular later through a scale or mass change
type InertiaFallbackEvent struct {
	Body *actor.RigidBody
}

func (e InertiaFallbackEvent) Type() EventType { return INERTIA_FALLBACK }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers what happens during a step and dispatches it at the end of the step.
// Listeners run on the physics goroutine.
type Events struct {
	mu sync.Mutex

	listeners map[EventType][]EventListener
	buffer    []Event

	// Collision tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() *Events {
	return &Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// emit buffers an event; safe from any goroutine
func (e *Events) emit(event Event) {
	e.mu.Lock()
	e.buffer = append(e.buffer, event)
	e.mu.Unlock()
}

func (e *Events) recordCollisions(pairs []Pair) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range pairs {
		e.currentActivePairs[makePairKey(p.BodyA, p.BodyB)] = true
	}
}

// forget drops the tracked pairs of a removed body, without an exit event
func (e *Events) forget(body *actor.RigidBody) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for pair := range e.previousActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousActivePairs, pair)
		}
	}
	for pair := range e.currentActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.currentActivePairs, pair)
		}
	}
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	for pair := range e.currentActivePairs {
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for pair := range e.previousActivePairs {
		if !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next frame and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush resolves collision transitions, then sends all buffered events.
// trackCollisions is false when collision detection did not run this step, so
// pairs stay as they were.
func (e *Events) flush(trackCollisions bool) {
	e.mu.Lock()
	if trackCollisions {
		e.processCollisionEvents()
	}
	events := e.buffer
	e.buffer = make([]Event, 0, cap(events))
	listeners := make(map[EventType][]EventListener, len(e.listeners))
	for t, l := range e.listeners {
		listeners[t] = l
	}
	e.mu.Unlock()

	for _, event := range events {
		for _, listener := range listeners[event.Type()] {
			listener(event)
		}
	}
}
