package sandbox

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestEvents_Subscribe(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	events.Subscribe(COLLISION_ENTER, capture.capture)

	if len(events.listeners[COLLISION_ENTER]) != 1 {
		t.Errorf("Expected 1 listener for COLLISION_ENTER, got %d", len(events.listeners[COLLISION_ENTER]))
	}
}

func TestEvents_MultipleListeners(t *testing.T) {
	events := NewEvents()
	first, second := &eventCapture{}, &eventCapture{}
	events.Subscribe(UPDATE_SKIPPED, first.capture)
	events.Subscribe(UPDATE_SKIPPED, second.capture)

	events.emit(UpdateSkippedEvent{Body: createUnitBox(mgl64.Vec3{})})
	events.flush(false)

	if first.count() != 1 || second.count() != 1 {
		t.Errorf("Expected both listeners called once, got %d and %d", first.count(), second.count())
	}
}

func TestEvents_OnlyMatchingType(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(INERTIA_FALLBACK, capture.capture)

	events.emit(UpdateSkippedEvent{Body: createUnitBox(mgl64.Vec3{})})
	events.flush(false)

	if capture.count() != 0 {
		t.Errorf("Expected no events, got %d", capture.count())
	}
}

func TestMakePairKey_Normalization(t *testing.T) {
	bodyA := createUnitBox(mgl64.Vec3{})
	bodyB := createUnitBox(mgl64.Vec3{})

	if makePairKey(bodyA, bodyB) != makePairKey(bodyB, bodyA) {
		t.Error("Expected the same key in both orders")
	}
	if key := makePairKey(bodyB, bodyA); key.bodyA != bodyA {
		t.Error("Expected the lower id first")
	}
}

func TestEvents_EnterStayExit(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(COLLISION_ENTER, capture.capture)
	events.Subscribe(COLLISION_STAY, capture.capture)
	events.Subscribe(COLLISION_EXIT, capture.capture)

	bodyA := createUnitBox(mgl64.Vec3{})
	bodyB := createUnitBox(mgl64.Vec3{})
	pairs := []Pair{{BodyA: bodyA, BodyB: bodyB}}

	tests := []struct {
		name   string
		record bool
		want   EventType
	}{
		{"first contact", true, COLLISION_ENTER},
		{"still touching", true, COLLISION_STAY},
		{"separated", false, COLLISION_EXIT},
		{"touching again", true, COLLISION_ENTER},
	}

	for _, tt := range tests {
		capture.reset()
		if tt.record {
			events.recordCollisions(pairs)
		}
		events.flush(true)

		if capture.count() != 1 || !capture.hasEventType(tt.want) {
			t.Errorf("%s: expected one %v event, got %v", tt.name, tt.want, capture.events)
		}
	}

	capture.reset()
	events.flush(true)
	events.flush(true)
	if capture.count() != 1 {
		t.Errorf("Expected a single exit, got %d events", capture.count())
	}
}

func TestEvents_FlushWithoutTrackingKeepsPairs(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(COLLISION_EXIT, capture.capture)
	events.Subscribe(COLLISION_STAY, capture.capture)

	pairs := []Pair{{BodyA: createUnitBox(mgl64.Vec3{}), BodyB: createUnitBox(mgl64.Vec3{})}}
	events.recordCollisions(pairs)
	events.flush(true)

	events.flush(false)
	if capture.count() != 0 {
		t.Fatalf("Expected no collision events while tracking is off, got %d", capture.count())
	}

	events.recordCollisions(pairs)
	events.flush(true)
	if !capture.hasEventType(COLLISION_STAY) {
		t.Error("Expected the pair to still be active")
	}
}

func TestEvents_ForgetRemovedBody(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(COLLISION_EXIT, capture.capture)

	bodyA := createUnitBox(mgl64.Vec3{})
	bodyB := createUnitBox(mgl64.Vec3{})
	events.recordCollisions([]Pair{{BodyA: bodyA, BodyB: bodyB}})
	events.flush(true)

	events.forget(bodyB)
	events.flush(true)

	if capture.count() != 0 {
		t.Errorf("Expected no exit for a removed body, got %d", capture.count())
	}
}

func TestEvents_FlushClearsBuffer(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(UPDATE_SKIPPED, capture.capture)

	events.emit(UpdateSkippedEvent{Body: createUnitBox(mgl64.Vec3{})})
	events.flush(false)
	events.flush(false)

	if capture.count() != 1 {
		t.Errorf("Expected 1 event, got %d", capture.count())
	}
	if len(events.buffer) != 0 {
		t.Errorf("Expected an empty buffer, got %d", len(events.buffer))
	}
}

func TestEventType_String(t *testing.T) {
	tests := map[EventType]string{
		COLLISION_ENTER:  "collision_enter",
		COLLISION_STAY:   "collision_stay",
		COLLISION_EXIT:   "collision_exit",
		UPDATE_SKIPPED:   "update_skipped",
		INERTIA_FALLBACK: "inertia_fallback",
		EventType(99):    "unknown",
	}

	for eventType, want := range tests {
		if got := eventType.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
