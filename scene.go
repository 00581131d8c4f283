package sandbox

import (
	"context"
	"sync"

	"github.com/akmonengine/sandbox/actor"
	"github.com/akmonengine/sandbox/camera"
	"github.com/akmonengine/sandbox/diag"
	"github.com/akmonengine/sandbox/render"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// PAN_FACTOR converts a mouse drag in pixels into a camera offset
const PAN_FACTOR = 1.0 / 1000

// DefaultLight is the main light attached to every body of a new scene
func DefaultLight() render.Light {
	return render.NewPointLight(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{20, 20, 20}, 50)
}

// Scene binds a World to its two cameras and the lights shared by every mesh.
// Only one camera is active at a time; both follow Resize.
type Scene struct {
	mu           sync.RWMutex
	world        *World
	perspective  *camera.Perspective
	orthographic *camera.Orthographic
	mode         camera.Kind
	lights       []render.Light

	log logrus.FieldLogger
}

func NewScene(world *World, perspective *camera.Perspective, orthographic *camera.Orthographic, mode camera.Kind, log logrus.FieldLogger) *Scene {
	return &Scene{
		world:        world,
		perspective:  perspective,
		orthographic: orthographic,
		mode:         mode,
		log:          log.WithField("component", "scene"),
	}
}

func (s *Scene) World() *World {
	return s.world
}

// AddBody attaches the scene lights to the body mesh and registers the body
func (s *Scene) AddBody(body *actor.RigidBody) {
	s.mu.RLock()
	lights := s.lights
	s.mu.RUnlock()

	if mesh := body.Mesh(); mesh != nil {
		for _, light := range lights {
			mesh.AddLight(light)
		}
	}
	s.world.AddBody(body)
}

func (s *Scene) RemoveBody(body *actor.RigidBody) bool {
	return s.world.RemoveBody(body)
}

func (s *Scene) Bodies() []*actor.RigidBody {
	return s.world.Bodies()
}

// AddLight attaches the light to every current body, and to every body added later
func (s *Scene) AddLight(light render.Light) error {
	if err := light.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.lights = append(s.lights, light)
	s.mu.Unlock()

	for _, body := range s.world.Bodies() {
		if mesh := body.Mesh(); mesh != nil {
			mesh.AddLight(light)
		}
	}

	return nil
}

func (s *Scene) Lights() []render.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]render.Light(nil), s.lights...)
}

// Camera returns the active camera
func (s *Scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.mode == camera.KindOrthographic {
		return s.orthographic
	}
	return s.perspective
}

func (s *Scene) Mode() camera.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mode
}

func (s *Scene) SetMode(mode camera.Kind) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	s.log.WithField("mode", mode).Debug("camera mode changed")
}

// ToggleMode switches between the 2D and 3D cameras and returns the new mode
func (s *Scene) ToggleMode() camera.Kind {
	s.mu.Lock()
	if s.mode == camera.KindOrthographic {
		s.mode = camera.KindPerspective
	} else {
		s.mode = camera.KindOrthographic
	}
	mode := s.mode
	s.mu.Unlock()

	s.log.WithField("mode", mode).Debug("camera mode changed")
	return mode
}

func (s *Scene) Resize(width, height int) {
	s.perspective.Resize(width, height)
	s.orthographic.Resize(width, height)
}

// Zoom forwards the wheel delta to the active camera. A zoom dropped because
// another one was running is counted, not retried.
func (s *Scene) Zoom(delta float64) bool {
	if s.Camera().Zoom(delta) {
		return true
	}

	s.world.Stats.SkippedZooms.Add(1)
	return false
}

// Pan moves the active camera against the drag direction
func (s *Scene) Pan(offset mgl64.Vec3) {
	s.Camera().Move(offset.Mul(-PAN_FACTOR))
}

func (s *Scene) Rotate(offset mgl64.Vec3) {
	s.Camera().Rotate(offset)
}

// View is the render input of the active camera
func (s *Scene) View() render.View {
	cam := s.Camera()
	near, far := cam.ClipDepth()

	return render.View{Transform: cam.Transform(), Near: near, Far: far}
}

// Render composes every body into frame. A body that fails to paint is
// reported to sink and counted; the rest of the frame is still drawn.
func (s *Scene) Render(ctx context.Context, frame *render.Frame, sink diag.Sink) error {
	bodies := s.world.Bodies()
	drawables := make([]render.Drawable, len(bodies))
	for i, body := range bodies {
		drawables[i] = body
	}

	err := frame.Compose(ctx, drawables, s.View(), func(id uint64, err error) {
		s.world.Stats.RenderErrors.Add(1)
		s.log.WithError(err).WithField("body", id).Warn("render failed")
		if sink != nil {
			sink.Status(err.Error())
		}
	})
	if err != nil {
		return err
	}

	s.world.Stats.Frames.Add(1)
	return nil
}
