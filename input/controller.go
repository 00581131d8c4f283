package input

import (
	"image/color"
	"math/rand/v2"
	"sync"

	"github.com/akmonengine/sandbox/actor"
	"github.com/akmonengine/sandbox/audio"
	"github.com/akmonengine/sandbox/camera"
	"github.com/akmonengine/sandbox/render"
	"github.com/akmonengine/sandbox/shapes"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

const (
	CubeBurst       = 50
	CubeScale       = 0.4
	SpawnLineWidth  = 2.0
	SpawnVelocity   = 5.0
	SpawnSpin       = 10.0
	LaunchVelocity  = 7.5
	LaunchSpin      = 4.0
	ParticleScale   = 1.0
	minSpawnChannel = 128
)

// Scene is what the controller drives
type Scene interface {
	AddBody(body *actor.RigidBody)
	Zoom(delta float64) bool
	Pan(offset mgl64.Vec3)
	Resize(width, height int)
	ToggleMode() camera.Kind
}

// Controller turns input events into scene operations. Key bindings:
//
//	1  spawn a burst of cubes flying out of the origin
//	2  launch one cube upward
//	3  spinning surface
//	p  particle cloud
//	m  toggle 2D/3D
//
// The mouse wheel zooms and a middle-button drag pans.
type Controller struct {
	scene  Scene
	player audio.NotePlayer

	mu       sync.Mutex
	rng      *rand.Rand
	dragging bool
	lastX    int
	lastY    int

	log logrus.FieldLogger
}

func NewController(scene Scene, player audio.NotePlayer, rng *rand.Rand, log logrus.FieldLogger) *Controller {
	if player == nil {
		player = audio.Nop{}
	}

	return &Controller{
		scene:  scene,
		player: player,
		rng:    rng,
		log:    log.WithField("component", "input"),
	}
}

// Handle applies one event. It reports whether the event was bound to anything.
func (c *Controller) Handle(e Event) bool {
	switch e.Kind {
	case KindKeyDown:
		return c.key(e.Key)
	case KindMouseWheel:
		c.scene.Zoom(e.Delta)
		return true
	case KindMouseDown:
		c.mu.Lock()
		defer c.mu.Unlock()
		if e.Button == ButtonMiddle {
			c.dragging = true
		}
		c.lastX, c.lastY = e.X, e.Y
		return c.dragging
	case KindMouseUp:
		c.mu.Lock()
		defer c.mu.Unlock()
		if e.Button != ButtonMiddle {
			return false
		}
		c.dragging = false
		return true
	case KindMouseMove:
		return c.drag(e.X, e.Y)
	case KindResize:
		c.scene.Resize(e.X, e.Y)
		return true
	}

	return false
}

// drag pans by the mouse motion, screen Y pointing down
func (c *Controller) drag(x, y int) bool {
	c.mu.Lock()
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	dragging := c.dragging
	c.mu.Unlock()

	if !dragging {
		return false
	}
	c.scene.Pan(mgl64.Vec3{float64(dx), float64(-dy), 0})
	return true
}

func (c *Controller) key(key rune) bool {
	switch key {
	case '1':
		c.SpawnCubes(CubeBurst)
	case '2':
		c.LaunchCube()
	case '3':
		c.SpinSurface()
	case 'p', 'P':
		c.SpawnParticles()
	case 'm', 'M':
		mode := c.scene.ToggleMode()
		c.log.WithField("mode", mode).Info("camera mode")
	default:
		return false
	}

	return true
}

// SpawnCubes adds n wireframe cubes at the origin with random colors,
// velocities and spins.
func (c *Controller) SpawnCubes(n int) []*actor.RigidBody {
	c.playNote()

	bodies := make([]*actor.RigidBody, 0, n)
	for i := 0; i < n; i++ {
		mesh := shapes.Cube(render.TopologyLines)
		mesh.LineWidth = SpawnLineWidth

		c.mu.Lock()
		mesh.LineColor = color.RGBA{R: c.channel(), G: c.channel(), B: c.channel(), A: 255}
		velocity := c.randomVec3(SpawnVelocity)
		spin := c.randomVec3(SpawnSpin)
		c.mu.Unlock()

		body := c.cube(mesh)
		body.SetVelocity(velocity)
		body.SetAngularVelocity(spin)
		c.scene.AddBody(body)
		bodies = append(bodies, body)
	}

	c.log.WithField("count", n).Debug("cubes spawned")
	return bodies
}

// LaunchCube throws a single white cube straight up, spinning around Y
func (c *Controller) LaunchCube() *actor.RigidBody {
	mesh := shapes.Cube(render.TopologyLines)
	mesh.LineWidth = SpawnLineWidth

	body := c.cube(mesh)
	body.SetVelocity(mgl64.Vec3{0, LaunchVelocity, 0})
	body.SetAngularVelocity(mgl64.Vec3{0, LaunchSpin, 0})
	c.scene.AddBody(body)

	return body
}

// SpinSurface adds a 2x2 line-strip surface with a random spin
func (c *Controller) SpinSurface() *actor.RigidBody {
	mesh := shapes.Surface(render.TopologyLineStrip)
	mesh.LineWidth = SpawnLineWidth

	c.mu.Lock()
	spin := c.randomVec3(SpawnSpin)
	c.mu.Unlock()

	body := actor.NewRigidBody(actor.NewTransform(), mgl64.Vec3{2, 1, 2}, 1.0, actor.BodyTypeDynamic, mesh)
	body.SetAngularVelocity(spin)
	c.scene.AddBody(body)

	return body
}

// SpawnParticles adds a solid particle cloud at the origin
func (c *Controller) SpawnParticles() *actor.RigidBody {
	c.mu.Lock()
	mesh := shapes.ParticleCloud(shapes.DefaultParticleCount, c.rng)
	c.mu.Unlock()
	mesh.LineColor = color.RGBA{R: 169, G: 169, B: 169, A: 255}

	body := actor.NewRigidBody(
		actor.NewTransform(),
		mgl64.Vec3{ParticleScale, ParticleScale, ParticleScale},
		1.0,
		actor.BodyTypeSolid,
		mesh,
	)
	c.scene.AddBody(body)

	return body
}

func (c *Controller) cube(mesh *render.Mesh) *actor.RigidBody {
	return actor.NewRigidBody(
		actor.NewTransform(),
		mgl64.Vec3{CubeScale, CubeScale, CubeScale},
		1.0,
		actor.BodyTypeDynamic,
		mesh,
	)
}

func (c *Controller) playNote() {
	if err := c.player.PlayNote(audio.SpawnNote, audio.SpawnDuration); err != nil {
		c.log.WithError(err).Warn("note not played")
	}
}

// channel is a color component in [128, 255); c.mu must be held
func (c *Controller) channel() uint8 {
	return uint8(minSpawnChannel + c.rng.IntN(255-minSpawnChannel))
}

// randomVec3 draws each axis uniformly in [-r, r); c.mu must be held
func (c *Controller) randomVec3(r float64) mgl64.Vec3 {
	return mgl64.Vec3{
		c.rng.Float64()*r*2 - r,
		c.rng.Float64()*r*2 - r,
		c.rng.Float64()*r*2 - r,
	}
}
