// Package app assembles a running sandbox from a configuration: world,
// scene, cameras, frame, diagnostics, audio and input.
package app

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/akmonengine/sandbox"
	"github.com/akmonengine/sandbox/audio"
	"github.com/akmonengine/sandbox/camera"
	"github.com/akmonengine/sandbox/config"
	"github.com/akmonengine/sandbox/diag"
	"github.com/akmonengine/sandbox/input"
	"github.com/akmonengine/sandbox/render"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// ShutdownTimeout bounds how long Stop waits for the loops
const ShutdownTimeout = 2 * time.Second

type App struct {
	Config     config.Config
	World      *sandbox.World
	Scene      *sandbox.Scene
	Frame      *render.Frame
	Sink       *diag.LogSink
	Controller *input.Controller
	Loop       *sandbox.Loop

	synth *audio.Synth
	log   logrus.FieldLogger
}

// New builds the sandbox described by conf. presenter may be nil.
func New(conf config.Config, log *logrus.Logger, presenter sandbox.Presenter) (*App, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		Config: conf,
		Sink:   diag.NewLogSink(log, logrus.WarnLevel),
		log:    log.WithField("component", "app"),
	}

	octree := sandbox.NewOctree(sandbox.CubeBounds(conf.Octree.Bounds), conf.Octree.Capacity, conf.Octree.MaxLevel)
	a.World = sandbox.NewWorld(conf.Workers, octree, &sandbox.Stats{}, log)
	a.World.Collisions = conf.Collisions

	perspective := camera.NewPerspective(
		mgl64.Vec3(conf.Camera.Position),
		mgl64.Vec3{},
		mgl64.DegToRad(conf.Camera.FovDeg),
		float64(conf.Width)/float64(conf.Height),
		conf.Camera.Near,
		conf.Camera.Far,
	)
	orthographic := camera.DefaultOrthographic(conf.Width, conf.Height)

	mode := camera.KindPerspective
	if conf.Mode == "2d" {
		mode = camera.KindOrthographic
	}
	a.Scene = sandbox.NewScene(a.World, perspective, orthographic, mode, log)
	if err := a.Scene.AddLight(sandbox.DefaultLight()); err != nil {
		return nil, err
	}

	a.Frame = render.NewFrame(conf.Width, conf.Height, conf.Workers)

	var player audio.NotePlayer = audio.Nop{}
	if conf.Audio {
		a.synth = audio.NewSynth(audio.DefaultSampleRate, audio.DefaultGain)
		if err := a.synth.Initialize(); err != nil {
			a.log.WithError(err).Warn("audio disabled")
			a.synth = nil
		} else {
			player = a.synth
		}
	}

	a.Controller = input.NewController(a.Scene, player, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)), log)

	a.Loop = sandbox.NewLoop(a.Scene, a.Frame, a.Sink, presenter, log)
	a.Loop.FPS = conf.FPS
	a.Loop.TickHz = conf.TickHz

	a.World.Events.Subscribe(sandbox.UPDATE_SKIPPED, func(e sandbox.Event) {
		a.Sink.Status("physics update skipped: body busy")
	})

	return a, nil
}

// Handle forwards an input event, resizing the frame along with the cameras
func (a *App) Handle(e input.Event) bool {
	if e.Kind == input.KindResize {
		a.Frame.Resize(e.X, e.Y)
	}
	return a.Controller.Handle(e)
}

func (a *App) Start(ctx context.Context) error {
	return a.Loop.Start(ctx)
}

// Stop shuts the loops down and closes the audio device
func (a *App) Stop() error {
	err := a.Loop.Shutdown(ShutdownTimeout)
	if a.synth != nil {
		a.synth.Close()
	}

	a.log.WithField("stats", a.World.Stats.Snapshot()).Info("stopped")
	return err
}

// Run steps the world n times by dt without the loops, rendering once at the end
func (a *App) Run(ctx context.Context, n int, dt float64) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.World.Step(dt)
	}

	return a.Loop.RenderOnce(ctx)
}
