package sandbox

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/akmonengine/sandbox/diag"
	"github.com/akmonengine/sandbox/render"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_FPS     = 60
	DEFAULT_TICK_HZ = 100
)

var ErrLoopStarted = errors.New("loop already started")

// Presenter shows a finished frame: a window, a terminal, a file.
type Presenter interface {
	Present(img *image.RGBA)
}

// Loop drives the physics ticker and the render loop on their own goroutines.
type Loop struct {
	scene     *Scene
	frame     *render.Frame
	sink      diag.Sink
	presenter Presenter

	FPS    int
	TickHz int

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool

	log logrus.FieldLogger
}

func NewLoop(scene *Scene, frame *render.Frame, sink diag.Sink, presenter Presenter, log logrus.FieldLogger) *Loop {
	return &Loop{
		scene:     scene,
		frame:     frame,
		sink:      sink,
		presenter: presenter,
		FPS:       DEFAULT_FPS,
		TickHz:    DEFAULT_TICK_HZ,
		log:       log.WithField("component", "loop"),
	}
}

// Start launches both loops; they run until ctx is done or Shutdown is called.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return ErrLoopStarted
	}
	l.started = true

	ctx, l.cancel = context.WithCancel(ctx)

	l.wg.Add(2)
	go func() {
		defer l.wg.Done()
		l.physics(ctx)
	}()
	go func() {
		defer l.wg.Done()
		l.render(ctx)
	}()

	l.log.WithFields(logrus.Fields{"fps": l.FPS, "tick_hz": l.TickHz}).Info("loop started")
	return nil
}

// physics steps the world with the wall time measured since the previous tick
func (l *Loop) physics(ctx context.Context) {
	ticker := time.NewTicker(interval(l.TickHz))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			l.scene.World().Step(dt)
		}
	}
}

func (l *Loop) render(ctx context.Context) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := l.RenderOnce(ctx); err != nil && ctx.Err() == nil {
			l.log.WithError(err).Warn("frame dropped")
		}
		timer.Reset(interval(l.FPS))
	}
}

// RenderOnce composes one frame and hands it to the presenter
func (l *Loop) RenderOnce(ctx context.Context) error {
	if err := l.scene.Render(ctx, l.frame, l.sink); err != nil {
		return err
	}
	if l.presenter != nil {
		l.presenter.Present(l.frame.Snapshot())
	}

	return nil
}

// Shutdown stops both loops and releases the frame. It returns an error when
// the loops did not exit within timeout; the frame is released either way.
func (l *Loop) Shutdown(timeout time.Duration) error {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()

	defer l.frame.Release()

	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		l.log.Info("loop stopped")
		return nil
	case <-time.After(timeout):
		return errors.Errorf("loop did not stop within %v", timeout)
	}
}

func interval(hz int) time.Duration {
	return time.Second / time.Duration(max(hz, 1))
}
