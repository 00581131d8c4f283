package render

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// DrawState is what a body hands to the renderer for one frame
type DrawState struct {
	ID    uint64
	Mesh  *Mesh
	Scale mgl64.Vec3
	Model mgl64.Mat4
}

type Drawable interface {
	DrawState() DrawState
}

// View is the camera input of a frame
type View struct {
	Transform mgl64.Mat4
	Near      float64
	Far       float64
}

// ErrorHandler receives the failure of one body; the frame keeps going.
type ErrorHandler func(id uint64, err error)

// Frame is the render target: an RGBA surface and its auxiliary buffers,
// painted by one worker per horizontal tile.
type Frame struct {
	mu         sync.RWMutex
	surface    *image.RGBA
	buffers    *Buffers
	tiles      int
	Background color.Color
}

func NewFrame(width, height, tiles int) *Frame {
	f := &Frame{
		tiles:      max(tiles, 1),
		Background: color.RGBA{A: 255},
	}
	f.allocate(max(width, 0), max(height, 0))

	return f
}

func (f *Frame) allocate(width, height int) {
	f.surface = image.NewRGBA(image.Rect(0, 0, width, height))
	f.buffers = NewBuffers(width, height)
}

func (f *Frame) Size() (int, int) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.surface.Bounds().Dx(), f.surface.Bounds().Dy()
}

// Resize reallocates the surface and buffers; non-positive sizes are ignored.
func (f *Frame) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.surface.Bounds().Dx() == width && f.surface.Bounds().Dy() == height {
		return
	}
	f.allocate(width, height)
}

// Release drops the surface and buffers. A released frame composes nothing.
func (f *Frame) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.allocate(0, 0)
}

// Snapshot returns a copy of the surface
func (f *Frame) Snapshot() *image.RGBA {
	f.mu.RLock()
	defer f.mu.RUnlock()

	img := image.NewRGBA(f.surface.Rect)
	copy(img.Pix, f.surface.Pix)

	return img
}

// Bands splits the surface into at most one horizontal band per tile
func (f *Frame) Bands() []image.Rectangle {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.bands()
}

func (f *Frame) bands() []image.Rectangle {
	bounds := f.surface.Bounds()
	count := min(f.tiles, bounds.Dy())
	if count == 0 {
		return nil
	}

	bands := make([]image.Rectangle, 0, count)
	rows := bounds.Dy() / count
	for i := 0; i < count; i++ {
		band := image.Rect(bounds.Min.X, bounds.Min.Y+i*rows, bounds.Max.X, bounds.Min.Y+(i+1)*rows)
		if i == count-1 {
			band.Max.Y = bounds.Max.Y
		}
		bands = append(bands, band)
	}

	return bands
}

// Compose clears the surface and paints every drawable into each tile in parallel.
// A body that fails or panics is reported once through onError and skipped.
func (f *Frame) Compose(ctx context.Context, drawables []Drawable, view View, onError ErrorHandler) error {
	states := make([]DrawState, len(drawables))
	for i, d := range drawables {
		states[i] = d.DrawState()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.buffers.Reset()

	var (
		failuresMu sync.Mutex
		failures   = make(map[uint64]error)
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, band := range f.bands() {
		g.Go(func() error {
			canvas := NewBandCanvas(f.surface, band)
			canvas.Clear(f.Background)

			for _, state := range states {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := paintState(canvas, state, view, f.buffers); err != nil {
					failuresMu.Lock()
					if _, seen := failures[state.ID]; !seen {
						failures[state.ID] = err
					}
					failuresMu.Unlock()
				}
			}

			return nil
		})
	}
	err := g.Wait()

	if onError != nil {
		for _, state := range states {
			if failure, ok := failures[state.ID]; ok {
				onError(state.ID, failure)
			}
		}
	}

	return err
}

func paintState(canvas Canvas, state DrawState, view View, buffers *Buffers) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic painting body %d: %v", state.ID, r)
		}
	}()

	if err := Paint(canvas, state.Mesh, state.Scale, state.Model, view.Transform, buffers, view.Near, view.Far); err != nil {
		return errors.Wrapf(err, "body %d", state.ID)
	}

	return nil
}
