// Package window presents frames in a desktop window through ebiten.
package window

import (
	"image"
	"sync"

	"github.com/akmonengine/sandbox/input"
	"github.com/akmonengine/sandbox/present"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Window shows frames in a desktop window and forwards its input.
type Window struct {
	mu     sync.Mutex
	latest *image.RGBA
	dirty  bool

	img     *ebiten.Image
	title   string
	status  func() string
	handle  func(input.Event) bool
	width   int
	height  int
	cursorX int
	cursorY int
}

// NewWindow creates a window of the given size. handle receives every input
// event; status, when set, is appended to the window title.
func NewWindow(title string, width, height int, handle func(input.Event) bool, status func() string) *Window {
	return &Window{
		title:  title,
		status: status,
		handle: handle,
		width:  width,
		height: height,
	}
}

// Present keeps img as the next frame to draw
func (w *Window) Present(img *image.RGBA) {
	w.mu.Lock()
	w.latest = img
	w.dirty = true
	w.mu.Unlock()
}

// Run opens the window and blocks until it is closed
func (w *Window) Run() error {
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(w)
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		w.emit(input.KeyDown(r))
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		w.emit(input.MouseWheel(dy * present.WheelNotch))
	}

	x, y := ebiten.CursorPosition()
	for _, b := range []struct {
		ebiten ebiten.MouseButton
		input  input.Button
	}{
		{ebiten.MouseButtonLeft, input.ButtonLeft},
		{ebiten.MouseButtonMiddle, input.ButtonMiddle},
		{ebiten.MouseButtonRight, input.ButtonRight},
	} {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			w.emit(input.MouseDown(b.input, x, y))
		}
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			w.emit(input.MouseUp(b.input, x, y))
		}
	}
	if x != w.cursorX || y != w.cursorY {
		w.cursorX, w.cursorY = x, y
		w.emit(input.MouseMove(x, y))
	}

	if w.status != nil {
		if s := w.status(); s != "" {
			ebiten.SetWindowTitle(w.title + " - " + s)
		}
	}

	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	latest, dirty := w.latest, w.dirty
	w.dirty = false
	w.mu.Unlock()

	if latest == nil {
		return
	}

	bounds := latest.Bounds()
	if w.img == nil || w.img.Bounds().Dx() != bounds.Dx() || w.img.Bounds().Dy() != bounds.Dy() {
		if w.img != nil {
			w.img.Deallocate()
		}
		w.img = ebiten.NewImage(bounds.Dx(), bounds.Dy())
		dirty = true
	}
	if dirty {
		w.img.WritePixels(latest.Pix)
	}

	screen.DrawImage(w.img, nil)
}

// Layout follows the outside size, reporting changes as resize events
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.emit(input.Resize(outsideWidth, outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func (w *Window) emit(e input.Event) {
	if w.handle != nil {
		w.handle(e)
	}
}
