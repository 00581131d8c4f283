package present

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/akmonengine/sandbox/input"
	"github.com/anthonynsimon/bild/transform"
	"github.com/gdamore/tcell/v2"
)

// upper half block: foreground paints the top pixel, background the bottom one
const halfBlock = '▀'

// Terminal draws frames with half-block characters, two pixels per cell,
// and keeps the last row for the status line.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	status func() string
}

func NewTerminal(status func() string) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.Clear()

	return &Terminal{screen: screen, status: status}, nil
}

// PixelSize is the frame size that maps one pixel per half cell
func (t *Terminal) PixelSize() (int, int) {
	cols, rows := t.screen.Size()
	return pixelSize(cols, rows)
}

func pixelSize(cols, rows int) (int, int) {
	return max(cols, 1), max(rows-1, 1) * 2
}

// Present scales img to the terminal and draws it
func (t *Terminal) Present(img *image.RGBA) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cols, rows := t.screen.Size()
	w, h := pixelSize(cols, rows)
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		img = transform.Resize(img, w, h, transform.Linear)
	}

	for y := 0; y+1 < h; y += 2 {
		for x := 0; x < w; x++ {
			top, bottom := cell(img, x, y)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			t.screen.SetContent(x, y/2, halfBlock, nil, style)
		}
	}

	if t.status != nil {
		t.drawStatus(rows-1, cols, t.status())
	}
	t.screen.Show()
}

func (t *Terminal) drawStatus(row, cols int, status string) {
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= cols {
			break
		}
		t.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		t.screen.SetContent(x, row, ' ', nil, style)
	}
}

// cell returns the two pixels stacked in the terminal cell starting at (x, y)
func cell(img *image.RGBA, x, y int) (color.RGBA, color.RGBA) {
	origin := img.Bounds().Min
	return img.RGBAAt(origin.X+x, origin.Y+y), img.RGBAAt(origin.X+x, origin.Y+y+1)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Poll forwards terminal events to handle until ctx is done or the user
// presses Escape or Ctrl-C.
func (t *Terminal) Poll(ctx context.Context, handle func(input.Event) bool) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	var buttons tcell.ButtonMask
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if key, isKey := ev.(*tcell.EventKey); isKey && quits(key) {
				return
			}

			var translated []input.Event
			translated, buttons = translate(ev, buttons)
			for _, e := range translated {
				handle(e)
			}
		}
	}
}

func quits(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

// translate converts one tcell event into input events. pressed is the
// mouse button state before the event; the new state is returned.
func translate(ev tcell.Event, pressed tcell.ButtonMask) ([]input.Event, tcell.ButtonMask) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			return []input.Event{input.KeyDown(ev.Rune())}, pressed
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		w, h := pixelSize(cols, rows)
		return []input.Event{input.Resize(w, h)}, pressed
	case *tcell.EventMouse:
		x, y := ev.Position()
		// rows hold two pixels
		y *= 2
		buttons := ev.Buttons()

		var out []input.Event
		if buttons&tcell.WheelUp != 0 {
			out = append(out, input.MouseWheel(WheelNotch))
		}
		if buttons&tcell.WheelDown != 0 {
			out = append(out, input.MouseWheel(-WheelNotch))
		}

		for _, b := range []struct {
			mask  tcell.ButtonMask
			input input.Button
		}{
			{tcell.Button1, input.ButtonLeft},
			{tcell.Button3, input.ButtonMiddle},
			{tcell.Button2, input.ButtonRight},
		} {
			was, is := pressed&b.mask != 0, buttons&b.mask != 0
			switch {
			case is && !was:
				out = append(out, input.MouseDown(b.input, x, y))
			case was && !is:
				out = append(out, input.MouseUp(b.input, x, y))
			}
		}
		out = append(out, input.MouseMove(x, y))

		const clicks = tcell.Button1 | tcell.Button2 | tcell.Button3
		return out, buttons & clicks
	}

	return nil, pressed
}

// Close restores the terminal
func (t *Terminal) Close() {
	t.screen.Fini()
}
