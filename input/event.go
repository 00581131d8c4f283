// Package input maps discrete window and terminal events onto scene operations.
package input

// Kind discriminates input events
type Kind uint8

const (
	KindNone Kind = iota
	KindKeyDown
	KindKeyUp
	KindMouseDown
	KindMouseUp
	KindMouseMove
	KindMouseWheel
	KindResize
)

type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event is a backend-neutral input event. Key is set for key events, X and Y
// for mouse events (pixels) and resizes (new size), Delta for wheel events.
type Event struct {
	Kind   Kind
	Key    rune
	Button Button
	X, Y   int
	Delta  float64
}

func KeyDown(key rune) Event {
	return Event{Kind: KindKeyDown, Key: key}
}

func MouseDown(button Button, x, y int) Event {
	return Event{Kind: KindMouseDown, Button: button, X: x, Y: y}
}

func MouseUp(button Button, x, y int) Event {
	return Event{Kind: KindMouseUp, Button: button, X: x, Y: y}
}

func MouseMove(x, y int) Event {
	return Event{Kind: KindMouseMove, X: x, Y: y}
}

func MouseWheel(delta float64) Event {
	return Event{Kind: KindMouseWheel, Delta: delta}
}

func Resize(width, height int) Event {
	return Event{Kind: KindResize, X: width, Y: height}
}
