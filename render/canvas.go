package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Canvas is a 2D drawing surface in screen pixels, origin top-left.
// Size is the full logical surface even when the canvas only owns part of it.
type Canvas interface {
	Size() (width, height int)
	FillPolygon(points []mgl64.Vec2, c color.Color)
	StrokePolygon(points []mgl64.Vec2, c color.Color, width float64)
	Line(from, to mgl64.Vec2, c color.Color, width float64)
	Disc(center mgl64.Vec2, diameter float64, c color.Color)
	Clear(c color.Color)
}
