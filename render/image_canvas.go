package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/vector"
)

// circle control point distance for a quarter arc drawn as one cubic
const kappa = 0.5522847498

// ImageCanvas draws anti-aliased shapes into an RGBA image, restricted to a band.
type ImageCanvas struct {
	dst    *image.RGBA
	band   image.Rectangle
	offset mgl64.Vec2
	raster *vector.Rasterizer
}

func NewImageCanvas(dst *image.RGBA) *ImageCanvas {
	return NewBandCanvas(dst, dst.Bounds())
}

// NewBandCanvas creates a canvas that only touches the pixels of band.
// Coordinates stay relative to the whole image.
func NewBandCanvas(dst *image.RGBA, band image.Rectangle) *ImageCanvas {
	band = band.Intersect(dst.Bounds())
	origin := dst.Bounds().Min

	return &ImageCanvas{
		dst:    dst,
		band:   band,
		offset: mgl64.Vec2{float64(band.Min.X - origin.X), float64(band.Min.Y - origin.Y)},
		raster: vector.NewRasterizer(band.Dx(), band.Dy()),
	}
}

func (c *ImageCanvas) Size() (int, int) {
	return c.dst.Bounds().Dx(), c.dst.Bounds().Dy()
}

func (c *ImageCanvas) Band() image.Rectangle {
	return c.band
}

func (c *ImageCanvas) begin() bool {
	if c.band.Empty() {
		return false
	}
	c.raster.Reset(c.band.Dx(), c.band.Dy())

	return true
}

func (c *ImageCanvas) point(p mgl64.Vec2) (float32, float32) {
	return float32(p.X() - c.offset.X()), float32(p.Y() - c.offset.Y())
}

func (c *ImageCanvas) moveTo(p mgl64.Vec2) {
	c.raster.MoveTo(c.point(p))
}

func (c *ImageCanvas) lineTo(p mgl64.Vec2) {
	c.raster.LineTo(c.point(p))
}

func (c *ImageCanvas) paint(col color.Color) {
	c.raster.Draw(c.dst, c.band, image.NewUniform(col), image.Point{})
}

func (c *ImageCanvas) FillPolygon(points []mgl64.Vec2, col color.Color) {
	if len(points) < 3 || !c.begin() {
		return
	}

	c.moveTo(points[0])
	for _, p := range points[1:] {
		c.lineTo(p)
	}
	c.raster.ClosePath()
	c.paint(col)
}

func (c *ImageCanvas) StrokePolygon(points []mgl64.Vec2, col color.Color, width float64) {
	if len(points) < 2 || width <= 0 || !c.begin() {
		return
	}

	for i := range points {
		c.segment(points[i], points[(i+1)%len(points)], width)
	}
	c.paint(col)
}

func (c *ImageCanvas) Line(from, to mgl64.Vec2, col color.Color, width float64) {
	if width <= 0 || !c.begin() {
		return
	}

	c.segment(from, to, width)
	c.paint(col)
}

// segment adds a width-thick rectangle around from-to to the current path.
// Every rectangle winds the same way so overlapping segments do not cancel.
func (c *ImageCanvas) segment(from, to mgl64.Vec2, width float64) {
	d := to.Sub(from)
	length := d.Len()
	if length < 1e-9 {
		return
	}

	n := mgl64.Vec2{-d.Y(), d.X()}.Mul(width / (2 * length))
	c.moveTo(from.Add(n))
	c.lineTo(to.Add(n))
	c.lineTo(to.Sub(n))
	c.lineTo(from.Sub(n))
	c.raster.ClosePath()
}

func (c *ImageCanvas) Disc(center mgl64.Vec2, diameter float64, col color.Color) {
	if diameter <= 0 || !c.begin() {
		return
	}

	r := diameter / 2
	k := r * kappa
	x, y := c.point(center)
	fr, fk := float32(r), float32(k)

	c.raster.MoveTo(x+fr, y)
	c.raster.CubeTo(x+fr, y+fk, x+fk, y+fr, x, y+fr)
	c.raster.CubeTo(x-fk, y+fr, x-fr, y+fk, x-fr, y)
	c.raster.CubeTo(x-fr, y-fk, x-fk, y-fr, x, y-fr)
	c.raster.CubeTo(x+fk, y-fr, x+fr, y-fk, x+fr, y)
	c.raster.ClosePath()
	c.paint(col)
}

func (c *ImageCanvas) Clear(col color.Color) {
	draw.Draw(c.dst, c.band, image.NewUniform(col), image.Point{}, draw.Src)
}
