package render

import "math"

// Buffers are the per-pixel depth and body-index planes of a render target.
// Paint accepts them but draws in list order without a depth test.
type Buffers struct {
	Width  int
	Height int
	Depth  []float64
	Index  []int64
}

func NewBuffers(width, height int) *Buffers {
	b := &Buffers{}
	b.Resize(width, height)

	return b
}

func (b *Buffers) Resize(width, height int) {
	b.Width, b.Height = max(width, 0), max(height, 0)
	b.Depth = make([]float64, b.Width*b.Height)
	b.Index = make([]int64, b.Width*b.Height)
	b.Reset()
}

// Reset sets depth to +Inf and index to -1 everywhere
func (b *Buffers) Reset() {
	for i := range b.Depth {
		b.Depth[i] = math.Inf(1)
	}
	for i := range b.Index {
		b.Index[i] = -1
	}
}
