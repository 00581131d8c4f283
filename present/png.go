package present

import (
	"image"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/pkg/errors"
)

// PNGFile writes every presented frame to Path, overwriting the previous one.
type PNGFile struct {
	Path string

	mu     sync.Mutex
	frames int
	err    error
}

func NewPNGFile(path string) *PNGFile {
	return &PNGFile{Path: path}
}

func (p *PNGFile) Present(img *image.RGBA) {
	err := imgio.Save(p.Path, img, imgio.PNGEncoder())

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.err = errors.Wrapf(err, "present: save %s", p.Path)
		return
	}
	p.frames++
}

// Frames is the number of frames written
func (p *PNGFile) Frames() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.frames
}

// Err returns the last write failure
func (p *PNGFile) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.err
}
