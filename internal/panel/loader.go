package panel

import (
	"image"

	"github.com/Faultbox/toon-sphere/internal/engine/texture"
)

// loadResult is a decoded texture waiting for upload on the GL thread.
type loadResult struct {
	path string
	img  *image.RGBA
	err  error
}

// textureLoader decodes images off the UI thread. Results are collected with
// poll from the frame callback, where the GL context is current.
type textureLoader struct {
	results chan loadResult
	decode  func(path string) (*image.RGBA, error)
}

func newTextureLoader() *textureLoader {
	return &textureLoader{
		results: make(chan loadResult, 4),
		decode:  texture.DecodeFile,
	}
}

// load starts decoding path in the background.
func (l *textureLoader) load(path string) {
	go func() {
		img, err := l.decode(path)
		l.results <- loadResult{path: path, img: img, err: err}
	}()
}

// poll returns a finished result without blocking.
func (l *textureLoader) poll() (loadResult, bool) {
	select {
	case r := <-l.results:
		return r, true
	default:
		return loadResult{}, false
	}
}
