// Package texture resolves texture references to decoded pixel buffers.
//
// A Cache is created once per rendering session and shared by every model
// compiled in it. Each distinct reference is handed to the Loader at most
// once; failures stay cached and render with a placeholder image.
package texture

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

// UnresolvedMarker prefixes texture variables that were never bound.
const UnresolvedMarker = "#"

// State is the resolution state of a texture handle.
type State int

const (
	StatePending State = iota
	StateLoaded
	StateUnresolved
	StateMissing
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLoaded:
		return "loaded"
	case StateUnresolved:
		return "unresolved"
	case StateMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Texture is a handle owned by a Cache.
type Texture struct {
	ref   string
	ready chan struct{}

	// Written once before ready is closed.
	state State
	img   *image.NRGBA
}

func newTexture(ref string) *Texture {
	return &Texture{ref: ref, ready: make(chan struct{})}
}

// Ref returns the reference the handle was created for.
func (t *Texture) Ref() string { return t.ref }

// State blocks until the handle is settled and returns its state.
func (t *Texture) State() State {
	<-t.ready
	return t.state
}

// Image returns the decoded pixels, or the shared placeholder when the
// texture was not loaded.
func (t *Texture) Image() *image.NRGBA {
	<-t.ready
	if t.img == nil {
		return placeholder
	}
	return t.img
}

// SetImage stores decoded pixels. Loaders call it while handling a Request.
// Animated textures are vertical strips of square frames; only the first
// frame is kept.
func (t *Texture) SetImage(img image.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	frame := b
	if w, h := b.Dx(), b.Dy(); w > 0 && h > w && h%w == 0 {
		frame.Max.Y = frame.Min.Y + w
	}

	if nrgba, ok := img.(*image.NRGBA); ok && frame == b && b.Min == (image.Point{}) {
		t.img = nrgba
		return
	}
	dst := image.NewNRGBA(image.Rect(0, 0, frame.Dx(), frame.Dy()))
	draw.Copy(dst, image.Point{}, img, frame, draw.Src, nil)
	t.img = dst
}

func (t *Texture) settle(s State) {
	t.state = s
	close(t.ready)
}

// Detached returns a settled handle for ref that belongs to no cache. It
// is unresolved and renders with the placeholder image.
func Detached(ref string) *Texture {
	t := newTexture(ref)
	t.settle(StateUnresolved)
	return t
}

// IsUnresolved reports whether ref is an unbound texture variable.
func IsUnresolved(ref string) bool {
	return strings.HasPrefix(ref, UnresolvedMarker)
}

// placeholder is a 2x2 magenta and black checkerboard.
var placeholder = func() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	magenta := color.NRGBA{R: 0xF8, G: 0x00, B: 0xF8, A: 0xFF}
	black := color.NRGBA{A: 0xFF}
	img.SetNRGBA(0, 0, magenta)
	img.SetNRGBA(1, 1, magenta)
	img.SetNRGBA(1, 0, black)
	img.SetNRGBA(0, 1, black)
	return img
}()

// Placeholder returns the image bound to unresolved and missing textures.
func Placeholder() *image.NRGBA {
	return placeholder
}
