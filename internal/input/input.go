package input

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Listener receives a pointer release in surface-local coordinates.
type Listener func(x, y float64)

// Pointer reports pointer releases in client (window) coordinates.
type Pointer interface {
	// Released returns the releases observed since the previous call.
	Released() []image.Point
}

// Source watches one Pointer for releases over the play surface and fans each
// release out to every registered listener.
type Source struct {
	pointer   Pointer
	bounds    func() image.Rectangle
	listeners []Listener
}

// NewSource attaches to pointer. bounds returns the surface's bounding
// rectangle in client coordinates and is consulted on every release.
func NewSource(pointer Pointer, bounds func() image.Rectangle) *Source {
	return &Source{pointer: pointer, bounds: bounds}
}

// OnRelease registers a listener. Listeners cannot be removed.
func (s *Source) OnRelease(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

// Poll drains pending releases and delivers them. Points outside the surface
// are passed through as-is. Returns the number of releases delivered.
func (s *Source) Poll() int {
	released := s.pointer.Released()
	if len(released) == 0 {
		return 0
	}
	origin := s.bounds().Min
	for _, p := range released {
		x := float64(p.X - origin.X)
		y := float64(p.Y - origin.Y)
		for _, fn := range s.listeners {
			fn(x, y)
		}
	}
	return len(released)
}

// EbitenPointer reads left-button and touch releases from Ebitengine.
// Ebitengine only updates its input state between Update calls, so Released
// must be called from Update.
type EbitenPointer struct {
	touchIDs []ebiten.TouchID
	out      []image.Point
}

func (p *EbitenPointer) Released() []image.Point {
	p.out = p.out[:0]
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p.out = append(p.out, image.Pt(x, y))
	}
	p.touchIDs = inpututil.AppendJustReleasedTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		p.out = append(p.out, image.Pt(x, y))
	}
	return p.out
}
