package shape

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
)

// BoostFactor scales both velocity components on a difficulty tick.
const BoostFactor = 1.1

// Kind tags the geometry a shape is drawn with.
type Kind int

const (
	Circle Kind = iota
	Square
	Triangle
	kindCount
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Shape is a moving, drawable game object.
type Shape struct {
	ID     string
	X, Y   float64
	Radius float64
	DX, DY float64
	Color  color.RGBA
	Kind   Kind
}

// New creates a shape. Radius is fixed for the shape's lifetime.
func New(id string, kind Kind, x, y, radius, dx, dy float64, clr color.RGBA) *Shape {
	return &Shape{
		ID:     id,
		X:      x,
		Y:      y,
		Radius: radius,
		DX:     dx,
		DY:     dy,
		Color:  clr,
		Kind:   kind,
	}
}

// Advance moves the shape by its velocity, then reverses each velocity
// component whose leading edge has reached or passed a bound. The axes are
// checked independently, so a corner contact flips both.
func (s *Shape) Advance(boundsW, boundsH float64) {
	s.X += s.DX
	s.Y += s.DY

	if s.X+s.Radius >= boundsW || s.X-s.Radius <= 0 {
		s.DX = -s.DX
	}
	if s.Y+s.Radius >= boundsH || s.Y-s.Radius <= 0 {
		s.DY = -s.DY
	}
}

// BoostSpeed multiplies both velocity components by BoostFactor.
func (s *Shape) BoostSpeed() {
	s.DX *= BoostFactor
	s.DY *= BoostFactor
}

// Contains reports whether (x, y) lies within the shape's radius of its centre.
// Every kind uses the circular hit area.
func (s *Shape) Contains(x, y float64) bool {
	return math.Hypot(x-s.X, y-s.Y) <= s.Radius
}

func (s *Shape) String() string {
	return fmt.Sprintf("%s at (%.1f,%.1f) r=%.0f v=(%.2f,%.2f)", s.ID, s.X, s.Y, s.Radius, s.DX, s.DY)
}

// Render draws the shape onto dst at its current position.
func (s *Shape) Render(dst *ebiten.Image) {
	x, y, r := float32(s.X), float32(s.Y), float32(s.Radius)

	switch s.Kind {
	case Circle:
		vector.FillCircle(dst, x, y, r, s.Color, true)
	case Square:
		vector.FillRect(dst, x-r, y-r, 2*r, 2*r, s.Color, true)
	case Triangle:
		var path vector.Path
		path.MoveTo(x, y-r)
		path.LineTo(x-r, y+r)
		path.LineTo(x+r, y+r)
		path.Close()

		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(s.Color)
		vector.FillPath(dst, &path, &vector.FillOptions{}, op)
	}
}

// RandomKind picks one of the three kinds uniformly.
func RandomKind(rng *rand.Rand) Kind {
	return Kind(rng.Intn(int(kindCount)))
}

const hexDigits = "0123456789ABCDEF"

// RandomColor builds a "#RRGGBB" colour whose six digits are each chosen
// uniformly from the sixteen hex symbols.
func RandomColor(rng *rand.Rand) color.RGBA {
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i := 1; i < len(buf); i++ {
		buf[i] = hexDigits[rng.Intn(len(hexDigits))]
	}
	c, err := colorful.Hex(string(buf))
	if err != nil {
		// Unreachable: buf is always a well-formed hex triplet.
		return color.RGBA{A: 0xff}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex formats a colour the way RandomColor spells it.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
