// Package fx holds one-frame visual effects. An effect is drawn by the next
// render and then dropped; nothing here animates.
package fx

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Particle is one dot of a burst.
type Particle struct {
	X, Y   float64
	Radius float64
	Color  color.RGBA
}

// Burst is a ring of particles thrown outward from a point.
type Burst struct {
	X, Y      float64
	Particles []Particle
}

// BurstSpec controls how NewBurst lays particles out.
type BurstSpec struct {
	Count   int
	Radius  float64
	DistMin float64
	DistMax float64
}

// NewBurst places spec.Count particles on evenly spaced rays around (x, y),
// each at a random distance in [DistMin, DistMax) with a random colour.
func NewBurst(rng *rand.Rand, x, y float64, spec BurstSpec, colorFn func(*rand.Rand) color.RGBA) Burst {
	b := Burst{X: x, Y: y, Particles: make([]Particle, 0, spec.Count)}
	for i := 0; i < spec.Count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(spec.Count)
		dist := spec.DistMin + rng.Float64()*(spec.DistMax-spec.DistMin)
		b.Particles = append(b.Particles, Particle{
			X:      x + math.Cos(angle)*dist,
			Y:      y + math.Sin(angle)*dist,
			Radius: spec.Radius,
			Color:  colorFn(rng),
		})
	}
	return b
}

func (b Burst) Draw(dst *ebiten.Image) {
	for _, p := range b.Particles {
		vector.FillCircle(dst, float32(p.X), float32(p.Y), float32(p.Radius), p.Color, true)
	}
}

// Flash washes the whole surface with translucent white.
type Flash struct {
	Alpha float64
}

func (f Flash) Draw(dst *ebiten.Image) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	a := uint8(math.Round(f.Alpha * 255))
	// Premultiplied: RGB must not exceed alpha.
	vector.FillRect(dst, 0, 0, float32(w), float32(h), color.RGBA{R: a, G: a, B: a, A: a}, false)
}

// Frame collects the effects queued for the next render.
type Frame struct {
	Bursts  []Burst
	Flashes []Flash
}

func (f Frame) Empty() bool {
	return len(f.Bursts) == 0 && len(f.Flashes) == 0
}

// Draw renders bursts first, then flashes over them.
func (f Frame) Draw(dst *ebiten.Image) {
	for _, b := range f.Bursts {
		b.Draw(dst)
	}
	for _, fl := range f.Flashes {
		fl.Draw(dst)
	}
}
