package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	hudX        = 10
	hudY        = 10
	hudLineH    = 18
	hudScale    = 1.5
	bannerScale = 3
)

// drawBackground fills dst with a vertical two-stop gradient. The top stop
// has the given hue; the bottom stop is HueSpread degrees further round.
func (g *Game) drawBackground(dst *ebiten.Image, hue float64) {
	bg := g.tuning.Background
	top := colorful.Hsl(hue, bg.Saturation, bg.Lightness)
	bottom := colorful.Hsl(math.Mod(hue+bg.HueSpread, 360), bg.Saturation, bg.Lightness)

	w := float32(dst.Bounds().Dx())
	h := float32(dst.Bounds().Dy())
	vs := []ebiten.Vertex{
		gradientVertex(0, 0, top),
		gradientVertex(w, 0, top),
		gradientVertex(0, h, bottom),
		gradientVertex(w, h, bottom),
	}
	is := []uint16{0, 1, 2, 1, 3, 2}
	dst.DrawTriangles(vs, is, g.white, &ebiten.DrawTrianglesOptions{})
}

func gradientVertex(x, y float32, c colorful.Color) ebiten.Vertex {
	c = c.Clamped()
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R),
		ColorG: float32(c.G),
		ColorB: float32(c.B),
		ColorA: 1,
	}
}

// hud draws the score, the countdown and the game-over banner.
type hud struct {
	face text.Face
}

func newHUD() *hud {
	return &hud{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *hud) drawStatus(dst *ebiten.Image, score, timer int) {
	h.drawText(dst, fmt.Sprintf("Score: %d", score), hudX, hudY, hudScale, text.AlignStart)
	h.drawText(dst, fmt.Sprintf("Time: %ds", timer), hudX, hudY+hudLineH*hudScale, hudScale, text.AlignStart)
}

// drawGameOver overlays the banner and final score in the centre of dst,
// on top of whatever the frame already holds.
func (h *hud) drawGameOver(dst *ebiten.Image, score int) {
	cx := float64(dst.Bounds().Dx()) / 2
	cy := float64(dst.Bounds().Dy()) / 2
	h.drawText(dst, "Game Over", cx, cy-hudLineH*bannerScale, bannerScale, text.AlignCenter)
	h.drawText(dst, fmt.Sprintf("Final Score: %d", score), cx, cy+hudLineH, 2, text.AlignCenter)
}

// drawText renders s with a one-pixel drop shadow so it stays readable on
// every background hue.
func (h *hud) drawText(dst *ebiten.Image, s string, x, y, scale float64, align text.Align) {
	for _, pass := range []struct {
		dx, dy float64
		clr    color.RGBA
	}{
		{scale, scale, colornames.Black},
		{0, 0, colornames.White},
	} {
		op := &text.DrawOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x+pass.dx, y+pass.dy)
		op.ColorScale.ScaleWithColor(pass.clr)
		op.LayoutOptions.PrimaryAlign = align
		text.Draw(dst, s, h.face, op)
	}
}
