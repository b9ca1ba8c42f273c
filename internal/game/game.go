package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/shape-pop/internal/audio"
	"github.com/Garsondee/shape-pop/internal/config"
	"github.com/Garsondee/shape-pop/internal/input"
	"github.com/Garsondee/shape-pop/internal/loop"
)

// ErrNoSurface is returned by New when the render surface cannot be acquired.
var ErrNoSurface = errors.New("render surface unavailable")

// tickPeriod is the countdown ticker period.
const tickPeriod = time.Second

// windowBackground fills the border around the play surface.
var windowBackground = color.RGBA{R: 12, G: 14, B: 12, A: 255}

// Game hosts a Session inside Ebitengine.
//
// Ebitengine's Update is used as the host event pump: it delivers pointer
// releases and polls the one-second ticker. Draw is the frame callback that
// drives the scheduler, which updates and renders the session into an
// offscreen surface before it is blitted into the window.
type Game struct {
	tuning  *config.Tuning
	session *Session

	width  int // logical window size
	height int
	offX   int // surface origin inside the window
	offY   int

	surface *ebiten.Image
	white   *ebiten.Image
	hud     *hud

	scheduler *loop.Scheduler
	ticker    *loop.Interval
	input     *input.Source

	pointer    input.Pointer
	clock      loop.Clock
	cues       audio.Cues
	sessionOpt []SessionOption
}

// Option configures a Game at construction.
type Option func(*Game)

// WithPointer replaces the Ebitengine pointer reader.
func WithPointer(p input.Pointer) Option {
	return func(g *Game) { g.pointer = p }
}

// WithClock replaces the wall clock driving the countdown ticker.
func WithClock(c loop.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithSound routes click cues to c.
func WithSound(c audio.Cues) Option {
	return func(g *Game) { g.cues = c }
}

// WithSessionOptions passes options through to the hosted Session.
func WithSessionOptions(opts ...SessionOption) Option {
	return func(g *Game) { g.sessionOpt = append(g.sessionOpt, opts...) }
}

// New acquires the render surface and starts a session: the frame scheduler
// and the one-second ticker both begin immediately. It fails only when the
// surface cannot be acquired.
func New(tuning *config.Tuning, opts ...Option) (*Game, error) {
	surface, err := acquireSurface(tuning.Surface.Width, tuning.Surface.Height)
	if err != nil {
		return nil, err
	}

	g := newHost(tuning, opts...)
	g.surface = surface
	g.white = ebiten.NewImage(3, 3)
	g.white.Fill(color.White)
	g.hud = newHUD()
	g.start()

	log.Printf("[Game] Started: surface %dx%d, %ds on the clock",
		tuning.Surface.Width, tuning.Surface.Height, tuning.Session.DurationSeconds)
	return g, nil
}

// newHost builds the session and wires input, scheduler and ticker without
// touching any graphics resources.
func newHost(tuning *config.Tuning, opts ...Option) *Game {
	w, h := tuning.WindowSize()
	g := &Game{
		tuning:  tuning,
		width:   w,
		height:  h,
		offX:    tuning.Window.Border,
		offY:    tuning.Window.Border,
		pointer: &input.EbitenPointer{},
		clock:   loop.SystemClock{},
		cues:    audio.Silent{},
	}
	for _, o := range opts {
		o(g)
	}

	g.session = NewSession(tuning, append([]SessionOption{WithCues(g.cues)}, g.sessionOpt...)...)
	g.scheduler = loop.NewScheduler(loop.StepFuncs{
		UpdateFn: g.session.Update,
		RenderFn: g.render,
	})
	g.input = input.NewSource(g.pointer, g.surfaceBounds)
	g.input.OnRelease(g.handleClick)
	return g
}

// start launches the two independent timing sources.
func (g *Game) start() {
	g.scheduler.Start()
	g.ticker = loop.Every(g.clock, tickPeriod, g.session.Tick)
}

func acquireSurface(w, h int) (*ebiten.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("surface %dx%d: %w", w, h, ErrNoSurface)
	}
	return ebiten.NewImage(w, h), nil
}

func (g *Game) handleClick(x, y float64) {
	g.session.Click(x, y)
}

// surfaceBounds is the play surface's rectangle in window coordinates.
func (g *Game) surfaceBounds() image.Rectangle {
	return image.Rect(g.offX, g.offY, g.offX+g.tuning.Surface.Width, g.offY+g.tuning.Surface.Height)
}

// Update pumps host events: pointer releases, then the countdown ticker.
func (g *Game) Update() error {
	g.input.Poll()
	g.ticker.Poll()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Frame()

	screen.Fill(windowBackground)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.surface, op)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// render paints one frame into the surface. It runs in every state so the
// final frame and the game-over overlay stay visible.
func (g *Game) render() {
	dst := g.surface
	g.drawBackground(dst, g.session.NextHue())
	for _, sh := range g.session.Shapes() {
		sh.Render(dst)
	}
	g.session.TakeEffects().Draw(dst)
	g.hud.drawStatus(dst, g.session.Score(), g.session.Timer())
	if g.session.Over() {
		g.hud.drawGameOver(dst, g.session.Score())
	}
}

func (g *Game) Session() *Session { return g.session }

// Scheduler exposes the frame scheduler so the host can stop rendering.
func (g *Game) Scheduler() *loop.Scheduler { return g.scheduler }

// WindowSize is the logical window size, surface plus border.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }
