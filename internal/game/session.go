package game

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/Garsondee/shape-pop/internal/audio"
	"github.com/Garsondee/shape-pop/internal/config"
	"github.com/Garsondee/shape-pop/internal/fx"
	"github.com/Garsondee/shape-pop/internal/shape"
)

// ClickResult says what a click did to the session.
type ClickResult int

const (
	ClickIgnored ClickResult = iota // session already over
	ClickAdded                      // empty space: a shape was spawned
	ClickRemoved                    // a shape was hit and removed
)

func (r ClickResult) String() string {
	switch r {
	case ClickIgnored:
		return "ignored"
	case ClickAdded:
		return "added"
	case ClickRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Session is the state of one play-through: shapes, score, countdown and
// the game-over flag. It has no Ebitengine dependency; Game hosts it.
//
// Two independent sources drive a Session. The frame scheduler calls Update
// and reads render state; the one-second ticker calls Tick. Neither reads
// the other's intermediate state, so their relative order does not matter.
type Session struct {
	tuning        *config.Tuning
	width, height float64

	shapes []*shape.Shape
	score  int
	timer  int
	over   bool
	phase  float64

	seconds int // ticks received
	frames  int // updates run
	nextID  int

	rng     *rand.Rand
	cues    audio.Cues
	effects fx.Frame
	log     *SessionLog
	logger  *log.Logger
}

// SessionOption configures a Session at construction.
type SessionOption func(*Session)

// WithSeed makes shape kinds, colours and velocities deterministic.
func WithSeed(seed int64) SessionOption {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay only
	}
}

// WithCues routes sound cues somewhere other than silence.
func WithCues(c audio.Cues) SessionOption {
	return func(s *Session) {
		if c != nil {
			s.cues = c
		}
	}
}

// WithBounds overrides the play area that shapes bounce inside.
func WithBounds(w, h float64) SessionOption {
	return func(s *Session) {
		s.width, s.height = w, h
	}
}

// WithVerbose records per-tick entries in the session log.
func WithVerbose(v bool) SessionOption {
	return func(s *Session) {
		s.log = NewSessionLog(v)
	}
}

// WithLogger replaces the logger used for lifecycle messages.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession starts a session in the Playing state with a full timer.
func NewSession(tuning *config.Tuning, opts ...SessionOption) *Session {
	s := &Session{
		tuning: tuning,
		width:  float64(tuning.Surface.Width),
		height: float64(tuning.Surface.Height),
		timer:  tuning.Session.DurationSeconds,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- gameplay only
		cues:   audio.Silent{},
		log:    NewSessionLog(false),
		logger: log.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Tick is the one-second ticker body. While playing it counts the timer down,
// boosts every shape whenever the remaining time is a multiple of the boost
// interval, and ends the session when the timer reaches zero. After game over
// it does nothing.
func (s *Session) Tick() {
	if s.over {
		return
	}
	s.seconds++
	if s.timer > 0 {
		s.timer--
	}
	s.log.AddVerbose(s.seconds, s.frames, "--", "timer", "tick", fmt.Sprintf("%ds left", s.timer), float64(s.timer))

	if s.timer%s.tuning.Session.BoostEverySeconds == 0 {
		for _, sh := range s.shapes {
			sh.BoostSpeed()
		}
		s.log.Add(s.seconds, s.frames, "--", "difficulty", "boost",
			fmt.Sprintf("%d shapes at %ds left", len(s.shapes), s.timer), float64(len(s.shapes)))
	}

	if s.timer == 0 {
		s.over = true
		s.log.Add(s.seconds, s.frames, "--", "state", "game_over", fmt.Sprintf("final score %d", s.score), float64(s.score))
		s.logger.Printf("[Game] Game over: final score %d", s.score)
	}
}

// Update advances every shape one step. Nothing moves after game over.
func (s *Session) Update() {
	if s.over {
		return
	}
	s.frames++
	for _, sh := range s.shapes {
		sh.Advance(s.width, s.height)
	}
}

// Click handles a pointer release at surface-local (x, y). The first shape in
// collection order whose radius covers the point is removed; if none does, a
// new shape is spawned there.
func (s *Session) Click(x, y float64) ClickResult {
	if s.over {
		return ClickIgnored
	}

	for i, sh := range s.shapes {
		if !sh.Contains(x, y) {
			continue
		}
		s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
		s.cues.Play(audio.CueRemove)
		s.score += s.tuning.Session.RemovePoints
		s.effects.Bursts = append(s.effects.Bursts, fx.NewBurst(s.rng, x, y, s.burstSpec(), shape.RandomColor))
		s.log.Add(s.seconds, s.frames, sh.ID, "click", "remove", fmt.Sprintf("score %d", s.score), float64(s.score))
		return ClickRemoved
	}

	sh := s.spawn(x, y)
	s.shapes = append(s.shapes, sh)
	s.cues.Play(audio.CuePop)
	s.score += s.tuning.Session.AddPoints
	s.effects.Flashes = append(s.effects.Flashes, fx.Flash{Alpha: s.tuning.Effects.FlashAlpha})
	s.log.Add(s.seconds, s.frames, sh.ID, "click", "add",
		fmt.Sprintf("%s %s score %d", sh.Kind, shape.Hex(sh.Color), s.score), float64(s.score))
	return ClickAdded
}

func (s *Session) spawn(x, y float64) *shape.Shape {
	sp := s.tuning.Spawn
	kind := shape.RandomKind(s.rng)
	clr := shape.RandomColor(s.rng)
	dx := sp.SpeedMin + s.rng.Float64()*(sp.SpeedMax-sp.SpeedMin)
	dy := sp.SpeedMin + s.rng.Float64()*(sp.SpeedMax-sp.SpeedMin)
	id := fmt.Sprintf("%s-%d", kind, s.nextID)
	s.nextID++
	return shape.New(id, kind, x, y, sp.Radius, dx, dy, clr)
}

func (s *Session) burstSpec() fx.BurstSpec {
	e := s.tuning.Effects
	return fx.BurstSpec{
		Count:   e.Particles,
		Radius:  e.ParticleRadius,
		DistMin: e.ParticleDistMin,
		DistMax: e.ParticleDistMax,
	}
}

// NextHue advances the background phase by one frame and returns the hue in
// degrees. The phase only grows; the hue wraps.
func (s *Session) NextHue() float64 {
	s.phase += s.tuning.Background.PhaseStep
	return math.Mod(s.phase*100, 360)
}

// TakeEffects returns the effects queued since the last call and clears them.
func (s *Session) TakeEffects() fx.Frame {
	f := s.effects
	s.effects = fx.Frame{}
	return f
}

func (s *Session) Score() int { return s.score }
func (s *Session) Timer() int { return s.timer }
func (s *Session) Over() bool { return s.over }
func (s *Session) Seconds() int { return s.seconds }
func (s *Session) Frames() int { return s.frames }
func (s *Session) Phase() float64 { return s.phase }

// Shapes returns the live shapes. Callers must not modify the slice.
func (s *Session) Shapes() []*shape.Shape { return s.shapes }

func (s *Session) Log() *SessionLog { return s.log }

// Bounds is the play area shapes bounce inside.
func (s *Session) Bounds() (float64, float64) { return s.width, s.height }
