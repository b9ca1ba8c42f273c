package game

import (
	"io"
	"log"
	"math"
	"testing"

	"github.com/Garsondee/shape-pop/internal/audio"
	"github.com/Garsondee/shape-pop/internal/config"
	"github.com/Garsondee/shape-pop/internal/shape"
)

type recordingCues struct {
	played []audio.Cue
}

func (r *recordingCues) Play(c audio.Cue) { r.played = append(r.played, c) }

var quiet = log.New(io.Discard, "", 0)

func newTestSession(t *testing.T, opts ...SessionOption) *Session {
	t.Helper()
	tuning, err := config.Default()
	if err != nil {
		t.Fatalf("default tuning: %v", err)
	}
	return NewSession(tuning, append([]SessionOption{WithSeed(1), WithLogger(quiet)}, opts...)...)
}

func TestNewSession_StartsPlaying(t *testing.T) {
	s := newTestSession(t)
	if s.Over() {
		t.Fatal("new session should be playing")
	}
	if s.Timer() != 120 || s.Score() != 0 || len(s.Shapes()) != 0 {
		t.Fatalf("unexpected start state: timer=%d score=%d shapes=%d", s.Timer(), s.Score(), len(s.Shapes()))
	}
	if w, h := s.Bounds(); w != 512 || h != 512 {
		t.Fatalf("expected 512x512 bounds, got %.0fx%.0f", w, h)
	}
}

func TestClick_EmptySpaceSpawnsShape(t *testing.T) {
	cues := &recordingCues{}
	s := newTestSession(t, WithCues(cues))

	if got := s.Click(100, 120); got != ClickAdded {
		t.Fatalf("expected ClickAdded, got %s", got)
	}
	if s.Score() != 1 {
		t.Fatalf("expected score 1, got %d", s.Score())
	}
	shapes := s.Shapes()
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	sh := shapes[0]
	if sh.X != 100 || sh.Y != 120 || sh.Radius != 20 {
		t.Fatalf("unexpected shape %v", sh)
	}
	if sh.DX < -2 || sh.DX >= 2 || sh.DY < -2 || sh.DY >= 2 {
		t.Fatalf("velocity out of [-2,2): (%f,%f)", sh.DX, sh.DY)
	}
	if len(cues.played) != 1 || cues.played[0] != audio.CuePop {
		t.Fatalf("expected pop cue, got %v", cues.played)
	}
	fx := s.TakeEffects()
	if len(fx.Flashes) != 1 || len(fx.Bursts) != 0 {
		t.Fatalf("expected one flash, got %+v", fx)
	}
	if !s.TakeEffects().Empty() {
		t.Fatal("effects should last exactly one frame")
	}
}

func TestClick_HitRemovesShape(t *testing.T) {
	cues := &recordingCues{}
	s := newTestSession(t, WithCues(cues))
	s.Click(200, 200)
	s.Click(400, 400)
	s.TakeEffects()
	before := s.Score()

	if got := s.Click(205, 195); got != ClickRemoved {
		t.Fatalf("expected ClickRemoved, got %s", got)
	}
	if s.Score() != before+5 {
		t.Fatalf("expected score %d, got %d", before+5, s.Score())
	}
	if len(s.Shapes()) != 1 {
		t.Fatalf("expected 1 shape left, got %d", len(s.Shapes()))
	}
	if s.Shapes()[0].X != 400 {
		t.Fatal("the wrong shape was removed")
	}
	if cues.played[len(cues.played)-1] != audio.CueRemove {
		t.Fatalf("expected remove cue last, got %v", cues.played)
	}
	fx := s.TakeEffects()
	if len(fx.Bursts) != 1 || len(fx.Bursts[0].Particles) != 10 {
		t.Fatalf("expected one 10-particle burst, got %+v", fx.Bursts)
	}
	if fx.Bursts[0].X != 205 || fx.Bursts[0].Y != 195 {
		t.Fatalf("burst should be centred on the click, got (%f,%f)", fx.Bursts[0].X, fx.Bursts[0].Y)
	}
}

func TestClick_FirstMatchInCollectionOrderWins(t *testing.T) {
	s := newTestSession(t)
	s.Click(100, 100)
	s.Click(130, 100) // outside the first shape's radius, so it spawns too
	if len(s.Shapes()) != 2 {
		t.Fatalf("expected 2 shapes, got %d", len(s.Shapes()))
	}
	second := s.Shapes()[1]

	// (120,100) is 20 from the first and 10 from the second: the nearer one
	// does not matter, the earlier one does.
	s.Click(120, 100)
	if len(s.Shapes()) != 1 || s.Shapes()[0] != second {
		t.Fatal("expected the first shape in collection order to be removed")
	}
}

func TestClick_SpawnThenHitCentreRoundTrip(t *testing.T) {
	s := newTestSession(t)
	s.Click(300, 50)
	if s.Click(300, 50) != ClickRemoved {
		t.Fatal("clicking the centre of a fresh shape should remove it")
	}
	if len(s.Shapes()) != 0 || s.Score() != 6 {
		t.Fatalf("expected empty collection and score 6, got %d shapes score %d", len(s.Shapes()), s.Score())
	}
}

func TestTick_CountsDownToGameOver(t *testing.T) {
	s := newTestSession(t)
	for i := 1; i <= 119; i++ {
		s.Tick()
		if s.Timer() != 120-i {
			t.Fatalf("after %d ticks expected timer %d, got %d", i, 120-i, s.Timer())
		}
		if s.Over() {
			t.Fatalf("game over too early at tick %d", i)
		}
	}
	s.Tick()
	if s.Timer() != 0 || !s.Over() {
		t.Fatalf("expected game over at 0, got timer=%d over=%v", s.Timer(), s.Over())
	}
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	if s.Timer() != 0 || !s.Over() {
		t.Fatalf("timer must stay clamped and game over must not revert: timer=%d over=%v", s.Timer(), s.Over())
	}
	if n := s.Log().CountCategory("state", "game_over"); n != 1 {
		t.Fatalf("expected one game_over entry, got %d", n)
	}
}

func TestTick_BoostsAtMultiplesOfThirty(t *testing.T) {
	s := newTestSession(t)
	s.Click(256, 256)
	sh := s.Shapes()[0]
	dx0 := sh.DX

	boostsAt := map[int]bool{}
	lastDX := dx0
	for s.Timer() > 0 {
		s.Tick()
		if sh.DX != lastDX {
			boostsAt[s.Timer()] = true
			lastDX = sh.DX
		}
	}
	for _, want := range []int{90, 60, 30, 0} {
		if !boostsAt[want] {
			t.Fatalf("expected boost at %ds left, boosts at %v", want, boostsAt)
		}
	}
	if len(boostsAt) != 4 {
		t.Fatalf("expected exactly 4 boosts, got %v", boostsAt)
	}
	want := dx0 * 1.1 * 1.1 * 1.1 * 1.1
	if math.Abs(sh.DX-want) > 1e-9 {
		t.Fatalf("expected dx %.6f after four boosts, got %.6f", want, sh.DX)
	}
	if n := s.Log().CountCategory("difficulty", "boost"); n != 4 {
		t.Fatalf("expected 4 boost log entries, got %d", n)
	}
}

func TestGameOver_ClicksHaveNoEffect(t *testing.T) {
	s := newTestSession(t)
	s.Click(50, 50)
	for i := 0; i < 120; i++ {
		s.Tick()
	}
	if !s.Over() {
		t.Fatal("expected game over after 120 ticks")
	}
	score, count := s.Score(), len(s.Shapes())

	if s.Click(50, 50) != ClickIgnored || s.Click(400, 400) != ClickIgnored {
		t.Fatal("clicks after game over should be ignored")
	}
	if s.Score() != score || len(s.Shapes()) != count {
		t.Fatalf("state changed after game over: score %d→%d shapes %d→%d", score, s.Score(), count, len(s.Shapes()))
	}
}

func TestUpdate_MovesShapesOnlyWhilePlaying(t *testing.T) {
	s := newTestSession(t)
	s.Click(256, 256)
	sh := s.Shapes()[0]
	x0 := sh.X

	s.Update()
	if sh.X != x0+sh.DX && sh.X != x0-sh.DX {
		t.Fatalf("update should move the shape, x %f→%f", x0, sh.X)
	}
	if s.Frames() != 1 {
		t.Fatalf("expected 1 frame, got %d", s.Frames())
	}

	for i := 0; i < 120; i++ {
		s.Tick()
	}
	x1, y1 := sh.X, sh.Y
	s.Update()
	if sh.X != x1 || sh.Y != y1 {
		t.Fatal("shapes must freeze after game over")
	}
}

func TestScore_NeverDecreases(t *testing.T) {
	s := newTestSession(t)
	prev := 0
	pts := [][2]float64{{10, 10}, {10, 10}, {300, 300}, {310, 300}, {50, 400}, {300, 300}, {480, 20}}
	for i, p := range pts {
		s.Click(p[0], p[1])
		s.Update()
		if s.Score() < prev {
			t.Fatalf("score decreased at click %d: %d → %d", i, prev, s.Score())
		}
		prev = s.Score()
	}
}

func TestNextHue_WrapsWhilePhaseGrows(t *testing.T) {
	s := newTestSession(t)
	var hue float64
	for i := 0; i < 400; i++ {
		prevPhase := s.Phase()
		hue = s.NextHue()
		if s.Phase() <= prevPhase {
			t.Fatalf("phase must increase, %f → %f", prevPhase, s.Phase())
		}
		if hue < 0 || hue >= 360 {
			t.Fatalf("hue out of range: %f", hue)
		}
	}
	// 400 frames at 1 degree each: 400 mod 360.
	if math.Abs(hue-40) > 1e-6 {
		t.Fatalf("expected hue ~40 after 400 frames, got %f", hue)
	}
}

func TestSpawn_IDsAreUniqueAndLabelled(t *testing.T) {
	s := newTestSession(t)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		s.Click(float64(30+i*22), 30)
	}
	for _, sh := range s.Shapes() {
		if seen[sh.ID] {
			t.Fatalf("duplicate id %s", sh.ID)
		}
		seen[sh.ID] = true
		if sh.Kind != shape.Circle && sh.Kind != shape.Square && sh.Kind != shape.Triangle {
			t.Fatalf("unexpected kind %d", sh.Kind)
		}
	}
}

func TestSessionLog_RecordsClicks(t *testing.T) {
	s := newTestSession(t, WithVerbose(true))
	s.Click(100, 100)
	s.Click(100, 100)
	s.Tick()

	if s.Log().CountCategory("click", "add") != 1 || s.Log().CountCategory("click", "remove") != 1 {
		t.Fatalf("unexpected click entries:\n%s", s.Log().Format())
	}
	last, ok := s.Log().LastOf("timer", "tick")
	if !ok || last.NumVal != 119 {
		t.Fatalf("expected verbose tick entry at 119, got %+v ok=%v", last, ok)
	}
}
