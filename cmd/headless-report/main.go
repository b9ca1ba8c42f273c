package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/shape-pop/internal/config"
	"github.com/Garsondee/shape-pop/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	finalScore     int
	adds           int
	removes        int
	boosts         int
	peakShapes     int
	gameOverSecond int
	frames         int
}

type runParams struct {
	fps     int
	cps     float64
	aim     float64
	verbose bool
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var tuningPath string
	var copyReport bool
	var p runParams

	flag.IntVar(&runs, "runs", 5, "number of headless sessions")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&p.fps, "fps", 60, "simulated frames per second")
	flag.Float64Var(&p.cps, "cps", 2, "simulated clicks per second")
	flag.Float64Var(&p.aim, "aim", 0.5, "chance a click targets a live shape")
	flag.StringVar(&tuningPath, "tuning", "", "optional tuning YAML overlay")
	flag.BoolVar(&copyReport, "copy", false, "copy the report to the clipboard")
	flag.BoolVar(&p.verbose, "verbose", false, "print each run's session log")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if p.fps <= 0 {
		fmt.Println("error: -fps must be > 0")
		return
	}
	if p.cps < 0 || p.aim < 0 || p.aim > 1 {
		fmt.Println("error: -cps must be >= 0 and -aim must be in [0,1]")
		return
	}

	tuning, err := loadTuning(tuningPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	var buf bytes.Buffer
	out := io.MultiWriter(os.Stdout, &buf)

	fmt.Fprintf(out, "=== Headless Session Report ===\n")
	fmt.Fprintf(out, "runs=%d seed_base=%d seed_step=%d fps=%d cps=%.2f aim=%.2f\n\n",
		runs, seedBase, seedStep, p.fps, p.cps, p.aim)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, s := runSession(tuning, i+1, seed, p)
		all = append(all, stats)
		printRun(out, stats)
		if p.verbose {
			fmt.Fprint(out, s.Log().Format())
			fmt.Fprintln(out)
		}
	}

	printAggregate(out, all)

	if copyReport {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			log.Printf("[Report] clipboard copy failed: %v", err)
			return
		}
		log.Printf("[Report] copied %d bytes to clipboard", buf.Len())
	}
}

func loadTuning(path string) (*config.Tuning, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

// runSession plays one session to game over without a window. Each simulated
// second runs fps frames, with clicks scattered across them, then fires the
// one-second tick.
func runSession(tuning *config.Tuning, runIndex int, seed int64, p runParams) (runStats, *game.Session) {
	s := game.NewSession(tuning,
		game.WithSeed(seed),
		game.WithVerbose(p.verbose),
		game.WithLogger(log.New(io.Discard, "", 0)),
	)
	clicker := rand.New(rand.NewSource(seed ^ 0x5eed)) // #nosec G404 -- simulation only
	clickChance := p.cps / float64(p.fps)
	w, h := s.Bounds()

	rs := runStats{runIndex: runIndex, seed: seed, gameOverSecond: -1}
	for !s.Over() {
		for f := 0; f < p.fps; f++ {
			if clicker.Float64() < clickChance {
				x, y := pickClick(clicker, s, w, h, p.aim)
				s.Click(x, y)
			}
			s.Update()
			s.TakeEffects()
			if n := len(s.Shapes()); n > rs.peakShapes {
				rs.peakShapes = n
			}
		}
		s.Tick()
	}

	rs.finalScore = s.Score()
	rs.frames = s.Frames()
	rs.adds = s.Log().CountCategory("click", "add")
	rs.removes = s.Log().CountCategory("click", "remove")
	rs.boosts = s.Log().CountCategory("difficulty", "boost")
	if e, ok := s.Log().LastOf("state", "game_over"); ok {
		rs.gameOverSecond = e.Second
	}
	return rs, s
}

// pickClick aims at a live shape's centre with probability aim, otherwise
// clicks anywhere on the surface.
func pickClick(rng *rand.Rand, s *game.Session, w, h, aim float64) (float64, float64) {
	shapes := s.Shapes()
	if len(shapes) > 0 && rng.Float64() < aim {
		sh := shapes[rng.Intn(len(shapes))]
		return sh.X, sh.Y
	}
	return rng.Float64() * w, rng.Float64() * h
}

func printRun(out io.Writer, rs runStats) {
	fmt.Fprintf(out, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(out, "final_score=%d adds=%d removes=%d boosts=%d\n", rs.finalScore, rs.adds, rs.removes, rs.boosts)
	fmt.Fprintf(out, "peak_live_shapes=%d game_over_second=%d frames=%d\n\n", rs.peakShapes, rs.gameOverSecond, rs.frames)
}

type aggregate struct {
	runs       int
	avgScore   float64
	bestScore  int
	worstScore int
	avgAdds    float64
	avgRemoves float64
	avgPeak    float64
	hitRate    float64 // removes per click
}

func summarize(all []runStats) aggregate {
	a := aggregate{runs: len(all)}
	if len(all) == 0 {
		return a
	}
	totalScore, totalAdds, totalRemoves, totalPeak := 0, 0, 0, 0
	a.bestScore = all[0].finalScore
	a.worstScore = all[0].finalScore
	for _, rs := range all {
		totalScore += rs.finalScore
		totalAdds += rs.adds
		totalRemoves += rs.removes
		totalPeak += rs.peakShapes
		if rs.finalScore > a.bestScore {
			a.bestScore = rs.finalScore
		}
		if rs.finalScore < a.worstScore {
			a.worstScore = rs.finalScore
		}
	}
	a.avgScore = avg(totalScore, len(all))
	a.avgAdds = avg(totalAdds, len(all))
	a.avgRemoves = avg(totalRemoves, len(all))
	a.avgPeak = avg(totalPeak, len(all))
	a.hitRate = avg(totalRemoves, totalAdds+totalRemoves)
	return a
}

func printAggregate(out io.Writer, all []runStats) {
	a := summarize(all)
	fmt.Fprintln(out, "=== Aggregate ===")
	fmt.Fprintf(out, "runs=%d\n", a.runs)
	fmt.Fprintf(out, "score: avg=%.1f best=%d worst=%d\n", a.avgScore, a.bestScore, a.worstScore)
	fmt.Fprintf(out, "avg_clicks_per_run: add=%.1f remove=%.1f hit_rate=%.2f\n", a.avgAdds, a.avgRemoves, a.hitRate)
	fmt.Fprintf(out, "avg_peak_live_shapes=%.1f\n", a.avgPeak)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
