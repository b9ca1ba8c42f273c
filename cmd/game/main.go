package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/shape-pop/internal/audio"
	"github.com/Garsondee/shape-pop/internal/config"
	"github.com/Garsondee/shape-pop/internal/game"
)

func main() {
	tuning, err := config.Default()
	if err != nil {
		log.Fatal(err)
	}

	cues := audio.Open(tuning.Sounds.SampleRate, tuning.Sounds.Volume, map[audio.Cue]string{
		audio.CuePop:    tuning.Sounds.Pop,
		audio.CueRemove: tuning.Sounds.Remove,
	})

	g, err := game.New(tuning, game.WithSound(cues))
	if err != nil {
		log.Fatal(err)
	}

	w, h := g.WindowSize()
	ebiten.SetWindowTitle(tuning.Window.Title)
	ebiten.SetWindowSize(w*tuning.Window.Scale, h*tuning.Window.Scale)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
