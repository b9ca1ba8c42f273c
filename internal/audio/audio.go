package audio

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed sounds
var assets embed.FS

// Cue names a short sound effect.
type Cue string

const (
	CuePop    Cue = "pop"    // a shape was added
	CueRemove Cue = "remove" // a shape was clicked away
)

// Cues plays sound effects. Play never blocks and never reports failure.
type Cues interface {
	Play(cue Cue)
}

// Silent is a Cues that plays nothing.
type Silent struct{}

func (Silent) Play(Cue) {}

// Bank holds decoded PCM for each cue and starts a new player per Play, so
// rapid clicks overlap instead of cutting each other off.
type Bank struct {
	ctx    *ebaudio.Context
	volume float64
	pcm    map[Cue][]byte
}

// NewBank decodes every cue in paths from the embedded assets. A cue that
// fails to load is logged and stays silent.
func NewBank(ctx *ebaudio.Context, volume float64, paths map[Cue]string) *Bank {
	b := &Bank{
		ctx:    ctx,
		volume: volume,
		pcm:    make(map[Cue][]byte, len(paths)),
	}
	for cue, p := range paths {
		pcm, err := LoadAsset(p, ctx.SampleRate())
		if err != nil {
			log.Printf("[Audio] Warning: cue %q disabled: %v", cue, err)
			continue
		}
		b.pcm[cue] = pcm
	}
	log.Printf("[Audio] Loaded %d of %d cues", len(b.pcm), len(paths))
	return b
}

func (b *Bank) Play(cue Cue) {
	pcm, ok := b.pcm[cue]
	if !ok {
		return
	}
	p := b.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(b.volume)
	p.Play()
}

// Loaded reports whether cue has decoded audio.
func (b *Bank) Loaded(cue Cue) bool {
	_, ok := b.pcm[cue]
	return ok
}

// LoadAsset reads an embedded sound and decodes it to 16-bit stereo PCM at
// sampleRate.
func LoadAsset(name string, sampleRate int) ([]byte, error) {
	data, err := assets.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound %s: %w", name, err)
	}
	return Decode(name, data, sampleRate)
}

// Decode picks a decoder from the file extension.
func Decode(name string, data []byte, sampleRate int) ([]byte, error) {
	reader := bytes.NewReader(data)

	var stream io.Reader
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound %s: %w", name, err)
		}
		stream = s
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound %s: %w", name, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound %s: %w", name, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg)", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded sound %s: %w", name, err)
	}
	return pcm, nil
}

// Open creates the process-wide audio context and loads a Bank on it.
// Ebitengine allows only one context per process, so call this once.
func Open(sampleRate int, volume float64, paths map[Cue]string) *Bank {
	return NewBank(ebaudio.NewContext(sampleRate), volume, paths)
}
