// Package spectralmml renders compact MML notation into PCM audio using
// additive synthesis driven by per-channel Fourier timbres.
package spectralmml

import (
	"errors"

	intmix "github.com/cbegin/spectral-mml-go/internal/mix"
	intmml "github.com/cbegin/spectral-mml-go/internal/mml"
	intsynth "github.com/cbegin/spectral-mml-go/internal/synth"
	inttimbre "github.com/cbegin/spectral-mml-go/internal/timbre"
	intwav "github.com/cbegin/spectral-mml-go/internal/wav"
)

// Config bounds one render. Zero fields take the defaults, which match the
// classic fixed limits: 44100 Hz, 4 channels, 16 harmonics, 128 notes.
type Config struct {
	SampleRate   int
	MaxChannels  int
	MaxHarmonics int
	MaxNotes     int
}

func DefaultConfig() Config {
	return Config{
		SampleRate:   44100,
		MaxChannels:  4,
		MaxHarmonics: 16,
		MaxNotes:     128,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = def.SampleRate
	}
	if c.MaxChannels <= 0 {
		c.MaxChannels = def.MaxChannels
	}
	if c.MaxHarmonics <= 0 {
		c.MaxHarmonics = def.MaxHarmonics
	}
	if c.MaxNotes <= 0 {
		c.MaxNotes = def.MaxNotes
	}
	return c
}

// Report carries the non-fatal outcome of a render.
type Report struct {
	// Channels is the active channel count, decided by the timbre set.
	Channels int
	// Skipped lists notation tokens consumed without effect.
	Skipped []intmml.Diagnostic
	// Normalization is the uniform factor applied to keep the peak at or
	// below 1.0; it is 1 when the mix never clipped.
	Normalization float64
}

// Compile parses notation text into a score without rendering it.
func Compile(mmlText string, cfg Config) (*intmml.Score, error) {
	cfg = cfg.withDefaults()
	parser := intmml.NewParser(intmml.ParserConfig{
		DefaultOctave: 4,
		DefaultLength: 0.5,
		MaxNotes:      cfg.MaxNotes,
	})
	return parser.Parse(mmlText)
}

// RenderSamples runs the whole pipeline: parse timbres, parse notation,
// synthesize every channel into one shared buffer, then peak-normalize.
// The timbre set decides the channel count; notation groups beyond it are
// dropped, and missing ones render silence.
func RenderSamples(mmlText, timbreText string, cfg Config) ([]float64, *Report, error) {
	cfg = cfg.withDefaults()
	timbres, err := inttimbre.ParseSet(timbreText, inttimbre.ParserConfig{
		MaxChannels:  cfg.MaxChannels,
		MaxHarmonics: cfg.MaxHarmonics,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(timbres) == 0 {
		return nil, nil, errors.New("timbre: no channel groups")
	}
	score, err := Compile(mmlText, cfg)
	if err != nil {
		return nil, nil, err
	}
	channels := make([]intmix.Channel, len(timbres))
	for i := range timbres {
		if i < len(score.Tracks) {
			channels[i].Track = score.Tracks[i]
		}
		channels[i].Timbre = timbres[i]
	}
	mixer := intmix.New(intsynth.New(cfg.SampleRate), cfg.SampleRate)
	buf := mixer.Render(channels)
	factor := intmix.NormalizePeak(buf)
	return buf, &Report{
		Channels:      len(timbres),
		Skipped:       score.Diagnostics,
		Normalization: factor,
	}, nil
}

// RenderWAV renders and encodes in one step.
func RenderWAV(mmlText, timbreText string, cfg Config) ([]byte, *Report, error) {
	cfg = cfg.withDefaults()
	samples, report, err := RenderSamples(mmlText, timbreText, cfg)
	if err != nil {
		return nil, nil, err
	}
	return intwav.Encode16LE(samples, cfg.SampleRate), report, nil
}

// EncodeWAV16LE serializes an already rendered buffer as a mono 16-bit PCM
// WAV image.
func EncodeWAV16LE(samples []float64, sampleRate int) []byte {
	return intwav.Encode16LE(samples, sampleRate)
}
