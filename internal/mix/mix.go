// Package mix renders every channel of a song into one shared sample buffer
// and applies peak normalization.
package mix

import (
	"math"

	"github.com/cbegin/spectral-mml-go/internal/mml"
	"github.com/cbegin/spectral-mml-go/internal/synth"
	"github.com/cbegin/spectral-mml-go/internal/timbre"
)

// Channel binds one parsed track to the timbre it renders with.
type Channel struct {
	Track  mml.Track
	Timbre timbre.Timbre
}

type Mixer struct {
	engine     *synth.Engine
	sampleRate float64
}

func New(engine *synth.Engine, sampleRate int) *Mixer {
	return &Mixer{engine: engine, sampleRate: float64(sampleRate)}
}

// Render synthesizes all channels additively into a single mono buffer sized
// to the longest channel. Every channel starts at offset 0 and advances its
// own running offset note by note; shorter channels leave silence at the
// tail. Render order does not matter because writes only add.
func (m *Mixer) Render(channels []Channel) []float64 {
	var maxDur float64
	for _, ch := range channels {
		if ch.Track.Duration > maxDur {
			maxDur = ch.Track.Duration
		}
	}
	buf := make([]float64, int(math.Ceil(maxDur*m.sampleRate)))
	for _, ch := range channels {
		start := 0
		for _, ev := range ch.Track.Events {
			start += m.engine.RenderNote(buf, start, ev, ch.Timbre)
		}
	}
	return buf
}

// NormalizePeak rescales buf by 1/peak when the peak magnitude exceeds 1.0
// and returns the factor applied (1 when the buffer is already in range).
// It only ever attenuates, so applying it twice is a no-op.
func NormalizePeak(buf []float64) float64 {
	peak := 0.0
	for _, s := range buf {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak <= 1.0 {
		return 1
	}
	inv := 1.0 / peak
	for i := range buf {
		buf[i] *= inv
	}
	return inv
}
