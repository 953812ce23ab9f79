// Package synth evaluates additive harmonic sums for parsed notes.
package synth

import (
	"math"

	"github.com/cbegin/spectral-mml-go/internal/mml"
	"github.com/cbegin/spectral-mml-go/internal/timbre"
)

const twoPi = math.Pi * 2

// Equal-tempered letter frequencies anchored at octave 4.
var baseFreqs = map[byte]float64{
	'c': 261.63,
	'd': 293.66,
	'e': 329.63,
	'f': 349.23,
	'g': 392.00,
	'a': 440.00,
	'b': 493.88,
}

// Frequency returns the fundamental for a note letter at the given octave,
// doubling per octave above 4 and halving below.
func Frequency(letter byte, octave int) float64 {
	base, ok := baseFreqs[letter]
	if !ok {
		return 0
	}
	return base * math.Pow(2, float64(octave-4))
}

type Engine struct {
	sampleRate float64
}

func New(sampleRate int) *Engine { return &Engine{sampleRate: float64(sampleRate)} }

// Samples returns the sample count covered by a duration in seconds.
func (e *Engine) Samples(seconds float64) int {
	return int(seconds * e.sampleRate)
}

// RenderNote adds one event's contribution into buf starting at start and
// returns the number of samples the event spans. Writes are additive so
// multiple channels can share one buffer; anything past the end of buf is
// dropped. Rests contribute zero to every sample.
func (e *Engine) RenderNote(buf []float64, start int, ev mml.Event, tb timbre.Timbre) int {
	n := e.Samples(ev.Duration)
	if ev.Type != mml.EventNote {
		return n
	}
	f0 := Frequency(ev.Letter, ev.Octave)
	for i := 0; i < n && start+i < len(buf); i++ {
		t := float64(i) / e.sampleRate
		var s float64
		for h := 0; h < tb.Harmonics(); h++ {
			w := twoPi * float64(h+1) * f0 * t
			s += tb.Real[h]*math.Cos(w) - tb.Imag[h]*math.Sin(w)
		}
		buf[start+i] += s
	}
	return n
}
