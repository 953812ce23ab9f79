// Package audio streams rendered sample buffers to the system audio device.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// BufferSource feeds a finite mono buffer to the stream, duplicating each
// sample to both stereo channels. It reports Finished once drained.
type BufferSource struct {
	mu      sync.Mutex
	samples []float64
	pos     int
}

func NewBufferSource(samples []float64) *BufferSource {
	return &BufferSource{samples: samples}
}

func (s *BufferSource) Process(dst []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i+1 < len(dst); i += 2 {
		var v float32
		if s.pos < len(s.samples) {
			v = float32(s.samples[s.pos])
			s.pos++
		}
		dst[i], dst[i+1] = v, v
	}
}

func (s *BufferSource) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos >= len(s.samples)
}

// streamReader adapts a BufferSource to the byte stream the audio backend
// reads: interleaved stereo float32, little-endian. It returns io.EOF once
// the source is drained so the backend stops on its own.
type streamReader struct {
	mu     sync.Mutex
	source *BufferSource
	buf    []float32
}

func (r *streamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(r.buf[i]))
	}
	n := frames * 8
	if r.source.Finished() {
		return n, io.EOF
	}
	return n, nil
}

func (r *streamReader) Close() error { return nil }

// Player plays one rendered buffer through the shared audio context.
type Player struct {
	player *ebitaudio.Player
	source *BufferSource
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// The backend allows a single context per process, fixed at the first
// requested rate.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

func NewPlayer(sampleRate int, samples []float64) (*Player, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	source := NewBufferSource(samples)
	pl, err := ctx.NewPlayerF32(&streamReader{source: source})
	if err != nil {
		return nil, err
	}
	return &Player{player: pl, source: source}, nil
}

func (p *Player) Play()  { p.player.Play() }
func (p *Player) Pause() { p.player.Pause() }

func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Finished reports whether the whole buffer has been handed to the device.
func (p *Player) Finished() bool { return p.source.Finished() }

func (p *Player) Stop() error {
	p.player.Pause()
	return p.player.Close()
}
