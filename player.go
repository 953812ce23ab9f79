package spectralmml

import (
	"errors"
	"sync"
	"time"

	intaudio "github.com/cbegin/spectral-mml-go/internal/audio"
)

// Player plays rendered sample buffers through the system audio device.
// Rendering stays offline; the player only streams a finished buffer.
type Player struct {
	mu         sync.Mutex
	sampleRate int
	backend    *intaudio.Player
	done       chan struct{}
}

func NewPlayer(sampleRate int) (*Player, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	return &Player{sampleRate: sampleRate}, nil
}

func (p *Player) SampleRate() int { return p.sampleRate }

// Play starts playback of a mono buffer and returns immediately. A second
// call replaces whatever is currently playing.
func (p *Player) Play(samples []float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backend != nil {
		_ = p.backend.Stop()
	}
	if p.done != nil {
		close(p.done)
	}
	backend, err := intaudio.NewPlayer(p.sampleRate, samples)
	if err != nil {
		return err
	}
	p.backend = backend
	p.done = make(chan struct{})
	backend.Play()
	go p.watch(backend, p.done)
	return nil
}

// watch polls the backend until the buffer has drained and the device went
// idle, then releases Wait.
func (p *Player) watch(backend *intaudio.Player, done chan struct{}) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		select {
		case <-done:
			return
		default:
		}
		if backend.Finished() && !backend.IsPlaying() {
			p.mu.Lock()
			claimed := p.done == done
			if claimed {
				p.done = nil
			}
			p.mu.Unlock()
			if claimed {
				close(done)
			}
			return
		}
	}
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backend != nil {
		p.backend.Pause()
	}
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backend != nil {
		p.backend.Play()
	}
}

func (p *Player) Stop() error {
	p.mu.Lock()
	backend := p.backend
	done := p.done
	p.backend = nil
	p.done = nil
	p.mu.Unlock()
	if done != nil {
		close(done)
	}
	if backend == nil {
		return nil
	}
	return backend.Stop()
}

// Wait blocks until the current playback finishes or is stopped. It returns
// immediately when nothing is playing.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}
