package mml

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoteCapacity reports a channel that holds more events than the
// configured cap allows.
var ErrNoteCapacity = errors.New("note capacity exceeded")

type Parser struct{ cfg ParserConfig }

func NewParser(cfg ParserConfig) *Parser { return &Parser{cfg: cfg} }

// Parse tokenizes notation text into tracks, one per '|'-separated channel
// group. Empty groups are dropped. Tokens outside the grammar are consumed
// without effect and reported in Score.Diagnostics.
func (p *Parser) Parse(input string) (*Score, error) {
	parts := strings.Split(input, "|")
	score := &Score{Tracks: make([]Track, 0, len(parts))}
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		tr, diags, err := p.parseTrack(len(score.Tracks), part)
		if err != nil {
			return nil, err
		}
		score.Tracks = append(score.Tracks, tr)
		score.Diagnostics = append(score.Diagnostics, diags...)
	}
	return score, nil
}

// parseState is the mutable tokenizer state threaded through one channel.
// It never leaks across channels.
type parseState struct {
	octave int
	length float64 // seconds
}

func (p *Parser) parseTrack(trackIndex int, input string) (Track, []Diagnostic, error) {
	st := parseState{octave: p.cfg.DefaultOctave, length: p.cfg.DefaultLength}
	events := make([]Event, 0, 64)
	var diags []Diagnostic
	i := 0
	for i < len(input) {
		ch := lower(input[i])
		switch {
		case isSpace(ch):
			i++
		case isNote(ch):
			if len(events) >= p.cfg.MaxNotes {
				return Track{}, nil, fmt.Errorf("channel %d: %w (max %d)", trackIndex, ErrNoteCapacity, p.cfg.MaxNotes)
			}
			events = append(events, Event{Type: EventNote, Letter: ch, Octave: st.octave, Duration: st.length})
			i++
		case ch == 'r':
			if len(events) >= p.cfg.MaxNotes {
				return Track{}, nil, fmt.Errorf("channel %d: %w (max %d)", trackIndex, ErrNoteCapacity, p.cfg.MaxNotes)
			}
			events = append(events, Event{Type: EventRest, Duration: st.length})
			i++
		case ch == 'o':
			if i+1 < len(input) && isDigit(input[i+1]) {
				st.octave = int(input[i+1] - '0')
				i += 2
				continue
			}
			diags = append(diags, Diagnostic{Track: trackIndex, Pos: i, Char: input[i]})
			i++
		case ch == 'l':
			if i+1 < len(input) && isDigit(input[i+1]) && input[i+1] != '0' {
				st.length = 1.0 / float64(input[i+1]-'0')
				i += 2
				continue
			}
			diags = append(diags, Diagnostic{Track: trackIndex, Pos: i, Char: input[i]})
			i++
		case ch == 't':
			// Tempo directive: accepted but unbound; durations stay literal.
			i++
			for i < len(input) && isDigit(input[i]) {
				i++
			}
		default:
			diags = append(diags, Diagnostic{Track: trackIndex, Pos: i, Char: input[i]})
			i++
		}
	}
	var total float64
	for _, ev := range events {
		total += ev.Duration
	}
	return Track{Events: events, Duration: total}, diags, nil
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 32
	}
	return b
}

func isSpace(b byte) bool { return b == ' ' || b == '\n' || b == '\r' || b == '\t' }
func isNote(b byte) bool  { return b >= 'a' && b <= 'g' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
