package mml

type EventType int

const (
	EventNote EventType = iota + 1
	EventRest
)

// Event is one timed entry in a channel: a pitched note or a rest.
// Duration is an absolute value in seconds, not tempo-relative.
type Event struct {
	Type     EventType
	Letter   byte // 'a'..'g'; zero for rests
	Octave   int
	Duration float64
}

// Track is one channel's ordered event sequence. Duration is the sum of all
// event durations in seconds.
type Track struct {
	Events   []Event
	Duration float64
}

// Diagnostic records a token the parser consumed without effect.
type Diagnostic struct {
	Track int
	Pos   int
	Char  byte
}

type Score struct {
	Tracks      []Track
	Diagnostics []Diagnostic
}

type ParserConfig struct {
	DefaultOctave int
	DefaultLength float64 // seconds
	MaxNotes      int     // per-channel event cap
}

func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		DefaultOctave: 4,
		DefaultLength: 0.5,
		MaxNotes:      128,
	}
}
