package mml

import (
	"errors"
	"math"
	"testing"
)

func TestParseBasicMelody(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	score, err := p.Parse("o4 l4 cdefgab")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(score.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(score.Tracks))
	}
	tr := score.Tracks[0]
	if len(tr.Events) != 7 {
		t.Fatalf("expected 7 events, got %d", len(tr.Events))
	}
	want := []byte{'c', 'd', 'e', 'f', 'g', 'a', 'b'}
	for i, ev := range tr.Events {
		if ev.Type != EventNote {
			t.Fatalf("event %d: expected note, got %v", i, ev.Type)
		}
		if ev.Letter != want[i] {
			t.Fatalf("event %d: letter = %q, want %q", i, ev.Letter, want[i])
		}
		if ev.Octave != 4 {
			t.Fatalf("event %d: octave = %d, want 4", i, ev.Octave)
		}
		if ev.Duration != 0.25 {
			t.Fatalf("event %d: duration = %v, want 0.25", i, ev.Duration)
		}
	}
	if math.Abs(tr.Duration-1.75) > 1e-12 {
		t.Fatalf("track duration = %v, want 1.75", tr.Duration)
	}
}

func TestParseStateThreading(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	score, err := p.Parse("l8 c o5 d r")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	tr := score.Tracks[0]
	if len(tr.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(tr.Events))
	}
	if tr.Events[0].Octave != 4 || tr.Events[0].Duration != 0.125 {
		t.Fatalf("first note = %+v, want octave 4 duration 0.125", tr.Events[0])
	}
	if tr.Events[1].Octave != 5 {
		t.Fatalf("second note octave = %d, want 5", tr.Events[1].Octave)
	}
	if tr.Events[2].Type != EventRest || tr.Events[2].Duration != 0.125 {
		t.Fatalf("third event = %+v, want rest of 0.125", tr.Events[2])
	}
}

func TestParseStateDoesNotLeakAcrossChannels(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	score, err := p.Parse("o6 l8 c|c")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(score.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(score.Tracks))
	}
	second := score.Tracks[1].Events[0]
	if second.Octave != 4 || second.Duration != 0.5 {
		t.Fatalf("second channel note = %+v, want fresh defaults", second)
	}
}

func TestParseChannelSplit(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	score, err := p.Parse("cde | gab")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(score.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(score.Tracks))
	}
	if len(score.Tracks[0].Events) != 3 || len(score.Tracks[1].Events) != 3 {
		t.Fatalf("expected 3 events per track, got %d and %d",
			len(score.Tracks[0].Events), len(score.Tracks[1].Events))
	}
}

func TestUnknownTokensAreSkippedWithDiagnostics(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	score, err := p.Parse("c?d!e")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	tr := score.Tracks[0]
	if len(tr.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(tr.Events))
	}
	if len(score.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(score.Diagnostics))
	}
	if score.Diagnostics[0].Pos != 1 || score.Diagnostics[0].Char != '?' {
		t.Fatalf("first diagnostic = %+v, want '?' at 1", score.Diagnostics[0])
	}
	if score.Diagnostics[1].Pos != 3 || score.Diagnostics[1].Char != '!' {
		t.Fatalf("second diagnostic = %+v, want '!' at 3", score.Diagnostics[1])
	}
}

func TestTempoDirectiveIsInert(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	score, err := p.Parse("t120 c")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(score.Diagnostics) != 0 {
		t.Fatalf("tempo directive should not produce diagnostics, got %v", score.Diagnostics)
	}
	tr := score.Tracks[0]
	if len(tr.Events) != 1 || tr.Events[0].Duration != 0.5 {
		t.Fatalf("tempo directive must not scale durations, got %+v", tr.Events)
	}
}

func TestOctavePrefixWithoutDigit(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	score, err := p.Parse("oc")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	tr := score.Tracks[0]
	if len(tr.Events) != 1 || tr.Events[0].Letter != 'c' || tr.Events[0].Octave != 4 {
		t.Fatalf("expected one c note at octave 4, got %+v", tr.Events)
	}
	if len(score.Diagnostics) != 1 || score.Diagnostics[0].Char != 'o' {
		t.Fatalf("expected a diagnostic for the dangling 'o', got %v", score.Diagnostics)
	}
}

func TestNoteCapacityIsReported(t *testing.T) {
	cfg := DefaultParserConfig()
	cfg.MaxNotes = 4
	p := NewParser(cfg)
	_, err := p.Parse("cdefg")
	if !errors.Is(err, ErrNoteCapacity) {
		t.Fatalf("expected ErrNoteCapacity, got %v", err)
	}
}

func TestTrackDurationSumsEvents(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	score, err := p.Parse("l4 cd l2 r")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got := score.Tracks[0].Duration
	if math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("track duration = %v, want 1.0", got)
	}
}
