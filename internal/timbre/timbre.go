// Package timbre parses spectral coefficient strings into per-channel
// harmonic vectors for additive synthesis.
package timbre

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrChannelCapacity reports more timbre groups than channels allowed.
	ErrChannelCapacity = errors.New("channel capacity exceeded")
	// ErrHarmonicCapacity reports a group with too many real coefficients.
	ErrHarmonicCapacity = errors.New("harmonic capacity exceeded")
)

// Timbre holds one channel's harmonic coefficients. Real[k] and Imag[k] are
// the cosine and sine amplitudes of harmonic k+1. Imag is always the same
// length as Real; unspecified entries are zero.
type Timbre struct {
	Real []float64
	Imag []float64
}

func (t Timbre) Harmonics() int { return len(t.Real) }

type ParserConfig struct {
	MaxChannels  int
	MaxHarmonics int
}

func DefaultParserConfig() ParserConfig {
	return ParserConfig{MaxChannels: 4, MaxHarmonics: 16}
}

// ParseSet parses a full timbre specification: channel groups separated by
// '|', each group formatted "real1,real2,...[;imag1,imag2,...]". The number
// of timbres returned decides the song's channel count.
func ParseSet(input string, cfg ParserConfig) ([]Timbre, error) {
	groups := strings.Split(input, "|")
	out := make([]Timbre, 0, len(groups))
	for gi, group := range groups {
		if strings.TrimSpace(group) == "" {
			continue
		}
		if len(out) >= cfg.MaxChannels {
			return nil, fmt.Errorf("timbre group %d: %w (max %d)", gi, ErrChannelCapacity, cfg.MaxChannels)
		}
		tb, err := parseGroup(group, cfg.MaxHarmonics)
		if err != nil {
			return nil, fmt.Errorf("timbre group %d: %w", gi, err)
		}
		out = append(out, tb)
	}
	return out, nil
}

func parseGroup(group string, maxHarmonics int) (Timbre, error) {
	parts := strings.SplitN(group, ";", 3)
	reals := splitValues(parts[0])
	if len(reals) > maxHarmonics {
		return Timbre{}, fmt.Errorf("%w (max %d)", ErrHarmonicCapacity, maxHarmonics)
	}
	tb := Timbre{Real: reals, Imag: make([]float64, len(reals))}
	if len(parts) > 1 {
		for i, v := range splitValues(parts[1]) {
			if i >= len(reals) {
				// Surplus imaginary values have no matching harmonic.
				break
			}
			tb.Imag[i] = v
		}
	}
	return tb, nil
}

// splitValues parses a comma-separated coefficient list. Malformed numbers
// coerce to 0, matching atof.
func splitValues(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			v = 0
		}
		out = append(out, v)
	}
	return out
}
