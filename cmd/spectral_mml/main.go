package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	spectralmml "github.com/cbegin/spectral-mml-go"
)

// Two-channel default: a mellow three-harmonic lead and a pure sine.
const defaultTimbre = "1,0.5,0.25|1"

func main() {
	var (
		timbreSpec = flag.String("timbre", defaultTimbre, `per-channel timbre "real1,real2,...;imag1,..." groups separated by |`)
		mmlInline  = flag.String("mml", "", "inline MML string (channels separated by |)")
		mmlPath    = flag.String("file", "", "path to an MML file")
		outPath    = flag.String("out", "output.wav", "output WAV path")
		sampleRate = flag.Int("sample-rate", 44100, "output sample rate")
		play       = flag.Bool("play", false, "play the rendered song after writing the file")
	)
	flag.Parse()

	mmlText, err := resolveMMLInput(*mmlPath, *mmlInline, flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	cfg := spectralmml.DefaultConfig()
	cfg.SampleRate = *sampleRate
	samples, report, err := spectralmml.RenderSamples(mmlText, *timbreSpec, cfg)
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range report.Skipped {
		log.Printf("channel %d: skipped %q at position %d", d.Track, d.Char, d.Pos)
	}

	if err := os.WriteFile(*outPath, spectralmml.EncodeWAV16LE(samples, cfg.SampleRate), 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("WAV file written: %s\n", *outPath)

	if *play {
		pl, err := spectralmml.NewPlayer(cfg.SampleRate)
		if err != nil {
			log.Fatal(err)
		}
		if err := pl.Play(samples); err != nil {
			log.Fatal(err)
		}
		pl.Wait()
	}
}

func resolveMMLInput(path string, inline string, arg string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if strings.TrimSpace(arg) != "" {
		return arg, nil
	}
	return "", errors.New("no MML input: pass a notation string, -mml, or -file")
}
