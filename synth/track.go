package synth

import (
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/milk9111/shooter/prefabs"
)

// Placed is a clip starting At seconds into a track.
type Placed struct {
	At   float64
	Clip prefabs.AudioSpec
}

// Track mixes clips into one stream of length seconds. Clips running past
// the end are cut.
func Track(clips []Placed, length float64, rate beep.SampleRate) beep.Streamer {
	total := rate.N(seconds(length))
	if len(clips) == 0 {
		return beep.Silence(total)
	}
	voices := make([]beep.Streamer, 0, len(clips))
	for _, c := range clips {
		if c.At < 0 || c.At >= length {
			continue
		}
		voices = append(voices, beep.Seq(beep.Silence(rate.N(seconds(c.At))), Tone(c.Clip, rate)))
	}
	return beep.Take(total, beep.Seq(beep.Mix(voices...), beep.Silence(-1)))
}

// WriteWAV renders a track as 16-bit stereo wav.
func WriteWAV(w io.WriteSeeker, clips []Placed, length float64) error {
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, Track(clips, length, SampleRate), format); err != nil {
		return fmt.Errorf("synth: encode wav: %w", err)
	}
	return nil
}
