// Package synth turns audio prefab entries into sound. Every clip is a sine
// tone with a short fade in and out; the game plays them live and the
// headless runner can mix a run's cues into a wav file.
package synth

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/milk9111/shooter/prefabs"
)

const (
	SampleRate = beep.SampleRate(44100)

	defaultFrequency = 440
	defaultDuration  = 0.5
	fadeSeconds      = 0.01
)

// Tone synthesizes clip at rate.
func Tone(clip prefabs.AudioSpec, rate beep.SampleRate) beep.Streamer {
	freq := clip.Frequency
	if freq <= 0 || freq >= float64(rate)/2 {
		freq = defaultFrequency
	}
	total := rate.N(seconds(clipDuration(clip)))

	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(total)
	}
	fade := rate.N(seconds(fadeSeconds))
	return gain(&fader{streamer: beep.Take(total, sine), total: total, fade: fade}, clip.Volume)
}

// PCM16 drains s into interleaved little-endian signed 16-bit stereo.
func PCM16(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		if !ok {
			return out
		}
	}
}

func clipDuration(clip prefabs.AudioSpec) float64 {
	if clip.Duration > 0 {
		return clip.Duration
	}
	return defaultDuration
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}

// gain scales s by a linear volume; zero and below means full volume.
func gain(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 || volume >= 1 {
		return s
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}

// fader ramps the first and last fade samples so clips do not click.
type fader struct {
	streamer beep.Streamer
	total    int
	fade     int
	pos      int
}

func (f *fader) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if f.fade > 0 {
			if f.pos < f.fade {
				vol = float64(f.pos) / float64(f.fade)
			} else if left := f.total - f.pos; left < f.fade {
				vol = float64(left) / float64(f.fade)
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fader) Err() error { return f.streamer.Err() }
