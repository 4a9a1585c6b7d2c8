// Package assets builds the game's runtime resources. Nothing is loaded
// from disk: sounds are synthesized from the audio prefab entries and text
// uses the built-in bitmap font.
package assets

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/shooter/prefabs"
	"github.com/milk9111/shooter/synth"
)

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// AudioContext returns the shared context, creating it on first use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(int(synth.SampleRate))
	})
	return audioContext
}

// TonePlayer synthesizes clip and wraps it in a player on the shared context.
func TonePlayer(clip prefabs.AudioSpec) *audio.Player {
	pcm := synth.PCM16(synth.Tone(clip, synth.SampleRate))
	return AudioContext().NewPlayerFromBytes(pcm)
}
