package main

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/shooter/assets"
	"github.com/milk9111/shooter/behavior"
	"github.com/milk9111/shooter/prefabs"
)

// speakerCues plays cues through the speakers. Each actor gets one channel
// that is busy while any of its clips is still playing.
type speakerCues struct{}

func (speakerCues) Channel(owner string, clips []prefabs.AudioSpec) behavior.SoundCue {
	ch := &speakerChannel{players: make(map[string]*audio.Player, len(clips))}
	for _, clip := range clips {
		ch.players[clip.Name] = assets.TonePlayer(clip)
	}
	return ch
}

type speakerChannel struct {
	mu      sync.Mutex
	players map[string]*audio.Player
}

func (c *speakerChannel) PlayIfIdle(clip string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy() {
		return false
	}
	p, ok := c.players[clip]
	if !ok {
		// clips the prefab never named get the default tone
		p = assets.TonePlayer(prefabs.AudioSpec{Name: clip})
		c.players[clip] = p
	}
	if err := p.Rewind(); err != nil {
		return false
	}
	p.Play()
	return true
}

func (c *speakerChannel) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy()
}

func (c *speakerChannel) busy() bool {
	for _, p := range c.players {
		if p.IsPlaying() {
			return true
		}
	}
	return false
}
