package arena

import (
	"sync"

	"github.com/milk9111/shooter/behavior"
	"github.com/milk9111/shooter/prefabs"
)

const defaultClipSeconds = 0.5

// Cues hands out one sound channel per actor.
type Cues interface {
	Channel(owner string, clips []prefabs.AudioSpec) behavior.SoundCue
}

// CueEvent is one sound that started playing.
type CueEvent struct {
	Owner string  `json:"owner" yaml:"owner"`
	Clip  string  `json:"clip" yaml:"clip"`
	At    float64 `json:"at" yaml:"at"`
	// Spec is the clip's prefab entry, zero for clips the prefab never named.
	Spec prefabs.AudioSpec `json:"-" yaml:"-"`
}

// RecordingCues is the headless Cues: channels keep time against the world
// clock and every started clip is logged.
type RecordingCues struct {
	clock func() float64

	mu  sync.Mutex
	log []CueEvent
}

func NewRecordingCues(clock func() float64) *RecordingCues {
	if clock == nil {
		clock = func() float64 { return 0 }
	}
	return &RecordingCues{clock: clock}
}

func (c *RecordingCues) Channel(owner string, clips []prefabs.AudioSpec) behavior.SoundCue {
	bank := make(map[string]prefabs.AudioSpec, len(clips))
	for _, clip := range clips {
		bank[clip.Name] = clip
	}
	return &recordingChannel{cues: c, owner: owner, bank: bank}
}

// Log returns a copy of every clip started so far.
func (c *RecordingCues) Log() []CueEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CueEvent(nil), c.log...)
}

func (c *RecordingCues) record(evt CueEvent) {
	c.mu.Lock()
	c.log = append(c.log, evt)
	c.mu.Unlock()
}

type recordingChannel struct {
	cues  *RecordingCues
	owner string
	bank  map[string]prefabs.AudioSpec
	until float64
}

func (ch *recordingChannel) PlayIfIdle(clip string) bool {
	now := ch.cues.clock()
	if now < ch.until {
		return false
	}
	spec := ch.bank[clip]
	d := spec.Duration
	if d <= 0 {
		d = defaultClipSeconds
	}
	ch.until = now + d
	ch.cues.record(CueEvent{Owner: ch.owner, Clip: clip, At: now, Spec: spec})
	return true
}

func (ch *recordingChannel) Busy() bool {
	return ch.cues.clock() < ch.until
}
