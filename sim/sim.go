// Package sim runs an arena headless at a fixed time step with a scripted
// player and records what happened.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/milk9111/shooter/arena"
	"github.com/milk9111/shooter/behavior"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/prefabs"
)

const (
	DefaultStep     = 1.0 / 60
	DefaultDuration = 30
	DefaultScript   = "assault.tengo"
)

var ErrBadStep = errors.New("sim: step and duration must be positive")

type Config struct {
	Arena    string
	Script   string
	Duration float64
	Step     float64
	Parallel bool
	// Realtime paces ticks against the wall clock.
	Realtime bool
	// StopOnDeath ends the run on the tick the player dies.
	StopOnDeath bool
	// Observe, when set, sees the arena after every tick.
	Observe func(Frame)
}

func (c Config) withDefaults() Config {
	if c.Arena == "" {
		c.Arena = arena.DefaultArena
	}
	if c.Script == "" {
		c.Script = DefaultScript
	}
	if c.Step == 0 {
		c.Step = DefaultStep
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	return c
}

// Transcript is everything a run produced, in tick order.
type Transcript struct {
	Arena    string  `json:"arena" yaml:"arena"`
	Script   string  `json:"script" yaml:"script"`
	Elapsed  float64 `json:"elapsed" yaml:"elapsed"`
	Ticks    int     `json:"ticks" yaml:"ticks"`
	Canceled bool    `json:"canceled,omitempty" yaml:"canceled,omitempty"`

	StateChanges []ecs.StateChange     `json:"state_changes" yaml:"state_changes"`
	Damage       []ecs.Damage          `json:"damage" yaml:"damage"`
	Shots        []ecs.Shot            `json:"shots" yaml:"shots"`
	Pickups      []ecs.PickupCollected `json:"pickups" yaml:"pickups"`
	Deaths       []ecs.Death           `json:"deaths" yaml:"deaths"`
	Cues         []arena.CueEvent      `json:"cues" yaml:"cues"`

	FinalHealth int                   `json:"final_health" yaml:"final_health"`
	PlayerDead  bool                  `json:"player_dead" yaml:"player_dead"`
	Weapons     []behavior.WeaponSlot `json:"weapons" yaml:"weapons"`
}

// Record files an event under its kind. Unknown events are ignored.
func (t *Transcript) Record(evt ecs.Event) {
	switch data := evt.Data.(type) {
	case ecs.StateChange:
		t.StateChanges = append(t.StateChanges, data)
	case ecs.Damage:
		t.Damage = append(t.Damage, data)
	case ecs.Shot:
		t.Shots = append(t.Shots, data)
	case ecs.PickupCollected:
		t.Pickups = append(t.Pickups, data)
	case ecs.Death:
		t.Deaths = append(t.Deaths, data)
	}
}

// DamageBySource totals the damage the player took per attacker.
func (t *Transcript) DamageBySource() map[string]int {
	out := make(map[string]int)
	for _, d := range t.Damage {
		out[d.Source] += d.Amount
	}
	return out
}

// Run builds the arena and ticks it until Duration has passed, the context
// is canceled or, with StopOnDeath, the player dies. A canceled run returns
// the partial transcript with the context's error.
func Run(ctx context.Context, cfg Config) (*Transcript, error) {
	cfg = cfg.withDefaults()
	if cfg.Step < 0 || cfg.Duration < 0 {
		return nil, ErrBadStep
	}

	w := ecs.NewWorld()
	cues := arena.NewRecordingCues(w.Elapsed)
	spec, err := prefabs.LoadArenaSpec(cfg.Arena)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	a, err := arena.Build(w, spec, arena.Options{Cues: cues, Parallel: cfg.Parallel})
	if err != nil {
		return nil, err
	}
	driver, err := NewDriver(a, cfg.Script)
	if err != nil {
		return nil, err
	}
	sched := a.Scheduler()

	tr := &Transcript{Arena: spec.Name, Script: cfg.Script}
	var pace *time.Ticker
	if cfg.Realtime {
		pace = time.NewTicker(time.Duration(cfg.Step * float64(time.Second)))
		defer pace.Stop()
	}

	var runErr error
	for w.Elapsed()+cfg.Step/2 < cfg.Duration {
		if err := ctx.Err(); err != nil {
			tr.Canceled = true
			runErr = err
			break
		}
		if err := driver.Drive(); err != nil {
			runErr = err
			break
		}
		sched.Update(w, cfg.Step)

		events := w.Events().Drain()
		for _, evt := range events {
			tr.Record(evt)
		}
		if cfg.Observe != nil {
			cfg.Observe(Snapshot(a, events))
		}

		if cfg.StopOnDeath && a.PlayerTarget().Dead() {
			log.Printf("sim: player died at t=%.2f, stopping", w.Elapsed())
			break
		}
		if pace != nil {
			select {
			case <-ctx.Done():
			case <-pace.C:
			}
		}
	}

	tr.Elapsed = w.Elapsed()
	tr.Ticks = int(sched.Ticks())
	tr.Cues = cues.Log()
	if target := a.PlayerTarget(); target != nil {
		tr.FinalHealth = target.Health()
		tr.PlayerDead = target.Dead()
		tr.Weapons = target.Weapons()
	}
	if runErr != nil {
		return tr, runErr
	}
	return tr, nil
}
