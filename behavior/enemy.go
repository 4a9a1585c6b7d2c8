package behavior

import "github.com/milk9111/shooter/common"

// EnemyState is the melee enemy's FSM state.
type EnemyState int

const (
	EnemyPatrolling EnemyState = iota
	EnemyTracking
	EnemyAttacking
	EnemyWaiting
	EnemyDead
)

func (s EnemyState) String() string {
	switch s {
	case EnemyPatrolling:
		return "patrolling"
	case EnemyTracking:
		return "tracking"
	case EnemyAttacking:
		return "attacking"
	case EnemyWaiting:
		return "waiting"
	case EnemyDead:
		return "dead"
	}
	return "unknown"
}

const (
	DefaultRunTrigger    = "RunTrigger"
	DefaultAttackTrigger = "AttackTrigger"
)

// EnemyConfig holds the tunables of a melee enemy. Distances are world
// units, times are seconds.
type EnemyConfig struct {
	DistanceForTracking        float64
	DistanceForAttacking       float64
	DistanceToHearPatrolSounds float64
	AttackFrequency            float64
	DamageForSwing             int
	// PatrolSoundChance is N in the 1-in-N per tick ambient sound roll.
	PatrolSoundChance int

	RunTrigger    string
	AttackTrigger string
	FallTriggers  []string
	PatrolSounds  []string
	AttackSounds  []string
}

func DefaultEnemyConfig() EnemyConfig {
	return EnemyConfig{
		DistanceForTracking:        15,
		DistanceForAttacking:       5,
		DistanceToHearPatrolSounds: 20,
		AttackFrequency:            2,
		DamageForSwing:             10,
		PatrolSoundChance:          100,
		RunTrigger:                 DefaultRunTrigger,
		AttackTrigger:              DefaultAttackTrigger,
		FallTriggers:               []string{"FallBack", "FallForward"},
	}
}

func (c EnemyConfig) Validate() error {
	const actor = "enemy"
	switch {
	case c.DistanceForTracking < 0:
		return invalid(actor, "distance_for_tracking", "must not be negative")
	case c.DistanceForAttacking < 0:
		return invalid(actor, "distance_for_attacking", "must not be negative")
	case c.DistanceToHearPatrolSounds < 0:
		return invalid(actor, "distance_to_hear_patrol_sounds", "must not be negative")
	case c.AttackFrequency < 0:
		return invalid(actor, "attack_frequency", "must not be negative")
	case c.DamageForSwing < 0:
		return invalid(actor, "damage_for_swing", "must not be negative")
	case c.PatrolSoundChance < 1:
		return invalid(actor, "patrol_sound_chance", "must be at least 1")
	case len(c.FallTriggers) == 0:
		return invalid(actor, "fall_triggers", "at least one death animation is required")
	case c.RunTrigger == "" || c.AttackTrigger == "":
		return invalid(actor, "triggers", "run and attack triggers are required")
	}
	return nil
}

// EnemyDeps are the collaborators an enemy drives.
type EnemyDeps struct {
	Self      Locator
	Target    Damageable
	Animation AnimationCue
	Sound     SoundCue
	Movement  MovementController
	Patrol    PatrolController
	Random    Random
}

func (d EnemyDeps) validate() error {
	const actor = "enemy"
	switch {
	case d.Self == nil:
		return missing(actor, "self locator")
	case d.Target == nil:
		return missing(actor, "target")
	case d.Animation == nil:
		return missing(actor, "animation")
	case d.Sound == nil:
		return missing(actor, "sound")
	case d.Movement == nil:
		return missing(actor, "movement")
	case d.Patrol == nil:
		return missing(actor, "patrol")
	case d.Random == nil:
		return missing(actor, "random")
	}
	return nil
}

// Enemy is a melee NPC that patrols, chases the target once it comes close,
// swings at it in range and waits AttackFrequency between swings. Any hit
// kills it.
type Enemy struct {
	cfg  EnemyConfig
	deps EnemyDeps

	state       EnemyState
	sinceAttack float64
	distance    float64

	// OnTransition, when set, observes every state change.
	OnTransition func(from, to EnemyState)
}

func NewEnemy(cfg EnemyConfig, deps EnemyDeps) (*Enemy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}
	deps.Patrol.SetPatrolling(true)
	return &Enemy{cfg: cfg, deps: deps, state: EnemyPatrolling}, nil
}

func (e *Enemy) State() EnemyState { return e.state }

func (e *Enemy) Dead() bool { return e.state == EnemyDead }

func (e *Enemy) Config() EnemyConfig { return e.cfg }

// Distance is the distance to the target measured on the last tick.
func (e *Enemy) Distance() float64 { return e.distance }

// Reconfigure swaps the enemy's tunables. The current state is kept.
func (e *Enemy) Reconfigure(cfg EnemyConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// Tick advances the machine by dt with the target at target. The state
// blocks run in order, so a transition taken early in the tick is acted on
// by the later blocks of the same tick.
func (e *Enemy) Tick(target common.Vec3, dt float64) {
	if e.state == EnemyDead {
		return
	}
	dist := common.Distance(target, e.deps.Self.Position())
	e.distance = dist

	if e.state == EnemyPatrolling {
		if dist < e.cfg.DistanceForTracking {
			e.setState(EnemyTracking)
			e.deps.Patrol.SetPatrolling(false)
			e.deps.Animation.Trigger(e.cfg.RunTrigger)
		} else if dist < e.cfg.DistanceToHearPatrolSounds {
			if !e.deps.Sound.Busy() && e.deps.Random.Intn(e.cfg.PatrolSoundChance) == 0 {
				e.playFrom(e.cfg.PatrolSounds)
			}
		}
	}

	if e.state == EnemyTracking {
		e.deps.Movement.SetDestination(target)
		if dist < e.cfg.DistanceForAttacking {
			e.setState(EnemyAttacking)
		}
	}

	if e.state == EnemyAttacking {
		e.deps.Movement.SetDestination(target)
		e.deps.Animation.Trigger(e.cfg.AttackTrigger)
		e.deps.Target.Hit(e.cfg.DamageForSwing)
		if !e.deps.Sound.Busy() {
			e.playFrom(e.cfg.AttackSounds)
		}

		if dist >= e.cfg.DistanceForAttacking {
			e.setState(EnemyTracking)
			e.deps.Animation.Trigger(e.cfg.RunTrigger)
		} else {
			e.setState(EnemyWaiting)
			e.sinceAttack = 0
		}
	}

	if e.state == EnemyWaiting {
		e.sinceAttack += dt
		if e.sinceAttack >= e.cfg.AttackFrequency {
			if dist < e.cfg.DistanceForAttacking {
				e.setState(EnemyAttacking)
			} else {
				e.setState(EnemyTracking)
				e.deps.Animation.Trigger(e.cfg.RunTrigger)
			}
		}
	}
}

// Hit kills the enemy whatever the damage. Hitting a dead enemy does nothing.
func (e *Enemy) Hit(damage int) {
	if e.state == EnemyDead {
		return
	}
	fall := e.cfg.FallTriggers[e.deps.Random.Intn(len(e.cfg.FallTriggers))]
	e.deps.Animation.Trigger(fall)
	e.deps.Patrol.SetPatrolling(false)
	e.deps.Movement.Stop()
	e.setState(EnemyDead)
}

func (e *Enemy) playFrom(bank []string) {
	if len(bank) == 0 {
		return
	}
	e.deps.Sound.PlayIfIdle(bank[e.deps.Random.Intn(len(bank))])
}

func (e *Enemy) setState(next EnemyState) {
	prev := e.state
	e.state = next
	if e.OnTransition != nil && prev != next {
		e.OnTransition(prev, next)
	}
}
