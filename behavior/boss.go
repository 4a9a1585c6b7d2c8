package behavior

import "github.com/milk9111/shooter/common"

// BossState is the boss FSM state.
type BossState int

const (
	BossIdle BossState = iota
	BossStomp
	BossThrow
	BossWaiting
	BossDead
)

func (s BossState) String() string {
	switch s {
	case BossIdle:
		return "idle"
	case BossStomp:
		return "stomp"
	case BossThrow:
		return "throw"
	case BossWaiting:
		return "waiting"
	case BossDead:
		return "dead"
	}
	return "unknown"
}

type BossConfig struct {
	DistanceForStomp            float64
	DistanceForProjectileThrow  float64
	TimeBetweenStomps           float64
	TimeBetweenProjectileThrows float64
	DamageForStomp              int
	DamageForProjectile         int

	// ShockwaveDelay is how long after the stomp animation starts that the
	// boss lands and the shockwave goes off.
	ShockwaveDelay float64
	// ProjectileReleaseDelay is how long into the throw animation the
	// projectile leaves the boss's hand.
	ProjectileReleaseDelay float64
	ProjectileImpulse      float64

	StompTrigger    string
	ThrowTrigger    string
	DeathTrigger    string
	StompSound      string
	ProjectileSound string

	// Health is the boss's hit point pool. Zero means any hit kills.
	Health int
}

func DefaultBossConfig() BossConfig {
	return BossConfig{
		DistanceForStomp:            5,
		DistanceForProjectileThrow:  10,
		TimeBetweenStomps:           5,
		TimeBetweenProjectileThrows: 5,
		DamageForStomp:              20,
		DamageForProjectile:         30,
		ShockwaveDelay:              1,
		ProjectileReleaseDelay:      1.5,
		ProjectileImpulse:           5000,
		StompTrigger:                "Stomp",
		ThrowTrigger:                "Throw",
		StompSound:                  "stomp",
		ProjectileSound:             "projectile",
	}
}

func (c BossConfig) Validate() error {
	const actor = "boss"
	switch {
	case c.DistanceForStomp < 0 || c.DistanceForProjectileThrow < 0:
		return invalid(actor, "distances", "must not be negative")
	case c.TimeBetweenStomps < 0 || c.TimeBetweenProjectileThrows < 0:
		return invalid(actor, "cooldowns", "must not be negative")
	case c.DamageForStomp < 0 || c.DamageForProjectile < 0:
		return invalid(actor, "damage", "must not be negative")
	case c.ShockwaveDelay < 0 || c.ProjectileReleaseDelay < 0:
		return invalid(actor, "animation offsets", "must not be negative")
	case c.ProjectileImpulse < 0:
		return invalid(actor, "projectile_impulse", "must not be negative")
	case c.StompTrigger == "" || c.ThrowTrigger == "":
		return invalid(actor, "triggers", "stomp and throw triggers are required")
	case c.Health < 0:
		return invalid(actor, "health", "must not be negative")
	}
	return nil
}

type BossDeps struct {
	Self       Locator
	Facer      Facer
	Target     Damageable
	TargetID   ActorID
	Grounded   GroundedCheck
	Animation  AnimationCue
	Sound      SoundCue
	Shockwave  Effect
	Projectile PhysicsBody
}

func (d BossDeps) validate() error {
	const actor = "boss"
	switch {
	case d.Self == nil:
		return missing(actor, "self locator")
	case d.Facer == nil:
		return missing(actor, "facer")
	case d.Target == nil:
		return missing(actor, "target")
	case d.Grounded == nil:
		return missing(actor, "grounded check")
	case d.Animation == nil:
		return missing(actor, "animation")
	case d.Sound == nil:
		return missing(actor, "sound")
	case d.Shockwave == nil:
		return missing(actor, "shockwave effect")
	case d.Projectile == nil:
		return missing(actor, "projectile")
	}
	return nil
}

// Boss stomps when the target is close and throws its projectile when the
// target is at middle range. Both attacks fire animation-synced effects
// later through continuations and put the boss on a cooldown.
type Boss struct {
	cfg  BossConfig
	deps BossDeps

	state      BossState
	cooldown   Cooldown
	delayed    Continuations
	lastTarget common.Vec3
	health     int

	OnTransition func(from, to BossState)
}

func NewBoss(cfg BossConfig, deps BossDeps) (*Boss, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}
	return &Boss{cfg: cfg, deps: deps, state: BossIdle, health: cfg.Health}, nil
}

func (b *Boss) State() BossState { return b.state }

func (b *Boss) Dead() bool { return b.state == BossDead }

func (b *Boss) Cooldown() float64 { return b.cooldown.Remaining }

func (b *Boss) Health() int { return b.health }

func (b *Boss) Config() BossConfig { return b.cfg }

// PendingEffects lists the animation-synced effects not yet fired.
func (b *Boss) PendingEffects() []string { return b.delayed.Names() }

func (b *Boss) Reconfigure(cfg BossConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.cfg = cfg
	return nil
}

// Tick records where the target is, fires any due continuations and then
// advances the state machine. Continuations keep running after death; the
// state machine does not.
func (b *Boss) Tick(target common.Vec3, dt float64) {
	b.lastTarget = target
	b.delayed.Tick(dt)
	if b.state == BossDead {
		return
	}
	dist := common.Distance(target, b.deps.Self.Position())

	switch b.state {
	case BossIdle:
		b.deps.Facer.Face(target)
		if dist < b.cfg.DistanceForStomp {
			b.stomp()
		} else if dist < b.cfg.DistanceForProjectileThrow {
			b.throw()
		}
	case BossWaiting:
		b.cooldown.Tick(dt)
		if b.cooldown.Ready() {
			b.setState(BossIdle)
		}
	}
}

func (b *Boss) stomp() {
	b.setState(BossStomp)
	b.cooldown.Set(b.cfg.TimeBetweenStomps)
	b.deps.Animation.Trigger(b.cfg.StompTrigger)
	b.delayed.Schedule(b.cfg.ShockwaveDelay, "shockwave", b.shockwave)
	b.setState(BossWaiting)
}

func (b *Boss) shockwave() {
	b.deps.Shockwave.Play()
	if b.deps.Grounded.Grounded() {
		b.deps.Target.Hit(b.cfg.DamageForStomp)
	}
	b.deps.Sound.PlayIfIdle(b.cfg.StompSound)
}

func (b *Boss) throw() {
	b.setState(BossThrow)
	b.cooldown.Set(b.cfg.TimeBetweenProjectileThrows)
	p := b.deps.Projectile
	p.ResetToRest()
	p.SetKinematic(true)
	p.SetCollisionEnabled(true)
	b.deps.Animation.Trigger(b.cfg.ThrowTrigger)
	b.delayed.Schedule(b.cfg.ProjectileReleaseDelay, "projectile_release", b.release)
	b.setState(BossWaiting)
}

func (b *Boss) release() {
	p := b.deps.Projectile
	p.SetKinematic(false)
	p.DetachFromParent()
	p.LookAt(b.lastTarget)
	dir := b.lastTarget.Sub(p.Position()).Normalize()
	p.ApplyImpulse(dir.Scale(b.cfg.ProjectileImpulse))
}

// OnProjectileHit is the projectile's collision callback. Only the first
// contact with the target in a flight does damage; the projectile's
// collision detection is switched off right after it.
func (b *Boss) OnProjectileHit(other ActorID) {
	if other != b.deps.TargetID {
		return
	}
	p := b.deps.Projectile
	if !p.CollisionEnabled() {
		return
	}
	b.deps.Target.Hit(b.cfg.DamageForProjectile)
	b.deps.Sound.PlayIfIdle(b.cfg.ProjectileSound)
	p.SetCollisionEnabled(false)
}

// Hit damages the boss. With no health pool configured any hit kills.
func (b *Boss) Hit(damage int) {
	if b.state == BossDead {
		return
	}
	if b.cfg.Health > 0 {
		if damage > 0 {
			b.health -= damage
		}
		if b.health > 0 {
			return
		}
		b.health = 0
	}
	b.die()
}

// Kill moves the boss to Dead unconditionally.
func (b *Boss) Kill() {
	if b.state == BossDead {
		return
	}
	b.health = 0
	b.die()
}

func (b *Boss) die() {
	if b.cfg.DeathTrigger != "" {
		b.deps.Animation.Trigger(b.cfg.DeathTrigger)
	}
	b.setState(BossDead)
}

func (b *Boss) setState(next BossState) {
	prev := b.state
	b.state = next
	if b.OnTransition != nil && prev != next {
		b.OnTransition(prev, next)
	}
}
