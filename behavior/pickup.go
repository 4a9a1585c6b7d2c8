package behavior

import "github.com/milk9111/shooter/common"

type PickupKind int

const (
	PickupAmmo PickupKind = iota
	PickupHealth
)

func (k PickupKind) String() string {
	switch k {
	case PickupAmmo:
		return "ammo"
	case PickupHealth:
		return "health"
	}
	return "unknown"
}

const (
	DefaultSpinSpeed   = 50.0
	DefaultRemoveDelay = 2.0
)

type PickupConfig struct {
	Kind   PickupKind
	Value  int
	Weapon WeaponType
	// SpinSpeed is in degrees per second around the up axis.
	SpinSpeed float64
	// RemoveDelay lets the pickup sound finish before the pickup goes away.
	RemoveDelay float64
	Sound       string
}

func (c PickupConfig) Validate() error {
	const actor = "pickup"
	switch {
	case c.Kind != PickupAmmo && c.Kind != PickupHealth:
		return invalid(actor, "kind", "must be ammo or health")
	case c.Value < 0:
		return invalid(actor, "value", "must not be negative")
	case c.RemoveDelay < 0:
		return invalid(actor, "remove_delay", "must not be negative")
	}
	return nil
}

// Visibility shows or hides an actor's meshes.
type Visibility interface {
	SetVisible(visible bool)
}

type PickupDeps struct {
	Target   Boostable
	TargetID ActorID
	Sound    SoundCue
	Visual   Visibility
}

// Pickup is a one-shot ammo or health box. It spins for its whole life and
// removes itself RemoveDelay seconds after being collected.
type Pickup struct {
	cfg  PickupConfig
	deps PickupDeps

	active  bool
	removed bool
	spin    float64
	delayed Continuations

	OnCollected func(kind PickupKind, value int)
}

func NewPickup(cfg PickupConfig, deps PickupDeps) (*Pickup, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case deps.Target == nil:
		return nil, missing("pickup", "target")
	case deps.Sound == nil:
		return nil, missing("pickup", "sound")
	case deps.Visual == nil:
		return nil, missing("pickup", "visual")
	}
	return &Pickup{cfg: cfg, deps: deps, active: true}, nil
}

func (p *Pickup) Active() bool { return p.active }

// Removed reports that the self-removal delay has run out.
func (p *Pickup) Removed() bool { return p.removed }

// Spin is the current rotation around the up axis in degrees.
func (p *Pickup) Spin() float64 { return p.spin }

func (p *Pickup) Kind() PickupKind { return p.cfg.Kind }

func (p *Pickup) Value() int { return p.cfg.Value }

// OnContact applies the pickup to the target the first time the target
// touches it while its resource is not full. It reports whether the pickup
// was collected by this contact.
func (p *Pickup) OnContact(other ActorID) bool {
	if other != p.deps.TargetID || !p.active || p.full() {
		return false
	}
	switch p.cfg.Kind {
	case PickupAmmo:
		p.deps.Target.AmmoBoost(p.cfg.Value, p.cfg.Weapon)
	case PickupHealth:
		p.deps.Target.HealthBoost(p.cfg.Value)
	}
	p.deps.Visual.SetVisible(false)
	p.active = false
	if p.cfg.Sound != "" {
		p.deps.Sound.PlayIfIdle(p.cfg.Sound)
	}
	p.delayed.Schedule(p.cfg.RemoveDelay, "self_remove", func() { p.removed = true })
	if p.OnCollected != nil {
		p.OnCollected(p.cfg.Kind, p.cfg.Value)
	}
	return true
}

// Tick spins the pickup and runs its pending removal.
func (p *Pickup) Tick(dt float64) {
	if p.removed {
		return
	}
	p.spin = common.WrapDegrees(p.spin + p.cfg.SpinSpeed*dt)
	p.delayed.Tick(dt)
}

func (p *Pickup) full() bool {
	if p.cfg.Kind == PickupHealth {
		return p.deps.Target.IsHealthFull()
	}
	return p.deps.Target.IsWeaponFull(p.cfg.Weapon)
}
