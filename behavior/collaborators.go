// Package behavior holds the engine-free actor logic: the melee enemy and
// boss state machines, the player damage target and the one-shot pickups.
// Everything here is advanced by an external clock through Tick and talks
// to the outside world only through the interfaces in this file.
package behavior

import "github.com/milk9111/shooter/common"

// ActorID identifies an actor to collision callbacks.
type ActorID uint64

// AnimationCue fires named animator triggers.
type AnimationCue interface {
	Trigger(name string)
}

// SoundCue is a single audio channel.
type SoundCue interface {
	// PlayIfIdle starts clip unless the channel is already playing and
	// reports whether it started.
	PlayIfIdle(clip string) bool
	Busy() bool
}

type MovementController interface {
	SetDestination(p common.Vec3)
	Stop()
}

// PatrolController toggles waypoint travel.
type PatrolController interface {
	SetPatrolling(on bool)
}

// PhysicsBody is a body that can rest attached to a parent or fly free.
type PhysicsBody interface {
	SetKinematic(kinematic bool)
	ApplyImpulse(impulse common.Vec3)
	SetCollisionEnabled(enabled bool)
	CollisionEnabled() bool
	DetachFromParent()
	// ResetToRest re-attaches the body to its parent at its rest pose.
	ResetToRest()
	Position() common.Vec3
	LookAt(p common.Vec3)
}

// Effect is a fire-and-forget visual effect such as a particle burst.
type Effect interface {
	Play()
}

type GroundedCheck interface {
	Grounded() bool
}

// Facer turns an actor to face a point.
type Facer interface {
	Face(p common.Vec3)
}

// Locator reports an actor's current world position.
type Locator interface {
	Position() common.Vec3
}

// Random is the source for every random choice an actor makes.
type Random interface {
	Intn(n int) int
}

// Damageable receives hits.
type Damageable interface {
	Hit(damage int)
}

// Raycaster resolves a shot into the damageable thing it hits, if any.
type Raycaster interface {
	Raycast(origin, dir common.Vec3) (Damageable, bool)
}

// Boostable is the part of a damage target pickups talk to.
type Boostable interface {
	HealthBoost(value int)
	AmmoBoost(value int, weapon WeaponType)
	IsHealthFull() bool
	IsWeaponFull(weapon WeaponType) bool
}

// DamageTarget is what NPCs hurt and pickups replenish.
type DamageTarget interface {
	Damageable
	Boostable
}
