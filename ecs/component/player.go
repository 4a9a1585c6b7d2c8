package component

import "github.com/milk9111/shooter/behavior"

type Player struct {
	Name string
	// Target owns health, weapons and the damage flash.
	Target *behavior.Target
	// Shared is what enemies, the boss and pickups talk to. It wraps Target
	// with a lock when NPCs tick in parallel.
	Shared behavior.DamageTarget
	ID     behavior.ActorID

	MoveSpeed     float64
	JumpSpeed     float64
	Gravity       float64
	Radius        float64
	ShotRange     float64
	VerticalSpeed float64
	DeathLogged   bool
}

var PlayerComponent = NewComponent[Player]()
