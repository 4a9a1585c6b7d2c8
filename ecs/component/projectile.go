package component

import (
	"github.com/milk9111/shooter/behavior"
	"github.com/milk9111/shooter/common"
)

// Projectile is a thrown body. While Attached it follows its owner at
// HandOffset; once released the physics world moves it.
type Projectile struct {
	// Owner is the raw entity handle of the thrower.
	Owner            uint64
	OwnerBrain       *behavior.Boss
	HandOffset       common.Vec3
	Radius           float64
	Attached         bool
	Kinematic        bool
	CollisionEnabled bool
}

var ProjectileComponent = NewComponent[Projectile]()
