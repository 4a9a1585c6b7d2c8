package component

import "github.com/milk9111/shooter/common"

// Input stores this tick's commands for the player. Move is a direction on
// the floor; Aim is the shot direction. The edge fields are one-shot and
// cleared by the player system after use.
type Input struct {
	Move           common.Vec3
	Aim            common.Vec3
	Shoot          bool
	JumpPressed    bool
	NextWeapon     bool
	PreviousWeapon bool
}

var InputComponent = NewComponent[Input]()
