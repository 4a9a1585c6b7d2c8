package component

import "github.com/milk9111/shooter/behavior"

type Boss struct {
	Name            string
	Brain           *behavior.Boss
	Radius          float64
	ShockwaveRadius float64
}

var BossComponent = NewComponent[Boss]()
