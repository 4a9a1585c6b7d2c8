package component

import "github.com/milk9111/shooter/behavior"

type Enemy struct {
	Name   string
	Brain  *behavior.Enemy
	Radius float64
}

var EnemyComponent = NewComponent[Enemy]()
