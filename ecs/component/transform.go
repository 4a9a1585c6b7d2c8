package component

import "github.com/milk9111/shooter/common"

// Transform places an entity in the arena. Y is height above the floor and
// Yaw is the heading in degrees around the up axis.
type Transform struct {
	Position common.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]()
