package component

import "github.com/milk9111/shooter/behavior"

type Pickup struct {
	Name    string
	Box     *behavior.Pickup
	Radius  float64
	Visible bool
}

var PickupComponent = NewComponent[Pickup]()
