package component

import "github.com/milk9111/shooter/common"

// Navigation drives a walker. A destination wins over the patrol route;
// Stopped halts both for good.
type Navigation struct {
	Speed          float64
	StopDistance   float64
	Destination    common.Vec3
	HasDestination bool
	Waypoints      []common.Vec3
	Waypoint       int
	Patrolling     bool
	Stopped        bool
}

var NavigationComponent = NewComponent[Navigation]()
