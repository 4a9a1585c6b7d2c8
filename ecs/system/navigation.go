package system

import (
	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
)

const waypointReached = 0.2

// NavigationSystem walks entities toward their destination, or around their
// patrol route when they have none. Walkers stay on the floor.
type NavigationSystem struct{}

func NewNavigationSystem() *NavigationSystem { return &NavigationSystem{} }

func (s *NavigationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.NavigationComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, nav *component.Navigation, t *component.Transform) {
		if nav.Stopped || nav.Speed <= 0 || dt <= 0 {
			return
		}
		pos := t.Position

		var goal common.Vec3
		stop := 0.0
		switch {
		case nav.HasDestination:
			goal = nav.Destination
			stop = nav.StopDistance
		case nav.Patrolling && len(nav.Waypoints) > 0:
			nav.Waypoint %= len(nav.Waypoints)
			goal = nav.Waypoints[nav.Waypoint]
			if common.Distance(pos.Flat(), goal.Flat()) <= waypointReached {
				nav.Waypoint = (nav.Waypoint + 1) % len(nav.Waypoints)
				goal = nav.Waypoints[nav.Waypoint]
			}
		default:
			return
		}
		goal.Y = pos.Y

		dist := common.Distance(pos, goal)
		if dist <= stop {
			return
		}
		step := nav.Speed * dt
		if dist-stop < step {
			step = dist - stop
		}
		t.Yaw = common.Yaw(pos, goal)
		t.Position = common.MoveTowards(pos, goal, step)
	})
}
