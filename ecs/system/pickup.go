package system

import (
	"log"

	"github.com/milk9111/shooter/behavior"
	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
)

// PickupSystem spins pickups, applies them when the player walks into them
// and destroys them once their removal delay has run out.
type PickupSystem struct{}

func NewPickupSystem() *PickupSystem { return &PickupSystem{} }

func (s *PickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var (
		playerPos common.Vec3
		playerID  behavior.ActorID
		hasPlayer bool
		radius    float64
	)
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		t, okT := ecs.Get(w, player, component.TransformComponent.Kind())
		p, okP := ecs.Get(w, player, component.PlayerComponent.Kind())
		if okT && okP {
			playerPos, playerID, radius, hasPlayer = t.Position, p.ID, p.Radius, true
		}
	}

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pk *component.Pickup, t *component.Transform) {
		if pk.Box == nil {
			return
		}
		if hasPlayer && pk.Box.Active() && common.Distance(playerPos.Flat(), t.Position.Flat()) <= pk.Radius+radius {
			if pk.Box.OnContact(playerID) {
				log.Printf("pickup: %s collected at t=%.2f", pk.Name, w.Elapsed())
				w.Events().Push(ecs.Event{Type: ecs.EventPickup, Data: ecs.PickupCollected{
					Entity: e,
					Kind:   pk.Box.Kind().String(),
					Value:  pk.Box.Value(),
					At:     w.Elapsed(),
				}})
			}
		}
		pk.Box.Tick(w.Delta())
		t.Yaw = pk.Box.Spin()
		if pk.Box.Removed() {
			ecs.DestroyEntity(w, e)
		}
	})
}
