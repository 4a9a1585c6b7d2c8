package system

import (
	"github.com/milk9111/shooter/behavior"
	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
)

// PhysicsSystem keeps held projectiles in their thrower's hand, steps the
// physics world, copies free projectile positions back into transforms and
// reports projectile contacts to the thrower.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem { return &PhysicsSystem{} }

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		if !p.Attached {
			return
		}
		pos, ok := HandPosition(w, p)
		if !ok {
			return
		}
		t.Position = pos
		pw.SetPosition(e, pos)
	})

	pw.Step(w.Delta())

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		if p.Attached {
			return
		}
		if pos, ok := pw.Position(e); ok {
			t.Position = pos
		}
	})

	for _, c := range pw.DrainContacts() {
		p, ok := ecs.Get(w, c.Projectile, component.ProjectileComponent.Kind())
		if !ok || p.OwnerBrain == nil {
			continue
		}
		p.OwnerBrain.OnProjectileHit(behavior.ActorID(c.Other))
	}
}

// HandPosition is where a held projectile rests relative to its owner.
func HandPosition(w *ecs.World, p *component.Projectile) (common.Vec3, bool) {
	owner, ok := ecs.Get(w, ecs.Entity(p.Owner), component.TransformComponent.Kind())
	if !ok {
		return common.Vec3{}, false
	}
	return owner.Position.Add(common.RotateYaw(p.HandOffset, owner.Yaw)), true
}
