package arena

import (
	"github.com/milk9111/shooter/behavior"
	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
	"github.com/milk9111/shooter/ecs/system"
)

// The adapters below are the collaborators actors are built with. Each one
// holds pointers to its own entity's components, so an actor ticking on its
// own goroutine touches nothing it shares with another actor.

type transformLocator struct{ t *component.Transform }

func (l transformLocator) Position() common.Vec3 { return l.t.Position }

type transformFacer struct{ t *component.Transform }

func (f transformFacer) Face(p common.Vec3) { f.t.Yaw = common.Yaw(f.t.Position, p) }

type navMover struct{ nav *component.Navigation }

func (m navMover) SetDestination(p common.Vec3) {
	m.nav.Destination = p
	m.nav.HasDestination = true
}

func (m navMover) Stop() {
	m.nav.HasDestination = false
	m.nav.Stopped = true
}

type navPatrol struct{ nav *component.Navigation }

func (p navPatrol) SetPatrolling(on bool) { p.nav.Patrolling = on }

type animationCue struct{ a *component.Animation }

func (c animationCue) Trigger(name string) {
	c.a.Current = name
	c.a.Since = 0
	c.a.Fired++
}

// playerGrounded reports the player standing on the floor.
type playerGrounded struct{ t *component.Transform }

func (g playerGrounded) Grounded() bool { return g.t.Position.Y <= 0 }

type pickupVisual struct{ pk *component.Pickup }

func (v pickupVisual) SetVisible(visible bool) { v.pk.Visible = visible }

// shockwaveEffect spawns a short-lived ring around its owner.
type shockwaveEffect struct {
	w        *ecs.World
	owner    *component.Transform
	radius   float64
	lifetime float64
}

func (s shockwaveEffect) Play() {
	e := ecs.CreateEntity(s.w)
	_ = ecs.Add(s.w, e, component.ShockwaveComponent.Kind(), &component.Shockwave{Center: s.owner.Position.Flat(), MaxRadius: s.radius})
	_ = ecs.Add(s.w, e, component.TTLComponent.Kind(), &component.TTL{Remaining: s.lifetime, Total: s.lifetime})
}

// attributedTarget forwards to the shared player target and publishes a
// damage event naming the attacker.
type attributedTarget struct {
	behavior.DamageTarget
	source string
	w      *ecs.World
}

func (a attributedTarget) Hit(damage int) {
	a.DamageTarget.Hit(damage)
	a.w.Events().Push(ecs.Event{Type: ecs.EventDamage, Data: ecs.Damage{Source: a.source, Amount: damage, At: a.w.Elapsed()}})
}

// projectileBody drives a thrown projectile entity through the physics world.
type projectileBody struct {
	w *ecs.World
	e ecs.Entity
	p *component.Projectile
	t *component.Transform
}

func (b projectileBody) SetKinematic(kinematic bool) {
	b.p.Kinematic = kinematic
	b.w.PhysicsWorld().SetKinematic(b.e, kinematic)
}

func (b projectileBody) ApplyImpulse(impulse common.Vec3) {
	b.w.PhysicsWorld().ApplyImpulse(b.e, impulse)
}

func (b projectileBody) SetCollisionEnabled(enabled bool) { b.p.CollisionEnabled = enabled }

func (b projectileBody) CollisionEnabled() bool { return b.p.CollisionEnabled }

func (b projectileBody) DetachFromParent() { b.p.Attached = false }

func (b projectileBody) ResetToRest() {
	b.p.Attached = true
	b.SetKinematic(true)
	if pos, ok := system.HandPosition(b.w, b.p); ok {
		b.t.Position = pos
		b.w.PhysicsWorld().SetPosition(b.e, pos)
	}
}

func (b projectileBody) Position() common.Vec3 {
	if pos, ok := b.w.PhysicsWorld().Position(b.e); ok {
		return pos
	}
	return b.t.Position
}

func (b projectileBody) LookAt(p common.Vec3) { b.t.Yaw = common.Yaw(b.Position(), p) }
