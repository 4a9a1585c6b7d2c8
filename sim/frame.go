package sim

import (
	"github.com/milk9111/shooter/arena"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
)

// Frame is a flat view of the arena after one tick, for viewers that do not
// share the world.
type Frame struct {
	T       float64     `json:"t"`
	Size    float64     `json:"size"`
	Health  int         `json:"health"`
	Weapon  string      `json:"weapon"`
	Flash   float64     `json:"flash"`
	Actors  []Actor     `json:"actors"`
	Effects []Effect    `json:"effects,omitempty"`
	Events  []ecs.Event `json:"events,omitempty"`
}

type Actor struct {
	Entity ecs.Entity `json:"id"`
	Kind   string     `json:"kind"`
	Name   string     `json:"name"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Z      float64    `json:"z"`
	Yaw    float64    `json:"yaw"`
	Radius float64    `json:"radius"`
	State  string     `json:"state,omitempty"`
}

// Effect is a shockwave ring or a shot tracer with how far through its life
// it is.
type Effect struct {
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	ToX      float64 `json:"to_x,omitempty"`
	ToZ      float64 `json:"to_z,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Progress float64 `json:"progress"`
}

// Snapshot flattens a. events are the ones the tick published.
func Snapshot(a *arena.Arena, events []ecs.Event) Frame {
	w := a.World
	f := Frame{T: w.Elapsed(), Size: a.Spec.Size, Events: events}

	if target := a.PlayerTarget(); target != nil {
		f.Health = target.Health()
		f.Weapon = target.WeaponInfo()
		f.Flash = target.FlashAlpha()
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, t *component.Transform) {
		state := "alive"
		if p.Target != nil && p.Target.Dead() {
			state = "dead"
		}
		f.Actors = append(f.Actors, actor(e, "player", p.Name, t, p.Radius, state))
	})
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, en *component.Enemy, t *component.Transform) {
		f.Actors = append(f.Actors, actor(e, "enemy", en.Name, t, en.Radius, en.Brain.State().String()))
	})
	ecs.ForEach2(w, component.BossComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Boss, t *component.Transform) {
		f.Actors = append(f.Actors, actor(e, "boss", b.Name, t, b.Radius, b.Brain.State().String()))
	})
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		state := "held"
		if !p.Attached {
			state = "flying"
		}
		f.Actors = append(f.Actors, actor(e, "projectile", "", t, p.Radius, state))
	})
	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pk *component.Pickup, t *component.Transform) {
		if pk.Visible {
			f.Actors = append(f.Actors, actor(e, "pickup", pk.Name, t, pk.Radius, pk.Box.Kind().String()))
		}
	})

	ecs.ForEach2(w, component.ShockwaveComponent.Kind(), component.TTLComponent.Kind(), func(_ ecs.Entity, s *component.Shockwave, ttl *component.TTL) {
		f.Effects = append(f.Effects, Effect{Kind: "shockwave", X: s.Center.X, Z: s.Center.Z, Radius: s.MaxRadius, Progress: ttl.Fraction()})
	})
	ecs.ForEach2(w, component.TracerComponent.Kind(), component.TTLComponent.Kind(), func(_ ecs.Entity, tr *component.Tracer, ttl *component.TTL) {
		f.Effects = append(f.Effects, Effect{Kind: "tracer", X: tr.From.X, Z: tr.From.Z, ToX: tr.To.X, ToZ: tr.To.Z, Progress: ttl.Fraction()})
	})
	return f
}

func actor(e ecs.Entity, kind, name string, t *component.Transform, radius float64, state string) Actor {
	return Actor{
		Entity: e,
		Kind:   kind,
		Name:   name,
		X:      t.Position.X,
		Y:      t.Position.Y,
		Z:      t.Position.Z,
		Yaw:    t.Yaw,
		Radius: radius,
		State:  state,
	}
}
