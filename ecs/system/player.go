package system

import (
	"log"
	"math"

	"github.com/milk9111/shooter/behavior"
	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
)

const tracerSeconds = 0.12

// PlayerSystem applies the player's input: weapon switching, walking,
// jumping and shooting. It also fades the damage flash.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem { return &PlayerSystem{} }

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach3(w,
		component.PlayerComponent.Kind(),
		component.TransformComponent.Kind(),
		component.InputComponent.Kind(),
		func(e ecs.Entity, p *component.Player, t *component.Transform, in *component.Input) {
			if p == nil || p.Target == nil || t == nil || in == nil {
				return
			}
			defer clearEdges(in)

			if p.Target.Dead() {
				if !p.DeathLogged {
					p.DeathLogged = true
					log.Printf("player: %s died at t=%.2f", p.Name, w.Elapsed())
					w.Events().Push(ecs.Event{Type: ecs.EventDeath, Data: ecs.Death{Entity: e, Actor: p.Name, At: w.Elapsed()}})
				}
				p.Target.Tick(dt)
				return
			}

			if in.NextWeapon {
				p.Target.NextWeapon()
			}
			if in.PreviousWeapon {
				p.Target.PreviousWeapon()
			}

			move := in.Move.Flat()
			if move.Len() > 1 {
				move = move.Normalize()
			}
			t.Position = t.Position.Add(move.Scale(p.MoveSpeed * dt))
			s.updateJump(p, t, in.JumpPressed, dt)

			aim := in.Aim.Flat().Normalize()
			if aim.Len() > 0 {
				t.Yaw = common.Yaw(common.Vec3{}, aim)
			} else {
				aim = common.Heading(t.Yaw)
			}
			if in.Shoot {
				s.shoot(w, p, t, aim)
			}

			p.Target.Tick(dt)

			if pw := w.PhysicsWorld(); pw != nil && pw.Has(e) {
				pw.SetPosition(e, t.Position)
			}
		})
}

func (s *PlayerSystem) updateJump(p *component.Player, t *component.Transform, pressed bool, dt float64) {
	grounded := t.Position.Y <= 0
	if pressed && grounded {
		p.VerticalSpeed = p.JumpSpeed
	}
	if grounded && p.VerticalSpeed <= 0 {
		t.Position.Y = 0
		p.VerticalSpeed = 0
		return
	}
	p.VerticalSpeed -= p.Gravity * dt
	t.Position.Y += p.VerticalSpeed * dt
	if t.Position.Y <= 0 {
		t.Position.Y = 0
		p.VerticalSpeed = 0
	}
}

func (s *PlayerSystem) shoot(w *ecs.World, p *component.Player, t *component.Transform, aim common.Vec3) {
	weapon := p.Target.CurrentWeapon().Name
	ray := &shotRay{w: w, maxRange: p.ShotRange}
	origin := t.Position.Flat()
	if !p.Target.Shoot(origin, aim, ray) {
		return
	}

	end := origin.Add(aim.Scale(ray.rangeOrDefault()))
	if ray.hit {
		end = ray.point
	}
	w.Events().Push(ecs.Event{Type: ecs.EventShot, Data: ecs.Shot{Weapon: weapon, Hit: ray.hit, Victim: ray.victim, At: w.Elapsed()}})

	tracer := ecs.CreateEntity(w)
	_ = ecs.Add(w, tracer, component.TracerComponent.Kind(), &component.Tracer{From: origin, To: end, Hit: ray.hit})
	_ = ecs.Add(w, tracer, component.TTLComponent.Kind(), &component.TTL{Remaining: tracerSeconds, Total: tracerSeconds})
}

func clearEdges(in *component.Input) {
	in.Shoot = false
	in.JumpPressed = false
	in.NextWeapon = false
	in.PreviousWeapon = false
}

// shotRay resolves a shot against the circles of living enemies and
// bosses on the arena floor and keeps the nearest hit.
type shotRay struct {
	w        *ecs.World
	maxRange float64

	hit    bool
	victim ecs.Entity
	point  common.Vec3
}

func (r *shotRay) rangeOrDefault() float64 {
	if r.maxRange > 0 {
		return r.maxRange
	}
	return 50
}

func (r *shotRay) Raycast(origin, dir common.Vec3) (behavior.Damageable, bool) {
	dir = dir.Flat().Normalize()
	if dir.Len() == 0 {
		return nil, false
	}
	best := math.Inf(1)
	var target behavior.Damageable

	consider := func(e ecs.Entity, center common.Vec3, radius float64, d behavior.Damageable) {
		dist, ok := rayCircle(origin.Flat(), dir, center.Flat(), radius, r.rangeOrDefault())
		if !ok || dist >= best {
			return
		}
		best = dist
		target = d
		r.victim = e
	}

	ecs.ForEach2(r.w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, en *component.Enemy, t *component.Transform) {
		if en.Brain == nil || en.Brain.Dead() {
			return
		}
		consider(e, t.Position, en.Radius, en.Brain)
	})
	ecs.ForEach2(r.w, component.BossComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Boss, t *component.Transform) {
		if b.Brain == nil || b.Brain.Dead() {
			return
		}
		consider(e, t.Position, b.Radius, b.Brain)
	})

	if target == nil {
		return nil, false
	}
	r.hit = true
	r.point = origin.Flat().Add(dir.Scale(best))
	return target, true
}

// rayCircle returns the distance along a unit ray to the first point on a
// circle, if it is within maxRange.
func rayCircle(origin, dir, center common.Vec3, radius, maxRange float64) (float64, bool) {
	oc := center.Sub(origin)
	along := oc.Dot(dir)
	perp2 := oc.Dot(oc) - along*along
	r2 := radius * radius
	if perp2 > r2 {
		return 0, false
	}
	dist := along - math.Sqrt(r2-perp2)
	if dist < 0 {
		// origin inside the circle
		if oc.Dot(oc) <= r2 {
			dist = 0
		} else {
			return 0, false
		}
	}
	if dist > maxRange {
		return 0, false
	}
	return dist, true
}
