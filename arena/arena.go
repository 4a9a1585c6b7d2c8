// Package arena turns an arena prefab into a populated world: it spawns the
// player, the melee enemies, the boss with its projectile and the pickups,
// and wires each actor's behaviour to the components that represent it.
package arena

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/shooter/behavior"
	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
	"github.com/milk9111/shooter/ecs/system"
	"github.com/milk9111/shooter/prefabs"
)

const (
	DefaultArena = "arena.yaml"

	shockwaveSeconds        = 0.6
	defaultEnemyRadius      = 0.5
	defaultBossRadius       = 1.5
	defaultPlayerRadius     = 0.5
	defaultPickupRadius     = 1
	defaultShotRange        = 40
	defaultProjectileRadius = 0.4
	defaultProjectileMass   = 250
)

var ErrNoPlayer = errors.New("arena: player prefab is required")

type Options struct {
	// Cues supplies sound channels. Nil records cues against the world clock.
	Cues Cues
	// Parallel ticks enemies concurrently and serializes the player target.
	Parallel bool
}

// Arena is a built world plus the handles the front ends need.
type Arena struct {
	World *ecs.World
	Spec  *prefabs.ArenaSpec

	Player     ecs.Entity
	Enemies    []ecs.Entity
	Boss       ecs.Entity
	HasBoss    bool
	Projectile ecs.Entity
	Pickups    []ecs.Entity

	// Colors holds each actor's prefab color, keyed by entity.
	Colors map[ecs.Entity]*prefabs.YAMLColor

	cues     Cues
	parallel bool
	placed   map[ecs.Entity]prefabs.ArenaEnemySpec
	boss     *prefabs.ArenaBossSpec
}

// Load reads the named arena prefab and builds it into a fresh world.
func Load(name string, opts Options) (*Arena, error) {
	spec, err := prefabs.LoadArenaSpec(name)
	if err != nil {
		return nil, err
	}
	return Build(ecs.NewWorld(), spec, opts)
}

// Build populates w from spec. The world gets a physics world if it has
// none yet.
func Build(w *ecs.World, spec *prefabs.ArenaSpec, opts Options) (*Arena, error) {
	if w == nil || spec == nil {
		return nil, fmt.Errorf("arena: world and spec are required")
	}
	if spec.Player.Prefab == "" {
		return nil, ErrNoPlayer
	}
	if w.PhysicsWorld() == nil {
		w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	}
	cues := opts.Cues
	if cues == nil {
		cues = NewRecordingCues(w.Elapsed)
	}

	a := &Arena{
		World:    w,
		Spec:     spec,
		Colors:   make(map[ecs.Entity]*prefabs.YAMLColor),
		cues:     cues,
		parallel: opts.Parallel,
		placed:   make(map[ecs.Entity]prefabs.ArenaEnemySpec),
	}

	if err := a.spawnPlayer(spec.Player); err != nil {
		return nil, err
	}
	for i, es := range spec.Enemies {
		if err := a.spawnEnemy(i, es); err != nil {
			return nil, err
		}
	}
	if spec.Boss != nil {
		if err := a.spawnBoss(*spec.Boss); err != nil {
			return nil, err
		}
	}
	for i, ps := range spec.Pickups {
		if err := a.spawnPickup(i, ps); err != nil {
			return nil, err
		}
	}

	log.Printf("arena: %s built with %d enemies, boss=%t, %d pickups", spec.Name, len(a.Enemies), a.HasBoss, len(a.Pickups))
	return a, nil
}

// Scheduler returns the systems in the order one frame runs them.
func (a *Arena) Scheduler() *ecs.Scheduler {
	return ecs.NewScheduler(
		system.NewPlayerSystem(),
		system.NewEnemySystem(a.parallel),
		system.NewBossSystem(),
		system.NewNavigationSystem(),
		system.NewPhysicsSystem(),
		system.NewPickupSystem(),
		system.NewAnimationSystem(),
		system.NewTTLSystem(),
	)
}

// PlayerTarget returns the player's damage target.
func (a *Arena) PlayerTarget() *behavior.Target {
	p, ok := ecs.Get(a.World, a.Player, component.PlayerComponent.Kind())
	if !ok {
		return nil
	}
	return p.Target
}

// Input returns the player's input component for front ends to fill.
func (a *Arena) Input() *component.Input {
	in, _ := ecs.Get(a.World, a.Player, component.InputComponent.Kind())
	return in
}

func (a *Arena) spawnPlayer(ps prefabs.ArenaPlayerSpec) error {
	spec, err := prefabs.LoadPlayerSpec(ps.Prefab)
	if err != nil {
		return err
	}
	cfg, err := spec.TargetConfig()
	if err != nil {
		return err
	}
	target, err := behavior.NewTarget(cfg)
	if err != nil {
		return fmt.Errorf("arena: player %q: %w", spec.Name, err)
	}

	w := a.World
	e := ecs.CreateEntity(w)
	pos := ps.Position.Vec3()

	var shared behavior.DamageTarget = target
	if a.parallel {
		shared = behavior.NewSerializedTarget(target)
	}

	radius := orFloat(spec.Radius, defaultPlayerRadius)
	player := &component.Player{
		Name:      spec.Name,
		Target:    target,
		Shared:    shared,
		ID:        behavior.ActorID(uint64(e)),
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
		Gravity:   spec.Gravity,
		Radius:    radius,
		ShotRange: orFloat(spec.ShotRange, defaultShotRange),
	}

	if err := addAll(
		ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(w, e, component.PlayerComponent.Kind(), player),
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}),
		ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}),
	); err != nil {
		return err
	}
	w.PhysicsWorld().AddPlayerBody(e, pos, radius)

	a.Player = e
	a.Colors[e] = spec.Color
	return nil
}

func (a *Arena) spawnEnemy(i int, placed prefabs.ArenaEnemySpec) error {
	spec, err := loadEnemy(placed)
	if err != nil {
		return err
	}

	w := a.World
	e := ecs.CreateEntity(w)
	name := fmt.Sprintf("%s#%d", spec.Name, i+1)

	t := &component.Transform{Position: placed.Position.Vec3()}
	nav := &component.Navigation{
		Speed:        spec.MoveSpeed,
		StopDistance: spec.StopDistance,
		Patrolling:   true,
	}
	for _, wp := range placed.Waypoints {
		nav.Waypoints = append(nav.Waypoints, wp.Vec3())
	}
	anim := &component.Animation{}

	brain, err := behavior.NewEnemy(spec.EnemyConfig(), behavior.EnemyDeps{
		Self:      transformLocator{t},
		Target:    a.attributed(name),
		Animation: animationCue{anim},
		Sound:     a.cues.Channel(name, spec.Audio),
		Movement:  navMover{nav},
		Patrol:    navPatrol{nav},
		Random:    behavior.NewRandom(a.Spec.Seed + uint64(i) + 1),
	})
	if err != nil {
		return fmt.Errorf("arena: enemy %q: %w", name, err)
	}
	brain.OnTransition = func(from, to behavior.EnemyState) {
		a.transition(e, name, from.String(), to.String(), to == behavior.EnemyDead)
	}

	if err := addAll(
		ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{Name: name, Brain: brain, Radius: orFloat(spec.Radius, defaultEnemyRadius)}),
		ecs.Add(w, e, component.TransformComponent.Kind(), t),
		ecs.Add(w, e, component.NavigationComponent.Kind(), nav),
		ecs.Add(w, e, component.AnimationComponent.Kind(), anim),
	); err != nil {
		return err
	}

	a.Enemies = append(a.Enemies, e)
	a.placed[e] = placed
	a.Colors[e] = spec.Color
	return nil
}

func (a *Arena) spawnBoss(placed prefabs.ArenaBossSpec) error {
	spec, err := loadBoss(placed)
	if err != nil {
		return err
	}

	w := a.World
	pw := w.PhysicsWorld()
	e := ecs.CreateEntity(w)
	pe := ecs.CreateEntity(w)
	name := spec.Name

	t := &component.Transform{Position: placed.Position.Vec3()}
	anim := &component.Animation{}
	proj := &component.Projectile{
		Owner:      uint64(e),
		HandOffset: spec.HandOffset.Vec3(),
		Radius:     orFloat(spec.ProjectileRadius, defaultProjectileRadius),
		Attached:   true,
		Kinematic:  true,
	}
	pt := &component.Transform{Position: t.Position.Add(common.RotateYaw(proj.HandOffset, t.Yaw))}

	player, ok := ecs.Get(w, a.Player, component.TransformComponent.Kind())
	if !ok {
		return ErrNoPlayer
	}
	shockRadius := orFloat(spec.ShockwaveRadius, orFloat(spec.DistanceForStomp, 5))

	brain, err := behavior.NewBoss(spec.BossConfig(), behavior.BossDeps{
		Self:       transformLocator{t},
		Facer:      transformFacer{t},
		Target:     a.attributed(name),
		TargetID:   behavior.ActorID(uint64(a.Player)),
		Grounded:   playerGrounded{player},
		Animation:  animationCue{anim},
		Sound:      a.cues.Channel(name, spec.Audio),
		Shockwave:  shockwaveEffect{w: w, owner: t, radius: shockRadius, lifetime: shockwaveSeconds},
		Projectile: projectileBody{w: w, e: pe, p: proj, t: pt},
	})
	if err != nil {
		return fmt.Errorf("arena: boss %q: %w", name, err)
	}
	brain.OnTransition = func(from, to behavior.BossState) {
		a.transition(e, name, from.String(), to.String(), to == behavior.BossDead)
	}
	proj.OwnerBrain = brain

	if err := addAll(
		ecs.Add(w, e, component.BossComponent.Kind(), &component.Boss{Name: name, Brain: brain, Radius: orFloat(spec.Radius, defaultBossRadius), ShockwaveRadius: shockRadius}),
		ecs.Add(w, e, component.TransformComponent.Kind(), t),
		ecs.Add(w, e, component.AnimationComponent.Kind(), anim),
		ecs.Add(w, pe, component.ProjectileComponent.Kind(), proj),
		ecs.Add(w, pe, component.TransformComponent.Kind(), pt),
	); err != nil {
		return err
	}
	pw.AddProjectileBody(pe, pt.Position, proj.Radius, orFloat(spec.ProjectileMass, defaultProjectileMass))

	a.Boss, a.HasBoss = e, true
	a.Projectile = pe
	a.boss = &placed
	a.Colors[e] = spec.Color
	return nil
}

func (a *Arena) spawnPickup(i int, placed prefabs.ArenaPickupSpec) error {
	spec, err := prefabs.LoadPickupSpec(placed.Prefab)
	if err != nil {
		return err
	}
	cfg, err := spec.PickupConfig()
	if err != nil {
		return err
	}
	player, ok := ecs.Get(a.World, a.Player, component.PlayerComponent.Kind())
	if !ok {
		return ErrNoPlayer
	}

	w := a.World
	e := ecs.CreateEntity(w)
	name := fmt.Sprintf("%s#%d", spec.Name, i+1)
	pk := &component.Pickup{Name: name, Radius: orFloat(spec.Radius, defaultPickupRadius), Visible: true}

	box, err := behavior.NewPickup(cfg, behavior.PickupDeps{
		Target:   player.Shared,
		TargetID: player.ID,
		Sound:    a.cues.Channel(name, spec.Audio),
		Visual:   pickupVisual{pk},
	})
	if err != nil {
		return fmt.Errorf("arena: pickup %q: %w", name, err)
	}
	pk.Box = box

	if err := addAll(
		ecs.Add(w, e, component.PickupComponent.Kind(), pk),
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: placed.Position.Vec3()}),
	); err != nil {
		return err
	}

	a.Pickups = append(a.Pickups, e)
	a.Colors[e] = spec.Color
	return nil
}

// Reload re-reads prefab and hands the new tuning to every live actor built
// from it. Only enemy and boss tuning applies live; other prefabs need a
// rebuild.
func (a *Arena) Reload(prefab string) error {
	reloaded := 0
	for _, e := range a.Enemies {
		placed, ok := a.placed[e]
		if !ok || placed.Prefab != prefab {
			continue
		}
		en, ok := ecs.Get(a.World, e, component.EnemyComponent.Kind())
		if !ok {
			continue
		}
		spec, err := loadEnemy(placed)
		if err != nil {
			return err
		}
		if err := en.Brain.Reconfigure(spec.EnemyConfig()); err != nil {
			return fmt.Errorf("arena: reload %s: %w", en.Name, err)
		}
		if nav, ok := ecs.Get(a.World, e, component.NavigationComponent.Kind()); ok {
			nav.Speed = spec.MoveSpeed
			nav.StopDistance = spec.StopDistance
		}
		a.Colors[e] = spec.Color
		reloaded++
	}

	if a.HasBoss && a.boss != nil && a.boss.Prefab == prefab {
		b, ok := ecs.Get(a.World, a.Boss, component.BossComponent.Kind())
		if ok {
			spec, err := loadBoss(*a.boss)
			if err != nil {
				return err
			}
			if err := b.Brain.Reconfigure(spec.BossConfig()); err != nil {
				return fmt.Errorf("arena: reload %s: %w", b.Name, err)
			}
			a.Colors[a.Boss] = spec.Color
			reloaded++
		}
	}

	if reloaded == 0 {
		log.Printf("arena: %s changed, restart to apply it", prefab)
		return nil
	}
	log.Printf("arena: reloaded %s into %d actors", prefab, reloaded)
	return nil
}

func (a *Arena) attributed(source string) behavior.Damageable {
	p, _ := ecs.Get(a.World, a.Player, component.PlayerComponent.Kind())
	return attributedTarget{DamageTarget: p.Shared, source: source, w: a.World}
}

func (a *Arena) transition(e ecs.Entity, name, from, to string, died bool) {
	now := a.World.Elapsed()
	log.Printf("%s: %s -> %s at t=%.2f", name, from, to, now)
	a.World.Events().Push(ecs.Event{Type: ecs.EventStateChanged, Data: ecs.StateChange{Entity: e, Actor: name, From: from, To: to, At: now}})
	if died {
		a.World.Events().Push(ecs.Event{Type: ecs.EventDeath, Data: ecs.Death{Entity: e, Actor: name, At: now}})
	}
}

func loadEnemy(placed prefabs.ArenaEnemySpec) (*prefabs.EnemySpec, error) {
	spec, err := prefabs.LoadEnemySpec(placed.Prefab)
	if err != nil {
		return nil, err
	}
	if err := prefabs.ApplyOverrides(spec, placed.Overrides); err != nil {
		return nil, err
	}
	return spec, nil
}

func loadBoss(placed prefabs.ArenaBossSpec) (*prefabs.BossSpec, error) {
	spec, err := prefabs.LoadBossSpec(placed.Prefab)
	if err != nil {
		return nil, err
	}
	if err := prefabs.ApplyOverrides(spec, placed.Overrides); err != nil {
		return nil, err
	}
	return spec, nil
}

func addAll(errs ...error) error {
	return errors.Join(errs...)
}

func orFloat(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
