package arena

import (
	"errors"
	"testing"

	"github.com/milk9111/shooter/behavior"
	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
	"github.com/milk9111/shooter/prefabs"
)

func build(t *testing.T, spec *prefabs.ArenaSpec, opts Options) (*Arena, *ecs.Scheduler) {
	t.Helper()
	a, err := Build(ecs.NewWorld(), spec, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return a, a.Scheduler()
}

func eventsOf(a *Arena, typ string) []ecs.Event {
	var out []ecs.Event
	for _, evt := range a.World.Events().Drain() {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}

func playerAt(x, z float64) prefabs.ArenaPlayerSpec {
	return prefabs.ArenaPlayerSpec{Prefab: "player.yaml", Position: prefabs.PositionSpec{X: x, Z: z}}
}

func TestLoadDefaultArena(t *testing.T) {
	a, err := Load(DefaultArena, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(a.Enemies) != 2 || !a.HasBoss || len(a.Pickups) != 2 {
		t.Fatalf("got %d enemies, boss=%t, %d pickups", len(a.Enemies), a.HasBoss, len(a.Pickups))
	}
	if !ecs.IsAlive(a.World, a.Player) || !ecs.IsAlive(a.World, a.Projectile) {
		t.Fatalf("expected live player and projectile")
	}

	freqs := make([]float64, 0, 2)
	for _, e := range a.Enemies {
		en, ok := ecs.Get(a.World, e, component.EnemyComponent.Kind())
		if !ok {
			t.Fatalf("enemy %v has no Enemy component", e)
		}
		freqs = append(freqs, en.Brain.Config().AttackFrequency)
	}
	if freqs[0] != 2 || freqs[1] != 1.5 {
		t.Fatalf("expected attack frequencies [2 1.5], got %v", freqs)
	}
	if a.Colors[a.Enemies[0]] == nil || a.Colors[a.Enemies[1]] == nil {
		t.Fatalf("expected enemy colors")
	}
	if a.Colors[a.Enemies[0]].Color == a.Colors[a.Enemies[1]].Color {
		t.Fatalf("expected the override to recolor the second enemy")
	}

	if pw := a.World.PhysicsWorld(); pw == nil || !pw.Has(a.Player) || !pw.Has(a.Projectile) {
		t.Fatalf("expected player and projectile bodies")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		spec *prefabs.ArenaSpec
		want error
	}{
		{name: "no player", spec: &prefabs.ArenaSpec{}, want: ErrNoPlayer},
		{name: "missing enemy prefab", spec: &prefabs.ArenaSpec{
			Player:  playerAt(0, 0),
			Enemies: []prefabs.ArenaEnemySpec{{Prefab: "nope.yaml"}},
		}},
		{name: "bad override", spec: &prefabs.ArenaSpec{
			Player:  playerAt(0, 0),
			Enemies: []prefabs.ArenaEnemySpec{{Prefab: "enemy.yaml", Overrides: map[string]any{"attack_frequency": -1}}},
		}, want: behavior.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(ecs.NewWorld(), tt.spec, Options{})
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEnemySwingsInOneTick(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		t.Run(name, func(t *testing.T) {
			a, s := build(t, &prefabs.ArenaSpec{
				Player: playerAt(0, 0),
				Enemies: []prefabs.ArenaEnemySpec{
					{Prefab: "enemy.yaml", Position: prefabs.PositionSpec{Z: 2}},
					{Prefab: "enemy.yaml", Position: prefabs.PositionSpec{X: 2}},
				},
			}, Options{Parallel: parallel})

			s.Run(a.World, 0.1, 1)

			if got := a.PlayerTarget().Health(); got != 80 {
				t.Fatalf("expected health 80 after two swings, got %d", got)
			}
			for _, e := range a.Enemies {
				en, _ := ecs.Get(a.World, e, component.EnemyComponent.Kind())
				if en.Brain.State() != behavior.EnemyWaiting {
					t.Fatalf("%s: expected waiting, got %v", en.Name, en.Brain.State())
				}
			}

			damage := eventsOf(a, ecs.EventDamage)
			if len(damage) != 2 {
				t.Fatalf("expected 2 damage events, got %d", len(damage))
			}
			sources := map[string]bool{}
			for _, evt := range damage {
				sources[evt.Data.(ecs.Damage).Source] = true
			}
			if !sources["grunt#1"] || !sources["grunt#2"] {
				t.Fatalf("expected both grunts as sources, got %v", sources)
			}
		})
	}
}

func TestParallelArenaSerializesPlayer(t *testing.T) {
	a, _ := build(t, &prefabs.ArenaSpec{Player: playerAt(0, 0)}, Options{Parallel: true})
	p, _ := ecs.Get(a.World, a.Player, component.PlayerComponent.Kind())
	if _, ok := p.Shared.(*behavior.SerializedTarget); !ok {
		t.Fatalf("expected a serialized target, got %T", p.Shared)
	}
}

func TestShotKillsEnemy(t *testing.T) {
	a, s := build(t, &prefabs.ArenaSpec{
		Player:  playerAt(0, 0),
		Enemies: []prefabs.ArenaEnemySpec{{Prefab: "enemy.yaml", Position: prefabs.PositionSpec{Z: 10}}},
	}, Options{})

	in := a.Input()
	in.Aim.Z = 1
	in.Shoot = true
	s.Run(a.World, 0.1, 1)

	en, _ := ecs.Get(a.World, a.Enemies[0], component.EnemyComponent.Kind())
	if !en.Brain.Dead() {
		t.Fatalf("expected the enemy to die, got %v", en.Brain.State())
	}
	if got := a.PlayerTarget().CurrentWeapon().Ammo; got != 11 {
		t.Fatalf("expected 11 pistol rounds left, got %d", got)
	}
	if in.Shoot {
		t.Fatalf("expected the shoot edge to be cleared")
	}

	events := a.World.Events().Drain()
	var shots, deaths int
	for _, evt := range events {
		switch evt.Type {
		case ecs.EventShot:
			shots++
			if shot := evt.Data.(ecs.Shot); !shot.Hit || shot.Victim != a.Enemies[0] {
				t.Fatalf("expected a hit on the enemy, got %+v", shot)
			}
		case ecs.EventDeath:
			deaths++
		}
	}
	if shots != 1 || deaths != 1 {
		t.Fatalf("expected one shot and one death, got %d and %d", shots, deaths)
	}
	if ecs.Count(a.World, component.TracerComponent.Kind()) != 1 {
		t.Fatalf("expected a tracer")
	}
}

func TestBossStompHitsGroundedPlayer(t *testing.T) {
	a, s := build(t, &prefabs.ArenaSpec{
		Player: playerAt(0, 0),
		Boss:   &prefabs.ArenaBossSpec{Prefab: "boss.yaml", Position: prefabs.PositionSpec{Z: 3}},
	}, Options{})

	landed := false
	for i := 0; i < 30 && !landed; i++ {
		s.Run(a.World, 0.1, 1)
		landed = a.PlayerTarget().Health() != 100
	}
	if !landed {
		t.Fatalf("expected the shockwave to land")
	}
	if got := a.PlayerTarget().Health(); got != 80 {
		t.Fatalf("expected health 80, got %d", got)
	}
	if ecs.Count(a.World, component.ShockwaveComponent.Kind()) != 1 {
		t.Fatalf("expected a shockwave effect")
	}
	anim, _ := ecs.Get(a.World, a.Boss, component.AnimationComponent.Kind())
	if anim.Current != "Stomp" {
		t.Fatalf("expected the Stomp animation, got %q", anim.Current)
	}
}

func TestBossProjectileHitsPlayerOnce(t *testing.T) {
	a, s := build(t, &prefabs.ArenaSpec{
		Player: playerAt(0, 0),
		Boss:   &prefabs.ArenaBossSpec{Prefab: "boss.yaml", Position: prefabs.PositionSpec{Z: 8}},
	}, Options{})

	s.Run(a.World, 1.0/60, 180)

	if got := a.PlayerTarget().Health(); got != 70 {
		t.Fatalf("expected health 70 after one projectile, got %d", got)
	}
	proj, _ := ecs.Get(a.World, a.Projectile, component.ProjectileComponent.Kind())
	if proj.Attached || proj.CollisionEnabled {
		t.Fatalf("expected a spent projectile in flight, got %+v", proj)
	}

	damage := eventsOf(a, ecs.EventDamage)
	if len(damage) != 1 || damage[0].Data.(ecs.Damage).Source != "brute" {
		t.Fatalf("expected one hit from the brute, got %+v", damage)
	}
}

func TestPickupTopsUpAmmo(t *testing.T) {
	a, s := build(t, &prefabs.ArenaSpec{
		Player: playerAt(0, 0),
		Pickups: []prefabs.ArenaPickupSpec{
			{Prefab: "ammo_pickup.yaml"},
			{Prefab: "health_pickup.yaml", Position: prefabs.PositionSpec{X: 0.5}},
		},
	}, Options{})

	s.Run(a.World, 0.1, 1)
	if n := len(eventsOf(a, ecs.EventPickup)); n != 0 {
		t.Fatalf("expected full resources to skip both pickups, got %d", n)
	}

	target := a.PlayerTarget()
	target.NextWeapon()
	target.Shoot(common.Vec3{}, common.Vec3{Z: 1}, nil)
	if got := target.CurrentWeapon().Ammo; got != 57 {
		t.Fatalf("expected 57 rounds after one burst, got %d", got)
	}

	s.Run(a.World, 0.1, 1)
	if got := target.CurrentWeapon().Ammo; got != 60 {
		t.Fatalf("expected the box to refill to 60, got %d", got)
	}
	picked := eventsOf(a, ecs.EventPickup)
	if len(picked) != 1 || picked[0].Data.(ecs.PickupCollected).Kind != "ammo" {
		t.Fatalf("expected one ammo pickup event, got %+v", picked)
	}

	pk, _ := ecs.Get(a.World, a.Pickups[0], component.PickupComponent.Kind())
	if pk.Visible {
		t.Fatalf("expected the collected box to hide")
	}

	s.Run(a.World, 0.1, 25)
	if ecs.IsAlive(a.World, a.Pickups[0]) {
		t.Fatalf("expected the box to be removed after its delay")
	}
	if !ecs.IsAlive(a.World, a.Pickups[1]) {
		t.Fatalf("expected the health box to stay")
	}
}

func TestReloadKeepsActorsRunning(t *testing.T) {
	a, err := Load(DefaultArena, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, name := range []string{"enemy.yaml", "boss.yaml", "player.yaml"} {
		if err := a.Reload(name); err != nil {
			t.Fatalf("Reload(%s): %v", name, err)
		}
	}
	en, _ := ecs.Get(a.World, a.Enemies[1], component.EnemyComponent.Kind())
	if got := en.Brain.Config().AttackFrequency; got != 1.5 {
		t.Fatalf("expected the placement override to survive a reload, got %v", got)
	}
}
