package behavior

import (
	"errors"
	"testing"
)

type enemyRig struct {
	self   *fakeLocator
	target *fakeDamageable
	anim   *fakeAnimation
	sound  *fakeSound
	move   *fakeMovement
	patrol *fakePatrol
	rnd    *fixedRandom
}

func newEnemyRig() *enemyRig {
	return &enemyRig{
		self:   &fakeLocator{},
		target: &fakeDamageable{},
		anim:   &fakeAnimation{},
		sound:  &fakeSound{},
		move:   &fakeMovement{},
		patrol: &fakePatrol{},
		rnd:    &fixedRandom{values: []int{5}},
	}
}

func (r *enemyRig) deps() EnemyDeps {
	return EnemyDeps{
		Self:      r.self,
		Target:    r.target,
		Animation: r.anim,
		Sound:     r.sound,
		Movement:  r.move,
		Patrol:    r.patrol,
		Random:    r.rnd,
	}
}

func testEnemyConfig() EnemyConfig {
	cfg := DefaultEnemyConfig()
	cfg.DistanceForTracking = 15
	cfg.DistanceForAttacking = 5
	cfg.DistanceToHearPatrolSounds = 20
	cfg.AttackFrequency = 2
	cfg.PatrolSounds = []string{"growl"}
	cfg.AttackSounds = []string{"swing"}
	return cfg
}

func mustEnemy(t *testing.T, r *enemyRig) *Enemy {
	t.Helper()
	e, err := NewEnemy(testEnemyConfig(), r.deps())
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	return e
}

func TestEnemyStaysPatrollingOutOfRange(t *testing.T) {
	r := newEnemyRig()
	e := mustEnemy(t, r)

	for i := 0; i < 10; i++ {
		e.Tick(at(25), 0.1)
	}
	if e.State() != EnemyPatrolling {
		t.Fatalf("state = %s, want patrolling", e.State())
	}
	if !r.patrol.on {
		t.Fatalf("patrol should still be running")
	}
	if len(r.move.destinations) != 0 {
		t.Fatalf("should not chase, got %d destinations", len(r.move.destinations))
	}
	if r.rnd.calls != 0 {
		t.Fatalf("no sound roll expected beyond hearing range, got %d", r.rnd.calls)
	}
}

func TestEnemyStartsTracking(t *testing.T) {
	r := newEnemyRig()
	e := mustEnemy(t, r)

	e.Tick(at(10), 0.1)
	if e.State() != EnemyTracking {
		t.Fatalf("state = %s, want tracking", e.State())
	}
	if r.patrol.on {
		t.Fatalf("patrol should be cancelled")
	}
	if r.anim.count(DefaultRunTrigger) != 1 {
		t.Fatalf("expected one run trigger, got %v", r.anim.triggers)
	}
	if len(r.move.destinations) != 1 || r.move.destinations[0] != at(10) {
		t.Fatalf("expected chase toward target, got %v", r.move.destinations)
	}
}

func TestEnemyPatrolSoundRoll(t *testing.T) {
	tests := []struct {
		name   string
		roll   int
		busy   bool
		played int
		calls  int
	}{
		{"roll_hits", 0, false, 1, 2},
		{"roll_misses", 7, false, 0, 1},
		{"channel_busy", 0, true, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newEnemyRig()
			r.rnd.values = []int{tc.roll}
			r.sound.busy = tc.busy
			e := mustEnemy(t, r)

			e.Tick(at(18), 0.1)
			if e.State() != EnemyPatrolling {
				t.Fatalf("state = %s, want patrolling", e.State())
			}
			if len(r.sound.played) != tc.played {
				t.Fatalf("played = %v, want %d clips", r.sound.played, tc.played)
			}
			if r.rnd.calls != tc.calls {
				t.Fatalf("random calls = %d, want %d", r.rnd.calls, tc.calls)
			}
		})
	}
}

func TestEnemyAttackCycle(t *testing.T) {
	r := newEnemyRig()
	e := mustEnemy(t, r)

	// close enough to cascade patrol -> track -> attack -> wait in one tick
	e.Tick(at(3), 0.5)
	if e.State() != EnemyWaiting {
		t.Fatalf("state = %s, want waiting", e.State())
	}
	if len(r.target.hits) != 1 || r.target.hits[0] != 10 {
		t.Fatalf("hits = %v, want [10]", r.target.hits)
	}
	if r.anim.count(DefaultAttackTrigger) != 1 {
		t.Fatalf("attack trigger count = %d", r.anim.count(DefaultAttackTrigger))
	}
	if len(r.sound.played) != 1 || r.sound.played[0] != "swing" {
		t.Fatalf("sounds = %v", r.sound.played)
	}

	// 0.5 already counted on entry; 1.0 more is still short of 2s
	e.Tick(at(3), 1.0)
	if e.State() != EnemyWaiting {
		t.Fatalf("state = %s, want waiting", e.State())
	}
	e.Tick(at(3), 0.5)
	if e.State() != EnemyAttacking {
		t.Fatalf("state = %s, want attacking after the attack frequency", e.State())
	}
	if len(r.target.hits) != 1 {
		t.Fatalf("no swing expected while waiting, hits = %v", r.target.hits)
	}

	e.Tick(at(3), 0.1)
	if len(r.target.hits) != 2 {
		t.Fatalf("second swing expected, hits = %v", r.target.hits)
	}
	if e.State() != EnemyWaiting {
		t.Fatalf("state = %s, want waiting", e.State())
	}
}

func TestEnemyWaitingFallsBackToTracking(t *testing.T) {
	r := newEnemyRig()
	e := mustEnemy(t, r)

	e.Tick(at(3), 0.1)
	runs := r.anim.count(DefaultRunTrigger)
	e.Tick(at(8), 2)
	if e.State() != EnemyTracking {
		t.Fatalf("state = %s, want tracking", e.State())
	}
	if r.anim.count(DefaultRunTrigger) != runs+1 {
		t.Fatalf("expected a chase cue when leaving waiting")
	}
}

func TestEnemyAttackOutOfRangeReturnsToTracking(t *testing.T) {
	r := newEnemyRig()
	e := mustEnemy(t, r)

	e.Tick(at(3), 0.1)
	e.Tick(at(3), 2)
	if e.State() != EnemyAttacking {
		t.Fatalf("state = %s, want attacking", e.State())
	}
	// target stepped away between ticks: the swing still lands, then chase
	e.Tick(at(6), 0.1)
	if e.State() != EnemyTracking {
		t.Fatalf("state = %s, want tracking", e.State())
	}
	if len(r.target.hits) != 2 {
		t.Fatalf("hits = %v", r.target.hits)
	}
}

func TestEnemyDeathIsTerminal(t *testing.T) {
	r := newEnemyRig()
	r.rnd.values = []int{1}
	e := mustEnemy(t, r)
	var transitions []EnemyState
	e.OnTransition = func(_, to EnemyState) { transitions = append(transitions, to) }

	e.Tick(at(10), 0.1)
	e.Hit(10)
	if !e.Dead() {
		t.Fatalf("enemy should be dead")
	}
	if !r.move.stopped || r.patrol.on {
		t.Fatalf("movement and patrol should be disabled")
	}
	if r.anim.triggers[len(r.anim.triggers)-1] != "FallForward" {
		t.Fatalf("expected random fall trigger, got %v", r.anim.triggers)
	}

	before := len(r.anim.triggers)
	dests := len(r.move.destinations)
	for i := 0; i < 20; i++ {
		e.Tick(at(1), 0.5)
	}
	e.Hit(99)
	if e.State() != EnemyDead {
		t.Fatalf("state = %s, want dead", e.State())
	}
	if len(r.anim.triggers) != before || len(r.move.destinations) != dests || len(r.target.hits) != 0 {
		t.Fatalf("dead enemy emitted side effects")
	}
	if transitions[len(transitions)-1] != EnemyDead {
		t.Fatalf("transitions = %v", transitions)
	}
}

func TestEnemyStateAlwaysEnumerated(t *testing.T) {
	r := newEnemyRig()
	r.rnd.values = []int{0, 3, 1, 0, 2}
	e := mustEnemy(t, r)
	distances := []float64{30, 19, 14, 4, 4, 6, 2, 12, 25, 1, 1, 1}
	for i, d := range distances {
		e.Tick(at(d), 0.7)
		switch e.State() {
		case EnemyPatrolling, EnemyTracking, EnemyAttacking, EnemyWaiting, EnemyDead:
		default:
			t.Fatalf("tick %d: unexpected state %d", i, e.State())
		}
	}
}

func TestNewEnemyValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EnemyConfig, *EnemyDeps)
		want   error
	}{
		{"no_fall_triggers", func(c *EnemyConfig, _ *EnemyDeps) { c.FallTriggers = nil }, ErrInvalidConfig},
		{"zero_patrol_chance", func(c *EnemyConfig, _ *EnemyDeps) { c.PatrolSoundChance = 0 }, ErrInvalidConfig},
		{"negative_range", func(c *EnemyConfig, _ *EnemyDeps) { c.DistanceForAttacking = -1 }, ErrInvalidConfig},
		{"missing_target", func(_ *EnemyConfig, d *EnemyDeps) { d.Target = nil }, ErrMissingCollaborator},
		{"missing_random", func(_ *EnemyConfig, d *EnemyDeps) { d.Random = nil }, ErrMissingCollaborator},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testEnemyConfig()
			deps := newEnemyRig().deps()
			tc.mutate(&cfg, &deps)
			_, err := NewEnemy(cfg, deps)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Actor != "enemy" {
				t.Fatalf("expected enemy ConfigError, got %T", err)
			}
		})
	}
}

func TestEnemyReconfigure(t *testing.T) {
	r := newEnemyRig()
	e := mustEnemy(t, r)

	bad := testEnemyConfig()
	bad.FallTriggers = nil
	if err := e.Reconfigure(bad); err == nil {
		t.Fatalf("expected validation error")
	}

	wide := testEnemyConfig()
	wide.DistanceForTracking = 30
	if err := e.Reconfigure(wide); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	e.Tick(at(25), 0.1)
	if e.State() != EnemyTracking {
		t.Fatalf("state = %s, want tracking with the wider range", e.State())
	}
}
