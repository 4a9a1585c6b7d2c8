package system

import (
	"runtime"

	"github.com/milk9111/shooter/behavior"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
	"golang.org/x/sync/errgroup"
)

// EnemySystem ticks every melee enemy against the player's position. With
// Parallel set the enemies tick on a bounded pool of goroutines; each enemy
// only touches its own components and the player is reached through a
// serialized target.
type EnemySystem struct {
	Parallel bool
	Workers  int
}

func NewEnemySystem(parallel bool) *EnemySystem {
	return &EnemySystem{Parallel: parallel, Workers: runtime.GOMAXPROCS(0)}
}

func (s *EnemySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	target, ok := playerPosition(w)
	if !ok {
		return
	}
	dt := w.Delta()

	var brains []*behavior.Enemy
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(_ ecs.Entity, en *component.Enemy) {
		if en.Brain != nil && !en.Brain.Dead() {
			brains = append(brains, en.Brain)
		}
	})

	if !s.Parallel || len(brains) < 2 {
		for _, b := range brains {
			b.Tick(target, dt)
		}
		return
	}

	var g errgroup.Group
	if s.Workers > 0 {
		g.SetLimit(s.Workers)
	}
	for _, b := range brains {
		g.Go(func() error {
			b.Tick(target, dt)
			return nil
		})
	}
	_ = g.Wait()
}
