package system

import (
	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
)

// BossSystem ticks every boss. Dead bosses still tick so their pending
// attacks land.
type BossSystem struct{}

func NewBossSystem() *BossSystem { return &BossSystem{} }

func (s *BossSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	target, ok := playerPosition(w)
	if !ok {
		return
	}
	ecs.ForEach(w, component.BossComponent.Kind(), func(_ ecs.Entity, b *component.Boss) {
		if b.Brain != nil {
			b.Brain.Tick(target, w.Delta())
		}
	})
}

func playerPosition(w *ecs.World) (pos common.Vec3, ok bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return pos, false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return pos, false
	}
	return t.Position, true
}
