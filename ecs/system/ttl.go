package system

import (
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
)

// TTLSystem counts TTL components down and destroys entities whose time is
// up.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl == nil {
			return
		}
		ttl.Remaining -= w.Delta()
		if ttl.Remaining > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
	})
}
