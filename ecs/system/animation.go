package system

import (
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
)

// AnimationSystem ages the last fired trigger of every animated entity.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem { return &AnimationSystem{} }

func (s *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, a *component.Animation) {
		a.Since += w.Delta()
	})
}
