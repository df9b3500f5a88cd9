package system

import (
	"github.com/milk9111/actionkit/ecs"
	"github.com/milk9111/actionkit/ecs/component"
)

// ActionSystem ticks every entity's action registry once per step.
type ActionSystem struct{}

func NewActionSystem() *ActionSystem {
	return &ActionSystem{}
}

func (s *ActionSystem) Update(w *ecs.World) {
	dt := w.DeltaTime()
	ecs.ForEach(w, component.ActionsComponent, func(e ecs.Entity, actions *component.Actions) {
		if actions.Registry == nil {
			return
		}
		actions.Registry.Tick(dt)
	})
}
