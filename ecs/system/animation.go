package system

import (
	"github.com/milk9111/actionkit/ecs"
	"github.com/milk9111/actionkit/ecs/component"
)

// AnimationSystem advances playing clips. A clip reaching its end fires the
// listeners registered with Play, which is how blocking animation actions
// learn they are done.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	dt := w.DeltaTime()
	ecs.ForEach(w, component.AnimationComponent, func(e ecs.Entity, anim *component.Animation) {
		clip := anim.Current
		if anim.Advance(dt) {
			w.Events().Push(ecs.Event{
				Type: ecs.EventAnimationEnded,
				Data: ecs.AnimationEvent{Entity: e, Clip: clip},
			})
		}
	})
}
