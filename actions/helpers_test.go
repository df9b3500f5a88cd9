package actions

import (
	"testing"

	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/ecs"
	"github.com/milk9111/actionkit/ecs/component"
	"github.com/milk9111/actionkit/ecs/system"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	world  *ecs.World
	entity ecs.Entity
	reg    *action.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	w := ecs.NewWorld()
	w.AddSystem(system.NewActionSystem())
	w.AddSystem(system.NewAnimationSystem())
	w.AddSystem(system.NewPhysicsSystem())

	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, component.NewTransform(0, 0)))
	require.NoError(t, ecs.Add(w, e, component.MeshTransformComponent, component.MeshTransform{Scale: 1}))
	require.NoError(t, ecs.Add(w, e, component.AnimationComponent, component.NewAnimation(
		component.Clip{Name: "idle", Duration: 1, Loop: true},
		component.Clip{Name: "wave", Duration: 0.5},
		component.Clip{Name: "attack", Duration: 0.5},
	)))
	reg, err := ecs.AttachActions(w, e)
	require.NoError(t, err)
	return &fixture{world: w, entity: e, reg: reg}
}

func (f *fixture) ref() ecs.Ref {
	return ecs.Ref{World: f.world, Entity: f.entity}
}

func (f *fixture) step(n int, dt float64) {
	for i := 0; i < n; i++ {
		f.world.Step(dt)
	}
}

func (f *fixture) transform(t *testing.T) *component.Transform {
	t.Helper()
	tr, ok := f.ref().Transform()
	require.True(t, ok)
	return tr
}

func (f *fixture) animation(t *testing.T) *component.Animation {
	t.Helper()
	anim, ok := f.ref().Animation()
	require.True(t, ok)
	return anim
}
