package ecs

import (
	"testing"

	"github.com/milk9111/actionkit/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhysicsWorldSyncsTransforms(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(0, 100)
	w.SetPhysicsWorld(pw)

	e := w.CreateEntity()
	require.NoError(t, Add(w, e, component.TransformComponent, component.NewTransform(5, 0)))
	body, err := pw.AddBody(w, e, 10, 10, 1)
	require.NoError(t, err)
	assert.True(t, Has(w, e, component.BodyComponent))
	assert.Equal(t, 1, pw.Len())

	pw.Step(w, 0.1)

	tr, _ := Get(w, e, component.TransformComponent)
	assert.InDelta(t, 5, tr.X, 1e-9)
	assert.InDelta(t, body.Position().Y, tr.Y, 1e-9)
	assert.Greater(t, tr.Y, 0.0)
}

func TestPhysicsWorldAddBodyErrors(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(0, 0)

	e := w.CreateEntity()
	_, err := pw.AddBody(w, e, 1, 1, 1)
	assert.ErrorIs(t, err, ErrNoTransform)

	w.DestroyEntity(e)
	_, err = pw.AddBody(w, e, 1, 1, 1)
	assert.ErrorIs(t, err, component.ErrEntityNotAlive)
}

func TestDestroyEntityRemovesBody(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(0, 0)
	w.SetPhysicsWorld(pw)
	e := w.CreateEntity()
	require.NoError(t, Add(w, e, component.TransformComponent, component.NewTransform(0, 0)))
	_, err := pw.AddBody(w, e, 1, 1, 1)
	require.NoError(t, err)

	w.DestroyEntity(e)
	assert.Equal(t, 0, pw.Len())
}

func TestSetGroundStopsFall(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(0, 900)
	pw.SetGround(100, -1000, 1000)
	w.SetPhysicsWorld(pw)

	e := w.CreateEntity()
	require.NoError(t, Add(w, e, component.TransformComponent, component.NewTransform(0, 80)))
	_, err := pw.AddBody(w, e, 10, 10, 1)
	require.NoError(t, err)

	for i := 0; i < 240; i++ {
		pw.Step(w, 1.0/60)
	}
	tr, _ := Get(w, e, component.TransformComponent)
	assert.InDelta(t, 95, tr.Y, 2)
}
