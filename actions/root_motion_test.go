package actions

import (
	"testing"

	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootMotionConstantWithoutBody(t *testing.T) {
	f := newFixture(t)
	a := RootMotionConstant(10, -4, 1)
	require.Equal(t, action.Wait, f.reg.StartAction(a))

	f.step(1, 0.5)
	tr := f.transform(t)
	assert.InDelta(t, 5, tr.X, 1e-9)
	assert.InDelta(t, -2, tr.Y, 1e-9)

	f.step(2, 0.5)
	assert.InDelta(t, 10, tr.X, 1e-9)
	assert.InDelta(t, -4, tr.Y, 1e-9)
	assert.Equal(t, action.Succeeded, a.State())
}

func TestRootMotionConstantDrivesBody(t *testing.T) {
	f := newFixture(t)
	pw := ecs.NewPhysicsWorld(0, 0)
	f.world.SetPhysicsWorld(pw)
	body, err := pw.AddBody(f.world, f.entity, 10, 10, 1)
	require.NoError(t, err)

	a := RootMotionConstant(100, 0, 0)
	require.Equal(t, action.Wait, f.reg.StartAction(a))

	f.step(1, 0.1)
	assert.InDelta(t, 10, f.transform(t).X, 1e-6)
	assert.InDelta(t, 100, body.Velocity().X, 1e-9)

	f.reg.StopMove()
	assert.Equal(t, action.Aborted, a.State())
	assert.InDelta(t, 0, body.Velocity().X, 1e-9)
}

func TestRootMotionJumpWithoutBody(t *testing.T) {
	f := newFixture(t)
	a := RootMotionJump(10, 1)
	require.Equal(t, action.Wait, f.reg.StartAction(a))

	f.step(1, 0.5)
	assert.InDelta(t, -10, f.transform(t).Y, 1e-9)

	f.step(1, 0.5)
	assert.InDelta(t, 0, f.transform(t).Y, 1e-9)
	assert.Equal(t, action.Succeeded, a.State())
}

func TestRootMotionJumpLaunchesBody(t *testing.T) {
	f := newFixture(t)
	pw := ecs.NewPhysicsWorld(0, 900)
	f.world.SetPhysicsWorld(pw)
	body, err := pw.AddBody(f.world, f.entity, 10, 10, 2)
	require.NoError(t, err)

	a := RootMotionJump(50, 0.5)
	require.Equal(t, action.Wait, f.reg.StartAction(a))
	assert.InDelta(t, -300, body.Velocity().Y, 1e-6)

	f.step(1, 0.1)
	assert.Less(t, f.transform(t).Y, 0.0)
}

func TestRootMotionJumpNeedsDuration(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, action.Fail, f.reg.StartAction(RootMotionJump(10, 0)))
}
