package actions

import (
	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/common"
	"github.com/milk9111/actionkit/ecs"
	"github.com/milk9111/actionkit/ecs/component"
)

// MeshChannels is the category of a full mesh transform blend.
const MeshChannels = action.MeshMove | action.MeshRotate | action.MeshScale

type meshTo struct {
	action.BaseBehavior
	interp
	target component.MeshTransform
	from   component.MeshTransform
}

// InterpMeshTransformTo blends the entity's mesh offset, rotation and scale
// towards target. A stop that covers only some channels freezes those and
// keeps blending the rest.
func InterpMeshTransformTo(target component.MeshTransform, duration float64, ease Ease) *action.Action {
	return action.New(&meshTo{interp: newInterp(duration, ease), target: target}, MeshChannels)
}

func (m *meshTo) Name() string { return "MeshTransformTo" }

func (m *meshTo) Execute(a *action.Action) action.Result {
	mesh, ok := meshOf(a)
	if !ok {
		return action.Fail
	}
	m.from = *mesh
	if m.instant() {
		m.apply(a.Category(), mesh, 1)
		return action.Success
	}
	return action.Wait
}

func (m *meshTo) Tick(a *action.Action, dt float64) action.Result {
	mesh, ok := meshOf(a)
	if !ok {
		return action.Fail
	}
	t, done := m.advance(dt)
	m.apply(a.Category(), mesh, t)
	if done {
		return action.Success
	}
	return action.Wait
}

// Finish sheds the stopped channels and refuses while any channel remains.
func (m *meshTo) Finish(a *action.Action, result action.Result, reason string, stop action.Category) bool {
	if result != action.Abort || stop == action.Default {
		return true
	}
	remaining := a.Category().Without(stop)
	if remaining == action.Default {
		return true
	}
	a.SetCategory(remaining)
	return false
}

func (m *meshTo) apply(channels action.Category, mesh *component.MeshTransform, t float64) {
	if channels.Overlaps(action.MeshMove) {
		mesh.OffsetX = common.Lerp(m.from.OffsetX, m.target.OffsetX, t)
		mesh.OffsetY = common.Lerp(m.from.OffsetY, m.target.OffsetY, t)
	}
	if channels.Overlaps(action.MeshRotate) {
		mesh.Rotation = common.Lerp(m.from.Rotation, m.target.Rotation, t)
	}
	if channels.Overlaps(action.MeshScale) {
		mesh.Scale = common.Lerp(m.from.Scale, m.target.Scale, t)
	}
}

func meshOf(a *action.Action) (*component.MeshTransform, bool) {
	ref, ok := ecs.RefOf(a)
	if !ok {
		return nil, false
	}
	return ref.MeshTransform()
}
