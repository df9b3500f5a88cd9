package ecs

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/ecs/component"
)

// Ref is the owner handle given to an entity's action registry. Leaves use
// it to reach the components they drive.
type Ref struct {
	World  *World
	Entity Entity
}

// RefOf returns the entity an action acts for, if it is still alive.
func RefOf(a *action.Action) (Ref, bool) {
	if a == nil {
		return Ref{}, false
	}
	r, ok := a.Owner().(Ref)
	return r, ok && r.Alive()
}

func (r Ref) Alive() bool {
	return r.World != nil && r.World.IsAlive(r.Entity)
}

func (r Ref) Transform() (*component.Transform, bool) {
	return Get(r.World, r.Entity, component.TransformComponent)
}

func (r Ref) MeshTransform() (*component.MeshTransform, bool) {
	return Get(r.World, r.Entity, component.MeshTransformComponent)
}

func (r Ref) Animation() (*component.Animation, bool) {
	return Get(r.World, r.Entity, component.AnimationComponent)
}

// Body returns the entity's Chipmunk body when it has one.
func (r Ref) Body() (*cp.Body, bool) {
	b, ok := Get(r.World, r.Entity, component.BodyComponent)
	if !ok || b.Body == nil {
		return nil, false
	}
	return b.Body, true
}

// Actions returns the entity's registry, or nil.
func (r Ref) Actions() *action.Registry {
	a, ok := Get(r.World, r.Entity, component.ActionsComponent)
	if !ok {
		return nil
	}
	return a.Registry
}

func (r Ref) Position() (x, y float64, ok bool) {
	t, ok := r.Transform()
	if !ok {
		return 0, 0, false
	}
	return t.X, t.Y, true
}

// SetPosition moves the entity, teleporting its body along with it.
func (r Ref) SetPosition(x, y float64) bool {
	t, ok := r.Transform()
	if !ok {
		return false
	}
	t.X, t.Y = x, y
	if body, ok := r.Body(); ok {
		body.SetPosition(cp.Vector{X: x, Y: y})
		body.SetVelocityVector(cp.Vector{})
	}
	return true
}

// MoveBy offsets the entity's position.
func (r Ref) MoveBy(dx, dy float64) bool {
	x, y, ok := r.Position()
	if !ok {
		return false
	}
	return r.SetPosition(x+dx, y+dy)
}
