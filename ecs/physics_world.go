package ecs

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/actionkit/ecs/component"
)

var ErrNoTransform = errors.New("ecs: entity has no transform")

// PhysicsWorld owns the Chipmunk space and maps bodies back to entities.
type PhysicsWorld struct {
	space  *cp.Space
	bodies map[Entity]*component.Body
	ground *cp.Shape
}

// NewPhysicsWorld creates a space with the given gravity.
func NewPhysicsWorld(gravityX, gravityY float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: gravityX, Y: gravityY})
	return &PhysicsWorld{
		space:  space,
		bodies: make(map[Entity]*component.Body),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// SetGround places a static floor segment at y spanning left to right.
func (pw *PhysicsWorld) SetGround(y, left, right float64) {
	if pw.ground != nil {
		pw.space.RemoveShape(pw.ground)
	}
	shape := cp.NewSegment(pw.space.StaticBody, cp.Vector{X: left, Y: y}, cp.Vector{X: right, Y: y}, 1)
	shape.SetFriction(0.8)
	pw.space.AddShape(shape)
	pw.ground = shape
}

// AddBody creates a dynamic box body for e centered on its transform and
// stores it as e's Body component.
func (pw *PhysicsWorld) AddBody(w *World, e Entity, width, height, mass float64) (*cp.Body, error) {
	if !w.IsAlive(e) {
		return nil, component.ErrEntityNotAlive
	}
	t, ok := Get(w, e, component.TransformComponent)
	if !ok {
		return nil, ErrNoTransform
	}
	pw.RemoveBody(e)
	if mass <= 0 {
		mass = 1
	}

	body := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.SetAngle(t.Rotation)
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0.8)
	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	comp := component.Body{Body: body, Shape: shape, Width: width, Height: height, Mass: mass}
	if err := Add(w, e, component.BodyComponent, comp); err != nil {
		pw.space.RemoveShape(shape)
		pw.space.RemoveBody(body)
		return nil, err
	}
	stored, _ := Get(w, e, component.BodyComponent)
	pw.bodies[e] = stored
	return body, nil
}

// RemoveBody drops e's body from the space.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil {
		return
	}
	b, ok := pw.bodies[e]
	if !ok {
		return
	}
	if b.Shape != nil {
		pw.space.RemoveShape(b.Shape)
	}
	if b.Body != nil {
		pw.space.RemoveBody(b.Body)
	}
	delete(pw.bodies, e)
}

// Step advances the simulation and copies body positions into transforms.
func (pw *PhysicsWorld) Step(w *World, dt float64) {
	if pw == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
	for e, b := range pw.bodies {
		t, ok := Get(w, e, component.TransformComponent)
		if !ok || b.Body == nil {
			continue
		}
		pos := b.Body.Position()
		t.X, t.Y = pos.X, pos.Y
	}
}

func (pw *PhysicsWorld) Len() int {
	if pw == nil {
		return 0
	}
	return len(pw.bodies)
}
