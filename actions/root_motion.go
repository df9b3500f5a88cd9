package actions

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/ecs"
)

type rootMotion struct {
	action.BaseBehavior
	vx, vy   float64
	duration float64
	elapsed  float64
}

// RootMotionConstant drives the entity at a constant velocity for duration
// seconds, or until stopped when duration is not positive. Entities with a
// physics body are moved through the body.
func RootMotionConstant(vx, vy, duration float64) *action.Action {
	return action.New(&rootMotion{vx: vx, vy: vy, duration: duration}, action.Move)
}

func (r *rootMotion) Name() string { return "RootMotion" }

func (r *rootMotion) Describe(a *action.Action) string {
	return fmt.Sprintf("RootMotion(%.1f, %.1f)", r.vx, r.vy)
}

func (r *rootMotion) Execute(a *action.Action) action.Result {
	ref, ok := ecs.RefOf(a)
	if !ok {
		return action.Fail
	}
	if _, ok := ref.Transform(); !ok {
		return action.Fail
	}
	r.elapsed = 0
	if body, ok := ref.Body(); ok {
		body.SetVelocityVector(cp.Vector{X: r.vx, Y: r.vy})
	}
	return action.Wait
}

func (r *rootMotion) Tick(a *action.Action, dt float64) action.Result {
	ref, ok := ecs.RefOf(a)
	if !ok {
		return action.Fail
	}
	step := dt
	if r.duration > 0 {
		step = math.Min(dt, r.duration-r.elapsed)
	}
	r.elapsed += dt

	if body, ok := ref.Body(); ok {
		body.SetVelocityVector(cp.Vector{X: r.vx, Y: r.vy})
	} else {
		ref.MoveBy(r.vx*step, r.vy*step)
	}
	if r.duration > 0 && r.elapsed >= r.duration {
		return action.Success
	}
	return action.Wait
}

func (r *rootMotion) Finish(a *action.Action, result action.Result, reason string, stop action.Category) bool {
	if ref, ok := ecs.RefOf(a); ok {
		if body, ok := ref.Body(); ok {
			body.SetVelocityVector(cp.Vector{})
		}
	}
	return true
}

type jump struct {
	action.BaseBehavior
	height   float64
	duration float64
	elapsed  float64
	startY   float64
}

// RootMotionJump lifts the entity by height and lands it after duration
// seconds. Bodies get a vertical impulse sized for the space's gravity;
// entities without one follow a parabola.
func RootMotionJump(height, duration float64) *action.Action {
	return action.New(&jump{height: height, duration: duration}, action.Move)
}

func (j *jump) Name() string { return "Jump" }

func (j *jump) Describe(a *action.Action) string {
	return fmt.Sprintf("Jump(%.1f)", j.height)
}

func (j *jump) Execute(a *action.Action) action.Result {
	ref, ok := ecs.RefOf(a)
	if !ok || j.duration <= 0 {
		return action.Fail
	}
	_, y, ok := ref.Position()
	if !ok {
		return action.Fail
	}
	j.startY = y
	j.elapsed = 0

	if body, ok := ref.Body(); ok && ref.World.PhysicsWorld() != nil {
		g := ref.World.PhysicsWorld().Space().Gravity().Y
		if g > 0 {
			v := math.Sqrt(2 * g * j.height)
			impulse := cp.Vector{X: 0, Y: -v * body.Mass()}
			body.ApplyImpulseAtWorldPoint(impulse, body.Position())
		}
	}
	return action.Wait
}

func (j *jump) Tick(a *action.Action, dt float64) action.Result {
	ref, ok := ecs.RefOf(a)
	if !ok {
		return action.Fail
	}
	j.elapsed += dt
	t := math.Min(j.elapsed/j.duration, 1)

	if _, ok := ref.Body(); !ok {
		x, _, _ := ref.Position()
		ref.SetPosition(x, j.startY-4*j.height*t*(1-t))
	}
	if t >= 1 {
		return action.Success
	}
	return action.Wait
}
