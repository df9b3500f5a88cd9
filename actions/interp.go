package actions

import (
	"fmt"

	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/common"
	"github.com/milk9111/actionkit/ecs"
	"github.com/milk9111/actionkit/ecs/component"
)

// interp tracks eased progress over a fixed duration.
type interp struct {
	duration float64
	elapsed  float64
	ease     Ease
}

func newInterp(duration float64, ease Ease) interp {
	if ease == nil {
		ease = Linear
	}
	return interp{duration: duration, ease: ease}
}

func (i *interp) instant() bool { return i.duration <= 0 }

func (i *interp) advance(dt float64) (float64, bool) {
	i.elapsed += dt
	p := common.Progress(i.elapsed, i.duration)
	return i.ease(p), p >= 1
}

type moveTo struct {
	action.BaseBehavior
	interp
	x, y         float64
	fromX, fromY float64
}

// InterpMoveTo moves the entity to x, y over duration seconds. A zero
// duration teleports.
func InterpMoveTo(x, y, duration float64, ease Ease) *action.Action {
	return action.New(&moveTo{interp: newInterp(duration, ease), x: x, y: y}, action.Move)
}

func (m *moveTo) Name() string { return "MoveTo" }

func (m *moveTo) Describe(a *action.Action) string {
	return fmt.Sprintf("MoveTo(%.1f, %.1f)", m.x, m.y)
}

func (m *moveTo) Execute(a *action.Action) action.Result {
	ref, ok := ecs.RefOf(a)
	if !ok {
		return action.Fail
	}
	if m.fromX, m.fromY, ok = ref.Position(); !ok {
		return action.Fail
	}
	if m.instant() {
		ref.SetPosition(m.x, m.y)
		return action.Success
	}
	return action.Wait
}

func (m *moveTo) Tick(a *action.Action, dt float64) action.Result {
	ref, ok := ecs.RefOf(a)
	if !ok {
		return action.Fail
	}
	t, done := m.advance(dt)
	ref.SetPosition(common.Lerp(m.fromX, m.x, t), common.Lerp(m.fromY, m.y, t))
	if done {
		return action.Success
	}
	return action.Wait
}

type rotateTo struct {
	action.BaseBehavior
	interp
	angle float64
	from  float64
}

// InterpRotateTo turns the entity to angle radians.
func InterpRotateTo(angle, duration float64, ease Ease) *action.Action {
	return action.New(&rotateTo{interp: newInterp(duration, ease), angle: angle}, action.Rotate)
}

func (r *rotateTo) Name() string { return "RotateTo" }

func (r *rotateTo) Describe(a *action.Action) string {
	return fmt.Sprintf("RotateTo(%.2f)", r.angle)
}

func (r *rotateTo) Execute(a *action.Action) action.Result {
	t, ok := transformOf(a)
	if !ok {
		return action.Fail
	}
	r.from = t.Rotation
	if r.instant() {
		t.Rotation = r.angle
		return action.Success
	}
	return action.Wait
}

func (r *rotateTo) Tick(a *action.Action, dt float64) action.Result {
	tr, ok := transformOf(a)
	if !ok {
		return action.Fail
	}
	t, done := r.advance(dt)
	tr.Rotation = common.Lerp(r.from, r.angle, t)
	if done {
		return action.Success
	}
	return action.Wait
}

type scaleTo struct {
	action.BaseBehavior
	interp
	sx, sy       float64
	fromX, fromY float64
}

// InterpScaleTo scales the entity to sx, sy.
func InterpScaleTo(sx, sy, duration float64, ease Ease) *action.Action {
	return action.New(&scaleTo{interp: newInterp(duration, ease), sx: sx, sy: sy}, action.Scale)
}

func (s *scaleTo) Name() string { return "ScaleTo" }

func (s *scaleTo) Describe(a *action.Action) string {
	return fmt.Sprintf("ScaleTo(%.2f, %.2f)", s.sx, s.sy)
}

func (s *scaleTo) Execute(a *action.Action) action.Result {
	t, ok := transformOf(a)
	if !ok {
		return action.Fail
	}
	s.fromX, s.fromY = t.ScaleX, t.ScaleY
	if s.instant() {
		t.ScaleX, t.ScaleY = s.sx, s.sy
		return action.Success
	}
	return action.Wait
}

func (s *scaleTo) Tick(a *action.Action, dt float64) action.Result {
	tr, ok := transformOf(a)
	if !ok {
		return action.Fail
	}
	t, done := s.advance(dt)
	tr.ScaleX = common.Lerp(s.fromX, s.sx, t)
	tr.ScaleY = common.Lerp(s.fromY, s.sy, t)
	if done {
		return action.Success
	}
	return action.Wait
}

func transformOf(a *action.Action) (*component.Transform, bool) {
	ref, ok := ecs.RefOf(a)
	if !ok {
		return nil, false
	}
	return ref.Transform()
}
