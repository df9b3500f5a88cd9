package actions

import (
	"fmt"

	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/ecs"
)

const (
	ReasonAnimationEnded       = "animation ended"
	ReasonAnimationInterrupted = "animation interrupted"
	ReasonMoved                = "moved"
)

type AnimationOptions struct {
	// Priority orders animations; a running animation of equal or higher
	// priority makes the new one fail to start.
	Priority int
	// NonBlocking succeeds as soon as the clip starts.
	NonBlocking bool
	// StopWhenMoving aborts once the entity leaves its start position.
	StopWhenMoving bool
}

type playAnimation struct {
	action.BaseBehavior
	clip string
	opts AnimationOptions

	startX, startY float64
	done           bool
}

// PlayAnimation plays clip on the entity's Animation component. Blocking
// plays finish when the clip ends; looping clips run until stopped.
func PlayAnimation(clip string, opts AnimationOptions) *action.Action {
	return action.New(&playAnimation{clip: clip, opts: opts}, action.Animation)
}

func (p *playAnimation) Name() string { return "PlayAnimation" }

func (p *playAnimation) Describe(a *action.Action) string {
	return fmt.Sprintf("PlayAnimation(%s)", p.clip)
}

func (p *playAnimation) Execute(a *action.Action) action.Result {
	ref, ok := ecs.RefOf(a)
	if !ok {
		return action.Fail
	}
	anim, ok := ref.Animation()
	if !ok {
		return action.Fail
	}
	if p.outranked(a) {
		return action.Fail
	}
	p.startX, p.startY, _ = ref.Position()
	p.done = false

	if p.opts.NonBlocking {
		if !anim.Play(p.clip, p.opts.Priority, nil) {
			return action.Fail
		}
		return action.Success
	}

	ok = anim.Play(p.clip, p.opts.Priority, func(_ string, interrupted bool) {
		p.done = true
		if interrupted {
			a.NotifyTerminal(action.Abort, ReasonAnimationInterrupted)
			return
		}
		a.NotifyTerminal(action.Success, ReasonAnimationEnded)
	})
	if !ok {
		return action.Fail
	}
	return action.Wait
}

// outranked reports whether another running animation leaf on the registry
// has at least this one's priority.
func (p *playAnimation) outranked(a *action.Action) bool {
	reg := a.Registry()
	if reg == nil {
		return false
	}
	for _, leaf := range reg.ActiveLeaves() {
		if leaf == a {
			continue
		}
		other, ok := leaf.Behavior().(*playAnimation)
		if ok && !other.done && other.opts.Priority >= p.opts.Priority {
			return true
		}
	}
	return false
}

func (p *playAnimation) Tick(a *action.Action, dt float64) action.Result {
	if !p.opts.StopWhenMoving {
		return action.Wait
	}
	ref, ok := ecs.RefOf(a)
	if !ok {
		return action.Fail
	}
	if x, y, ok := ref.Position(); ok && (x != p.startX || y != p.startY) {
		return action.Abort
	}
	return action.Wait
}

// Finish stops the clip unless it already ended on its own.
func (p *playAnimation) Finish(a *action.Action, result action.Result, reason string, stop action.Category) bool {
	if p.done {
		return true
	}
	p.done = true
	if ref, ok := ecs.RefOf(a); ok {
		if anim, ok := ref.Animation(); ok && anim.Current == p.clip {
			anim.Stop()
		}
	}
	return true
}
