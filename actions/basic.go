package actions

import (
	"fmt"

	"github.com/milk9111/actionkit/action"
)

type wait struct {
	action.BaseBehavior
	delay   float64
	elapsed float64
}

// Wait succeeds after delay seconds of ticks. A non-positive delay succeeds
// on start.
func Wait(delay float64) *action.Action {
	return action.New(&wait{delay: delay}, action.Default)
}

func (w *wait) Name() string { return "Wait" }

func (w *wait) Describe(a *action.Action) string {
	return fmt.Sprintf("Wait(%.2fs)", w.delay)
}

func (w *wait) Execute(a *action.Action) action.Result {
	w.elapsed = 0
	if w.delay <= 0 {
		return action.Success
	}
	return action.Wait
}

func (w *wait) Tick(a *action.Action, dt float64) action.Result {
	w.elapsed += dt
	if w.elapsed >= w.delay {
		return action.Success
	}
	return action.Wait
}

type callback struct {
	action.BaseBehavior
	fn func(a *action.Action)
}

// Func runs fn once on start and succeeds.
func Func(fn func(a *action.Action)) *action.Action {
	return action.New(&callback{fn: fn}, action.Default)
}

func (c *callback) Name() string { return "Func" }

func (c *callback) Execute(a *action.Action) action.Result {
	if c.fn != nil {
		c.fn(a)
	}
	return action.Success
}
