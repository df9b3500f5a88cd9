package action

import (
	"sync/atomic"
)

// Behavior is the contract a concrete action implements. The *Action passed
// to every hook is the node the behavior is attached to.
type Behavior interface {
	// Execute runs once when the action starts. Wait keeps it running.
	Execute(a *Action) Result
	// Tick runs once per frame while the action is running.
	Tick(a *Action, dt float64) Result
	// Finish is the completion and cancellation hook. Returning false
	// refuses an Abort; the behavior is expected to have narrowed its
	// category by stop before doing so.
	Finish(a *Action, result Result, reason string, stop Category) bool
	Name() string
	Describe(a *Action) string
}

// BaseBehavior provides the default hooks: wait forever, accept every finish.
type BaseBehavior struct{}

func (BaseBehavior) Execute(*Action) Result                        { return Wait }
func (BaseBehavior) Tick(*Action, float64) Result                  { return Wait }
func (BaseBehavior) Finish(*Action, Result, string, Category) bool { return true }
func (BaseBehavior) Name() string                                  { return "Action" }
func (BaseBehavior) Describe(a *Action) string                     { return a.Name() }

// composite is implemented by behaviors that own child actions.
type composite interface {
	finishChild(self, child *Action, result Result, reason string, stop Category) bool
	category(self *Action) Category
	activeLeaves(self *Action) []*Action
	// forceFinishChildren ends every child still held after self refused
	// a finish that is being overridden.
	forceFinishChildren(self *Action, result Result, reason string, stop Category)
}

var nextActionID atomic.Uint64

// Action is a schedulable unit of work. It is owned by exactly one container:
// a Registry bucket when top-level, or the slot of its parent composite.
type Action struct {
	// Prerequisite gates execution; returning false fails the start.
	Prerequisite func(a *Action) bool
	// PreExecute fires once execution is confirmed.
	PreExecute func(a *Action)
	// PostFinish fires once when the action reaches a terminal state,
	// except for Clean.
	PostFinish func(a *Action, result Result, reason string)

	id       uint64
	behavior Behavior
	state    State
	category Category

	// parent and registry never own the action.
	parent   *Action
	registry *Registry
	owner    any

	notified  bool
	finishing bool
}

// New returns an idle action driven by b.
func New(b Behavior, category Category) *Action {
	if b == nil {
		b = BaseBehavior{}
	}
	return &Action{
		id:       nextActionID.Add(1),
		behavior: b,
		category: category,
	}
}

func (a *Action) ID() uint64          { return a.id }
func (a *Action) State() State        { return a.state }
func (a *Action) Category() Category  { return a.category }
func (a *Action) Parent() *Action     { return a.parent }
func (a *Action) Registry() *Registry { return a.registry }
func (a *Action) Owner() any          { return a.owner }
func (a *Action) Behavior() Behavior  { return a.behavior }
func (a *Action) Name() string        { return a.behavior.Name() }
func (a *Action) String() string      { return a.behavior.Describe(a) }

// IsCategory reports whether the action's category overlaps mask.
func (a *Action) IsCategory(mask Category) bool {
	return a.category.Overlaps(mask)
}

// Bind sets the owner entity and registry the action acts for.
func (a *Action) Bind(owner any, reg *Registry) {
	a.owner = owner
	a.registry = reg
}

// Start binds the action and executes it. Only idle actions can start.
func (a *Action) Start(owner any, reg *Registry) Result {
	if a == nil || a.state != Idle {
		return Fail
	}
	a.Bind(owner, reg)

	if a.Prerequisite != nil && !a.Prerequisite(a) {
		a.state = Failed
		return Fail
	}
	if a.PreExecute != nil {
		a.PreExecute(a)
	}

	result := a.behavior.Execute(a)
	if result == Wait {
		if a.state == Idle {
			a.state = Running
		}
		return Wait
	}
	a.state = terminalState(result)
	if result != Clean {
		a.firePostFinish(result, ReasonUnknown)
	}
	return result
}

// Tick advances a running action. Non-running actions are not ticked and
// report the result matching their state.
func (a *Action) Tick(dt float64) Result {
	if a == nil {
		return Fail
	}
	if a.state != Running {
		return resultOf(a.state)
	}
	return a.behavior.Tick(a, dt)
}

// Finish completes or cancels the action. It reports false only when the
// behavior refused an Abort, in which case the action keeps running and the
// caller must keep it registered under its current category.
func (a *Action) Finish(result Result, reason string, stop Category) bool {
	if a == nil || a.state.Terminal() {
		return true
	}
	if result == Wait {
		result = Abort
	}
	if a.state == Idle {
		// Never executed: nothing to tear down.
		a.state = terminalState(result)
		return true
	}

	a.finishing = true
	accepted := a.behavior.Finish(a, result, reason, stop)
	a.finishing = false

	if !accepted {
		if result == Abort {
			a.refreshCategory()
			return false
		}
		if a.registry != nil {
			a.registry.log.Warn().
				Uint64("action", a.id).
				Str("name", a.Name()).
				Stringer("result", result).
				Msg("refusal of non-abort finish overridden")
		}
	}

	a.state = terminalState(result)
	if result != Clean {
		a.firePostFinish(result, reason)
	}
	return true
}

// forceFinish finishes the action and overrides a refusal.
func (a *Action) forceFinish(result Result, reason string, stop Category) {
	if a.Finish(result, reason, stop) {
		return
	}
	if c, ok := a.behavior.(composite); ok {
		a.finishing = true
		c.forceFinishChildren(a, result, reason, stop)
		a.finishing = false
	}
	a.state = terminalState(result)
	if result != Clean {
		a.firePostFinish(result, reason)
	}
}

// NotifyTerminal reports an asynchronous completion, for example from an
// animation end callback. It routes to the parent composite, or to the
// registry at top level. Repeated notifications are ignored.
func (a *Action) NotifyTerminal(result Result, reason string) {
	if a == nil || a.state != Running || a.notified || a.finishing {
		return
	}
	if result == Wait {
		result = Abort
	}
	a.notified = true

	switch {
	case a.parent != nil:
		if c, ok := a.parent.behavior.(composite); ok {
			c.finishChild(a.parent, a, result, reason, Default)
		} else if a.registry != nil {
			a.registry.log.Warn().
				Uint64("action", a.id).
				Str("name", a.Name()).
				Str("parent", a.parent.Name()).
				Stringer("result", result).
				Msg("terminal notification dropped: parent holds no children")
		}
	case a.registry != nil:
		a.registry.finishAction(a, result, reason)
	default:
		a.Finish(result, reason, Default)
	}

	if a.state == Running {
		a.notified = false
	}
}

// SetCategory changes a leaf's category and reports the change upward.
// Composites derive theirs from their children.
func (a *Action) SetCategory(c Category) {
	if a.category == c {
		return
	}
	old := a.category
	a.category = c
	a.propagateCategory(old)
}

// NotifyCategoryChanged recomputes a composite's category and, when it
// changed, forwards the change to the parent or the registry.
func (a *Action) NotifyCategoryChanged() {
	old := a.category
	a.refreshCategory()
	if old != a.category {
		a.propagateCategory(old)
	}
}

// ActiveLeaves returns the running leaf actions doing work under a.
func (a *Action) ActiveLeaves() []*Action {
	if c, ok := a.behavior.(composite); ok {
		return c.activeLeaves(a)
	}
	if a.state == Running {
		return []*Action{a}
	}
	return nil
}

func (a *Action) refreshCategory() {
	if c, ok := a.behavior.(composite); ok {
		a.category = c.category(a)
	}
}

// propagateCategory is a no-op while idle or finishing: the caller that
// started or finished the action re-registers it afterwards.
func (a *Action) propagateCategory(old Category) {
	if a.state != Running || a.finishing {
		return
	}
	if a.parent != nil {
		a.parent.NotifyCategoryChanged()
		return
	}
	if a.registry != nil {
		a.registry.NotifyCategoryChanged(a, old)
	}
}

func (a *Action) adopt(child *Action) {
	if child != nil {
		child.parent = a
	}
}

func (a *Action) firePostFinish(result Result, reason string) {
	if a.PostFinish != nil {
		a.PostFinish(a, result, reason)
	}
}
