package action

import (
	"slices"

	"github.com/rs/zerolog"
)

// Registry owns the running top-level actions of one entity, bucketed by
// category. It resolves category conflicts when actions start and drives
// them every frame.
type Registry struct {
	owner   any
	buckets map[Category][]*Action
	index   map[*Action]Category
	soft    Category
	closed  bool

	log    zerolog.Logger
	events *EventQueue
}

type RegistryOption func(*Registry)

// WithSoftCategories sets the bits ignored by non-forceful stops. Starting a
// new action never stops running actions over these bits alone.
func WithSoftCategories(mask Category) RegistryOption {
	return func(r *Registry) {
		r.soft = mask
	}
}

func WithLogger(l zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = l
	}
}

// WithEvents records lifecycle events into q.
func WithEvents(q *EventQueue) RegistryOption {
	return func(r *Registry) {
		r.events = q
	}
}

// NewRegistry creates a registry acting for owner.
func NewRegistry(owner any, opts ...RegistryOption) *Registry {
	r := &Registry{
		owner:   owner,
		buckets: make(map[Category][]*Action),
		index:   make(map[*Action]Category),
		soft:    Animation,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Owner() any               { return r.owner }
func (r *Registry) SoftCategories() Category { return r.soft }
func (r *Registry) Events() *EventQueue      { return r.events }

// Initialize readies the registry for use, reopening it after Teardown.
func (r *Registry) Initialize() {
	r.closed = false
	if r.buckets == nil {
		r.buckets = make(map[Category][]*Action)
	}
	if r.index == nil {
		r.index = make(map[*Action]Category)
	}
}

// StartAction stops running actions that conflict with a, then starts it.
// A waiting action is registered under its category; any other result is
// terminal and the action is dropped.
func (r *Registry) StartAction(a *Action) Result {
	if a == nil || a.state != Idle || a.parent != nil || r.closed {
		r.log.Debug().Msg("start rejected")
		if a != nil {
			r.emit(EventRejected, a, Default, Fail, ReasonUnknown)
		}
		return Fail
	}

	category := a.Category()
	r.stop(category, false, category, ReasonConflict)

	result := a.Start(r.owner, r)
	if result == Wait && a.state == Running {
		r.insert(a)
		r.log.Debug().
			Uint64("action", a.id).
			Str("name", a.Name()).
			Stringer("category", a.category).
			Msg("action started")
		r.emit(EventStarted, a, Default, Wait, ReasonUnknown)
		return Wait
	}
	r.emit(EventFinished, a, Default, result, ReasonUnknown)
	return result
}

// StopByCategory aborts every action whose category overlaps mask. Without
// force the soft categories are left out of the overlap test.
func (r *Registry) StopByCategory(mask Category, force bool) {
	r.stop(mask, force, mask, ReasonStopped)
}

// StopMove aborts every movement action.
func (r *Registry) StopMove() {
	r.StopByCategory(Move, true)
}

// StopAction aborts a single registered action. It reports whether the
// action accepted.
func (r *Registry) StopAction(a *Action) bool {
	if a == nil || !r.remove(a) {
		return false
	}
	if a.Finish(Abort, ReasonStopped, a.category) {
		r.emit(EventFinished, a, Default, Abort, ReasonStopped)
		return true
	}
	r.keep(a, ReasonStopped)
	return false
}

// StopAll aborts every action. The registry is always empty afterwards.
func (r *Registry) StopAll() {
	actions := r.Actions()
	r.clear()
	for _, a := range actions {
		a.forceFinish(Abort, ReasonStopAll, AllCategories)
		r.emit(EventFinished, a, Default, Abort, ReasonStopAll)
	}
}

// Teardown silently cleans every action and closes the registry until the
// next Initialize.
func (r *Registry) Teardown() {
	actions := r.Actions()
	r.clear()
	r.closed = true
	for _, a := range actions {
		a.forceFinish(Clean, ReasonTeardown, AllCategories)
		r.emit(EventFinished, a, Default, Clean, ReasonTeardown)
	}
	if len(actions) > 0 {
		r.log.Debug().Int("count", len(actions)).Msg("registry torn down")
	}
}

// Tick advances every registered action once. It works on a snapshot so
// actions may start or stop others from inside their tick.
func (r *Registry) Tick(dt float64) {
	for _, a := range r.Actions() {
		if !r.Contains(a) || a.state != Running {
			continue
		}
		if result := a.Tick(dt); result != Wait {
			r.finishAction(a, result, ReasonUnknown)
		}
	}
}

// NotifyCategoryChanged moves a registered action to the bucket of its
// current category.
func (r *Registry) NotifyCategoryChanged(a *Action, old Category) {
	if a == nil || !r.remove(a) {
		return
	}
	r.insert(a)
	r.log.Debug().
		Uint64("action", a.id).
		Stringer("from", old).
		Stringer("to", a.category).
		Msg("action rebucketed")
	r.emit(EventRebucketed, a, old, Wait, ReasonUnknown)
}

// ContainsCategory reports whether any registered action overlaps mask.
func (r *Registry) ContainsCategory(mask Category) bool {
	for key, list := range r.buckets {
		if len(list) > 0 && key.Overlaps(mask) {
			return true
		}
	}
	return false
}

// Contains reports whether a is registered.
func (r *Registry) Contains(a *Action) bool {
	_, ok := r.index[a]
	return ok
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.index)
}

// AllActions returns a copy of the buckets.
func (r *Registry) AllActions() map[Category][]*Action {
	out := make(map[Category][]*Action, len(r.buckets))
	for key, list := range r.buckets {
		out[key] = slices.Clone(list)
	}
	return out
}

// Actions returns every registered action ordered by bucket key, then by
// insertion.
func (r *Registry) Actions() []*Action {
	out := make([]*Action, 0, len(r.index))
	for _, key := range r.keys() {
		out = append(out, r.buckets[key]...)
	}
	return out
}

// ActiveLeaves returns the running leaves of every registered action.
func (r *Registry) ActiveLeaves() []*Action {
	var out []*Action
	for _, a := range r.Actions() {
		out = append(out, a.ActiveLeaves()...)
	}
	return out
}

// finishAction is the top-level counterpart of a composite's child finish.
func (r *Registry) finishAction(a *Action, result Result, reason string) {
	removed := r.remove(a)
	if a.Finish(result, reason, Default) {
		if removed {
			r.emit(EventFinished, a, Default, result, reason)
		}
		return
	}
	if removed {
		r.keep(a, reason)
	}
}

func (r *Registry) stop(mask Category, force bool, stopMask Category, reason string) {
	type bucket struct {
		key     Category
		actions []*Action
	}
	keys := r.keys()
	snapshot := make([]bucket, 0, len(keys))
	for _, key := range keys {
		snapshot = append(snapshot, bucket{key: key, actions: slices.Clone(r.buckets[key])})
	}

	for _, b := range snapshot {
		if !r.conflicts(b.key, mask, force) {
			continue
		}
		for _, a := range b.actions {
			if !r.remove(a) {
				continue
			}
			if a.Finish(Abort, reason, stopMask) {
				r.log.Debug().
					Uint64("action", a.id).
					Str("name", a.Name()).
					Stringer("stop", stopMask).
					Str("reason", reason).
					Msg("action stopped")
				r.emit(EventFinished, a, Default, Abort, reason)
				continue
			}
			r.keep(a, reason)
		}
	}
}

// keep re-registers an action that refused to finish.
func (r *Registry) keep(a *Action, reason string) {
	if a.state != Running {
		return
	}
	r.insert(a)
	r.log.Debug().
		Uint64("action", a.id).
		Str("name", a.Name()).
		Stringer("category", a.category).
		Str("reason", reason).
		Msg("action refused to finish")
	r.emit(EventRefused, a, Default, Abort, reason)
}

func (r *Registry) conflicts(key, mask Category, force bool) bool {
	if !force {
		key = key.Without(r.soft)
		mask = mask.Without(r.soft)
	}
	return key.Overlaps(mask)
}

func (r *Registry) insert(a *Action) {
	if r.Contains(a) {
		r.remove(a)
	}
	key := a.category
	r.buckets[key] = append(r.buckets[key], a)
	r.index[a] = key
}

func (r *Registry) remove(a *Action) bool {
	key, ok := r.index[a]
	if !ok {
		return false
	}
	delete(r.index, a)
	list := r.buckets[key]
	if i := slices.Index(list, a); i >= 0 {
		list = slices.Delete(list, i, i+1)
	}
	if len(list) == 0 {
		delete(r.buckets, key)
	} else {
		r.buckets[key] = list
	}
	return true
}

func (r *Registry) clear() {
	r.buckets = make(map[Category][]*Action)
	r.index = make(map[*Action]Category)
}

func (r *Registry) keys() []Category {
	keys := make([]Category, 0, len(r.buckets))
	for key := range r.buckets {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (r *Registry) emit(kind EventKind, a *Action, previous Category, result Result, reason string) {
	if r.events == nil {
		return
	}
	r.events.Push(Event{
		Kind:     kind,
		ActionID: a.id,
		Name:     a.Name(),
		Category: a.category,
		Previous: previous,
		Result:   result,
		Reason:   reason,
	})
}
