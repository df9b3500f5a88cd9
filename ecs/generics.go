package ecs

import "github.com/milk9111/actionkit/ecs/component"

// Add stores a copy of value on e, replacing any previous one.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	v := value
	w.storage(handle.Kind().ID()).Set(e.id(), &v)
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.lookup(handle.Kind().ID()).Remove(e.id())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.lookup(handle.Kind().ID()).Has(e.id())
}

// Get returns a pointer to e's component. Changes through the pointer are
// visible to every system.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	value, ok := w.lookup(handle.Kind().ID()).Get(e.id()).(*T)
	return value, ok
}

// ForEach visits every entity holding the component. The callback may add
// or remove components and entities; entities destroyed before their turn
// are skipped.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	store := w.lookup(handle.Kind().ID())
	for _, id := range store.ids() {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		if value, ok := store.Get(id).(*T); ok {
			fn(e, value)
		}
	}
}

// ForEach2 visits every entity holding both components.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	sa := w.lookup(ha.Kind().ID())
	sb := w.lookup(hb.Kind().ID())
	for _, id := range intersect(sa, sb) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		if okA && okB {
			fn(e, a, b)
		}
	}
}
