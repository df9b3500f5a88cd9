package ecs

import (
	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/ecs/component"
)

// AttachActions gives e an initialized action registry owned by Ref{w, e}.
// An entity that already has one keeps it.
func AttachActions(w *World, e Entity, opts ...action.RegistryOption) (*action.Registry, error) {
	if existing, ok := Get(w, e, component.ActionsComponent); ok && existing.Registry != nil {
		return existing.Registry, nil
	}
	reg := action.NewRegistry(Ref{World: w, Entity: e}, opts...)
	reg.Initialize()
	if err := Add(w, e, component.ActionsComponent, component.Actions{Registry: reg}); err != nil {
		return nil, err
	}
	return reg, nil
}

// StartAction starts a on e's registry. Entities without one fail the
// action.
func StartAction(w *World, e Entity, a *action.Action) action.Result {
	r := Ref{World: w, Entity: e}
	reg := r.Actions()
	if reg == nil {
		return action.Fail
	}
	return reg.StartAction(a)
}
