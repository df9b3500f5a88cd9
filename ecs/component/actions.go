package component

import "github.com/milk9111/actionkit/action"

// Actions holds the entity's action registry.
type Actions struct {
	Registry *action.Registry
}

var ActionsComponent = NewComponent[Actions]()
