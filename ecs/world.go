package ecs

import (
	"github.com/milk9111/actionkit/ecs/component"
	"github.com/milk9111/actionkit/logging"
	"github.com/rs/zerolog"
)

// World owns entities, their component storage and the system schedule.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	events    EventQueue
	physics   *PhysicsWorld

	dt      float64
	elapsed float64
	frame   uint64

	log zerolog.Logger
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		scheduler: NewScheduler(),
		log:       logging.Get("ecs"),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity tears down the entity's actions, releases its physics body
// and drops every component. It reports false for dead handles.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	if actions, ok := Get(w, e, component.ActionsComponent); ok && actions.Registry != nil {
		actions.Registry.Teardown()
	}
	if w.physics != nil {
		w.physics.RemoveBody(e)
	}
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	w.entities.destroy(e)
	w.events.Push(Event{Type: EventEntityDestroyed, Data: e})
	w.log.Debug().Stringer("entity", e).Msg("entity destroyed")
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	return w.entities.all()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	w.scheduler.Add(s)
}

func (w *World) Scheduler() *Scheduler {
	return w.scheduler
}

// Step advances the world by dt seconds, running every system once.
func (w *World) Step(dt float64) {
	if w == nil {
		return
	}
	w.dt = dt
	w.elapsed += dt
	w.frame++
	w.scheduler.Update(w)
}

// DeltaTime is the length of the step in progress.
func (w *World) DeltaTime() float64 { return w.dt }

// Elapsed is the simulated time since the world was created.
func (w *World) Elapsed() float64 { return w.elapsed }

// Frame counts completed calls to Step.
func (w *World) Frame() uint64 { return w.frame }

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	w.physics = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physics
}

func (w *World) storage(id component.ComponentID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) lookup(id component.ComponentID) *SparseSet {
	return w.stores[id]
}
