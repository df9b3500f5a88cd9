// Package sim hosts recipes in a headless world. The CLI and the demo both
// drive their entities through it.
package sim

import (
	"fmt"

	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/config"
	"github.com/milk9111/actionkit/ecs"
	"github.com/milk9111/actionkit/ecs/component"
	"github.com/milk9111/actionkit/ecs/system"
	"github.com/milk9111/actionkit/logging"
	"github.com/milk9111/actionkit/recipe"
)

const groundHalfWidth = 10000

// NewWorld builds a world with the action, animation and physics systems
// and a physics space configured from cfg.
func NewWorld(cfg config.Config) *ecs.World {
	w := ecs.NewWorld()
	w.AddSystem(system.NewActionSystem())
	w.AddSystem(system.NewAnimationSystem())
	w.AddSystem(system.NewPhysicsSystem())

	pw := ecs.NewPhysicsWorld(cfg.Gravity.X, cfg.Gravity.Y)
	pw.SetGround(cfg.GroundY, -groundHalfWidth, groundHalfWidth)
	w.SetPhysicsWorld(pw)
	return w
}

// Session is one recipe running on its own entity.
type Session struct {
	World  *ecs.World
	Entity ecs.Entity
	Root   *action.Action
	Recipe *recipe.Recipe

	events *action.EventQueue
	dt     float64
	frames int
}

// Start spawns r's entity in w and starts its root action.
func Start(w *ecs.World, cfg config.Config, r *recipe.Recipe) (*Session, error) {
	soft, err := cfg.SoftMask()
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	q := &action.EventQueue{}
	e, root, err := recipe.Instantiate(w, r,
		action.WithSoftCategories(soft),
		action.WithEvents(q),
		action.WithLogger(logging.Get("registry").With().Str("recipe", r.Name).Logger()),
	)
	if err != nil {
		return nil, err
	}
	return &Session{
		World:  w,
		Entity: e,
		Root:   root,
		Recipe: r,
		events: q,
		dt:     cfg.DeltaTime(),
	}, nil
}

// Events drains the lifecycle events recorded since the last call.
func (s *Session) Events() []action.Event {
	return s.events.Drain()
}

// WorldEvents drains the world's entity and animation events.
func (s *Session) WorldEvents() []ecs.Event {
	return s.World.Events().Drain()
}

// Step advances the world one fixed frame.
func (s *Session) Step() {
	s.World.Step(s.dt)
	s.frames++
}

// Frames is the number of frames stepped so far.
func (s *Session) Frames() int { return s.frames }

// Done reports whether the entity has nothing left to run.
func (s *Session) Done() bool {
	reg := s.Registry()
	return reg == nil || reg.Len() == 0
}

func (s *Session) Registry() *action.Registry {
	return s.ref().Actions()
}

// Transform returns a copy of the entity's transform.
func (s *Session) Transform() component.Transform {
	if t, ok := s.ref().Transform(); ok {
		return *t
	}
	return component.Transform{}
}

// Stop destroys the session's entity, tearing down its actions.
func (s *Session) Stop() {
	s.World.DestroyEntity(s.Entity)
}

func (s *Session) ref() ecs.Ref {
	return ecs.Ref{World: s.World, Entity: s.Entity}
}

// FormatEvent renders a lifecycle event as a single log line.
func FormatEvent(frame int, evt action.Event) string {
	switch evt.Kind {
	case action.EventFinished:
		return fmt.Sprintf("[%04d] %-10s %s#%d %s result=%s reason=%q", frame, evt.Kind, evt.Name, evt.ActionID, evt.Category, evt.Result, evt.Reason)
	case action.EventRebucketed:
		return fmt.Sprintf("[%04d] %-10s %s#%d %s -> %s", frame, evt.Kind, evt.Name, evt.ActionID, evt.Previous, evt.Category)
	case action.EventRefused:
		return fmt.Sprintf("[%04d] %-10s %s#%d %s reason=%q", frame, evt.Kind, evt.Name, evt.ActionID, evt.Category, evt.Reason)
	default:
		return fmt.Sprintf("[%04d] %-10s %s#%d %s", frame, evt.Kind, evt.Name, evt.ActionID, evt.Category)
	}
}

// FormatWorldEvent renders an ecs event as a single log line.
func FormatWorldEvent(frame int, evt ecs.Event) string {
	switch data := evt.Data.(type) {
	case ecs.AnimationEvent:
		return fmt.Sprintf("[%04d] %-10s clip=%s entity=%s", frame, "anim-end", data.Clip, data.Entity)
	case ecs.Entity:
		return fmt.Sprintf("[%04d] %-10s entity=%s", frame, "destroyed", data)
	default:
		return fmt.Sprintf("[%04d] %-10s %v", frame, evt.Type, evt.Data)
	}
}
