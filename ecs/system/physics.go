package system

import "github.com/milk9111/actionkit/ecs"

// PhysicsSystem steps the world's Chipmunk space and syncs transforms.
type PhysicsSystem struct {
	// StepScale multiplies the world delta time.
	StepScale float64
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{StepScale: 1}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	pw.Step(w, w.DeltaTime()*ps.StepScale)
}
