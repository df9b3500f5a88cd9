package recipe

import (
	"fmt"

	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/ecs"
	"github.com/milk9111/actionkit/ecs/component"
)

// Spawn creates an entity shaped by spec and gives it an action registry.
// The body is only created when the world has a physics world.
func Spawn(w *ecs.World, spec EntitySpec, opts ...action.RegistryOption) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := populate(w, e, spec, opts); err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("recipe: spawn: %w", err)
	}
	return e, nil
}

func populate(w *ecs.World, e ecs.Entity, spec EntitySpec, opts []action.RegistryOption) error {
	t := component.NewTransform(spec.Transform.X, spec.Transform.Y)
	t.Rotation = spec.Transform.Rotation
	if spec.Transform.ScaleX != 0 {
		t.ScaleX = spec.Transform.ScaleX
	}
	if spec.Transform.ScaleY != 0 {
		t.ScaleY = spec.Transform.ScaleY
	}
	if err := ecs.Add(w, e, component.TransformComponent, t); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.MeshTransformComponent, component.MeshTransform{Scale: 1}); err != nil {
		return err
	}

	clips := make([]component.Clip, 0, len(spec.Clips))
	for _, c := range spec.Clips {
		if c.Name == "" {
			return fmt.Errorf("clip without a name")
		}
		if c.Duration <= 0 {
			return fmt.Errorf("clip %s: duration must be positive", c.Name)
		}
		clips = append(clips, component.Clip{Name: c.Name, Duration: c.Duration, Loop: c.Loop})
	}
	if err := ecs.Add(w, e, component.AnimationComponent, component.NewAnimation(clips...)); err != nil {
		return err
	}

	if spec.Body != nil {
		if spec.Body.Width <= 0 || spec.Body.Height <= 0 {
			return fmt.Errorf("body size must be positive")
		}
		if pw := w.PhysicsWorld(); pw != nil {
			if _, err := pw.AddBody(w, e, spec.Body.Width, spec.Body.Height, spec.Body.Mass); err != nil {
				return err
			}
		}
	}

	_, err := ecs.AttachActions(w, e, opts...)
	return err
}

// Instantiate spawns the recipe's entity and starts its root action on it.
func Instantiate(w *ecs.World, r *Recipe, opts ...action.RegistryOption) (ecs.Entity, *action.Action, error) {
	root, err := BuildRecipe(r)
	if err != nil {
		return 0, nil, err
	}
	e, err := Spawn(w, r.Entity, opts...)
	if err != nil {
		return 0, nil, err
	}
	ecs.StartAction(w, e, root)
	return e, root, nil
}
