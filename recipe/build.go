package recipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/actions"
	"github.com/milk9111/actionkit/ecs/component"
)

var (
	ErrUnknownKind = errors.New("recipe: unknown node kind")
	ErrInvalidNode = errors.New("recipe: invalid node")
)

// Build turns a node tree into a fresh, idle action tree.
func Build(n Node) (*action.Action, error) {
	return build(n, "root")
}

// BuildRecipe builds the recipe's root node.
func BuildRecipe(r *Recipe) (*action.Action, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil recipe", ErrInvalidNode)
	}
	a, err := Build(r.Root)
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", r.Name, err)
	}
	return a, nil
}

// Validate builds r and discards the result.
func Validate(r *Recipe) error {
	_, err := BuildRecipe(r)
	return err
}

func build(n Node, at string) (*action.Action, error) {
	a, err := buildNode(n, at)
	if err != nil {
		return nil, err
	}
	if n.Category != "" && !strings.EqualFold(n.Kind, "script") {
		return nil, invalid(at, "category only applies to script nodes")
	}
	return a, nil
}

func buildNode(n Node, at string) (*action.Action, error) {
	if n.Duration < 0 {
		return nil, invalid(at, "negative duration")
	}
	switch strings.ToLower(n.Kind) {
	case "sequence":
		children := make([]*action.Action, 0, len(n.Children))
		for i, child := range n.Children {
			c, err := build(child, fmt.Sprintf("%s.children[%d]", at, i))
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		return action.NewSequence(children...), nil

	case "parallel":
		if n.Major == nil {
			return nil, invalid(at, "parallel needs a major node")
		}
		major, err := build(*n.Major, at+".major")
		if err != nil {
			return nil, err
		}
		var minor *action.Action
		if n.Minor != nil {
			if minor, err = build(*n.Minor, at+".minor"); err != nil {
				return nil, err
			}
		}
		var opts []action.ParallelOption
		if n.ForceSplit {
			opts = append(opts, action.ForceCategorySplit())
		}
		return action.NewParallel(major, minor, opts...), nil

	case "wait":
		if n.Delay < 0 {
			return nil, invalid(at, "negative delay")
		}
		return actions.Wait(n.Delay), nil

	case "move_to":
		ease, err := parseEase(n, at)
		if err != nil {
			return nil, err
		}
		return actions.InterpMoveTo(n.X, n.Y, n.Duration, ease), nil

	case "rotate_to":
		ease, err := parseEase(n, at)
		if err != nil {
			return nil, err
		}
		return actions.InterpRotateTo(n.Angle, n.Duration, ease), nil

	case "scale_to":
		ease, err := parseEase(n, at)
		if err != nil {
			return nil, err
		}
		if n.ScaleX == 0 && n.ScaleY == 0 {
			return nil, invalid(at, "scale_to needs scale_x or scale_y")
		}
		return actions.InterpScaleTo(n.ScaleX, n.ScaleY, n.Duration, ease), nil

	case "mesh_to":
		ease, err := parseEase(n, at)
		if err != nil {
			return nil, err
		}
		if n.Mesh == nil {
			return nil, invalid(at, "mesh_to needs a mesh target")
		}
		target := component.MeshTransform{
			OffsetX:  n.Mesh.OffsetX,
			OffsetY:  n.Mesh.OffsetY,
			Rotation: n.Mesh.Rotation,
			Scale:    n.Mesh.Scale,
		}
		return actions.InterpMeshTransformTo(target, n.Duration, ease), nil

	case "play_animation":
		if n.Clip == "" {
			return nil, invalid(at, "play_animation needs a clip")
		}
		return actions.PlayAnimation(n.Clip, actions.AnimationOptions{
			Priority:       n.Priority,
			NonBlocking:    n.NonBlocking,
			StopWhenMoving: n.StopWhenMoving,
		}), nil

	case "root_motion":
		return actions.RootMotionConstant(n.VX, n.VY, n.Duration), nil

	case "jump":
		if n.Height <= 0 || n.Duration <= 0 {
			return nil, invalid(at, "jump needs a positive height and duration")
		}
		return actions.RootMotionJump(n.Height, n.Duration), nil

	case "script":
		return buildScript(n, at)

	case "":
		return nil, invalid(at, "missing kind")
	default:
		return nil, fmt.Errorf("%w %q at %s", ErrUnknownKind, n.Kind, at)
	}
}

func buildScript(n Node, at string) (*action.Action, error) {
	category, err := action.ParseCategory(n.Category)
	if err != nil {
		return nil, invalid(at, err.Error())
	}
	src := n.Source
	name := "inline"
	switch {
	case n.Script != "" && n.Source != "":
		return nil, invalid(at, "script and source are exclusive")
	case n.Script != "":
		data, err := LoadScript(n.Script)
		if err != nil {
			return nil, fmt.Errorf("recipe: load script %s: %w", n.Script, err)
		}
		src = string(data)
		name = trimExt(n.Script)
	case src == "":
		return nil, invalid(at, "script needs a script file or source")
	}
	a, err := actions.Script(name, src, category)
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrInvalidNode, at, err)
	}
	return a, nil
}

func parseEase(n Node, at string) (actions.Ease, error) {
	ease, err := actions.ParseEase(n.Ease)
	if err != nil {
		return nil, invalid(at, err.Error())
	}
	return ease, nil
}

func invalid(at, msg string) error {
	return fmt.Errorf("%w at %s: %s", ErrInvalidNode, at, msg)
}
