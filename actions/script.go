package actions

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/ecs"
	"github.com/milk9111/actionkit/logging"
)

const scriptDispatch = `
if __phase == "execute" {
	__result = execute(__engine)
} else if __phase == "tick" {
	__result = tick(__engine, __dt)
}
`

const scriptFinishDispatch = `
if __phase == "finish" {
	__result = finish(__engine, __finish_result)
}
`

type script struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	engine   *tengo.ImmutableMap
	elapsed  float64
	finisher bool
}

// Script builds a leaf driven by a tengo script. The script defines
// execute(engine) and tick(engine, dt), and may define
// finish(engine, result). Hooks return "wait", "success", "fail" or "abort";
// finish returns false to refuse an abort.
func Script(name, src string, category action.Category) (*action.Action, error) {
	hasFinish, err := checkScript(src)
	if err != nil {
		return nil, fmt.Errorf("actions: script %s: %w", name, err)
	}

	full := src + "\n" + scriptDispatch
	if hasFinish {
		full += scriptFinishDispatch
	}
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__dt", 0.0)
	_ = s.Add("__finish_result", "")
	_ = s.Add("__result", "")
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("actions: script %s: %w", name, err)
	}
	b := &script{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		finisher: hasFinish,
	}
	return action.New(b, category), nil
}

// checkScript runs the bare source once to check it defines the hooks.
func checkScript(src string) (hasFinish bool, err error) {
	s := tengo.NewScript([]byte(src))
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := s.Run()
	if err != nil {
		return false, err
	}
	for _, hook := range []string{"execute", "tick"} {
		if !compiled.IsDefined(hook) {
			return false, fmt.Errorf("missing %s function", hook)
		}
	}
	return compiled.IsDefined("finish"), nil
}

func (s *script) Name() string { return "Script" }

func (s *script) Describe(a *action.Action) string {
	return fmt.Sprintf("Script(%s)", s.name)
}

func (s *script) Execute(a *action.Action) action.Result {
	ref, ok := ecs.RefOf(a)
	if !ok {
		return action.Fail
	}
	s.elapsed = 0
	s.engine = s.buildEngine(ref)
	return s.run(a, "execute", 0, "")
}

func (s *script) Tick(a *action.Action, dt float64) action.Result {
	s.elapsed += dt
	return s.run(a, "tick", dt, "")
}

func (s *script) Finish(a *action.Action, result action.Result, reason string, stop action.Category) bool {
	if !s.finisher || s.engine == nil {
		return true
	}
	if err := s.invoke("finish", 0, strings.ToLower(result.String())); err != nil {
		s.logError(a, "finish", err)
		return true
	}
	v := s.compiled.Get("__result")
	if v.ValueType() == "bool" {
		return v.Bool()
	}
	return true
}

func (s *script) run(a *action.Action, phase string, dt float64, finishResult string) action.Result {
	if err := s.invoke(phase, dt, finishResult); err != nil {
		s.logError(a, phase, err)
		return action.Fail
	}
	return parseScriptResult(objectAsString(s.compiled.Get("__result").Object()))
}

func (s *script) invoke(phase string, dt float64, finishResult string) error {
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", s.engine); err != nil {
		return err
	}
	if err := s.compiled.Set("__dt", dt); err != nil {
		return err
	}
	if err := s.compiled.Set("__finish_result", finishResult); err != nil {
		return err
	}
	if err := s.compiled.Set("__result", ""); err != nil {
		return err
	}
	return s.compiled.Run()
}

func (s *script) logError(a *action.Action, phase string, err error) {
	log := logging.Get("actions")
	log.Warn().
		Err(err).
		Uint64("action", a.ID()).
		Str("script", s.name).
		Str("phase", phase).
		Msg("script error")
}

func parseScriptResult(s string) action.Result {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wait":
		return action.Wait
	case "success":
		return action.Success
	case "abort":
		return action.Abort
	default:
		return action.Fail
	}
}

func (s *script) buildEngine(ref ecs.Ref) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, _ := ref.Position()
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}, nil
	}}

	values["move_by"] = &tengo.UserFunction{Name: "move_by", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		dx, ok1 := tengo.ToFloat64(args[0])
		dy, ok2 := tengo.ToFloat64(args[1])
		if !ok1 || !ok2 {
			return tengo.FalseValue, nil
		}
		if ref.MoveBy(dx, dy) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["set_position"] = &tengo.UserFunction{Name: "set_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok1 := tengo.ToFloat64(args[0])
		y, ok2 := tengo.ToFloat64(args[1])
		if !ok1 || !ok2 {
			return tengo.FalseValue, nil
		}
		if ref.SetPosition(x, y) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["elapsed"] = &tengo.UserFunction{Name: "elapsed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.elapsed}, nil
	}}

	values["state"] = s.state
	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Undefined:
		return ""
	default:
		return strings.Trim(v.String(), "\"")
	}
}
