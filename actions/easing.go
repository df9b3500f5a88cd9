package actions

import (
	"fmt"
	"strings"
)

// Ease maps linear progress in [0, 1] onto a curve.
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseIn(t float64) float64 { return t * t }

func EaseOut(t float64) float64 { return 1 - (1-t)*(1-t) }

func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// ParseEase resolves a curve by name. The empty name is Linear.
func ParseEase(name string) (Ease, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear, nil
	case "in", "ease_in", "easein":
		return EaseIn, nil
	case "out", "ease_out", "easeout":
		return EaseOut, nil
	case "in_out", "ease_in_out", "easeinout":
		return EaseInOut, nil
	default:
		return nil, fmt.Errorf("actions: unknown ease %q", name)
	}
}
