package action

import (
	"fmt"
	"math/bits"
	"strings"
)

// Category is a bitmask of the behavioral domains an action occupies.
// Two categories conflict when they share at least one bit.
type Category uint32

const (
	Default    Category = 0
	Move       Category = 1 << 0
	Rotate     Category = 1 << 1
	Animation  Category = 1 << 2
	Scale      Category = 1 << 3
	MeshMove   Category = 1 << 4
	MeshRotate Category = 1 << 5
	MeshScale  Category = 1 << 6

	AllCategories = Move | Rotate | Animation | Scale | MeshMove | MeshRotate | MeshScale
)

var categoryNames = []struct {
	bit  Category
	name string
}{
	{Move, "Move"},
	{Rotate, "Rotate"},
	{Animation, "Animation"},
	{Scale, "Scale"},
	{MeshMove, "MeshMove"},
	{MeshRotate, "MeshRotate"},
	{MeshScale, "MeshScale"},
}

// Overlaps reports whether c and other share any bit.
func (c Category) Overlaps(other Category) bool {
	return c&other != Default
}

// Has reports whether every bit of mask is set in c.
func (c Category) Has(mask Category) bool {
	return mask != Default && c&mask == mask
}

func (c Category) With(mask Category) Category {
	return c | mask
}

func (c Category) Without(mask Category) Category {
	return c &^ mask
}

// Count returns the number of bits set.
func (c Category) Count() int {
	return bits.OnesCount32(uint32(c))
}

func (c Category) String() string {
	if c == Default {
		return "Default"
	}
	parts := make([]string, 0, c.Count())
	rest := c
	for _, n := range categoryNames {
		if c&n.bit != 0 {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseCategory parses names separated by '|' or ',' ("Move|Rotate").
// Matching is case-insensitive; an empty string or "Default" is Default.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' })
	var out Category
	for _, f := range fields {
		name := strings.TrimSpace(f)
		if name == "" {
			continue
		}
		if strings.EqualFold(name, "default") {
			continue
		}
		if strings.EqualFold(name, "all") {
			out |= AllCategories
			continue
		}
		found := false
		for _, n := range categoryNames {
			if strings.EqualFold(name, n.name) {
				out |= n.bit
				found = true
				break
			}
		}
		if !found {
			return Default, fmt.Errorf("action: unknown category %q", name)
		}
	}
	return out, nil
}
