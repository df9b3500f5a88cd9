package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Recipe is a named action tree plus the entity it is meant to drive.
type Recipe struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Entity      EntitySpec `yaml:"entity"`
	Root        Node       `yaml:"root"`
}

type EntitySpec struct {
	Transform TransformSpec `yaml:"transform"`
	Clips     []ClipSpec    `yaml:"clips"`
	Body      *BodySpec     `yaml:"body"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type ClipSpec struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"`
	Loop     bool    `yaml:"loop"`
}

type BodySpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

type MeshSpec struct {
	OffsetX  float64 `yaml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y"`
	Rotation float64 `yaml:"rotation"`
	Scale    float64 `yaml:"scale"`
}

// Node is one action in a recipe tree. Kind selects which of the other
// fields apply.
type Node struct {
	Kind     string `yaml:"kind"`
	Category string `yaml:"category"`

	Children   []Node `yaml:"children"`
	Major      *Node  `yaml:"major"`
	Minor      *Node  `yaml:"minor"`
	ForceSplit bool   `yaml:"force_split"`

	Delay    float64 `yaml:"delay"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Angle    float64 `yaml:"angle"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`

	Mesh *MeshSpec `yaml:"mesh"`

	Clip           string `yaml:"clip"`
	Priority       int    `yaml:"priority"`
	NonBlocking    bool   `yaml:"non_blocking"`
	StopWhenMoving bool   `yaml:"stop_when_moving"`

	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Height float64 `yaml:"height"`

	Script string `yaml:"script"`
	Source string `yaml:"source"`
}

// LoadSpec loads and strictly decodes the named file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("recipe: load %s: %w", filename, err)
	}
	spec, err := decode[T](data)
	if err != nil {
		return zero, fmt.Errorf("recipe: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// LoadRecipe loads a recipe by name, with or without the .yaml extension.
func LoadRecipe(name string) (*Recipe, error) {
	r, err := LoadSpec[Recipe](recipeFile(name))
	if err != nil {
		return nil, err
	}
	if r.Name == "" {
		r.Name = trimExt(name)
	}
	return &r, nil
}

// Parse decodes a recipe document. Unknown fields are errors.
func Parse(data []byte) (*Recipe, error) {
	r, err := decode[Recipe](data)
	if err != nil {
		return nil, fmt.Errorf("recipe: unmarshal: %w", err)
	}
	return &r, nil
}

func decode[T any](data []byte) (T, error) {
	var spec T
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return spec, err
	}
	return spec, nil
}
