package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EntityBuildSpec is a named bag of component specs keyed by builder name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
	// Script names a tengo program under scripts/ that steers the entity.
	Script string `yaml:"script,omitempty"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one loosely typed component entry into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

type VelocityComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ColliderComponentSpec struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

type BodyComponentSpec struct {
	Solid   bool `yaml:"solid"`
	Movable bool `yaml:"movable"`
}

type PickupComponentSpec struct {
	Kind  string  `yaml:"kind"`
	Value float64 `yaml:"value"`
}

type BirdComponentSpec struct {
	Speed float64 `yaml:"speed"`
}
