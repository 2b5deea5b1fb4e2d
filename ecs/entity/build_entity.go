package entity

import (
	"fmt"
	"sort"
	"sync"

	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	Script     string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag": addPlayerTag,
	"transform":  addTransform,
	"velocity":   addVelocity,
	"collider":   addCollider,
	"body":       addBody,
	"pickup":     addPickup,
	"bird":       addBird,
}

var componentBuildOrder = []string{
	"player_tag",
	"transform",
	"velocity",
	"collider",
	"body",
	"pickup",
	"bird",
}

var (
	specCacheMu sync.Mutex
	specCache   = map[string]entityPrefabSpec{}
)

// ClearPrefabCache drops parsed prefabs so the next build rereads them.
func ClearPrefabCache() {
	specCacheMu.Lock()
	defer specCacheMu.Unlock()
	specCache = map[string]entityPrefabSpec{}
}

func loadSpec(prefabPath string) (entityPrefabSpec, error) {
	specCacheMu.Lock()
	defer specCacheMu.Unlock()
	if spec, ok := specCache[prefabPath]; ok {
		return spec, nil
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return entityPrefabSpec{}, err
	}
	specCache[prefabPath] = spec
	return spec, nil
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := loadSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Script: spec.Script}

	names := make([]string, 0, len(spec.Components))
	seen := make(map[string]bool, len(spec.Components))
	for _, name := range componentBuildOrder {
		if _, ok := spec.Components[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range spec.Components {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// SetEntityPosition moves e, creating a unit-scale Transform when missing.
func SetEntityPosition(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	sx, sy := spec.ScaleX, spec.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      spec.X,
		Y:      spec.Y,
		Z:      spec.Z,
		ScaleX: sx,
		ScaleY: sy,
	})
}

func addVelocity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VelocityComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: spec.X, Y: spec.Y})
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.HalfWidth <= 0 || spec.HalfHeight <= 0 {
		return fmt.Errorf("collider half extents must be positive, got %vx%v", spec.HalfWidth, spec.HalfHeight)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{HalfW: spec.HalfWidth, HalfH: spec.HalfHeight})
}

func addBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BodyComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Solid && spec.Movable {
		return fmt.Errorf("body cannot be both solid and movable")
	}
	body := &component.Body{}
	body.Flags.Set(component.FlagSolid, spec.Solid)
	body.Flags.Set(component.FlagMovable, spec.Movable)
	return ecs.Add(w, e, component.BodyComponent.Kind(), body)
}

func addPickup(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PickupComponentSpec](raw)
	if err != nil {
		return err
	}
	kind := component.PickupKind(spec.Kind)
	switch kind {
	case component.PickupFood, component.PickupTruffle:
	default:
		return fmt.Errorf("unknown pickup kind %q", spec.Kind)
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: kind, Value: spec.Value})
}

func addBird(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BirdComponentSpec](raw)
	if err != nil {
		return err
	}
	bird := &component.Bird{Speed: spec.Speed}
	if ctx != nil {
		bird.Script = ctx.Script
	}
	return ecs.Add(w, e, component.BirdComponent.Kind(), bird)
}
