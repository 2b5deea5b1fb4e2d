package entity

import (
	"fmt"

	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/state"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

// NewPlayerAt spawns the player at (x, y) sized by caps rather than by the
// prefab so tuning overrides take effect.
func NewPlayerAt(w *ecs.World, caps state.Capabilities, x, y float64) (ecs.Entity, error) {
	e, err := NewPlayer(w)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, x, y); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	ApplyCapabilities(w, e, caps)
	return e, nil
}

// ApplyCapabilities writes the geometric part of caps onto e.
func ApplyCapabilities(w *ecs.World, e ecs.Entity, caps state.Capabilities) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.ScaleX = caps.Scale
		t.ScaleY = caps.Scale
	}
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		c.HalfW = caps.HalfW
		c.HalfH = caps.HalfH
	}
}
