package entity

import (
	"fmt"

	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
)

// NewTile spawns one solid square of side size centered on (x, y) and tags it
// with chunk.
func NewTile(w *ecs.World, x, y, size float64, chunk int) (ecs.Entity, error) {
	e, err := BuildEntity(w, "tile.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, x, y); err != nil {
		return 0, fmt.Errorf("tile: override transform: %w", err)
	}
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		c.HalfW = size / 2
		c.HalfH = size / 2
	}
	if err := ecs.Add(w, e, component.ChunkTagComponent.Kind(), &component.ChunkTag{Index: chunk}); err != nil {
		return 0, fmt.Errorf("tile: add chunk tag: %w", err)
	}
	return e, nil
}

// NewTutorialTile is NewTile for hand-authored geometry.
func NewTutorialTile(w *ecs.World, x, y, size float64, chunk int) (ecs.Entity, error) {
	e, err := NewTile(w, x, y, size, chunk)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TutorialTagComponent.Kind(), &component.TutorialTag{}); err != nil {
		return 0, fmt.Errorf("tile: add tutorial tag: %w", err)
	}
	return e, nil
}
