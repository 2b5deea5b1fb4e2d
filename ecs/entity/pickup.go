package entity

import (
	"fmt"

	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
)

func NewFood(w *ecs.World, x, y float64, chunk int) (ecs.Entity, error) {
	return newPickup(w, "food.yaml", x, y, chunk)
}

func NewTruffle(w *ecs.World, x, y float64, chunk int) (ecs.Entity, error) {
	return newPickup(w, "truffle.yaml", x, y, chunk)
}

func newPickup(w *ecs.World, prefab string, x, y float64, chunk int) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, x, y); err != nil {
		return 0, fmt.Errorf("pickup: override transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ChunkTagComponent.Kind(), &component.ChunkTag{Index: chunk}); err != nil {
		return 0, fmt.Errorf("pickup: add chunk tag: %w", err)
	}
	return e, nil
}
