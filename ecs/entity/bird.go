package entity

import (
	"fmt"

	"github.com/milk9111/hungrypig/ecs"
)

func NewBirdAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, "bird.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, x, y); err != nil {
		return 0, fmt.Errorf("bird: override transform: %w", err)
	}
	return e, nil
}
