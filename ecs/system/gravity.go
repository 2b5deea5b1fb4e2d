package system

import (
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/state"
)

// GravitySystem pulls every airborne movable body down.
type GravitySystem struct {
	sim *state.Sim
}

func NewGravitySystem(sim *state.Sim) *GravitySystem {
	return &GravitySystem{sim: sim}
}

func (s *GravitySystem) Update(w *ecs.World) {
	g := s.sim.Tuning.Physics.Gravity
	dt := s.sim.Dt
	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, v *component.Velocity, b *component.Body) {
		if !b.Movable() || b.Grounded() {
			return
		}
		v.Y -= g * dt
	})
}
