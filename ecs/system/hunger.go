package system

import (
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/state"
)

// HungerSystem drains hunger over time. It is left free to go negative so
// the outcome check can see starvation.
type HungerSystem struct {
	sim *state.Sim
}

func NewHungerSystem(sim *state.Sim) *HungerSystem {
	return &HungerSystem{sim: sim}
}

func (s *HungerSystem) Update(_ *ecs.World) {
	s.sim.Hunger -= s.sim.Tuning.Hunger.PerSecond * s.sim.Dt
}
