package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/state"
)

// PlayerControlSystem turns the step intent into player velocity.
type PlayerControlSystem struct {
	sim *state.Sim
}

func NewPlayerControlSystem(sim *state.Sim) *PlayerControlSystem {
	return &PlayerControlSystem{sim: sim}
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		panic(ErrNoPlayer)
	}
	v, ok := ecs.Get(w, player, component.VelocityComponent.Kind())
	if !ok {
		return
	}
	body, _ := ecs.Get(w, player, component.BodyComponent.Kind())

	intent := s.sim.Intent.Clamped()
	caps := s.sim.Capabilities
	v.X = intent.Horizontal * caps.Speed
	if intent.Jump && body.Grounded() {
		v.Y = caps.JumpPower
		log.Debug("jump", "vy", v.Y, "t", s.sim.Now)
	}
}
