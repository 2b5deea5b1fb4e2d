package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/state"
)

const (
	LossStarved = "starved"
	LossFell    = "fell"
	LossCaught  = "caught"
)

// OutcomeSystem ends the run when the player starves, falls out of the
// level or touches a bird.
type OutcomeSystem struct {
	sim *state.Sim
}

func NewOutcomeSystem(sim *state.Sim) *OutcomeSystem {
	return &OutcomeSystem{sim: sim}
}

func (s *OutcomeSystem) Update(w *ecs.World) {
	if !s.sim.Playing() {
		return
	}
	if reason, lost := s.check(w); lost && s.sim.Lose(reason) {
		w.Events().Push(ecs.Event{Type: ecs.EventPlayerLost, Data: reason})
		log.Info("run over", "reason", reason, "score", s.sim.Score, "chunk", s.sim.Progress.Current, "t", s.sim.Now)
	}
}

func (s *OutcomeSystem) check(w *ecs.World) (string, bool) {
	if s.sim.Hunger < 0 {
		return LossStarved, true
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return "", false
	}
	pt, okT := ecs.Get(w, player, component.TransformComponent.Kind())
	pc, okC := ecs.Get(w, player, component.ColliderComponent.Kind())
	if !okT || !okC {
		return "", false
	}

	world := s.sim.Tuning
	if pt.Y < -world.Physics.FallLimitTile*world.World.TileSize {
		return LossFell, true
	}

	playerBox := pc.AABB(pt)
	caught := false
	ecs.ForEach3(w, component.BirdComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, _ *component.Bird, t *component.Transform, c *component.Collider) {
		if !caught && playerBox.Overlaps(c.AABB(t)) {
			caught = true
		}
	})
	if caught {
		return LossCaught, true
	}
	return "", false
}
