package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/state"
)

// HazardSystem flies birds. A bird chases the player while the bird effect
// is live, then leaves and is despawned once it climbs out of view.
type HazardSystem struct {
	sim     *state.Sim
	scripts map[string]*steeringScript
	failed  map[string]bool
}

func NewHazardSystem(sim *state.Sim) *HazardSystem {
	h := &HazardSystem{sim: sim}
	h.ReloadScripts()
	return h
}

// ReloadScripts drops compiled steering programs so they are read again.
func (s *HazardSystem) ReloadScripts() {
	s.scripts = make(map[string]*steeringScript)
	s.failed = make(map[string]bool)
}

func (s *HazardSystem) Update(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	chasing := s.sim.EffectActive(state.EffectBird)
	ceiling := s.sim.Tuning.World.ViewHeight * 1.2
	dt := s.sim.Dt

	var gone []ecs.Entity
	ecs.ForEach3(w, component.BirdComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, b *component.Bird, t *component.Transform, v *component.Velocity) {
		if t.Y > ceiling {
			gone = append(gone, e)
			return
		}
		v.X, v.Y = s.steer(b, pt.X-t.X, pt.Y-t.Y, chasing)
		t.X += v.X * dt
		t.Y += v.Y * dt
	})

	for _, e := range gone {
		ecs.DestroyEntity(w, e)
		log.Debug("bird despawned", "entity", e)
	}
}

func (s *HazardSystem) steer(b *component.Bird, dx, dy float64, chasing bool) (float64, float64) {
	if b.Script == "" || s.failed[b.Script] {
		return steerBird(dx, dy, chasing, b.Speed)
	}

	script, ok := s.scripts[b.Script]
	if !ok {
		var err error
		script, err = loadSteeringScript(b.Script)
		if err != nil {
			log.Error("bird script unavailable, using built-in steering", "script", b.Script, "err", err)
			s.failed[b.Script] = true
			return steerBird(dx, dy, chasing, b.Speed)
		}
		s.scripts[b.Script] = script
	}

	vx, vy, err := script.steer(dx, dy, chasing, b.Speed)
	if err != nil {
		log.Error("bird script failed", "script", b.Script, "err", err)
		s.failed[b.Script] = true
		return steerBird(dx, dy, chasing, b.Speed)
	}
	return vx, vy
}
