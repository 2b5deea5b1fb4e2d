package system

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/milk9111/hungrypig/common"
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/state"
)

// PickupPayload is the Data of EventPickupCollected.
type PickupPayload struct {
	Kind   component.PickupKind
	Effect *state.EffectKind
}

// PickupCollectSystem eats pickups the player overlaps. Food feeds and
// starts a random effect; truffles feed and score.
type PickupCollectSystem struct {
	sim     *state.Sim
	effects *EffectScheduler
	rng     *rand.Rand
}

func NewPickupCollectSystem(sim *state.Sim, effects *EffectScheduler, rng *rand.Rand) *PickupCollectSystem {
	return &PickupCollectSystem{sim: sim, effects: effects, rng: rng}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pt, okT := ecs.Get(w, player, component.TransformComponent.Kind())
	pc, okC := ecs.Get(w, player, component.ColliderComponent.Kind())
	if !okT || !okC {
		return
	}
	playerBox := pc.AABB(pt)

	type hit struct {
		e      ecs.Entity
		pickup component.Pickup
	}
	var hits []hit
	ecs.ForEach3(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, p *component.Pickup, t *component.Transform, c *component.Collider) {
		if playerBox.Overlaps(c.AABB(t)) {
			hits = append(hits, hit{e: e, pickup: *p})
		}
	})

	maxHunger := s.sim.Tuning.Hunger.Max
	for _, h := range hits {
		ecs.DestroyEntity(w, h.e)
		s.sim.Hunger = common.Clamp(s.sim.Hunger+h.pickup.Value, 0, maxHunger)

		payload := PickupPayload{Kind: h.pickup.Kind}
		switch h.pickup.Kind {
		case component.PickupFood:
			kind := state.EffectKinds[s.rng.IntN(len(state.EffectKinds))]
			payload.Effect = &kind
			s.effects.Start(w, kind)
		case component.PickupTruffle:
			s.sim.Score++
		}
		w.Events().Push(ecs.Event{Type: ecs.EventPickupCollected, Data: payload})
		log.Debug("pickup collected", "kind", h.pickup.Kind, "hunger", s.sim.Hunger, "score", s.sim.Score)
	}
}
