package system

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/entity"
	"github.com/milk9111/hungrypig/ecs/state"
	"github.com/milk9111/hungrypig/prefabs"
)

// EffectPayload is the Data of effect events.
type EffectPayload struct {
	Kind   state.EffectKind
	Expiry float64
}

// EffectScheduler starts, expires and cancels timed effects. At most one
// instance of a kind is live; reverting always restores the baseline.
type EffectScheduler struct {
	sim *state.Sim
}

func NewEffectScheduler(sim *state.Sim) *EffectScheduler {
	return &EffectScheduler{sim: sim}
}

func (s *EffectScheduler) tuning(kind state.EffectKind) prefabs.EffectTuning {
	e := s.sim.Tuning.Effects
	switch kind {
	case state.EffectFaster:
		return e.Faster
	case state.EffectJumpPower:
		return e.JumpPower
	case state.EffectShrink:
		return e.Shrink
	case state.EffectGrow:
		return e.Grow
	case state.EffectBird:
		return e.Bird
	}
	return prefabs.EffectTuning{}
}

// Start activates kind. An already active kind only has its expiry pushed
// out. Grow and Shrink drop each other without reverting first.
func (s *EffectScheduler) Start(w *ecs.World, kind state.EffectKind) {
	if !kind.Valid() {
		return
	}
	expiry := s.sim.Now + s.tuning(kind).Duration

	if _, active := s.sim.Effects[kind]; active {
		s.sim.Effects[kind] = expiry
		w.Events().Push(ecs.Event{Type: ecs.EventEffectRefreshed, Data: EffectPayload{Kind: kind, Expiry: expiry}})
		log.Debug("effect refreshed", "kind", kind, "expiry", expiry)
		return
	}

	switch kind {
	case state.EffectGrow:
		delete(s.sim.Effects, state.EffectShrink)
	case state.EffectShrink:
		delete(s.sim.Effects, state.EffectGrow)
	}

	s.apply(w, kind)
	s.sim.Effects[kind] = expiry
	w.Events().Push(ecs.Event{Type: ecs.EventEffectStarted, Data: EffectPayload{Kind: kind, Expiry: expiry}})
	log.Debug("effect started", "kind", kind, "expiry", expiry)
}

// Tick reverts and removes every effect whose expiry is before now, earliest
// expiry first and by kind order on ties.
func (s *EffectScheduler) Tick(w *ecs.World, now float64) {
	var expired []EffectPayload
	for kind, expiry := range s.sim.Effects {
		if expiry < now {
			expired = append(expired, EffectPayload{Kind: kind, Expiry: expiry})
		}
	}
	if len(expired) == 0 {
		return
	}
	sort.Slice(expired, func(i, j int) bool {
		if expired[i].Expiry != expired[j].Expiry {
			return expired[i].Expiry < expired[j].Expiry
		}
		return expired[i].Kind < expired[j].Kind
	})

	for _, fx := range expired {
		s.end(w, fx)
	}
}

// Cancel reverts kind now. Inactive kinds are ignored.
func (s *EffectScheduler) Cancel(w *ecs.World, kind state.EffectKind) {
	expiry, active := s.sim.Effects[kind]
	if !active {
		return
	}
	s.end(w, EffectPayload{Kind: kind, Expiry: expiry})
}

func (s *EffectScheduler) end(w *ecs.World, fx EffectPayload) {
	delete(s.sim.Effects, fx.Kind)
	s.revert(w, fx.Kind)
	w.Events().Push(ecs.Event{Type: ecs.EventEffectEnded, Data: fx})
	log.Debug("effect ended", "kind", fx.Kind, "now", s.sim.Now)
}

func (s *EffectScheduler) apply(w *ecs.World, kind state.EffectKind) {
	caps := &s.sim.Capabilities
	base := s.sim.Baseline
	fx := s.tuning(kind)

	switch kind {
	case state.EffectFaster:
		caps.Speed = fx.Speed
	case state.EffectJumpPower:
		caps.JumpPower = fx.JumpPower
	case state.EffectShrink, state.EffectGrow:
		caps.HalfW = base.HalfW * fx.SizeFactor
		caps.HalfH = base.HalfH * fx.SizeFactor
		caps.Scale = fx.Scale
		s.resizePlayer(w)
	case state.EffectBird:
		s.spawnBird(w)
	}
}

func (s *EffectScheduler) revert(w *ecs.World, kind state.EffectKind) {
	caps := &s.sim.Capabilities
	base := s.sim.Baseline

	switch kind {
	case state.EffectFaster:
		caps.Speed = base.Speed
	case state.EffectJumpPower:
		caps.JumpPower = base.JumpPower
	case state.EffectShrink, state.EffectGrow:
		caps.HalfW = base.HalfW
		caps.HalfH = base.HalfH
		caps.Scale = base.Scale
		s.resizePlayer(w)
	}
}

// resizePlayer copies capability geometry onto the player, keeping its
// bottom edge in place, then slides it sideways out of any solid the wider
// box now overlaps.
func (s *EffectScheduler) resizePlayer(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, okT := ecs.Get(w, player, component.TransformComponent.Kind())
	c, okC := ecs.Get(w, player, component.ColliderComponent.Kind())
	if okT && okC {
		t.Y += s.sim.Capabilities.HalfH - c.HalfH
	}
	entity.ApplyCapabilities(w, player, s.sim.Capabilities)
	if okT && okC {
		pushOutX(w, player, t, c)
	}
}

// pushOutX moves e along X by the overlap width away from the centers of the
// solids it overlaps. A body squeezed from both sides is left to the
// resolver.
func pushOutX(w *ecs.World, e ecs.Entity, t *component.Transform, c *component.Collider) {
	const maxPasses = 4
	for pass := 0; pass < maxPasses; pass++ {
		box := c.AABB(t)
		left, right := 0.0, 0.0
		ecs.ForEach3(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), component.BodyComponent.Kind(), func(other ecs.Entity, ot *component.Transform, oc *component.Collider, ob *component.Body) {
			if other == e || !ob.Solid() {
				return
			}
			solid := oc.AABB(ot)
			if !box.Overlaps(solid) {
				return
			}
			width, _ := box.OverlapExtents(solid)
			if box.Center.X >= solid.Center.X {
				right = math.Max(right, width)
			} else {
				left = math.Max(left, width)
			}
		})

		switch {
		case left == 0 && right == 0:
			return
		case left > 0 && right > 0:
			log.Warn("resized player wedged between solids", "entity", e, "x", t.X, "y", t.Y)
			return
		case right > 0:
			t.X += right
		default:
			t.X -= left
		}
	}
}

func (s *EffectScheduler) spawnBird(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	view := s.sim.Tuning.World
	if _, err := entity.NewBirdAt(w, t.X-view.ViewWidth/2, view.ViewHeight); err != nil {
		log.Error("spawn bird", "err", err)
	}
}

// EffectSystem expires effects once per step.
type EffectSystem struct {
	sim   *state.Sim
	sched *EffectScheduler
}

func NewEffectSystem(sim *state.Sim, sched *EffectScheduler) *EffectSystem {
	return &EffectSystem{sim: sim, sched: sched}
}

func (s *EffectSystem) Update(w *ecs.World) {
	s.sched.Tick(w, s.sim.Now)
}
