package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hungrypig/common"
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/state"
)

// MovementSystem integrates velocity for every movable body and resolves it
// against solid geometry one axis at a time, vertical first. It also owns
// the grounded flag and advances chunk progress from the player position.
type MovementSystem struct {
	sim    *state.Sim
	solids *SolidIndex
}

func NewMovementSystem(sim *state.Sim, solids *SolidIndex) *MovementSystem {
	return &MovementSystem{sim: sim, solids: solids}
}

func (s *MovementSystem) Update(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		panic(ErrNoPlayer)
	}

	s.solids.Refresh(w)

	ecs.ForEach4(w, component.TransformComponent.Kind(), component.VelocityComponent.Kind(), component.ColliderComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, v *component.Velocity, c *component.Collider, b *component.Body) {
		if !b.Movable() {
			return
		}
		wasGrounded := b.Grounded()
		s.resolve(e, t, v, c, b, s.sim.Dt)
		if e == player && !wasGrounded && b.Grounded() {
			w.Events().Push(ecs.Event{Type: ecs.EventLanded, Data: e})
		}
	})

	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		s.advanceProgress(t.X)
	}
}

// advanceProgress bumps the chunk counter while |x| exceeds the far edge of
// the current chunk.
func (s *MovementSystem) advanceProgress(x float64) {
	width := s.sim.Tuning.ChunkWidth()
	dist := math.Abs(x)
	p := &s.sim.Progress
	for dist > float64(p.Current+1)*width {
		p.Current++
	}
}

func (s *MovementSystem) resolve(e ecs.Entity, t *component.Transform, v *component.Velocity, c *component.Collider, b *component.Body, dt float64) {
	if v.IsZero() {
		return
	}

	tile := s.sim.Tuning.World.TileSize
	probe := s.sim.Tuning.Physics.GroundProbe

	box := c.AABB(t)
	dy := v.Y * dt
	dx := v.X * dt

	swept := common.Union(box.BB(), box.Translate(cp.Vector{X: dx, Y: dy}).BB())
	candidates := s.solids.query(common.Grow(swept, tile+probe, tile+probe))

	origVY := v.Y
	landed := false
	dy, hit := resolveAxis(box, dy, common.AxisY, candidates, tile)
	if hit {
		v.Y = 0
		if origVY < 0 {
			landed = true
		}
	}
	box = box.Translate(cp.Vector{Y: dy})

	dx, _ = resolveAxis(box, dx, common.AxisX, candidates, tile)
	box = box.Translate(cp.Vector{X: dx})

	if ref, ok := firstOverlap(box, candidates); ok {
		log.Warn("collision unresolved", "entity", e, "solid", ref.entity, "x", box.Center.X, "y", box.Center.Y)
	}

	t.X += dx
	t.Y += dy

	switch {
	case landed:
		b.Flags.Set(component.FlagGrounded, true)
	case dy != 0:
		b.Flags.Set(component.FlagGrounded, false)
	default:
		below := box.Translate(cp.Vector{Y: -probe})
		if _, ok := firstOverlap(below, candidates); !ok {
			b.Flags.Set(component.FlagGrounded, false)
		}
	}
}

// resolveAxis shortens d until box moved by d along axis clears every
// candidate. Each pass removes one overlap, so there are at most
// max(1, len(candidates)) passes. A body that is still embedded once d is
// zero is pushed one tile away from the solid it overlaps.
func resolveAxis(box common.AABB, d float64, axis common.Axis, candidates []solidRef, tile float64) (float64, bool) {
	hit := false
	limit := max(1, len(candidates))
	for i := 0; i < limit; i++ {
		moved := box.Translate(offset(axis, d))
		ref, ok := firstOverlap(moved, candidates)
		if !ok {
			return d, hit
		}
		hit = true

		depth := moved.Penetration(ref.box, axis, d)
		switch {
		case d > 0:
			d = math.Max(0, d-depth)
		case d < 0:
			d = math.Min(0, d+depth)
		}

		if d == 0 && box.Overlaps(ref.box) && axis == common.AxisY {
			d = nudgeY(box, candidates, tile)
		}
	}
	if _, ok := firstOverlap(box.Translate(offset(axis, d)), candidates); ok {
		log.Warn("resolution bound reached", "axis", axis, "passes", limit, "d", d)
	}
	return d, hit
}

// nudgeY picks the one-tile vertical push for an embedded box: toward the
// side with the smaller penetration over every solid it overlaps. Down is
// only taken when it lands clear of all candidates, so support below is
// never entered.
func nudgeY(box common.AABB, candidates []solidRef, tile float64) float64 {
	up, down := 0.0, 0.0
	for _, ref := range candidates {
		if !box.Overlaps(ref.box) {
			continue
		}
		up = math.Max(up, ref.box.Top()-box.Bottom())
		down = math.Max(down, box.Top()-ref.box.Bottom())
	}
	if down < up {
		if _, blocked := firstOverlap(box.Translate(cp.Vector{Y: -tile}), candidates); !blocked {
			return -tile
		}
	}
	return tile
}

func offset(axis common.Axis, d float64) cp.Vector {
	if axis == common.AxisX {
		return cp.Vector{X: d}
	}
	return cp.Vector{Y: d}
}

func firstOverlap(box common.AABB, candidates []solidRef) (solidRef, bool) {
	for _, ref := range candidates {
		if box.Overlaps(ref.box) {
			return ref, true
		}
	}
	return solidRef{}, false
}
