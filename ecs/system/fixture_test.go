package system

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/state"
	"github.com/milk9111/hungrypig/prefabs"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	w      *ecs.World
	sim    *state.Sim
	solids *SolidIndex
	rng    *rand.Rand
}

func newFixture(t *testing.T, tune func(*prefabs.Tuning)) *fixture {
	t.Helper()
	tuning := prefabs.DefaultTuning()
	if tune != nil {
		tune(tuning)
	}
	require.NoError(t, tuning.Validate())
	return &fixture{
		w:      ecs.NewWorld(),
		sim:    state.New(tuning),
		solids: NewSolidIndex(),
		rng:    rand.New(rand.NewPCG(1, 2)),
	}
}

func (f *fixture) solid(x, y, halfW, halfH float64) ecs.Entity {
	e := ecs.CreateEntity(f.w)
	_ = ecs.Add(f.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(f.w, e, component.ColliderComponent.Kind(), &component.Collider{HalfW: halfW, HalfH: halfH})
	_ = ecs.Add(f.w, e, component.BodyComponent.Kind(), &component.Body{Flags: component.FlagSolid})
	return e
}

// tile places one tile-sized solid at grid slot (col, row).
func (f *fixture) tile(col, row int) ecs.Entity {
	size := f.sim.Tuning.World.TileSize
	return f.solid(float64(col)*size+size/2, float64(row)*size+size/2, size/2, size/2)
}

func (f *fixture) mover(x, y, halfW, halfH, vx, vy float64) ecs.Entity {
	e := ecs.CreateEntity(f.w)
	_ = ecs.Add(f.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(f.w, e, component.VelocityComponent.Kind(), &component.Velocity{X: vx, Y: vy})
	_ = ecs.Add(f.w, e, component.ColliderComponent.Kind(), &component.Collider{HalfW: halfW, HalfH: halfH})
	_ = ecs.Add(f.w, e, component.BodyComponent.Kind(), &component.Body{Flags: component.FlagMovable})
	return e
}

func (f *fixture) player(x, y, vx, vy float64) ecs.Entity {
	caps := f.sim.Capabilities
	e := f.mover(x, y, caps.HalfW, caps.HalfH, vx, vy)
	_ = ecs.Add(f.w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	return e
}

func (f *fixture) transform(e ecs.Entity) *component.Transform {
	t, _ := ecs.Get(f.w, e, component.TransformComponent.Kind())
	return t
}

func (f *fixture) velocity(e ecs.Entity) *component.Velocity {
	v, _ := ecs.Get(f.w, e, component.VelocityComponent.Kind())
	return v
}

func (f *fixture) collider(e ecs.Entity) *component.Collider {
	c, _ := ecs.Get(f.w, e, component.ColliderComponent.Kind())
	return c
}

func (f *fixture) body(e ecs.Entity) *component.Body {
	b, _ := ecs.Get(f.w, e, component.BodyComponent.Kind())
	return b
}

func (f *fixture) step(dt float64, systems ...ecs.System) {
	f.sim.Advance(dt)
	ecs.NewScheduler(systems...).Update(f.w)
}

func eventsOf(events []ecs.Event, typ ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, evt := range events {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}
