package system

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementLandsOnPlatform(t *testing.T) {
	f := newFixture(t, nil)
	platform := f.tile(0, 0)
	p := f.player(16, 104, 0, -1000)

	f.step(0.1, NewMovementSystem(f.sim, f.solids))

	tr := f.transform(p)
	c := f.collider(p)
	top := f.collider(platform).AABB(f.transform(platform)).Top()
	assert.InDelta(t, top, tr.Y-c.HalfH, 1e-9)
	assert.Zero(t, f.velocity(p).Y)
	assert.True(t, f.body(p).Grounded())
	assert.Len(t, eventsOf(f.w.Events().Drain(), ecs.EventLanded), 1)
}

func TestMovementZeroVelocityIsNoop(t *testing.T) {
	cases := []struct {
		name     string
		y        float64
		grounded bool
	}{
		{"resting_grounded", 32 + 22, true},
		{"floating_airborne", 200, false},
		{"floating_flagged_grounded", 200, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.tile(0, 0)
			p := f.player(16, c.y, 0, 0)
			f.body(p).Flags.Set(component.FlagGrounded, c.grounded)

			f.step(1.0/60, NewMovementSystem(f.sim, f.solids))

			assert.Equal(t, 16.0, f.transform(p).X)
			assert.Equal(t, c.y, f.transform(p).Y)
			assert.Equal(t, c.grounded, f.body(p).Grounded())
		})
	}
}

func TestMovementClampsAgainstWall(t *testing.T) {
	f := newFixture(t, nil)
	wall := f.tile(5, 1)
	p := f.player(100, 48, 300, 0)
	f.body(p).Flags.Set(component.FlagGrounded, true)

	f.step(0.5, NewMovementSystem(f.sim, f.solids))

	wallBox := f.collider(wall).AABB(f.transform(wall))
	assert.InDelta(t, wallBox.Left(), f.transform(p).X+f.collider(p).HalfW, 1e-9)
	assert.Equal(t, 300.0, f.velocity(p).X, "horizontal velocity is not reset")
}

func TestMovementHeadBumpClearsUpwardVelocity(t *testing.T) {
	f := newFixture(t, nil)
	ceiling := f.tile(0, 5)
	p := f.player(16, 100, 0, 1000)

	f.step(0.1, NewMovementSystem(f.sim, f.solids))

	ceilBox := f.collider(ceiling).AABB(f.transform(ceiling))
	assert.InDelta(t, ceilBox.Bottom(), f.transform(p).Y+f.collider(p).HalfH, 1e-9)
	assert.Zero(t, f.velocity(p).Y)
	assert.False(t, f.body(p).Grounded(), "only downward hits ground a body")
}

func TestMovementWalkingOffLedgeClearsGrounded(t *testing.T) {
	f := newFixture(t, nil)
	f.tile(0, 0)
	p := f.player(16, 54, 250, 0)
	f.body(p).Flags.Set(component.FlagGrounded, true)

	movement := NewMovementSystem(f.sim, f.solids)
	f.step(0.1, movement)
	assert.True(t, f.body(p).Grounded(), "still over the tile edge")

	f.step(0.2, movement)
	assert.False(t, f.body(p).Grounded())
}

func TestMovementJumpLeavesGround(t *testing.T) {
	f := newFixture(t, nil)
	f.tile(0, 0)
	p := f.player(16, 54, 0, 1100)
	f.body(p).Flags.Set(component.FlagGrounded, true)

	f.step(1.0/60, NewMovementSystem(f.sim, f.solids))

	assert.False(t, f.body(p).Grounded())
	assert.Greater(t, f.transform(p).Y, 54.0)
}

func TestMovementNeverEndsInsideSolid(t *testing.T) {
	f := newFixture(t, nil)
	for col := 0; col < 24; col++ {
		if col%7 == 3 {
			continue
		}
		f.tile(col, 0)
	}
	for _, slot := range [][2]int{{4, 4}, {5, 4}, {10, 2}, {15, 6}, {16, 6}, {20, 1}} {
		f.tile(slot[0], slot[1])
	}
	f.player(600, 500, 0, 0)

	rng := rand.New(rand.NewPCG(7, 11))
	var movers []ecs.Entity
	for len(movers) < 12 {
		x := 32 + rng.Float64()*700
		y := 40 + rng.Float64()*300
		e := f.mover(x, y, 4+rng.Float64()*24, 4+rng.Float64()*24, 0, 0)
		f.solids.Sync(f.w)
		if len(f.solids.Overlapping(f.collider(e).AABB(f.transform(e)))) > 0 {
			ecs.DestroyEntity(f.w, e)
			continue
		}
		movers = append(movers, e)
	}

	gravity := NewGravitySystem(f.sim)
	movement := NewMovementSystem(f.sim, f.solids)
	for i := 0; i < 300; i++ {
		for _, e := range movers {
			v := f.velocity(e)
			if rng.IntN(10) == 0 {
				v.X = (rng.Float64()*2 - 1) * 900
				v.Y = (rng.Float64()*2 - 1) * 1500
			}
		}
		f.step(0.005+rng.Float64()*0.1, gravity, movement)

		for _, e := range movers {
			box := f.collider(e).AABB(f.transform(e))
			require.Empty(t, f.solids.Overlapping(box), "step %d: body %v inside solid at %+v", i, e, box.Center)
		}
	}
}

func TestMovementEmbeddedBodyTerminatesAndEscapes(t *testing.T) {
	f := newFixture(t, nil)
	block := f.tile(3, 3)
	blockT := f.transform(block)
	p := f.player(blockT.X, blockT.Y, 10, 0)

	movement := NewMovementSystem(f.sim, f.solids)
	startY := f.transform(p).Y
	escaped := false
	for i := 0; i < 5 && !escaped; i++ {
		f.step(1.0/60, movement)
		box := f.collider(p).AABB(f.transform(p))
		escaped = len(f.solids.Overlapping(box)) == 0
	}
	assert.True(t, escaped)
	assert.Greater(t, f.transform(p).Y, startY)
}

func TestMovementProgressIsMonotonic(t *testing.T) {
	f := newFixture(t, nil)
	p := f.player(100, 1000, 0, 0)
	movement := NewMovementSystem(f.sim, f.solids)
	width := f.sim.Tuning.ChunkWidth()

	positions := []struct {
		x    float64
		want int
	}{
		{width - 1, 0},
		{width, 0},
		{width + 1, 1},
		{3.5 * width, 3},
		{1.2 * width, 3},
		{-4.5 * width, 4},
	}
	for _, pos := range positions {
		f.transform(p).X = pos.x
		f.step(1.0/60, movement)
		assert.Equal(t, pos.want, f.sim.Progress.Current, "x=%v", pos.x)
	}
}

func TestMovementWithoutPlayerPanics(t *testing.T) {
	f := newFixture(t, nil)
	f.mover(0, 0, 4, 4, 1, 1)
	assert.PanicsWithValue(t, ErrNoPlayer, func() {
		f.step(1.0/60, NewMovementSystem(f.sim, f.solids))
	})
}

func TestGravitySkipsGroundedAndStatic(t *testing.T) {
	f := newFixture(t, nil)
	air := f.mover(0, 100, 4, 4, 0, 0)
	ground := f.mover(50, 100, 4, 4, 0, 0)
	f.body(ground).Flags.Set(component.FlagGrounded, true)
	solid := f.tile(4, 0)
	_ = ecs.Add(f.w, solid, component.VelocityComponent.Kind(), &component.Velocity{})

	f.step(0.1, NewGravitySystem(f.sim))

	assert.InDelta(t, -425.0, f.velocity(air).Y, 1e-9)
	assert.Zero(t, f.velocity(ground).Y)
	assert.Zero(t, f.velocity(solid).Y)
}

func TestPlayerControlAppliesIntent(t *testing.T) {
	f := newFixture(t, nil)
	p := f.player(0, 0, 0, 0)
	control := NewPlayerControlSystem(f.sim)

	f.sim.Intent.Horizontal = 3
	f.sim.Intent.Jump = true
	f.step(1.0/60, control)
	assert.Equal(t, f.sim.Capabilities.Speed, f.velocity(p).X)
	assert.Zero(t, f.velocity(p).Y, "no jump while airborne")

	f.body(p).Flags.Set(component.FlagGrounded, true)
	f.sim.Intent.Horizontal = -0.5
	f.step(1.0/60, control)
	assert.Equal(t, -0.5*f.sim.Capabilities.Speed, f.velocity(p).X)
	assert.Equal(t, f.sim.Capabilities.JumpPower, f.velocity(p).Y)
}

func TestSolidIndexTracksLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	a := f.tile(0, 0)
	b := f.tile(1, 0)
	f.solids.Sync(f.w)
	require.Equal(t, 2, f.solids.Len())

	probe := f.collider(a).AABB(f.transform(a))
	assert.Equal(t, []ecs.Entity{a}, f.solids.Overlapping(probe))

	ecs.DestroyEntity(f.w, a)
	f.transform(b).X += 100
	f.solids.Sync(f.w)

	assert.Equal(t, 1, f.solids.Len())
	assert.Empty(t, f.solids.Overlapping(probe))
	moved := f.collider(b).AABB(f.transform(b))
	assert.Equal(t, []ecs.Entity{b}, f.solids.Overlapping(moved))
}

func TestSolidIndexRefreshesOnlyWhenInvalidated(t *testing.T) {
	f := newFixture(t, nil)
	f.tile(0, 0)
	f.solids.Refresh(f.w)
	require.Equal(t, 1, f.solids.Len())

	f.tile(1, 0)
	f.solids.Refresh(f.w)
	assert.Equal(t, 1, f.solids.Len(), "unchanged until invalidated")

	f.solids.Invalidate()
	f.solids.Refresh(f.w)
	assert.Equal(t, 2, f.solids.Len())
}

func TestMovementNudgeNeverEntersSupport(t *testing.T) {
	f := newFixture(t, nil)
	for col := 2; col <= 4; col++ {
		f.tile(col, 0)
	}
	// A low slab overlapping the top of a body that rests on the ground.
	f.solid(112, 87, 48, 16)
	p := f.player(112, 54, 0, -10)
	f.body(p).Flags.Set(component.FlagGrounded, true)
	groundTop := 32.0

	f.step(1.0/60, NewMovementSystem(f.sim, f.solids))

	bottom := f.transform(p).Y - f.collider(p).HalfH
	assert.GreaterOrEqual(t, bottom, groundTop-1e-9)
}

func TestMovementNudgeTakesShallowSide(t *testing.T) {
	f := newFixture(t, nil)
	block := f.tile(3, 3)
	blockT := f.transform(block)
	p := f.player(blockT.X, blockT.Y-30, 10, 0)

	f.step(1.0/60, NewMovementSystem(f.sim, f.solids))

	assert.InDelta(t, blockT.Y-30-f.sim.Tuning.World.TileSize, f.transform(p).Y, 1e-9)
	box := f.collider(p).AABB(f.transform(p))
	assert.Empty(t, f.solids.Overlapping(box))
}
