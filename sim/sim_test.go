package sim

import (
	"testing"

	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/state"
	"github.com/milk9111/hungrypig/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T, tune func(*prefabs.Tuning)) *Simulation {
	t.Helper()
	tuning := prefabs.DefaultTuning()
	if tune != nil {
		tune(tuning)
	}
	s, err := NewSimulation(tuning, 1)
	require.NoError(t, err)
	return s
}

func chunkEvents(events []ecs.Event) []int {
	var out []int
	for _, evt := range events {
		if evt.Type == ecs.EventChunkGenerated {
			out = append(out, evt.Data.(int))
		}
	}
	return out
}

func TestNewSimulationSpawnsPlayerAndLookahead(t *testing.T) {
	s := newSim(t, nil)
	snap := s.Snapshot()

	assert.Equal(t, 400.0, snap.PlayerX)
	assert.Equal(t, 300.0, snap.PlayerY)
	assert.Equal(t, 0, snap.Chunk)
	assert.Equal(t, 5, snap.NextChunk, "nothing past the tutorial until progress reaches 3")
	assert.Equal(t, 1, ecs.Count(s.World(), component.PlayerTagComponent.Kind()))
	assert.Equal(t, state.OutcomePlaying, snap.Outcome)
}

func TestPlayerFallsAndLands(t *testing.T) {
	s := newSim(t, nil)
	for i := 0; i < 120; i++ {
		s.Step(1.0/60, state.Intent{})
	}
	snap := s.Snapshot()
	assert.True(t, snap.Grounded)
	assert.InDelta(t, s.Tuning().World.TileSize+snap.HalfH, snap.PlayerY, 1e-6)

	landed := 0
	for _, evt := range s.Events() {
		if evt.Type == ecs.EventLanded {
			landed++
		}
	}
	assert.Equal(t, 1, landed)
}

func TestTwoChunkWidthsTriggerChunkFour(t *testing.T) {
	s := newSim(t, func(tuning *prefabs.Tuning) { tuning.World.TutorialChunks = 2 })
	assert.Equal(t, []int{2}, chunkEvents(s.Events()))

	width := s.Tuning().ChunkWidth()
	player := s.Player()
	tr, ok := ecs.Get(s.World(), player, component.TransformComponent.Kind())
	require.True(t, ok)

	tr.X = width + 10
	s.Step(1.0/60, state.Intent{})
	assert.Equal(t, []int{3}, chunkEvents(s.Events()))

	tr.X = 2*width + 10
	s.Step(1.0/60, state.Intent{})
	assert.Equal(t, 2, s.Snapshot().Chunk)
	assert.Equal(t, []int{4}, chunkEvents(s.Events()))
}

func TestWalkingRightGeneratesEachChunkOnce(t *testing.T) {
	s := newSim(t, func(tuning *prefabs.Tuning) { tuning.Hunger.PerSecond = 0 })
	s.Events()

	seen := map[int]int{}
	last := 0
	for i := 0; i < 60*30 && s.Snapshot().Outcome == state.OutcomePlaying; i++ {
		s.Step(1.0/60, state.Intent{Horizontal: 1, Jump: i%20 == 0})
		chunk := s.Snapshot().Chunk
		require.GreaterOrEqual(t, chunk, last)
		last = chunk
		for _, idx := range chunkEvents(s.Events()) {
			seen[idx]++
		}
	}
	for idx, n := range seen {
		assert.Equal(t, 1, n, "chunk %d", idx)
	}
	assert.Greater(t, last, 0)
}

func TestStepIgnoredAfterLoss(t *testing.T) {
	s := newSim(t, func(tuning *prefabs.Tuning) { tuning.Hunger.Start = 0.01 })
	for i := 0; i < 10; i++ {
		s.Step(1.0/60, state.Intent{})
	}
	snap := s.Snapshot()
	require.Equal(t, state.OutcomeLost, snap.Outcome)
	assert.Equal(t, "starved", snap.LossReason)

	s.Step(1.0/60, state.Intent{Horizontal: 1})
	assert.Equal(t, snap.Now, s.Snapshot().Now)

	require.NoError(t, s.Reset())
	assert.Equal(t, state.OutcomePlaying, s.Snapshot().Outcome)
	assert.Zero(t, s.Snapshot().Now)
}

func TestResetClearsEffectsAndWorld(t *testing.T) {
	s := newSim(t, nil)
	s.StartEffect(state.EffectGrow)
	s.StartEffect(state.EffectBird)
	require.Len(t, s.Snapshot().Effects, 2)
	oldPlayer := s.Player()

	require.NoError(t, s.Reset())

	snap := s.Snapshot()
	assert.Empty(t, snap.Effects)
	assert.Equal(t, s.Tuning().Player.Scale, snap.Scale)
	assert.False(t, ecs.IsAlive(s.World(), oldPlayer))
	assert.Zero(t, ecs.Count(s.World(), component.BirdComponent.Kind()))
}

func TestSameSeedSameLevel(t *testing.T) {
	layout := func() []component.Transform {
		s := newSim(t, func(tuning *prefabs.Tuning) { tuning.World.TutorialChunks = 0 })
		var out []component.Transform
		ecs.ForEach2(s.World(), component.ChunkTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, tag *component.ChunkTag, tr *component.Transform) {
			out = append(out, *tr)
		})
		return out
	}
	a := layout()
	require.NotEmpty(t, a)
	assert.Equal(t, a, layout())
}

func TestSetTuningRejectsInvalid(t *testing.T) {
	s := newSim(t, nil)
	bad := prefabs.DefaultTuning()
	bad.World.TileSize = 0
	assert.ErrorIs(t, s.SetTuning(bad), prefabs.ErrInvalidTuning)

	good := prefabs.DefaultTuning()
	good.Player.SpawnX = 200
	require.NoError(t, s.SetTuning(good))
	assert.Equal(t, 200.0, s.Snapshot().PlayerX)
}

func TestGrowAgainstStartWallCanWalkAway(t *testing.T) {
	s := newSim(t, nil)
	tile := s.Tuning().World.TileSize
	for i := 0; i < 180; i++ {
		s.Step(1.0/60, state.Intent{Horizontal: -1})
	}
	snap := s.Snapshot()
	require.True(t, snap.Grounded)
	require.InDelta(t, tile+snap.HalfW, snap.PlayerX, 1e-6, "pressed against the wall")

	s.StartEffect(state.EffectGrow)

	clearOfSolids := func(step int) {
		t.Helper()
		tr, _ := ecs.Get(s.World(), s.Player(), component.TransformComponent.Kind())
		c, _ := ecs.Get(s.World(), s.Player(), component.ColliderComponent.Kind())
		s.solids.Sync(s.World())
		require.Empty(t, s.solids.Overlapping(c.AABB(tr)), "step %d", step)
	}
	clearOfSolids(-1)

	startX := s.Snapshot().PlayerX
	for i := 0; i < 60; i++ {
		s.Step(1.0/60, state.Intent{Horizontal: 1})
		clearOfSolids(i)
	}

	snap = s.Snapshot()
	assert.Greater(t, snap.PlayerX, startX+200)
	assert.InDelta(t, tile+snap.HalfH, snap.PlayerY, 1e-6)
	assert.True(t, snap.Grounded)
}
