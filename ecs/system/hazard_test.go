package system

import (
	"testing"

	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/entity"
	"github.com/milk9111/hungrypig/ecs/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBirdScriptMatchesBuiltinSteering(t *testing.T) {
	script, err := loadSteeringScript("bird.tengo")
	require.NoError(t, err)

	cases := []struct {
		name    string
		dx, dy  float64
		chasing bool
	}{
		{"chase_right", 300, -40, true},
		{"chase_left_up", -120, 90, true},
		{"on_top", 0, 0, true},
		{"leaving", 300, -40, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			vx, vy, err := script.steer(c.dx, c.dy, c.chasing, 200)
			require.NoError(t, err)
			wx, wy := steerBird(c.dx, c.dy, c.chasing, 200)
			assert.InDelta(t, wx, vx, 1e-9)
			assert.InDelta(t, wy, vy, 1e-9)
		})
	}
}

func TestHazardSystemChasesThenLeaves(t *testing.T) {
	f := newFixture(t, nil)
	p := f.player(400, 100, 0, 0)
	bird, err := entity.NewBirdAt(f.w, 0, 100)
	require.NoError(t, err)
	hazards := NewHazardSystem(f.sim)

	f.sim.Effects[state.EffectBird] = 30
	f.step(0.1, hazards)
	assert.InDelta(t, 20, f.transform(bird).X, 1e-9)
	assert.InDelta(t, 100, f.transform(bird).Y, 1e-9)
	assert.InDelta(t, 200, f.velocity(bird).X, 1e-9)

	delete(f.sim.Effects, state.EffectBird)
	f.step(0.1, hazards)
	assert.InDelta(t, 40, f.transform(bird).X, 1e-9)
	assert.InDelta(t, 120, f.transform(bird).Y, 1e-9)
	assert.Equal(t, 400.0, f.transform(p).X, "player untouched")
}

func TestHazardSystemDespawnsAboveView(t *testing.T) {
	f := newFixture(t, nil)
	f.player(400, 100, 0, 0)
	bird, err := entity.NewBirdAt(f.w, 0, f.sim.Tuning.World.ViewHeight*1.2+1)
	require.NoError(t, err)

	f.step(1.0/60, NewHazardSystem(f.sim))

	assert.False(t, ecs.IsAlive(f.w, bird))
}

func TestHazardSystemFallsBackWithoutScript(t *testing.T) {
	f := newFixture(t, nil)
	f.player(400, 100, 0, 0)
	bird, err := entity.NewBirdAt(f.w, 0, 100)
	require.NoError(t, err)
	b, _ := ecs.Get(f.w, bird, component.BirdComponent.Kind())
	b.Script = "missing.tengo"

	hazards := NewHazardSystem(f.sim)
	f.step(0.1, hazards)

	assert.InDelta(t, 20, f.transform(bird).X, 1e-9)
	assert.InDelta(t, 20, f.transform(bird).Y-100, 1e-9)
	assert.True(t, hazards.failed["missing.tengo"])
}
