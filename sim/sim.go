// Package sim wires the world, the simulation state and the systems into one
// steppable run. Hosts feed it intent and read snapshots and events back.
package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/entity"
	"github.com/milk9111/hungrypig/ecs/state"
	"github.com/milk9111/hungrypig/ecs/system"
	"github.com/milk9111/hungrypig/prefabs"
)

// Snapshot is the read-only view hosts render from.
type Snapshot struct {
	Now        float64
	PlayerX    float64
	PlayerY    float64
	HalfW      float64
	HalfH      float64
	Scale      float64
	Grounded   bool
	Chunk      int
	NextChunk  int
	Effects    []state.ActiveEffect
	Hunger     float64
	Score      int
	Outcome    state.Outcome
	LossReason string
}

type Simulation struct {
	seed   uint64
	world  *ecs.World
	state  *state.Sim
	rng    *rand.Rand
	solids *system.SolidIndex

	effects   *system.EffectScheduler
	chunks    *system.ChunkSystem
	hazards   *system.HazardSystem
	scheduler *ecs.Scheduler

	player ecs.Entity
}

// NewSimulation builds a run from tuning. The same seed replays the same
// levels for the same inputs.
func NewSimulation(tuning *prefabs.Tuning, seed uint64) (*Simulation, error) {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		seed:   seed,
		world:  ecs.NewWorld(),
		state:  state.New(tuning),
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		solids: system.NewSolidIndex(),
	}
	s.effects = system.NewEffectScheduler(s.state)
	s.chunks = system.NewChunkSystem(s.state, system.NewChunkGenerator(s.state, s.solids, s.rng))
	s.hazards = system.NewHazardSystem(s.state)
	s.scheduler = ecs.NewScheduler(
		system.NewPlayerControlSystem(s.state),
		system.NewGravitySystem(s.state),
		system.NewMovementSystem(s.state, s.solids),
		s.chunks,
		system.NewEffectSystem(s.state, s.effects),
		s.hazards,
		system.NewPickupCollectSystem(s.state, s.effects, s.rng),
		system.NewHungerSystem(s.state),
		system.NewOutcomeSystem(s.state),
	)

	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset tears the level down and starts a fresh run. The RNG keeps its
// position so each restart plays a new level.
func (s *Simulation) Reset() error {
	ecs.Clear(s.world)
	s.solids.Reset()
	s.state.Reset(s.state.Tuning)
	t := s.state.Tuning

	if err := system.SpawnTutorial(s.world, t, s.solids); err != nil {
		return fmt.Errorf("sim: spawn tutorial: %w", err)
	}
	player, err := entity.NewPlayerAt(s.world, s.state.Capabilities, t.Player.SpawnX, t.Player.SpawnY)
	if err != nil {
		return fmt.Errorf("sim: spawn player: %w", err)
	}
	s.player = player

	s.chunks.Update(s.world)
	log.Info("run started", "seed", s.seed, "tutorial", t.World.TutorialChunks, "next_chunk", s.state.Progress.Next)
	return nil
}

// SetTuning swaps tuning and restarts the run under it.
func (s *Simulation) SetTuning(tuning *prefabs.Tuning) error {
	if err := tuning.Validate(); err != nil {
		return err
	}
	entity.ClearPrefabCache()
	s.state.Tuning = tuning
	return s.Reset()
}

// ReloadPrefabs makes the next spawns reread entity prefabs and scripts.
func (s *Simulation) ReloadPrefabs() {
	entity.ClearPrefabCache()
	s.hazards.ReloadScripts()
}

// Step advances the run by dt under intent. A finished run ignores steps.
func (s *Simulation) Step(dt float64, intent state.Intent) {
	if !s.state.Playing() || dt <= 0 {
		return
	}
	s.state.Intent = intent.Clamped()
	s.state.Advance(dt)
	s.scheduler.Update(s.world)
}

// StartEffect starts kind as if the player had eaten it.
func (s *Simulation) StartEffect(kind state.EffectKind) {
	s.effects.Start(s.world, kind)
}

// Events drains everything published since the last call.
func (s *Simulation) Events() []ecs.Event {
	return s.world.Events().Drain()
}

func (s *Simulation) Snapshot() Snapshot {
	st := s.state
	snap := Snapshot{
		Now:        st.Now,
		Scale:      st.Capabilities.Scale,
		HalfW:      st.Capabilities.HalfW,
		HalfH:      st.Capabilities.HalfH,
		Chunk:      st.Progress.Current,
		NextChunk:  st.Progress.Next,
		Effects:    st.ActiveEffects(),
		Hunger:     st.Hunger,
		Score:      st.Score,
		Outcome:    st.Outcome,
		LossReason: st.LossReason,
	}
	if t, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind()); ok {
		snap.PlayerX = t.X
		snap.PlayerY = t.Y
	}
	if b, ok := ecs.Get(s.world, s.player, component.BodyComponent.Kind()); ok {
		snap.Grounded = b.Grounded()
	}
	return snap
}

// World exposes the entity registry for rendering. Callers must not mutate
// it.
func (s *Simulation) World() *ecs.World {
	return s.world
}

func (s *Simulation) Tuning() *prefabs.Tuning {
	return s.state.Tuning
}

func (s *Simulation) Player() ecs.Entity {
	return s.player
}
