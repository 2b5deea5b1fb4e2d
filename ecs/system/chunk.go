package system

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/ecs/entity"
	"github.com/milk9111/hungrypig/ecs/state"
	"github.com/milk9111/hungrypig/prefabs"
)

// ChunkGenerator plans and spawns procedural chunks. Each index past the
// tutorial is generated once, in increasing order.
type ChunkGenerator struct {
	sim    *state.Sim
	solids *SolidIndex
	rng    *rand.Rand
}

// NewChunkGenerator returns a generator that invalidates solids whenever it
// spawns tiles. solids may be nil.
func NewChunkGenerator(sim *state.Sim, solids *SolidIndex, rng *rand.Rand) *ChunkGenerator {
	return &ChunkGenerator{sim: sim, solids: solids, rng: rng}
}

// Generate spawns chunk index and reports whether it did. Tutorial indices,
// indices already generated and indices that would leave a gap are ignored.
func (g *ChunkGenerator) Generate(w *ecs.World, index int) bool {
	t := g.sim.Tuning
	p := &g.sim.Progress
	switch {
	case index < t.World.TutorialChunks:
		log.Debug("chunk rejected", "index", index, "reason", "tutorial")
		return false
	case index < p.Next:
		log.Debug("chunk rejected", "index", index, "reason", "already generated")
		return false
	case index > p.Next:
		log.Debug("chunk rejected", "index", index, "reason", "out of order", "next", p.Next)
		return false
	}

	layout := PlanChunk(t, index, g.rng, p.HoleRun)
	g.spawn(w, layout)
	g.solids.Invalidate()

	p.Next = index + 1
	p.HoleRun = layout.HoleRun
	w.Events().Push(ecs.Event{Type: ecs.EventChunkGenerated, Data: index})
	log.Debug("chunk generated", "index", index, "progress", p.Current, "bonus", layout.Bonus != nil)
	return true
}

func (g *ChunkGenerator) spawn(w *ecs.World, layout ChunkLayout) {
	t := g.sim.Tuning
	tile := t.World.TileSize
	originX := float64(layout.Index) * t.ChunkWidth()
	colX := func(col int) float64 { return originX + tile/2 + float64(col)*tile }
	rowY := func(row int) float64 { return float64(row)*tile + tile/2 }

	for col, solid := range layout.Ground {
		if !solid {
			continue
		}
		if _, err := entity.NewTile(w, colX(col), rowY(0), tile, layout.Index); err != nil {
			log.Error("spawn ground tile", "chunk", layout.Index, "col", col, "err", err)
		}
	}
	for _, col := range layout.GroundFood {
		g.spawnPickup(w, component.PickupFood, colX(col), rowY(0), layout.Index)
	}

	plats := layout.Platforms
	if layout.Bonus != nil {
		plats = append(plats[:len(plats):len(plats)], *layout.Bonus)
	}
	for _, plat := range plats {
		y := rowY(plat.Row)
		for _, col := range plat.Columns {
			if _, err := entity.NewTile(w, colX(col), y, tile, layout.Index); err != nil {
				log.Error("spawn platform tile", "chunk", layout.Index, "col", col, "err", err)
			}
		}
		for _, col := range plat.Food {
			g.spawnPickup(w, component.PickupFood, colX(col), y, layout.Index)
		}
		if plat.Truffle >= 0 {
			g.spawnPickup(w, component.PickupTruffle, colX(plat.Truffle), y, layout.Index)
		}
	}
}

// spawnPickup rests a pickup on top of the tile centered at (x, tileY).
func (g *ChunkGenerator) spawnPickup(w *ecs.World, kind component.PickupKind, x, tileY float64, chunk int) {
	build := entity.NewFood
	if kind == component.PickupTruffle {
		build = entity.NewTruffle
	}
	e, err := build(w, x, tileY, chunk)
	if err != nil {
		log.Error("spawn pickup", "kind", kind, "chunk", chunk, "err", err)
		return
	}
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	c, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
	if t != nil && c != nil {
		t.Y = tileY + g.sim.Tuning.World.TileSize/2 + c.HalfH
	}
}

// ChunkSystem keeps generation two chunks ahead of the player.
type ChunkSystem struct {
	sim *state.Sim
	gen *ChunkGenerator
}

func NewChunkSystem(sim *state.Sim, gen *ChunkGenerator) *ChunkSystem {
	return &ChunkSystem{sim: sim, gen: gen}
}

func (s *ChunkSystem) Update(w *ecs.World) {
	target := s.sim.Progress.Current + 2
	for s.sim.Progress.Next <= target {
		if !s.gen.Generate(w, s.sim.Progress.Next) {
			return
		}
	}
}

// SpawnTutorial builds the hand-authored opening: flat ground across the
// tutorial chunks, a wall at the left edge and one low platform. solids may
// be nil.
func SpawnTutorial(w *ecs.World, t *prefabs.Tuning, solids *SolidIndex) error {
	defer solids.Invalidate()
	tile := t.World.TileSize
	for index := 0; index < t.World.TutorialChunks; index++ {
		originX := float64(index) * t.ChunkWidth()
		for col := 0; col < t.World.ChunkTiles; col++ {
			if _, err := entity.NewTutorialTile(w, originX+tile/2+float64(col)*tile, tile/2, tile, index); err != nil {
				return err
			}
		}
	}

	for brick := 1; brick < 20; brick++ {
		if _, err := entity.NewTutorialTile(w, tile/2, tile/2+float64(brick)*tile, tile, 0); err != nil {
			return err
		}
	}

	row := t.Generation.MidPlatformRow
	for col := 7; col <= 9; col++ {
		if _, err := entity.NewTutorialTile(w, tile/2+float64(col)*tile, float64(row)*tile+tile/2, tile, 0); err != nil {
			return err
		}
	}
	return nil
}
