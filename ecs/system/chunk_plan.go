package system

import (
	"math/rand/v2"

	"github.com/milk9111/hungrypig/prefabs"
)

// PlatformPlan is one elevated run of tiles. Columns are chunk-local slots.
type PlatformPlan struct {
	Row     int
	Start   int
	Columns []int
	Food    []int
	// Truffle is the column holding the truffle, or -1.
	Truffle int
}

// ChunkLayout is the content of one generated chunk before anything is
// spawned.
type ChunkLayout struct {
	Index int
	// Ground reports which ground slots hold a tile.
	Ground     []bool
	GroundFood []int
	Platforms  []PlatformPlan
	Bonus      *PlatformPlan
	// HoleRun is the consecutive-hole count at the chunk's right edge.
	HoleRun int
}

// PlanChunk lays out chunk index. holeRun is the consecutive-hole count
// carried over from the previous chunk. The layout depends only on the
// arguments and the values drawn from rng.
func PlanChunk(t *prefabs.Tuning, index int, rng *rand.Rand, holeRun int) ChunkLayout {
	g := t.Generation
	n := t.World.ChunkTiles

	layout := ChunkLayout{Index: index, Ground: make([]bool, n)}
	for i := range layout.Ground {
		layout.Ground[i] = true
	}

	width := g.HoleWidth
	if index > g.WideHolesAfterChunk {
		width = g.WideHoleWidth
	}
	for i := 0; i < g.HoleCount; i++ {
		start := rng.IntN(n)
		for col := start; col < start+width && col < n; col++ {
			layout.Ground[col] = false
		}
	}

	run := holeRun
	for col, solid := range layout.Ground {
		if solid {
			run = 0
			continue
		}
		if run >= g.MaxHoleRun {
			layout.Ground[col] = true
			run = 0
			continue
		}
		run++
	}
	layout.HoleRun = run

	for col, solid := range layout.Ground {
		if solid && rng.Float64() < g.GroundFoodChance {
			layout.GroundFood = append(layout.GroundFood, col)
		}
	}

	taken := make([]bool, n)
	firstHalfStart := -1
	for i := 0; i < g.PlatformCount; i++ {
		length := g.PlatformMinTiles + rng.IntN(g.PlatformMaxTiles-g.PlatformMinTiles+1)
		start := rng.IntN(n - length + 1)
		plat := PlatformPlan{Row: g.MidPlatformRow, Start: start, Truffle: -1}
		for col := start; col < start+length; col++ {
			if taken[col] {
				continue
			}
			taken[col] = true
			plat.Columns = append(plat.Columns, col)
			if rng.Float64() < g.PlatformFoodChance {
				plat.Food = append(plat.Food, col)
			}
		}
		if firstHalfStart < 0 && start < n/2 {
			firstHalfStart = start
		}
		layout.Platforms = append(layout.Platforms, plat)
	}

	if rng.Float64() < g.BonusChance && firstHalfStart >= 0 {
		start := min(firstHalfStart+3, n-g.BonusTiles)
		bonus := PlatformPlan{Row: g.BonusPlatformRow, Start: start, Truffle: start + g.BonusTiles/2}
		for col := start; col < start+g.BonusTiles; col++ {
			bonus.Columns = append(bonus.Columns, col)
		}
		layout.Bonus = &bonus
	}

	return layout
}

// LongestHoleRun returns the longest stretch of missing ground tiles,
// counting carry holes already open at the left edge.
func (l ChunkLayout) LongestHoleRun(carry int) int {
	longest, run := carry, carry
	for _, solid := range l.Ground {
		if solid {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}
