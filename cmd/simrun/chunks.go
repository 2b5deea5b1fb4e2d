package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milk9111/hungrypig/ecs/system"
)

var flagCount int

var chunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Print generated chunk layouts",
	Long: `Plans the chunks that follow the tutorial and prints each one as rows
of text, top row first:

  #  tile       f  food       T  truffle      .  empty`,
	Args: cobra.NoArgs,
	RunE: runChunks,
}

func init() {
	chunksCmd.Flags().IntVar(&flagCount, "count", 3, "Number of chunks to plan")
}

func runChunks(cmd *cobra.Command, args []string) error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(flagSeed, flagSeed^0x9e3779b97f4a7c15))
	out := cmd.OutOrStdout()
	n := tuning.World.ChunkTiles
	g := tuning.Generation

	holeRun := 0
	for i := 0; i < flagCount; i++ {
		index := tuning.World.TutorialChunks + i
		layout := system.PlanChunk(tuning, index, rng, holeRun)

		fmt.Fprintf(out, "chunk %d (longest hole run %d)\n", index, layout.LongestHoleRun(holeRun))
		holeRun = layout.HoleRun

		rows := map[int][]byte{
			g.BonusPlatformRow: blankRow(n),
			g.MidPlatformRow:   blankRow(n),
			1:                  blankRow(n),
			0:                  blankRow(n),
		}
		for col, solid := range layout.Ground {
			if solid {
				rows[0][col] = '#'
			}
		}
		for _, col := range layout.GroundFood {
			rows[1][col] = 'f'
		}
		plats := layout.Platforms
		if layout.Bonus != nil {
			plats = append(append([]system.PlatformPlan(nil), plats...), *layout.Bonus)
		}
		for _, p := range plats {
			for _, col := range p.Columns {
				rows[p.Row][col] = '#'
			}
			above := rows[p.Row+1]
			if above == nil {
				above = blankRow(n)
				rows[p.Row+1] = above
			}
			for _, col := range p.Food {
				above[col] = 'f'
			}
			if p.Truffle >= 0 {
				above[p.Truffle] = 'T'
			}
		}

		top := 0
		for row := range rows {
			top = max(top, row)
		}
		var b strings.Builder
		for row := top; row >= 0; row-- {
			line, ok := rows[row]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %2d %s\n", row, line)
		}
		fmt.Fprint(out, b.String())
	}
	return nil
}

func blankRow(n int) []byte {
	return []byte(strings.Repeat(".", n))
}
