package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/state"
	"github.com/milk9111/hungrypig/sim"
)

var (
	flagSteps     int
	flagDt        float64
	flagRight     bool
	flagJumpEvery int
	flagEffect    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Step a run and report events and the final state",
	Long: `Steps one run with fixed dt. --right holds right for the whole run and
--jump-every holds jump on every Nth step. The run stops early once the
player loses.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagSteps, "steps", 600, "Number of steps")
	runCmd.Flags().Float64Var(&flagDt, "dt", 1.0/60.0, "Seconds per step")
	runCmd.Flags().BoolVar(&flagRight, "right", false, "Hold right")
	runCmd.Flags().IntVar(&flagJumpEvery, "jump-every", 0, "Jump on every Nth step (0 = never)")
	runCmd.Flags().StringVar(&flagEffect, "effect", "", "Start this effect before the first step")
}

func runRun(cmd *cobra.Command, args []string) error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}

	s, err := sim.NewSimulation(tuning, flagSeed)
	if err != nil {
		return err
	}

	if flagEffect != "" {
		kind, err := state.ParseEffectKind(flagEffect)
		if err != nil {
			return err
		}
		s.StartEffect(kind)
	}

	counts := make(map[ecs.EventType]int)
	step := 0
	for ; step < flagSteps; step++ {
		intent := state.Intent{}
		if flagRight {
			intent.Horizontal = 1
		}
		if flagJumpEvery > 0 && step%flagJumpEvery == 0 {
			intent.Jump = true
		}

		s.Step(flagDt, intent)
		for _, evt := range s.Events() {
			counts[evt.Type]++
			log.Debug("event", "step", step, "type", evt.Type, "data", evt.Data)
		}
		if s.Snapshot().Outcome == state.OutcomeLost {
			step++
			break
		}
	}

	snap := s.Snapshot()
	log.Info("run finished",
		"steps", step,
		"outcome", snap.Outcome,
		"reason", snap.LossReason,
		"score", snap.Score,
		"hunger", fmt.Sprintf("%.1f", snap.Hunger),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "time       %.2fs\n", snap.Now)
	fmt.Fprintf(out, "position   (%.1f, %.1f) grounded=%t\n", snap.PlayerX, snap.PlayerY, snap.Grounded)
	fmt.Fprintf(out, "chunks     current=%d next=%d\n", snap.Chunk, snap.NextChunk)
	fmt.Fprintf(out, "hunger     %.1f\n", snap.Hunger)
	fmt.Fprintf(out, "truffles   %d\n", snap.Score)
	fmt.Fprintf(out, "outcome    %s %s\n", snap.Outcome, snap.LossReason)
	for _, e := range snap.Effects {
		fmt.Fprintf(out, "effect     %s until %.2fs\n", e.Kind, e.Expiry)
	}
	for _, typ := range []ecs.EventType{
		ecs.EventChunkGenerated,
		ecs.EventLanded,
		ecs.EventPickupCollected,
		ecs.EventEffectStarted,
		ecs.EventEffectRefreshed,
		ecs.EventEffectEnded,
		ecs.EventPlayerLost,
	} {
		if n := counts[typ]; n > 0 {
			fmt.Fprintf(out, "events     %-18s %d\n", typ, n)
		}
	}
	return nil
}
