// simrun drives the hungry pig simulation without a window.
//
// Usage:
//
//	simrun run               - Step a run headlessly and report what happened
//	simrun chunks            - Print generated chunk layouts as text
//
// Global flags:
//
//	--config <path>  - Tuning yaml (default: prefabs/tuning.yaml)
//	--seed <value>   - Level seed
//	--debug          - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/hungrypig/prefabs"
)

var (
	flagConfig string
	flagSeed   uint64
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "simrun",
	Short: "Run the hungry pig simulation headlessly",
	Long: `simrun steps the simulation core with scripted input so tuning and
level generation can be inspected without opening a window.

Examples:
  simrun run --steps 600 --right
  simrun run --seed 7 --effect bird
  simrun chunks --seed 7 --count 4`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "simrun",
		}))
		if flagDebug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a tuning YAML")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 1, "Level seed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(chunksCmd)
}

func loadTuning() (*prefabs.Tuning, error) {
	t, err := prefabs.LoadTuning(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load tuning: %w", err)
	}
	return t, nil
}
