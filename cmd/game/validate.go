package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/younwookim/spinrun/internal/application/system"
)

var errInvalidLevels = errors.New("invalid levels")

var validateCmd = &cobra.Command{
	Use:   "validate [level...]",
	Short: "Load and build levels, report problems",
	Long: `Loads the tuning and each given level (all levels when none are given),
builds the tile world and spawns the entities. Ignored tile overrides and
spawn descriptors are logged as warnings.

Examples:
  game validate
  game validate demo boss --config ./config`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd, "validate")
	if err != nil {
		return err
	}
	loader := newLoader()
	tuning, err := loader.LoadTuning()
	if err != nil {
		return fmt.Errorf("tuning: %w", err)
	}

	names := args
	if len(names) == 0 {
		names, err = loader.LevelNames()
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, name := range names {
		level, err := loader.LoadLevel(name)
		if err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
			failed++
			continue
		}
		sim, err := system.New(tuning, level, system.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
			failed++
			continue
		}
		w := sim.World()
		fmt.Fprintf(out, "ok   %s: %dx%d tiles, %d players, %d enemies, %d pickups, boss=%t\n",
			name, w.Cols(), w.Rows(), len(sim.Players), len(sim.Enemies), len(sim.Pickups), sim.Boss != nil)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidLevels, failed, len(names))
	}
	return nil
}
