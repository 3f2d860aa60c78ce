package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/spinrun/internal/application/game"
	"github.com/younwookim/spinrun/internal/application/replay"
	"github.com/younwookim/spinrun/internal/application/scene/playing"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
)

var (
	flagCharacters []string
	flagRecord     string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level in a window",
	Long: `Opens a window and plays the given level.

Controls:
  Arrows / WASD   - Move (player 1 / player 2)
  Z / F           - Jump
  X / G           - Shoot
  C / H           - Skill
  Esc             - Pause
  Enter           - Restart (after game over or stage clear)
  F5              - Save recording

Examples:
  game play demo
  game play demo --characters runner,glider
  game play boss --record boss.json
  game play demo --config ./config --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringSliceVar(&flagCharacters, "characters", nil, "Character per player slot (default: level spawns)")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record inputs to this replay file (\"auto\" = timestamped name)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload tuning and levels when files in --config change")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd, "play")
	if err != nil {
		return err
	}
	loader := newLoader()

	var watcher *config.Watcher
	if flagWatch {
		if loader.BasePath() == "" {
			return fmt.Errorf("--watch needs --config")
		}
		watcher, err = config.NewWatcher(watchDirs(loader.BasePath())...)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", loader.BasePath(), err)
		}
		defer func() { _ = watcher.Close() }()
	}

	record := flagRecord
	if record == "auto" {
		record = replay.GenerateFilename()
	}

	scene, err := playing.New(playing.Options{
		Loader:     loader,
		Level:      args[0],
		Characters: flagCharacters,
		Seed:       seedOverride(),
		Logger:     logger,
		RecordPath: record,
		Watcher:    watcher,
	})
	if err != nil {
		return err
	}

	tuning := scene.Simulation().Tuning()
	sim := tuning.Simulation
	display := tuning.Display
	clock := game.NewClock(sim.TickRate, sim.MaxTicksPerFrame)
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, clock)

	scale := max(display.Scale, 1)
	ebiten.SetWindowSize(display.ScreenWidth*scale, display.ScreenHeight*scale)
	ebiten.SetWindowTitle(fmt.Sprintf("spinrun - %s", scene.Simulation().Level().Name))

	logger.Info("starting", "level", args[0], "tickRate", sim.TickRate, "maxTicksPerFrame", sim.MaxTicksPerFrame)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	scene.OnExit()
	return nil
}

// watchDirs returns base and its levels directory when present.
func watchDirs(base string) []string {
	dirs := []string{base}
	levels := filepath.Join(base, "levels")
	if info, err := os.Stat(levels); err == nil && info.IsDir() {
		dirs = append(dirs, levels)
	}
	return dirs
}
