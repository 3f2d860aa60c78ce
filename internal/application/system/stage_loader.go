package system

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/younwookim/spinrun/internal/domain/tile"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
)

// BuildWorld converts a LevelConfig into a tile world with the level's
// overrides applied.
func BuildWorld(level *config.LevelConfig, logger *log.Logger) (*tile.World, error) {
	w, err := tile.NewWorld(level.Grid, level.TileSize)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", level.ID, err)
	}
	ApplyLevelOverrides(w, level, logger)
	return w, nil
}

// ApplyLevelOverrides writes the level's override entries into the world.
// Entries naming an unknown code or a cell outside the grid are skipped.
func ApplyLevelOverrides(w *tile.World, level *config.LevelConfig, logger *log.Logger) int {
	applied := 0
	for _, o := range level.Overrides {
		if len(o.Code) != 1 || !w.SetOverride(o.Col, o.Row, o.Code[0]) {
			logger.Warn("ignoring tile override", "level", level.ID, "col", o.Col, "row", o.Row, "code", o.Code)
			continue
		}
		applied++
	}
	return applied
}

// SpawnPoint returns the top-left position of a w x h box standing on the
// bottom of the spawn cell, centered horizontally.
func SpawnPoint(sc config.SpawnConfig, tileSize int, w, h float64) (x, y float64) {
	ts := float64(tileSize)
	return float64(sc.Col)*ts + (ts-w)/2, float64(sc.Row+1)*ts - h
}
