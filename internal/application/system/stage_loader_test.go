package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/spinrun/internal/domain/tile"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
	"github.com/younwookim/spinrun/internal/infrastructure/logging"
)

func TestBuildWorld(t *testing.T) {
	level := &config.LevelConfig{
		ID:       "test",
		TileSize: 16,
		Grid: []string{
			"#..#",
			"####",
		},
		Overrides: []config.OverrideConfig{
			{Col: 1, Row: 0, Code: "="},
			{Col: 9, Row: 0, Code: "#"},  // outside the grid
			{Col: 2, Row: 0, Code: "Z"},  // unknown code
			{Col: 2, Row: 0, Code: "##"}, // not a single code
		},
	}

	w, err := BuildWorld(level, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, 4, w.Cols())
	assert.Equal(t, 2, w.Rows())
	assert.Equal(t, tile.OneWay, w.Classify(1, 0))
	assert.Equal(t, tile.Air, w.Classify(2, 0))
}

func TestBuildWorld_EmptyGrid(t *testing.T) {
	_, err := BuildWorld(&config.LevelConfig{ID: "empty", TileSize: 16}, logging.Discard())
	assert.ErrorIs(t, err, tile.ErrEmptyGrid)
}

func TestApplyLevelOverrides_RestoresAfterClear(t *testing.T) {
	level := &config.LevelConfig{
		ID:        "retry",
		TileSize:  16,
		Grid:      []string{"?.", "##"},
		Overrides: []config.OverrideConfig{{Col: 1, Row: 0, Code: "#"}},
	}
	w, err := BuildWorld(level, logging.Discard())
	require.NoError(t, err)

	w.SetOverride(0, 0, tile.CodeUsedBlock)
	w.ClearOverrides()
	assert.Equal(t, 1, ApplyLevelOverrides(w, level, logging.Discard()))

	assert.Equal(t, byte(tile.CodeItemBlock), w.Code(0, 0))
	assert.Equal(t, byte(tile.CodeSolid), w.Code(1, 0))
}

func TestSpawnPoint(t *testing.T) {
	x, y := SpawnPoint(config.SpawnConfig{Col: 2, Row: 3}, 16, 16, 32)
	assert.Equal(t, 32.0, x)
	assert.Equal(t, 32.0, y)

	x, y = SpawnPoint(config.SpawnConfig{Col: 0, Row: 0}, 16, 8, 8)
	assert.Equal(t, 4.0, x)
	assert.Equal(t, 8.0, y)
}
