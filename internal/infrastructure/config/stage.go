package config

import (
	"fmt"
	"strconv"

	"github.com/younwookim/spinrun/internal/domain/tile"
)

// LevelConfig is a level as read from disk: a grid of tile codes plus
// spawn descriptors.
type LevelConfig struct {
	ID        string           `yaml:"id"`
	Name      string           `yaml:"name"`
	TileSize  int              `yaml:"tileSize"`
	Grid      []string         `yaml:"grid"`
	Spawns    []SpawnConfig    `yaml:"spawns"`
	Overrides []OverrideConfig `yaml:"overrides"`
}

// SpawnConfig places one entity. Col and Row are tile coordinates; the
// entity's feet rest on the bottom of that cell.
type SpawnConfig struct {
	Type   string            `yaml:"type"`
	Col    int               `yaml:"col"`
	Row    int               `yaml:"row"`
	Config map[string]string `yaml:"config,omitempty"`
}

// OverrideConfig is a per-tile code replacement applied at level start.
type OverrideConfig struct {
	Col  int    `yaml:"col"`
	Row  int    `yaml:"row"`
	Code string `yaml:"code"`
}

// Validate rejects levels the simulation cannot run. An empty grid is the
// only fatal condition; anything else is tolerated downstream.
func (l *LevelConfig) Validate() error {
	if l.TileSize <= 0 {
		return fmt.Errorf("level %s: tileSize %d: %w", l.ID, l.TileSize, tile.ErrEmptyGrid)
	}
	for _, row := range l.Grid {
		if len(row) > 0 {
			return nil
		}
	}
	return fmt.Errorf("level %s: %w", l.ID, tile.ErrEmptyGrid)
}

// String returns a config value or def when absent.
func (s SpawnConfig) String(key, def string) string {
	if v, ok := s.Config[key]; ok && v != "" {
		return v
	}
	return def
}

// Float returns a numeric config value or def when absent or malformed.
func (s SpawnConfig) Float(key string, def float64) float64 {
	v, ok := s.Config[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Int returns an integer config value or def when absent or malformed.
func (s SpawnConfig) Int(key string, def int) int {
	v, ok := s.Config[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Bool returns a boolean config value or def when absent or malformed.
func (s SpawnConfig) Bool(key string, def bool) bool {
	v, ok := s.Config[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
