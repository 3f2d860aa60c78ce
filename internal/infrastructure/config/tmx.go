package config

import (
	"fmt"
	"io/fs"
	"math"

	"github.com/lafriks/go-tiled"
)

const (
	tmxTileLayer  = "tiles"
	tmxSpawnGroup = "spawns"
)

// spawnPropertyKeys are the object properties copied into a spawn's config map.
var spawnPropertyKeys = []string{
	"character", "facing", "speed", "range", "amplitude", "frequency",
	"shotPeriod", "segments", "spacing", "hp", "tether",
}

// LoadTMX imports a Tiled map. The tile layer named "tiles" supplies codes
// through each tileset tile's "code" property; tiles without one are air.
// Objects in the "spawns" group become spawn descriptors, typed by their
// "type" property or, failing that, their name.
func LoadTMX(fsys fs.FS, tmxPath string) (*LevelConfig, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	cfg := &LevelConfig{
		Name:     tmxPath,
		TileSize: m.TileWidth,
	}

	for _, layer := range m.Layers {
		if layer.Name != tmxTileLayer {
			continue
		}
		cfg.Grid = make([]string, m.Height)
		for y := 0; y < m.Height; y++ {
			row := make([]byte, m.Width)
			for x := 0; x < m.Width; x++ {
				row[x] = '.'
				lt := layer.Tiles[y*m.Width+x]
				if lt == nil || lt.IsNil() || lt.Tileset == nil {
					continue
				}
				tt, err := lt.Tileset.GetTilesetTile(lt.ID)
				if err != nil {
					continue
				}
				if code := tt.Properties.GetString("code"); len(code) == 1 {
					row[x] = code[0]
				}
			}
			cfg.Grid[y] = string(row)
		}
		break
	}

	tileW, tileH := float64(m.TileWidth), float64(m.TileHeight)
	for _, og := range m.ObjectGroups {
		if og.Name != tmxSpawnGroup {
			continue
		}
		for _, o := range og.Objects {
			kind := o.Properties.GetString("type")
			if kind == "" {
				kind = o.Name
			}
			spawn := SpawnConfig{
				Type: kind,
				Col:  int(math.Floor(o.X / tileW)),
				Row:  int(math.Floor(o.Y / tileH)),
			}
			for _, key := range spawnPropertyKeys {
				if v := o.Properties.GetString(key); v != "" {
					if spawn.Config == nil {
						spawn.Config = make(map[string]string)
					}
					spawn.Config[key] = v
				}
			}
			cfg.Spawns = append(cfg.Spawns, spawn)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
