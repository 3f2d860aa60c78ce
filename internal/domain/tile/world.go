package tile

import (
	"errors"
	"math"
)

// ErrEmptyGrid is returned when a level grid has no rows or no columns.
var ErrEmptyGrid = errors.New("tile: grid has zero dimensions")

// Cell addresses a tile by column and row.
type Cell struct {
	Col, Row int
}

// World is the immutable tile grid of a level plus a per-tile override map.
// Lookups outside the grid return air and never panic.
type World struct {
	cols, rows int
	size       int
	codes      []byte
	overrides  map[Cell]byte
}

// NewWorld builds a world from grid rows. Ragged rows are padded with air
// up to the widest row.
func NewWorld(rows []string, tileSize int) (*World, error) {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if len(rows) == 0 || cols == 0 || tileSize <= 0 {
		return nil, ErrEmptyGrid
	}

	w := &World{
		cols:      cols,
		rows:      len(rows),
		size:      tileSize,
		codes:     make([]byte, cols*len(rows)),
		overrides: make(map[Cell]byte),
	}
	for i := range w.codes {
		w.codes[i] = CodeAir
	}
	for row, r := range rows {
		copy(w.codes[row*cols:], r)
	}
	return w, nil
}

// Cols returns the grid width in tiles.
func (w *World) Cols() int { return w.cols }

// Rows returns the grid height in tiles.
func (w *World) Rows() int { return w.rows }

// TileSize returns the tile edge length in pixels.
func (w *World) TileSize() int { return w.size }

// PixelWidth returns the level width in pixels.
func (w *World) PixelWidth() float64 { return float64(w.cols * w.size) }

// PixelHeight returns the level height in pixels.
func (w *World) PixelHeight() float64 { return float64(w.rows * w.size) }

// InBounds reports whether the cell lies inside the grid.
func (w *World) InBounds(col, row int) bool {
	return col >= 0 && col < w.cols && row >= 0 && row < w.rows
}

// Code returns the effective code at a cell, honoring overrides.
func (w *World) Code(col, row int) byte {
	if !w.InBounds(col, row) {
		return CodeAir
	}
	if c, ok := w.overrides[Cell{col, row}]; ok {
		return c
	}
	return w.codes[row*w.cols+col]
}

// Tile returns the definition of the effective code at a cell.
func (w *World) Tile(col, row int) Def {
	return Lookup(w.Code(col, row))
}

// Classify returns the kind of the tile at a cell.
func (w *World) Classify(col, row int) Kind {
	return w.Tile(col, row).Kind
}

// CellAt returns the cell containing a pixel position.
func (w *World) CellAt(x, y float64) Cell {
	return Cell{
		Col: int(math.Floor(x / float64(w.size))),
		Row: int(math.Floor(y / float64(w.size))),
	}
}

// TileAt returns the tile containing a pixel position.
func (w *World) TileAt(x, y float64) Def {
	c := w.CellAt(x, y)
	return w.Tile(c.Col, c.Row)
}

// SlopeHeight returns the world y of a slope surface at worldX within the
// given cell. Non-slope codes report the tile top.
func (w *World) SlopeHeight(code byte, col, row int, worldX float64) float64 {
	lx := int(math.Floor(worldX)) - col*w.size
	if lx < 0 {
		lx = 0
	}
	if lx > w.size-1 {
		lx = w.size - 1
	}
	return float64(row*w.size + surfaceOffset(Lookup(code).Variant, lx, w.size))
}

// SetOverride replaces the effective code of one cell. Entries outside the
// grid or with unknown codes are ignored and report false.
func (w *World) SetOverride(col, row int, code byte) bool {
	if !w.InBounds(col, row) || !Known(code) {
		return false
	}
	w.overrides[Cell{col, row}] = code
	return true
}

// ApplyOverrides sets several overrides and returns how many were accepted.
func (w *World) ApplyOverrides(entries map[Cell]byte) int {
	n := 0
	for c, code := range entries {
		if w.SetOverride(c.Col, c.Row, code) {
			n++
		}
	}
	return n
}

// ClearOverrides restores the base grid.
func (w *World) ClearOverrides() {
	clear(w.overrides)
}

// Row returns the effective codes of one row as a string, for debugging
// and rendering.
func (w *World) Row(row int) string {
	if row < 0 || row >= w.rows {
		return ""
	}
	b := make([]byte, w.cols)
	for col := range b {
		b[col] = w.Code(col, row)
	}
	return string(b)
}
