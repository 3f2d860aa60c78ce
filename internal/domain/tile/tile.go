// Package tile defines the tile grid the simulation collides against:
// tile codes, their kinds, and the surface law of each slope variant.
package tile

import "math"

// Kind is the collision category of a tile.
type Kind uint8

const (
	Air Kind = iota
	Solid
	OneWay
	Hazard
	Slope
	ConveyorLeft
	ConveyorRight
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case Air:
		return "air"
	case Solid:
		return "solid"
	case OneWay:
		return "one-way"
	case Hazard:
		return "hazard"
	case Slope:
		return "slope"
	case ConveyorLeft:
		return "conveyor-left"
	case ConveyorRight:
		return "conveyor-right"
	default:
		return "unknown"
	}
}

// Blocks reports whether the kind stops movement from every side.
// Hazards and conveyors are solid blocks with a side effect.
func (k Kind) Blocks() bool {
	return k == Solid || k == Hazard || k == ConveyorLeft || k == ConveyorRight
}

// Variant selects the surface law of a slope tile.
type Variant uint8

const (
	NoSlope Variant = iota
	Up45
	Down45
	Up22Low
	Up22High
	Down22High
	Down22Low
)

// Tile codes as they appear in level grids.
const (
	CodeAir           byte = '.'
	CodeSolid         byte = '#'
	CodeIce           byte = 'i'
	CodeOneWay        byte = '='
	CodeHazard        byte = '^'
	CodeUp45          byte = '/'
	CodeDown45        byte = '\\'
	CodeUp22Low       byte = 'a'
	CodeUp22High      byte = 'b'
	CodeDown22High    byte = 'c'
	CodeDown22Low     byte = 'd'
	CodeConveyorLeft  byte = '<'
	CodeConveyorRight byte = '>'
	CodeItemBlock     byte = '?'
	CodeUsedBlock     byte = 'u'
)

// Def is everything the simulation knows about a tile code.
type Def struct {
	Code     byte
	Kind     Kind
	Variant  Variant
	Slippery bool
	Item     bool
}

var defs = map[byte]Def{
	CodeAir:           {Code: CodeAir, Kind: Air},
	' ':               {Code: ' ', Kind: Air},
	CodeSolid:         {Code: CodeSolid, Kind: Solid},
	CodeIce:           {Code: CodeIce, Kind: Solid, Slippery: true},
	CodeOneWay:        {Code: CodeOneWay, Kind: OneWay},
	CodeHazard:        {Code: CodeHazard, Kind: Hazard},
	CodeUp45:          {Code: CodeUp45, Kind: Slope, Variant: Up45},
	CodeDown45:        {Code: CodeDown45, Kind: Slope, Variant: Down45},
	CodeUp22Low:       {Code: CodeUp22Low, Kind: Slope, Variant: Up22Low},
	CodeUp22High:      {Code: CodeUp22High, Kind: Slope, Variant: Up22High},
	CodeDown22High:    {Code: CodeDown22High, Kind: Slope, Variant: Down22High},
	CodeDown22Low:     {Code: CodeDown22Low, Kind: Slope, Variant: Down22Low},
	CodeConveyorLeft:  {Code: CodeConveyorLeft, Kind: ConveyorLeft},
	CodeConveyorRight: {Code: CodeConveyorRight, Kind: ConveyorRight},
	CodeItemBlock:     {Code: CodeItemBlock, Kind: Solid, Item: true},
	CodeUsedBlock:     {Code: CodeUsedBlock, Kind: Solid},
}

// Lookup returns the definition for a code. Unknown codes are air.
func Lookup(code byte) Def {
	if d, ok := defs[code]; ok {
		return d
	}
	return Def{Code: code, Kind: Air}
}

// Known reports whether code has a definition.
func Known(code byte) bool {
	_, ok := defs[code]
	return ok
}

// SlopeAngle returns the fixed surface angle for a code.
// Positive angles rise to the right. Non-slope codes are flat.
func SlopeAngle(code byte) float64 {
	switch Lookup(code).Variant {
	case Up45:
		return math.Pi / 4
	case Down45:
		return -math.Pi / 4
	case Up22Low, Up22High:
		return math.Pi / 8
	case Down22High, Down22Low:
		return -math.Pi / 8
	default:
		return 0
	}
}

// surfaceOffset returns the surface y inside a tile of the given size,
// relative to the tile top, at integer local x.
func surfaceOffset(v Variant, lx, size int) int {
	half := size / 2
	switch v {
	case Up45:
		return size - 1 - lx
	case Down45:
		return lx
	case Up22Low:
		return size - 1 - lx/2
	case Up22High:
		return half - 1 - lx/2
	case Down22High:
		return lx / 2
	case Down22Low:
		return half + lx/2
	default:
		return 0
	}
}
