package system

import (
	"math"

	"github.com/younwookim/spinrun/internal/domain/entity"
	"github.com/younwookim/spinrun/internal/domain/tile"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
)

// edge keeps boundary tests from reading the next tile when a box edge
// sits exactly on a tile line.
const edge = 1e-6

// ResolveOptions are the per-caller knobs of a resolve.
type ResolveOptions struct {
	OneWayEpsilon float64
	SnapDistance  float64
	Conveyors     bool
	DropThrough   bool
}

// OptionsFromProfile converts a configured profile to resolve options.
func OptionsFromProfile(p config.ResolveProfile) ResolveOptions {
	return ResolveOptions{
		OneWayEpsilon: p.OneWayEpsilon,
		SnapDistance:  p.SnapDistance,
		Conveyors:     p.Conveyors,
	}
}

// Resolver moves bodies through the tile world with sub-stepped collision
type Resolver struct {
	config *config.CollisionConfig
	world  *tile.World
}

// NewResolver creates a new collision resolver
func NewResolver(cfg *config.CollisionConfig, world *tile.World) *Resolver {
	return &Resolver{
		config: cfg,
		world:  world,
	}
}

// World returns the tile world the resolver collides against.
func (r *Resolver) World() *tile.World {
	return r.world
}

// Substeps returns how many sub-steps a velocity is split into so that no
// single step moves farther than the configured threshold.
func (r *Resolver) Substeps(vx, vy float64) int {
	threshold := r.config.SubStepThreshold
	if threshold <= 0 {
		threshold = float64(r.world.TileSize())
	}
	n := int(math.Ceil(math.Max(math.Abs(vx), math.Abs(vy)) / threshold))
	if n < 1 {
		return 1
	}
	return n
}

// Resolve advances a body by its velocity, stopping it at tiles and
// updating every contact flag. Flags describe this call only.
func (r *Resolver) Resolve(b *entity.Body, opts ResolveOptions) {
	if !finite(b.VX) {
		b.VX = 0
	}
	if !finite(b.VY) {
		b.VY = 0
	}

	grounded := b.OnGround
	b.OnGround = false
	b.HitWall = false
	b.HitCeiling = false
	b.HitHazard = false
	b.GroundAngle = 0
	b.GroundTile = tile.Def{}

	steps := r.Substeps(b.VX, b.VY)
	sx := b.VX / float64(steps)
	sy := b.VY / float64(steps)

	for i := 0; i < steps; i++ {
		b.OnGround = false

		if sx != 0 && r.moveX(b, sx, grounded, opts) {
			sx = 0
		}
		// Grounded bodies never rise on their own; moveX and the snap lift
		// them where the surface does.
		if sy != 0 && !(grounded && sy < 0) && r.moveY(b, sy, opts) {
			sy = 0
		}

		if grounded || b.OnGround || b.VY >= 0 {
			reach := opts.SnapDistance + math.Abs(sx) + math.Abs(sy)
			down := 0.0
			if grounded || b.OnGround {
				down = reach
			}
			if r.snapToGround(b, reach, down, opts) && !grounded && b.VY > 0 {
				b.VY = 0
				sy = 0
			}
		}
		grounded = b.OnGround
	}

	r.applyHazard(b)
	if opts.Conveyors && b.OnGround {
		r.applyConveyor(b, opts)
	}

	if b.OnGround {
		b.ProjectToGround()
	}
}

// moveX moves a body horizontally and stops it at the first blocking tile.
// While grounded, the bottom StepHeight pixels above the ground expected at
// the new position are ignored so slope seams do not read as walls, and the
// body is lifted onto that ground. Flat tops higher than StepHeight are
// walls at any speed.
func (r *Resolver) moveX(b *entity.Body, dx float64, grounded bool, opts ResolveOptions) bool {
	ts := float64(r.world.TileSize())

	top := b.Top()
	bottom := b.Bottom()
	landY := b.Y
	if grounded && b.H > r.config.StepHeight {
		ahead := *b
		ahead.X += dx
		reach := opts.SnapDistance + math.Abs(dx)
		s, d, _, ok := r.probeGround(&ahead, bottom-reach, bottom+reach, opts)
		if ok && s < bottom && (d.Kind == tile.Slope || bottom-s <= r.config.StepHeight) {
			bottom = s
			landY = s - b.H
		}
		bottom -= r.config.StepHeight
	}
	rowTop := floorDiv(top, ts)
	rowBottom := floorDiv(bottom-edge, ts)

	if dx > 0 {
		from := floorDiv(b.Right()-edge, ts) + 1
		to := floorDiv(b.Right()+dx-edge, ts)
		for col := from; col <= to; col++ {
			if r.columnBlocks(col, rowTop, rowBottom) {
				r.stopAt(b, float64(col)*ts-b.W, grounded)
				return true
			}
		}
	} else {
		from := floorDiv(b.Left(), ts) - 1
		to := floorDiv(b.Left()+dx, ts)
		for col := from; col >= to; col-- {
			if r.columnBlocks(col, rowTop, rowBottom) {
				r.stopAt(b, float64(col+1)*ts, grounded)
				return true
			}
		}
	}

	// A surface that lifts the body into a solid is a wall.
	if grounded && r.RectBlocked(b.X+dx, landY, b.W, b.H) {
		r.stopAt(b, b.X, grounded)
		return true
	}

	b.X += dx
	b.Y = landY
	return false
}

// stopAt ends a horizontal move against a wall at x. Grounded moves skip
// the bottom StepHeight pixels, so a stop that would overlap a solid there
// keeps the body where it was.
func (r *Resolver) stopAt(b *entity.Body, x float64, grounded bool) {
	if !grounded || !r.RectBlocked(x, b.Y, b.W, b.H) {
		b.X = x
	}
	b.VX = 0
	b.HitWall = true
}

// moveY moves a body vertically. Falling bodies land on blocking tiles and
// on one-way tops they were not already below; rising bodies stop under
// blocking tiles only.
func (r *Resolver) moveY(b *entity.Body, dy float64, opts ResolveOptions) bool {
	ts := float64(r.world.TileSize())
	colLeft := floorDiv(b.Left(), ts)
	colRight := floorDiv(b.Right()-edge, ts)

	if dy > 0 {
		oldBottom := b.Bottom()
		newBottom := oldBottom + dy
		from := floorDiv(oldBottom-math.Max(opts.OneWayEpsilon, edge), ts)
		to := floorDiv(newBottom-edge, ts)
		for row := from; row <= to; row++ {
			top := float64(row) * ts
			for col := colLeft; col <= colRight; col++ {
				d := r.world.Tile(col, row)
				land := false
				switch {
				case d.Kind.Blocks():
					land = top >= oldBottom-edge
				case d.Kind == tile.OneWay:
					land = !opts.DropThrough && top >= oldBottom-opts.OneWayEpsilon-edge
				}
				if land {
					b.Y = top - b.H
					b.VY = 0
					b.OnGround = true
					b.GroundAngle = 0
					b.GroundTile = d
					return true
				}
			}
		}
		b.Y += dy
		return false
	}

	oldTop := b.Top()
	from := floorDiv(oldTop-edge, ts)
	to := floorDiv(oldTop+dy, ts)
	centerCol := floorDiv(b.CenterX(), ts)
	for row := from; row >= to; row-- {
		hitCol, hit := centerCol, r.world.Classify(centerCol, row).Blocks()
		for col := colLeft; col <= colRight && !hit; col++ {
			if r.world.Classify(col, row).Blocks() {
				hitCol, hit = col, true
			}
		}
		if hit {
			b.Y = float64(row+1) * ts
			b.VY = 0
			b.HitCeiling = true
			b.CeilingCell = tile.Cell{Col: hitCol, Row: row}
			return true
		}
	}
	b.Y += dy
	return false
}

// snapToGround looks for the highest walkable surface between up pixels
// above and down pixels below the body's bottom and stands the body on it.
// A surface without headroom for the whole body is not stood on.
func (r *Resolver) snapToGround(b *entity.Body, up, down float64, opts ResolveOptions) bool {
	surface, d, angle, ok := r.probeGround(b, b.Bottom()-up, b.Bottom()+down, opts)
	if !ok || r.RectBlocked(b.X, surface-b.H, b.W, b.H) {
		return false
	}
	b.Y = surface - b.H
	b.OnGround = true
	b.GroundAngle = angle
	b.GroundTile = d
	return true
}

// probeGround finds the highest walkable surface under the body's span
// with y in [lo, hi]. A slope tile is sampled at whichever end of its
// overlap with the span stands higher, so the body rests on the highest
// point beneath it. Flat tops count only with open space above. On ties the
// column under the body's center wins.
func (r *Resolver) probeGround(b *entity.Body, lo, hi float64, opts ResolveOptions) (float64, tile.Def, float64, bool) {
	ts := float64(r.world.TileSize())
	best := math.Inf(1)
	var bestDef tile.Def
	var bestAngle float64
	bestCenter := false

	centerCol := floorDiv(b.CenterX(), ts)
	consider := func(y float64, d tile.Def, angle float64, col int) {
		if y < lo || y > hi {
			return
		}
		center := col == centerCol
		if y < best || (y == best && center && !bestCenter) {
			best, bestDef, bestAngle, bestCenter = y, d, angle, center
		}
	}

	for col := floorDiv(b.Left(), ts); col <= floorDiv(b.Right()-edge, ts); col++ {
		x0 := math.Max(b.Left(), float64(col)*ts)
		x1 := math.Min(b.Right(), float64(col+1)*ts) - edge
		for row := floorDiv(lo, ts); row <= floorDiv(hi, ts); row++ {
			d := r.world.Tile(col, row)
			top := float64(row) * ts
			switch {
			case d.Kind == tile.Slope:
				y := math.Min(r.world.SlopeHeight(d.Code, col, row, x0), r.world.SlopeHeight(d.Code, col, row, x1))
				consider(y, d, tile.SlopeAngle(d.Code), col)
			case d.Kind.Blocks(),
				d.Kind == tile.OneWay && !opts.DropThrough && b.Bottom() <= top+opts.OneWayEpsilon+edge:
				if !r.world.Classify(col, row-1).Blocks() {
					consider(top, d, 0, col)
				}
			}
		}
	}

	if math.IsInf(best, 1) {
		return 0, tile.Def{}, 0, false
	}
	return best, bestDef, bestAngle, true
}

// applyHazard flags contact with a hazard tile under the body's center.
func (r *Resolver) applyHazard(b *entity.Body) {
	cx := b.CenterX()
	if r.world.TileAt(cx, b.Bottom()).Kind == tile.Hazard ||
		r.world.TileAt(cx, b.Bottom()-edge).Kind == tile.Hazard {
		b.HitHazard = true
	}
}

// applyConveyor pushes a grounded body along the conveyor under its center.
func (r *Resolver) applyConveyor(b *entity.Body, opts ResolveOptions) {
	speed := r.config.ConveyorSpeed
	switch r.world.TileAt(b.CenterX(), b.Bottom()).Kind {
	case tile.ConveyorLeft:
		r.moveX(b, -speed, true, opts)
	case tile.ConveyorRight:
		r.moveX(b, speed, true, opts)
	}
}

func (r *Resolver) columnBlocks(col, rowTop, rowBottom int) bool {
	for row := rowTop; row <= rowBottom; row++ {
		if r.world.Classify(col, row).Blocks() {
			return true
		}
	}
	return false
}

// RectBlocked checks if any tile overlapping the rect blocks movement
func (r *Resolver) RectBlocked(x, y, w, h float64) bool {
	ts := float64(r.world.TileSize())
	for row := floorDiv(y, ts); row <= floorDiv(y+h-edge, ts); row++ {
		for col := floorDiv(x, ts); col <= floorDiv(x+w-edge, ts); col++ {
			if r.world.Classify(col, row).Blocks() {
				return true
			}
		}
	}
	return false
}

// FloorBelow returns the highest surface under the one pixel wide column
// starting at x with y in [lo, hi], if it can be stood on without harm.
// bottom is the caller's current bottom, used by the one-way rule.
func (r *Resolver) FloorBelow(x, bottom, lo, hi float64, opts ResolveOptions) (float64, bool) {
	foot := entity.Body{X: x, Y: bottom, W: 1}
	y, d, _, ok := r.probeGround(&foot, lo, hi, opts)
	if !ok || d.Kind == tile.Hazard {
		return 0, false
	}
	return y, true
}

// WallAt reports whether the tile containing the point blocks movement.
func (r *Resolver) WallAt(x, y float64) bool {
	return r.world.TileAt(x, y).Kind.Blocks()
}

// ApplyGravity accelerates a body downward up to maxFall.
func ApplyGravity(b *entity.Body, gravity, maxFall float64) {
	b.VY += gravity
	if maxFall > 0 && b.VY > maxFall {
		b.VY = maxFall
	}
}

// Helper functions
func floorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}

func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func approach(v, target, step float64) float64 {
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
