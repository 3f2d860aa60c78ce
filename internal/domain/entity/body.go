package entity

import (
	"math"

	"github.com/younwookim/spinrun/internal/domain/tile"
)

// Body is the physical state shared by every moving entity.
// Position is the top-left corner in pixels; velocity is pixels per tick.
//
// While OnGround is true, (VX, VY) equals GroundSpeed projected along the
// ground tangent: VX = GroundSpeed*cos(GroundAngle), VY = -GroundSpeed*sin(GroundAngle).
type Body struct {
	X, Y   float64
	VX, VY float64
	W, H   float64

	OnGround    bool
	GroundAngle float64
	GroundSpeed float64
	FacingRight bool

	// Contact flags, recomputed by every resolve call.
	HitWall     bool
	HitCeiling  bool
	HitHazard   bool
	GroundTile  tile.Def
	CeilingCell tile.Cell
}

func (b *Body) Left() float64    { return b.X }
func (b *Body) Right() float64   { return b.X + b.W }
func (b *Body) Top() float64     { return b.Y }
func (b *Body) Bottom() float64  { return b.Y + b.H }
func (b *Body) CenterX() float64 { return b.X + b.W/2 }
func (b *Body) CenterY() float64 { return b.Y + b.H/2 }

// Facing returns 1 when facing right and -1 otherwise.
func (b *Body) Facing() float64 {
	if b.FacingRight {
		return 1
	}
	return -1
}

// Overlaps reports whether two bodies' boxes intersect.
func (b *Body) Overlaps(o *Body) bool {
	return b.X < o.X+o.W && b.X+b.W > o.X &&
		b.Y < o.Y+o.H && b.Y+b.H > o.Y
}

// AlignToGround recomposes velocity from GroundSpeed and GroundAngle.
func (b *Body) AlignToGround() {
	b.VX = b.GroundSpeed * math.Cos(b.GroundAngle)
	b.VY = -b.GroundSpeed * math.Sin(b.GroundAngle)
}

// ProjectToGround sets GroundSpeed to the velocity component along the
// ground tangent and recomposes velocity from it.
func (b *Body) ProjectToGround() {
	b.GroundSpeed = b.VX*math.Cos(b.GroundAngle) - b.VY*math.Sin(b.GroundAngle)
	b.AlignToGround()
}

// Detach breaks ground contact. Anything that launches a grounded body
// (jump, knockback, powers) must call it.
func (b *Body) Detach() {
	b.OnGround = false
	b.GroundAngle = 0
	b.GroundSpeed = 0
}

// Vec is a 2D point.
type Vec struct {
	X, Y float64
}
