package entity

// Projectile is a straight-flying shot. Hostile shots hurt players.
type Projectile struct {
	Body
	Active  bool
	Hostile bool
	TTL     int
}

// NewProjectile creates a shot centered on (cx, cy).
func NewProjectile(cx, cy, vx, vy, size float64, ttl int, hostile bool) *Projectile {
	return &Projectile{
		Body: Body{
			X:           cx - size/2,
			Y:           cy - size/2,
			VX:          vx,
			VY:          vy,
			W:           size,
			H:           size,
			FacingRight: vx >= 0,
		},
		Active:  true,
		Hostile: hostile,
		TTL:     ttl,
	}
}

// Tick ages the projectile and deactivates it when its lifetime ends.
func (p *Projectile) Tick() {
	p.TTL--
	if p.TTL <= 0 {
		p.Active = false
	}
}
