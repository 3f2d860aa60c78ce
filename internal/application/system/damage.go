package system

import (
	"math"

	"github.com/younwookim/spinrun/internal/domain/entity"
)

// HurtResult describes what a hit did to a player.
type HurtResult struct {
	Applied    bool
	ShieldLost bool
	Scattered  int // currency to scatter around the player
	Died       bool
}

// Hurt damages a player hit by something at fromX. A shield absorbs the hit,
// then carried currency does, then the player dies.
func (c *CharacterController) Hurt(p *entity.Player, fromX float64) HurtResult {
	if !p.Alive || p.IsInvincible() {
		return HurtResult{}
	}
	d := c.tuning.Damage

	if p.Shield {
		p.Shield = false
		c.knockBack(p, fromX)
		return HurtResult{Applied: true, ShieldLost: true}
	}
	if p.Currency > 0 {
		n := min(p.Currency, d.ScatterMax)
		p.Currency = 0
		c.knockBack(p, fromX)
		return HurtResult{Applied: true, Scattered: n}
	}

	c.Kill(p)
	return HurtResult{Applied: true, Died: true}
}

func (c *CharacterController) knockBack(p *entity.Player, fromX float64) {
	d := c.tuning.Damage
	dir := sign(p.CenterX() - fromX)
	if dir == 0 {
		dir = -p.Facing()
	}
	p.Detach()
	p.VX = dir * d.KnockbackX
	p.VY = d.KnockbackY
	p.State = entity.StateHurt
	p.HammerTimer = 0
	p.SpinCharge = 0
	p.InvincibleTimer = d.InvincibleTicks
}

// Kill takes a life from the player regardless of shield or currency.
func (c *CharacterController) Kill(p *entity.Player) {
	if !p.Alive {
		return
	}
	d := c.tuning.Damage
	p.Alive = false
	p.Detach()
	p.VX = 0
	p.VY = d.DeathKick
	p.State = entity.StateHurt
	p.Lives--
	p.Shield = false
	p.Currency = 0
	p.HammerTimer = 0
	p.InvincibleTimer = 0
	p.RespawnTimer = d.RespawnTicks
}

// updateDead lets a dead player fall off screen and respawns it at its
// checkpoint once the timer runs out, if it has lives left.
func (c *CharacterController) updateDead(p *entity.Player) bool {
	cfg := c.Character(p)
	if p.Y < float64(c.resolver.World().PixelHeight())+p.H {
		ApplyGravity(&p.Body, cfg.Gravity, cfg.MaxFall)
		p.Y += p.VY
	}
	if p.RespawnTimer > 0 {
		p.RespawnTimer--
	}
	if p.RespawnTimer > 0 || p.Lives <= 0 {
		return false
	}
	p.Respawn(c.tuning.Damage.RespawnInvincible)
	return true
}

// Scattered currency leaves in rings of scatterRing pieces, starting at
// scatterStart above the horizontal and fanning out by scatterStep.
const (
	scatterStart = 101.25 * math.Pi / 180
	scatterStep  = 22.5 * math.Pi / 180
	scatterRing  = 16
)

// ScatterVelocities returns the launch velocities for n scattered pieces of
// currency. Pieces alternate sides; the first ring flies at speed and every
// later ring at half of it.
func ScatterVelocities(n int, speed float64) []entity.Vec {
	out := make([]entity.Vec, 0, n)
	angle := scatterStart
	for i := 0; i < n; i++ {
		if i > 0 && i%scatterRing == 0 {
			speed /= 2
			angle = scatterStart
		}
		v := entity.Vec{X: math.Cos(angle) * speed, Y: -math.Sin(angle) * speed}
		if i%2 == 1 {
			v.X = -v.X
			angle += scatterStep
		}
		out = append(out, v)
	}
	return out
}
