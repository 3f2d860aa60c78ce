package system

import (
	"math"

	"github.com/younwookim/spinrun/internal/domain/entity"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
)

func (c *CharacterController) updateAir(p *entity.Player, in InputState, cfg config.CharacterConfig) {
	if p.State.Grounded() {
		p.State = entity.StateAirborne
	}

	switch p.State {
	case entity.StateHurt:
		ApplyGravity(&p.Body, cfg.Gravity, cfg.MaxFall)
		return
	case entity.StateFlying:
		c.fly(p, in, cfg)
		return
	case entity.StateGliding:
		if in.JumpHeld {
			c.glide(p, in, cfg.Glide, cfg.Gravity)
			return
		}
		p.State = entity.StateAirborne
	case entity.StateClimbing:
		c.climb(p, in, cfg)
		return
	}

	if in.JumpPressed {
		switch {
		case p.Power == entity.PowerFly && p.FlyMeter > 0:
			p.State = entity.StateFlying
			p.JumpCut = true
			c.fly(p, in, cfg)
			return
		case p.Power == entity.PowerGlide:
			p.State = entity.StateGliding
			p.JumpCut = true
			c.glide(p, in, cfg.Glide, cfg.Gravity)
			return
		}
	}

	if p.State == entity.StateJump && !p.JumpCut && !in.JumpHeld && p.VY < -cfg.ShortJumpSpeed {
		p.VY = -cfg.ShortJumpSpeed
		p.JumpCut = true
	}

	airControl(p, in.Direction(), cfg)
	ApplyGravity(&p.Body, cfg.Gravity, cfg.MaxFall)
}

// airControl accelerates horizontally without slowing a player already
// moving faster than RunSpeed in the input direction.
func airControl(p *entity.Player, dir float64, cfg config.CharacterConfig) {
	if dir == 0 {
		return
	}
	p.FacingRight = dir > 0
	if sign(p.VX) == dir && math.Abs(p.VX) >= cfg.RunSpeed {
		return
	}
	p.VX += dir * cfg.AirAccel
	if sign(p.VX) == dir && math.Abs(p.VX) > cfg.RunSpeed {
		p.VX = dir * cfg.RunSpeed
	}
}

func (c *CharacterController) fly(p *entity.Player, in InputState, cfg config.CharacterConfig) {
	f := cfg.Fly
	if in.JumpHeld && p.FlyMeter > 0 {
		if p.VY < -f.MaxRise {
			p.VY = math.Min(p.VY+cfg.Gravity, -f.MaxRise)
		} else {
			p.VY = math.Max(p.VY-f.Lift, -f.MaxRise)
		}
		p.FlyMeter--
	} else {
		p.VY = math.Min(p.VY+f.Gravity, f.FallSpeed)
	}
	airControl(p, in.Direction(), cfg)
}

func (c *CharacterController) glide(p *entity.Player, in InputState, g config.GlideConfig, gravity float64) {
	if dir := in.Direction(); dir != 0 {
		p.FacingRight = dir > 0
	}
	p.VX = g.Speed * p.Facing()
	p.VY = approach(p.VY, g.Fall, gravity)
}

// climb moves a player along the wall it grabbed. The body keeps pressing
// into the wall so the resolver keeps reporting the contact.
func (c *CharacterController) climb(p *entity.Player, in InputState, cfg config.CharacterConfig) {
	g := cfg.Glide
	side := p.ClimbSide

	if in.JumpPressed {
		p.VX = -side * g.WallJumpX
		p.VY = cfg.JumpForce
		p.FacingRight = side < 0
		p.State = entity.StateJump
		p.JumpCut = false
		return
	}

	wallX := p.Right() + 1
	if side < 0 {
		wallX = p.Left() - 1
	}
	if !c.resolver.WallAt(wallX, p.Top()) {
		// Hands are over the top of the wall: pull up onto the ledge.
		p.VX = side * g.ClimbSpeed
		p.VY = g.ClimbHop
		p.State = entity.StateAirborne
		p.JumpCut = true
		return
	}
	if !c.resolver.WallAt(wallX, p.Bottom()-1) {
		p.VX, p.VY = 0, 0
		p.State = entity.StateAirborne
		return
	}

	p.VX = side
	switch {
	case in.Up:
		p.VY = -g.ClimbSpeed
	case in.Down:
		p.VY = g.ClimbSpeed
	default:
		p.VY = 0
	}
}
