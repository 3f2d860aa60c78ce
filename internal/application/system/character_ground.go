package system

import (
	"math"

	"github.com/younwookim/spinrun/internal/domain/entity"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
)

func (c *CharacterController) updateGround(p *entity.Player, in InputState, cfg config.CharacterConfig) {
	c.applySlope(p, cfg)

	if p.State == entity.StateSpinDashCharging {
		c.chargeSpinDash(p, in, cfg)
		return
	}

	if in.JumpPressed {
		if p.State == entity.StateCrouch && math.Abs(p.GroundSpeed) < cfg.StopEpsilon {
			p.GroundSpeed = 0
			p.SpinCharge = 0
			p.State = entity.StateSpinDashCharging
			p.AlignToGround()
			return
		}
		c.jump(p, cfg)
		return
	}

	dir := in.Direction()
	slippery := p.GroundTile.Slippery

	if p.State == entity.StateRolling {
		c.roll(p, in, dir, cfg, slippery)
	} else {
		speed := math.Abs(p.GroundSpeed)
		switch {
		case in.Down && speed >= cfg.RollMinSpeed:
			p.State = entity.StateRolling
		case in.Down:
			p.State = entity.StateCrouch
			if dir != 0 {
				p.FacingRight = dir > 0
			}
			p.GroundSpeed = approach(p.GroundSpeed, 0, friction(cfg, slippery))
		case in.Up && speed < cfg.StopEpsilon:
			p.State = entity.StateLookUp
			p.GroundSpeed = 0
		default:
			c.walk(p, dir, cfg, slippery)
		}
	}

	p.GroundSpeed = math.Max(-cfg.TopSpeed, math.Min(cfg.TopSpeed, p.GroundSpeed))
	p.AlignToGround()
}

// applySlope pulls ground speed downhill. Upright characters standing still
// do not slide.
func (c *CharacterController) applySlope(p *entity.Player, cfg config.CharacterConfig) {
	sin := math.Sin(p.GroundAngle)
	if sin == 0 {
		return
	}
	switch p.State {
	case entity.StateRolling:
		k := cfg.RollDownFactor
		if p.GroundSpeed != 0 && sign(p.GroundSpeed) == sign(sin) {
			k = cfg.RollUpFactor
		}
		p.GroundSpeed -= k * sin
	case entity.StateSpinDashCharging:
	default:
		if p.GroundSpeed != 0 {
			p.GroundSpeed -= cfg.SlopeFactor * sin
		}
	}
}

func (c *CharacterController) walk(p *entity.Player, dir float64, cfg config.CharacterConfig, slippery bool) {
	gs := p.GroundSpeed
	switch {
	case dir != 0 && (gs == 0 || sign(gs) == dir):
		if math.Abs(gs) < cfg.RunSpeed {
			gs += dir * cfg.Accel
			if math.Abs(gs) > cfg.RunSpeed {
				gs = dir * cfg.RunSpeed
			}
		}
		p.FacingRight = dir > 0
		p.State = entity.StateRun

	case dir != 0:
		gs += dir * cfg.Decel
		if gs*dir >= 0 {
			gs = dir * cfg.Decel
			p.FacingRight = dir > 0
			p.State = entity.StateRun
		} else {
			p.State = entity.StateSkid
		}

	default:
		gs = approach(gs, 0, friction(cfg, slippery))
		if math.Abs(gs) < cfg.StopEpsilon {
			gs = 0
		}
		if gs == 0 {
			p.State = entity.StateIdle
		} else {
			p.State = entity.StateRun
		}
	}
	p.GroundSpeed = gs
}

func (c *CharacterController) roll(p *entity.Player, in InputState, dir float64, cfg config.CharacterConfig, slippery bool) {
	f := cfg.RollFriction
	if slippery {
		f /= 4
	}
	gs := approach(p.GroundSpeed, 0, f)
	if dir != 0 && gs != 0 && sign(gs) != dir {
		gs = approach(gs, 0, cfg.RollDecel)
	}
	p.GroundSpeed = gs

	if math.Abs(gs) < cfg.RollMinSpeed/2 {
		if in.Down {
			p.State = entity.StateCrouch
		} else {
			p.State = entity.StateIdle
		}
	}
}

func (c *CharacterController) chargeSpinDash(p *entity.Player, in InputState, cfg config.CharacterConfig) {
	p.GroundSpeed = 0
	switch {
	case !in.Down:
		p.GroundSpeed = (cfg.SpinDashBase + p.SpinCharge) * p.Facing()
		p.SpinCharge = 0
		p.State = entity.StateRolling
	case in.JumpPressed:
		p.SpinCharge = math.Min(p.SpinCharge+cfg.SpinDashCharge, cfg.SpinDashMax-cfg.SpinDashBase)
	}
	p.AlignToGround()
}

// jump launches the player along the ground normal.
func (c *CharacterController) jump(p *entity.Player, cfg config.CharacterConfig) {
	sin, cos := math.Sincos(p.GroundAngle)
	gs := p.GroundSpeed
	p.VX = gs*cos + cfg.JumpForce*sin
	p.VY = -gs*sin + cfg.JumpForce*cos
	p.Detach()
	p.State = entity.StateJump
	p.JumpCut = false
	p.SpinCharge = 0
}

func friction(cfg config.CharacterConfig, slippery bool) float64 {
	if slippery {
		return cfg.IceFriction
	}
	return cfg.Friction
}
