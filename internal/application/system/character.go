package system

import (
	"math"

	"github.com/younwookim/spinrun/internal/domain/entity"
	"github.com/younwookim/spinrun/internal/domain/tile"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
)

// dropThroughTicks is how long a player ignores one-way tops after
// dropping through one. It has to outlast the player's one-way epsilon.
const dropThroughTicks = 8

// TickReport tells the caller what happened to a player during Update
// that the rest of the simulation reacts to.
type TickReport struct {
	HazardHit bool
	Damage    HurtResult
	FellOut   bool
	Respawned bool
}

// Died reports whether the player lost a life this tick.
func (r TickReport) Died() bool {
	return r.Damage.Died || r.FellOut
}

// CharacterController runs the per-tick movement state machine of player
// characters.
type CharacterController struct {
	tuning   *config.Tuning
	resolver *Resolver
	opts     ResolveOptions
}

// NewCharacterController creates a controller moving players through the
// resolver's world.
func NewCharacterController(tuning *config.Tuning, resolver *Resolver) *CharacterController {
	return &CharacterController{
		tuning:   tuning,
		resolver: resolver,
		opts:     OptionsFromProfile(tuning.Collision.Profile("player")),
	}
}

// Character returns the movement tuning of the player's character.
func (c *CharacterController) Character(p *entity.Player) config.CharacterConfig {
	return c.tuning.Characters[p.Character]
}

// Update advances one player by one tick.
func (c *CharacterController) Update(p *entity.Player, in InputState) TickReport {
	if !p.Alive {
		return TickReport{Respawned: c.updateDead(p)}
	}

	cfg := c.Character(p)
	c.tickTimers(p)

	opts := c.opts
	if p.OnGround {
		if c.startDrop(p, in) {
			opts.DropThrough = true
		} else {
			c.updateGround(p, in, cfg)
		}
	} else {
		c.updateAir(p, in, cfg)
	}
	if in.SkillPressed {
		c.usePower(p, cfg)
	}
	if p.DropTimer > 0 {
		opts.DropThrough = true
	}

	grounded := p.OnGround
	gs := p.GroundSpeed
	c.resolver.Resolve(&p.Body, opts)
	c.postResolve(p, in, cfg, grounded, gs)

	var report TickReport
	if p.HitHazard {
		report.HazardHit = true
		report.Damage = c.Hurt(p, p.CenterX()+p.Facing())
	}
	if p.Alive && p.Top() > float64(c.resolver.World().PixelHeight()) {
		c.Kill(p)
		report.FellOut = true
	}
	return report
}

func (c *CharacterController) tickTimers(p *entity.Player) {
	if p.InvincibleTimer > 0 {
		p.InvincibleTimer--
	}
	if p.PowerCooldown > 0 {
		p.PowerCooldown--
	}
	if p.HammerTimer > 0 {
		p.HammerTimer--
	}
	if p.DropTimer > 0 {
		p.DropTimer--
	}
}

// startDrop lets a player standing on a one-way top fall through it with
// down and jump.
func (c *CharacterController) startDrop(p *entity.Player, in InputState) bool {
	if !in.Down || !in.JumpPressed || p.GroundTile.Kind != tile.OneWay {
		return false
	}
	p.Detach()
	p.VX, p.VY = 0, 1
	p.State = entity.StateAirborne
	p.DropTimer = dropThroughTicks
	return true
}

// postResolve turns the resolver's contact flags into state changes.
func (c *CharacterController) postResolve(p *entity.Player, in InputState, cfg config.CharacterConfig, wasGrounded bool, gs float64) {
	switch {
	case p.OnGround && wasGrounded:
		// Ground speed survives changes of angle; walls stop it.
		if p.HitWall {
			p.GroundSpeed = 0
			if p.State == entity.StateRun || p.State == entity.StateSkid {
				p.State = entity.StateIdle
			}
		} else {
			p.GroundSpeed = gs
		}
		p.AlignToGround()

	case p.OnGround:
		c.land(p, in, cfg)

	case wasGrounded:
		switch p.State {
		case entity.StateRolling, entity.StateSpinDashCharging:
			p.State = entity.StateJump
			p.JumpCut = true
		default:
			if p.State.Grounded() {
				p.State = entity.StateAirborne
			}
		}
		p.SpinCharge = 0
	}

	if p.OnGround && p.Power == entity.PowerFly && p.FlyMeter < cfg.Fly.Meter {
		p.FlyMeter = min(p.FlyMeter+cfg.Fly.Regen, cfg.Fly.Meter)
	}

	switch p.State {
	case entity.StateGliding:
		if p.HitWall {
			p.State = entity.StateClimbing
			p.ClimbSide = p.Facing()
			p.VX, p.VY = 0, 0
		}
	case entity.StateClimbing:
		if !p.HitWall {
			p.State = entity.StateAirborne
		}
	}
}

// land converts an airborne player to its grounded state. The resolver has
// already projected velocity onto the ground tangent.
func (c *CharacterController) land(p *entity.Player, in InputState, cfg config.CharacterConfig) {
	p.JumpCut = false
	if p.State == entity.StateHurt {
		p.GroundSpeed = 0
		p.AlignToGround()
		p.State = entity.StateIdle
		return
	}
	switch speed := math.Abs(p.GroundSpeed); {
	case in.Down && speed >= cfg.RollMinSpeed:
		p.State = entity.StateRolling
	case speed < cfg.StopEpsilon:
		p.GroundSpeed = 0
		p.AlignToGround()
		p.State = entity.StateIdle
	default:
		p.State = entity.StateRun
	}
}

// usePower triggers the skill-button powers.
func (c *CharacterController) usePower(p *entity.Player, cfg config.CharacterConfig) {
	if p.PowerCooldown > 0 || p.State == entity.StateHurt {
		return
	}
	switch p.Power {
	case entity.PowerWarp:
		c.warp(p, cfg.Warp)
	case entity.PowerHammer:
		h := cfg.Hammer
		p.Detach()
		p.VY = h.Impulse
		p.State = entity.StateAirborne
		p.JumpCut = true
		p.HammerTimer = h.Ticks
		p.InvincibleTimer = max(p.InvincibleTimer, h.Ticks)
		p.PowerCooldown = h.Cooldown
	}
}

// warp teleports the player forward pixel by pixel until the next step
// would overlap a blocking tile.
func (c *CharacterController) warp(p *entity.Player, w config.WarpConfig) {
	top, h := p.Y, p.H
	if p.OnGround && h > c.tuning.Collision.StepHeight {
		h -= c.tuning.Collision.StepHeight
	}
	dir := p.Facing()
	moved := 0.0
	for moved < w.Distance {
		step := math.Min(1, w.Distance-moved)
		if c.resolver.RectBlocked(p.X+dir*(moved+step), top, p.W, h) {
			break
		}
		moved += step
	}
	p.X += dir * moved
	p.InvincibleTimer = max(p.InvincibleTimer, w.Invincible)
	p.PowerCooldown = w.Cooldown
}
