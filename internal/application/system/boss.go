package system

import (
	"math"
	"math/rand"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/spinrun/internal/domain/entity"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
)

// bobRate is the boss hover bob frequency in radians per tick.
const bobRate = 0.1

// BossController runs the boss phase machine
type BossController struct {
	cfg      config.BossConfig
	resolver *Resolver
	opts     ResolveOptions
	rng      *rand.Rand
}

// NewBossController creates a boss controller drawing phase choices from rng.
func NewBossController(tuning *config.Tuning, resolver *Resolver, rng *rand.Rand) *BossController {
	return &BossController{
		cfg:      tuning.Boss,
		resolver: resolver,
		opts:     OptionsFromProfile(tuning.Collision.Profile("boss")),
		rng:      rng,
	}
}

// Spawn creates a boss whose hover point is (x, y). It starts above that
// point and eases down into it.
func (c *BossController) Spawn(id entity.EntityID, x, y float64) *entity.Boss {
	b := entity.NewBoss(id, x, y, c.cfg.Width, c.cfg.Height, c.cfg.HP)
	start := y - c.cfg.EnterHeight
	b.Y = start
	b.Entrance = gween.New(float32(start), float32(y), float32(max(c.cfg.EnterTicks, 1)), ease.OutQuad)
	return b
}

// Update advances the boss by one tick and reports whether its phase
// changed.
func (c *BossController) Update(b *entity.Boss, players []*entity.Player) bool {
	if b.Complete {
		return false
	}
	phase := b.Phase
	b.WantsShot = false
	if b.InvincibleTimer > 0 {
		b.InvincibleTimer--
	}

	switch b.Phase {
	case entity.BossEntering:
		y, done := b.Entrance.Update(1)
		b.Y = float64(y)
		if done {
			b.Y = b.HoverY
			c.enter(b, entity.BossHover)
		}

	case entity.BossHover:
		if target := nearestPlayer(&b.Body, players); target != nil {
			b.X += approach(b.CenterX(), target.CenterX(), c.cfg.HoverSpeed) - b.CenterX()
		}
		b.Y = b.HoverY + c.cfg.BobAmplitude*math.Sin(float64(b.PhaseTimer)*bobRate)
		if b.PhaseTimer--; b.PhaseTimer <= 0 {
			c.choose(b, players)
		}

	case entity.BossAttack:
		b.VX = approach(b.CenterX(), b.TargetX, c.cfg.DiveSpeed) - b.CenterX()
		b.VY = c.cfg.DiveSpeed
		c.resolver.Resolve(&b.Body, c.opts)
		if b.PhaseTimer--; b.PhaseTimer <= 0 {
			c.enter(b, entity.BossRetreat)
		}

	case entity.BossShoot:
		if b.ShotTimer--; b.ShotTimer <= 0 {
			b.ShotTimer = c.cfg.ShotInterval
			if target := nearestPlayer(&b.Body, players); target != nil {
				dx, dy := target.CenterX()-b.CenterX(), target.CenterY()-b.CenterY()
				if d := math.Hypot(dx, dy); d > 0 {
					b.WantsShot = true
					b.ShotVX, b.ShotVY = dx/d*c.cfg.ShotSpeed, dy/d*c.cfg.ShotSpeed
				}
			}
		}
		if b.PhaseTimer--; b.PhaseTimer <= 0 {
			c.enter(b, entity.BossRetreat)
		}

	case entity.BossRetreat:
		b.X = approach(b.X, b.HomeX, c.cfg.DiveSpeed)
		b.Y = approach(b.Y, b.HoverY, c.cfg.DiveSpeed)
		b.Detach()
		if b.PhaseTimer--; b.PhaseTimer <= 0 || (b.X == b.HomeX && b.Y == b.HoverY) {
			b.X, b.Y = b.HomeX, b.HoverY
			c.enter(b, entity.BossHover)
		}

	case entity.BossDefeated:
		if b.TeardownTimer--; b.TeardownTimer <= 0 {
			b.TeardownTimer = 0
			b.Complete = true
		}
	}

	return b.Phase != phase
}

func (c *BossController) enter(b *entity.Boss, phase entity.BossPhase) {
	b.Phase = phase
	b.VX, b.VY = 0, 0
	switch phase {
	case entity.BossHover:
		b.PhaseTimer = c.cfg.HoverTicks
		if b.Enraged() {
			b.PhaseTimer = c.cfg.HoverTicksEnraged
		}
	case entity.BossAttack:
		b.PhaseTimer = c.cfg.AttackTicks
	case entity.BossShoot:
		b.PhaseTimer = c.cfg.ShootTicks
		b.ShotTimer = c.cfg.ShotInterval
	case entity.BossRetreat:
		b.PhaseTimer = c.cfg.RetreatTicks
	case entity.BossDefeated:
		b.PhaseTimer = 0
		b.TeardownTimer = c.cfg.TeardownTicks
		b.WantsShot = false
	}
}

// choose picks the next attack. The attack weight grows once the boss is
// enraged.
func (c *BossController) choose(b *entity.Boss, players []*entity.Player) {
	attack := c.cfg.AttackWeight
	if b.Enraged() {
		attack = c.cfg.EnragedAttackWeight
	}
	total := attack + c.cfg.ShootWeight

	next := entity.BossAttack
	if total > 0 && c.rng.Intn(total) >= attack {
		next = entity.BossShoot
	}
	c.enter(b, next)

	b.TargetX = b.CenterX()
	if target := nearestPlayer(&b.Body, players); target != nil {
		b.TargetX = target.CenterX()
	}
}

// Hit applies one point of damage from an attacking player. It returns
// false when the boss cannot be hurt right now.
func (c *BossController) Hit(b *entity.Boss, p *entity.Player) bool {
	if !b.Vulnerable() {
		return false
	}

	b.HP--
	b.InvincibleTimer = c.cfg.HitInvincible

	dir := sign(b.CenterX() - p.CenterX())
	if dir == 0 {
		dir = 1
	}
	b.X += dir * c.cfg.Knockback
	p.Detach()
	p.VX = -dir * c.cfg.AttackerKnockback
	p.VY = -c.cfg.AttackerKnockback
	p.State = entity.StateJump
	p.JumpCut = true

	if b.HP <= 0 {
		b.HP = 0
		c.enter(b, entity.BossDefeated)
	}
	return true
}
