package system

import (
	"math"

	"github.com/younwookim/spinrun/internal/domain/entity"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
)

// EnemyAI runs enemy behaviors. Behaviors only decide velocity and shot
// requests; the resolver does the moving.
type EnemyAI struct {
	tuning   *config.Tuning
	resolver *Resolver
	walking  ResolveOptions
	flying   ResolveOptions
}

// NewEnemyAI creates the enemy behavior runner
func NewEnemyAI(tuning *config.Tuning, resolver *Resolver) *EnemyAI {
	return &EnemyAI{
		tuning:   tuning,
		resolver: resolver,
		walking:  OptionsFromProfile(tuning.Collision.Profile("enemy")),
		flying:   OptionsFromProfile(tuning.Collision.Profile("flying")),
	}
}

// Config returns the tuning of an enemy's kind.
func (a *EnemyAI) Config(e *entity.Enemy) config.EnemyConfig {
	return a.tuning.Enemies[e.Kind.String()]
}

// Update advances one enemy by one tick.
func (a *EnemyAI) Update(e *entity.Enemy, players []*entity.Player) {
	if !e.Alive {
		return
	}
	cfg := a.Config(e)
	e.WantsShot = false

	switch e.Kind {
	case entity.EnemyPatrol:
		a.walk(e, e.Speed, cfg)
	case entity.EnemyFlier:
		a.flier(e, cfg)
	case entity.EnemyShooter:
		a.shooter(e, players, cfg)
	case entity.EnemyGrabber:
		a.grabber(e, players, cfg)
	case entity.EnemyChaser:
		a.chaser(e, players, cfg)
	case entity.EnemyCrawler:
		a.walk(e, e.Speed, cfg)
		a.trail(e)
	}

	if e.Top() > a.resolver.World().PixelHeight() {
		e.Alive = false
	}
}

// walk moves a ground enemy forward, turning around at walls and before
// walking off a ledge.
func (a *EnemyAI) walk(e *entity.Enemy, speed float64, cfg config.EnemyConfig) {
	if e.OnGround {
		if !a.floorAhead(e, speed) {
			e.FacingRight = !e.FacingRight
		}
		e.GroundSpeed = e.Facing() * speed
		e.AlignToGround()
	} else {
		ApplyGravity(&e.Body, cfg.Gravity, cfg.MaxFall)
	}

	a.resolver.Resolve(&e.Body, a.walking)
	if e.HitWall {
		e.FacingRight = !e.FacingRight
	}
}

// floorAhead reports whether the ground under the leading edge continues
// within snap reach after moving speed pixels. The ground there may lie up
// to a body width below the feet when the enemy is heading down a slope.
func (a *EnemyAI) floorAhead(e *entity.Enemy, speed float64) bool {
	x := e.Right() - 1
	if !e.FacingRight {
		x = e.Left()
	}
	bottom := e.Bottom()
	reach := a.walking.SnapDistance + speed
	here, ok := a.resolver.FloorBelow(x, bottom, bottom-reach, bottom+e.W+reach, a.walking)
	if !ok {
		return false
	}
	_, ok = a.resolver.FloorBelow(x+e.Facing()*speed, bottom, here-reach, here+reach, a.walking)
	return ok
}

func (a *EnemyAI) flier(e *entity.Enemy, cfg config.EnemyConfig) {
	e.Phase += cfg.Frequency
	e.VX = e.Facing() * e.Speed
	e.VY = e.AnchorY + cfg.Amplitude*math.Sin(e.Phase) - e.Y

	a.resolver.Resolve(&e.Body, a.flying)
	e.Detach()
	if e.HitWall || e.Left() <= 0 || e.Right() >= a.resolver.World().PixelWidth() {
		e.FacingRight = !e.FacingRight
	}

	e.Timer++
	if cfg.ShotPeriod > 0 && e.Timer >= cfg.ShotPeriod {
		e.Timer = 0
		e.WantsShot = true
		e.ShotVX, e.ShotVY = 0, cfg.ShotSpeed
	}
}

func (a *EnemyAI) shooter(e *entity.Enemy, players []*entity.Player, cfg config.EnemyConfig) {
	target := nearestPlayer(&e.Body, players)
	if target != nil {
		e.FacingRight = target.CenterX() >= e.CenterX()
	}

	if e.OnGround {
		e.GroundSpeed = 0
		e.AlignToGround()
	} else {
		e.VX = 0
		ApplyGravity(&e.Body, cfg.Gravity, cfg.MaxFall)
	}
	a.resolver.Resolve(&e.Body, a.walking)

	e.Timer++
	if target != nil && cfg.ShotPeriod > 0 && e.Timer >= cfg.ShotPeriod {
		e.Timer = 0
		e.WantsShot = true
		e.ShotVX, e.ShotVY = e.Facing()*cfg.ShotSpeed, 0
	}
}

func (a *EnemyAI) grabber(e *entity.Enemy, players []*entity.Player, cfg config.EnemyConfig) {
	switch e.Grab {
	case entity.GrabWaiting:
		for _, p := range players {
			if p.Alive && math.Abs(p.CenterX()-e.CenterX()) <= cfg.Range && p.Top() >= e.Bottom() {
				e.Grab = entity.GrabDropping
				break
			}
		}

	case entity.GrabDropping:
		e.VX, e.VY = 0, cfg.DropSpeed
		a.resolver.Resolve(&e.Body, a.flying)
		if e.OnGround || e.Y-e.AnchorY >= cfg.TetherLength {
			e.Y = math.Min(e.Y, e.AnchorY+cfg.TetherLength)
			e.Detach()
			e.VY = 0
			e.Grab = entity.GrabRetracting
		}

	case entity.GrabRetracting:
		e.Y -= cfg.RetractSpeed
		if e.Y <= e.AnchorY {
			e.Y = e.AnchorY
			e.Grab = entity.GrabCooldown
			e.Timer = cfg.Cooldown
		}

	case entity.GrabCooldown:
		e.Timer--
		if e.Timer <= 0 {
			e.Timer = 0
			e.Grab = entity.GrabWaiting
		}
	}
}

// chaser patrols until a player is level with it and in range, then slides
// at it for a while and cools down before it can slide again.
func (a *EnemyAI) chaser(e *entity.Enemy, players []*entity.Player, cfg config.EnemyConfig) {
	if e.Sliding {
		facing := e.FacingRight
		a.walk(e, cfg.SlideSpeed, cfg)
		e.Timer--
		if e.Timer <= 0 || e.FacingRight != facing {
			e.Sliding = false
			e.Timer = cfg.Cooldown
		}
		return
	}

	if e.Timer > 0 {
		e.Timer--
	}
	if e.Timer == 0 && e.OnGround {
		for _, p := range players {
			if !p.Alive {
				continue
			}
			dx := p.CenterX() - e.CenterX()
			if math.Abs(dx) <= cfg.Range && math.Abs(p.Bottom()-e.Bottom()) <= cfg.LevelTolerance {
				e.FacingRight = dx >= 0
				e.Sliding = true
				e.Timer = cfg.SlideTicks
				a.walk(e, cfg.SlideSpeed, cfg)
				return
			}
		}
	}
	a.walk(e, e.Speed, cfg)
}

// trail records the crawler head position and places segment i where the
// head was (i+1)*spacing ticks ago.
func (a *EnemyAI) trail(e *entity.Enemy) {
	if e.History == nil || len(e.Segments) == 0 {
		return
	}
	e.History.Push(entity.Vec{X: e.X, Y: e.Y})
	spacing := (e.History.Cap() - 1) / len(e.Segments)
	for i := range e.Segments {
		if v, ok := e.History.At((i + 1) * spacing); ok {
			e.Segments[i] = v
		}
	}
}

// nearestPlayer returns the closest living player, or nil.
func nearestPlayer(b *entity.Body, players []*entity.Player) *entity.Player {
	var best *entity.Player
	bestDist := math.Inf(1)
	for _, p := range players {
		if !p.Alive {
			continue
		}
		d := math.Hypot(p.CenterX()-b.CenterX(), p.CenterY()-b.CenterY())
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
