package system

import (
	"github.com/younwookim/spinrun/internal/domain/entity"
	"github.com/younwookim/spinrun/internal/domain/tile"
)

// spawnShot fires a hostile projectile from (cx, cy).
func (s *Simulation) spawnShot(cx, cy, vx, vy float64) {
	cfg := s.tuning.Projectiles
	s.Projectiles = append(s.Projectiles, entity.NewProjectile(cx, cy, vx, vy, cfg.Size, cfg.TTL, true))
}

// updateProjectiles moves every shot and drops the ones that touched a
// tile, expired or left the world.
func (s *Simulation) updateProjectiles() {
	live := s.Projectiles[:0]
	for _, pr := range s.Projectiles {
		pr.Tick()
		if pr.Active {
			s.resolver.Resolve(&pr.Body, s.projectileOpts)
			if pr.HitWall || pr.HitCeiling || pr.OnGround || s.outside(&pr.Body) {
				pr.Active = false
			}
		}
		if pr.Active {
			live = append(live, pr)
		}
	}
	clear(s.Projectiles[len(live):])
	s.Projectiles = live
}

// updatePickups ages scattered currency and bounces it off tiles.
func (s *Simulation) updatePickups() {
	cfg := s.tuning.Pickups
	live := s.Pickups[:0]
	for _, pk := range s.Pickups {
		if pk.Active && pk.Scattered {
			if pk.CollectDelay > 0 {
				pk.CollectDelay--
			}
			if pk.TTL--; pk.TTL <= 0 {
				pk.Active = false
			}
		}
		if pk.Active && pk.Scattered {
			pk.VY += cfg.Gravity
			vx, vy := pk.VX, pk.VY
			s.resolver.Resolve(&pk.Body, s.pickupOpts)

			switch {
			case pk.OnGround:
				pk.Detach()
				pk.VX = vx
				pk.VY = -vy * cfg.BounceDecay
			case pk.HitCeiling:
				pk.VY = -vy * cfg.BounceDecay
			}
			if pk.HitWall {
				pk.VX = -vx * cfg.BounceDecay
			}
			if s.outside(&pk.Body) {
				pk.Active = false
			}
		}
		if pk.Active {
			live = append(live, pk)
		}
	}
	clear(s.Pickups[len(live):])
	s.Pickups = live
}

// resolveContacts applies every player overlap: enemies, the boss, hostile
// shots and pickups.
func (s *Simulation) resolveContacts() {
	for _, p := range s.Players {
		if !p.Alive {
			continue
		}
		for _, e := range s.Enemies {
			if e.Alive && touchesEnemy(p, e) {
				s.enemyContact(p, e)
			}
		}
		if s.Boss != nil && s.Boss.Active() && p.Overlaps(&s.Boss.Body) {
			s.bossContact(p)
		}
		for _, pr := range s.Projectiles {
			if pr.Active && pr.Hostile && p.Alive && p.Overlaps(&pr.Body) {
				pr.Active = false
				s.hurt(p, pr.CenterX())
			}
		}
		for _, pk := range s.Pickups {
			if pk.Active && p.Alive && p.Overlaps(&pk.Body) {
				s.collect(p, pk)
			}
		}
	}
}

// touchesEnemy checks the enemy body and every trailing segment.
func touchesEnemy(p *entity.Player, e *entity.Enemy) bool {
	if p.Overlaps(&e.Body) {
		return true
	}
	for i := range e.Segments {
		seg := e.SegmentBody(i)
		if p.Overlaps(&seg) {
			return true
		}
	}
	return false
}

func (s *Simulation) enemyContact(p *entity.Player, e *entity.Enemy) {
	if !p.Attacking() {
		s.hurt(p, e.CenterX())
		return
	}
	e.Alive = false
	s.Events.EnemyDefeated++
	if !p.OnGround && p.VY > 0 {
		p.VY = -p.VY
	}
	s.logger.Debug("enemy defeated", "id", e.ID, "kind", e.Kind, "slot", p.Slot)
}

func (s *Simulation) bossContact(p *entity.Player) {
	if !p.Attacking() {
		s.hurt(p, s.Boss.CenterX())
		return
	}
	if !s.bosses.Hit(s.Boss, p) {
		return
	}
	s.logger.Debug("boss hit", "hp", s.Boss.HP, "slot", p.Slot)
	if !s.Boss.Active() {
		s.Events.BossPhaseChanged = true
		s.logger.Info("boss defeated", "level", s.level.ID, "tick", s.Tick)
	}
}

func (s *Simulation) collect(p *entity.Player, pk *entity.Pickup) {
	switch pk.Kind {
	case entity.PickupCurrency:
		if !pk.CanCollect() {
			return
		}
		pk.Active = false
		p.Currency++
		s.Events.CurrencyCollected++

	case entity.PickupShield:
		pk.Active = false
		p.Shield = true

	case entity.PickupCheckpoint:
		if pk.Activated {
			return
		}
		pk.Activated = true
		for _, other := range s.Players {
			other.SetCheckpoint(pk.CenterX()-other.W/2, pk.Bottom()-other.H)
		}
		s.Events.CheckpointActivated = true
		s.logger.Debug("checkpoint", "id", pk.ID, "slot", p.Slot)

	case entity.PickupGoal:
		s.complete("goal reached")
	}
}

// bumpBlock turns an item block hit from below into a used block and pays
// out one currency.
func (s *Simulation) bumpBlock(p *entity.Player) {
	c := p.CeilingCell
	if !s.world.Tile(c.Col, c.Row).Item {
		return
	}
	s.world.SetOverride(c.Col, c.Row, tile.CodeUsedBlock)
	p.Currency++
	s.Events.CurrencyCollected++
	s.logger.Debug("item block", "col", c.Col, "row", c.Row, "slot", p.Slot)
}

// scatterCurrency throws n bouncing currency pickups out of the player.
func (s *Simulation) scatterCurrency(p *entity.Player, n int) {
	cfg := s.tuning.Pickups
	for _, v := range ScatterVelocities(n, cfg.ScatterSpeed) {
		s.Pickups = append(s.Pickups, entity.NewScatteredCurrency(s.newID(),
			p.CenterX()-cfg.Size/2, p.CenterY()-cfg.Size/2, cfg.Size, cfg.Size,
			v.X, v.Y, cfg.ScatterTTL, cfg.CollectDelay))
	}
}

func (s *Simulation) pruneEnemies() {
	live := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.Alive {
			live = append(live, e)
		}
	}
	clear(s.Enemies[len(live):])
	s.Enemies = live
}

// outside reports whether a body has left the world box entirely.
func (s *Simulation) outside(b *entity.Body) bool {
	return b.Right() < 0 || b.Left() > s.world.PixelWidth() ||
		b.Bottom() < 0 || b.Top() > s.world.PixelHeight()
}
