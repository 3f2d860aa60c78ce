package system

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/younwookim/spinrun/internal/application/state"
	"github.com/younwookim/spinrun/internal/domain/entity"
	"github.com/younwookim/spinrun/internal/domain/tile"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
	"github.com/younwookim/spinrun/internal/infrastructure/logging"
)

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

// WithSeed overrides the tuning seed.
func WithSeed(seed int64) Option {
	return func(s *Simulation) {
		s.seed = seed
	}
}

// WithCharacters sets one player per name, in slot order. Players beyond
// the level's player spawns share the last spawn, offset to the right.
func WithCharacters(names ...string) Option {
	return func(s *Simulation) {
		s.characterNames = names
	}
}

// Simulation is one level run: the world, every entity, and the per-tick
// events. It is deterministic for a given seed and input sequence.
type Simulation struct {
	tuning *config.Tuning
	level  *config.LevelConfig
	world  *tile.World
	logger *log.Logger

	resolver   *Resolver
	characters *CharacterController
	ai         *EnemyAI
	bosses     *BossController

	projectileOpts ResolveOptions
	pickupOpts     ResolveOptions

	rng            *rand.Rand
	seed           int64
	characterNames []string
	nextID         entity.EntityID

	Players     []*entity.Player
	Enemies     []*entity.Enemy
	Boss        *entity.Boss
	Projectiles []*entity.Projectile
	Pickups     []*entity.Pickup

	Events entity.Events
	State  state.GameState
	Tick   int
}

// New builds a simulation for level and spawns its entities.
func New(tuning *config.Tuning, level *config.LevelConfig, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		tuning: tuning,
		level:  level,
		logger: logging.Discard(),
		seed:   tuning.Simulation.Seed,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, name := range s.characterNames {
		if _, err := tuning.Character(name); err != nil {
			return nil, err
		}
	}

	world, err := BuildWorld(level, s.logger)
	if err != nil {
		return nil, err
	}
	s.world = world
	s.resolver = NewResolver(&tuning.Collision, world)
	s.characters = NewCharacterController(tuning, s.resolver)
	s.ai = NewEnemyAI(tuning, s.resolver)
	s.projectileOpts = OptionsFromProfile(tuning.Collision.Profile("projectile"))
	s.pickupOpts = OptionsFromProfile(tuning.Collision.Profile("pickup"))

	s.start()
	return s, nil
}

// Reset restarts the level: overrides from play are cleared, the level's
// own overrides are reapplied and every entity respawns.
func (s *Simulation) Reset() {
	s.world.ClearOverrides()
	ApplyLevelOverrides(s.world, s.level, s.logger)
	s.start()
}

func (s *Simulation) start() {
	s.rng = rand.New(rand.NewSource(s.seed))
	s.bosses = NewBossController(s.tuning, s.resolver, s.rng)
	s.nextID = 0
	s.Players = nil
	s.Enemies = nil
	s.Boss = nil
	s.Projectiles = nil
	s.Pickups = nil
	s.Events.Reset()
	s.State = state.StatePlaying
	s.Tick = 0

	s.spawnAll()
	s.logger.Info("level started", "level", s.level.ID, "players", len(s.Players),
		"enemies", len(s.Enemies), "boss", s.Boss != nil, "seed", s.seed)
}

// World returns the tile world of the level.
func (s *Simulation) World() *tile.World { return s.world }

// Level returns the level the simulation runs.
func (s *Simulation) Level() *config.LevelConfig { return s.level }

// Tuning returns the tuning the simulation runs with.
func (s *Simulation) Tuning() *config.Tuning { return s.tuning }

// Seed returns the seed the random source restarts from on Reset.
func (s *Simulation) Seed() int64 { return s.seed }

// Step advances the simulation by one tick. inputs[i] drives the player in
// slot i; missing slots get no input. Events hold what happened during
// this tick only.
func (s *Simulation) Step(inputs []InputState) {
	s.Events.Reset()
	if s.State != state.StatePlaying {
		return
	}
	s.Tick++

	for i, p := range s.Players {
		var in InputState
		if i < len(inputs) {
			in = inputs[i]
		}
		report := s.characters.Update(p, in)
		s.handleReport(p, report)
		if p.Alive && p.HitCeiling {
			s.bumpBlock(p)
		}
	}

	for _, e := range s.Enemies {
		s.ai.Update(e, s.Players)
		if e.Alive && e.WantsShot {
			s.spawnShot(e.CenterX(), e.CenterY(), e.ShotVX, e.ShotVY)
		}
	}

	if s.Boss != nil {
		if s.bosses.Update(s.Boss, s.Players) {
			s.Events.BossPhaseChanged = true
			s.logger.Debug("boss phase", "phase", s.Boss.Phase, "hp", s.Boss.HP, "tick", s.Tick)
		}
		if s.Boss.WantsShot {
			s.spawnShot(s.Boss.CenterX(), s.Boss.CenterY(), s.Boss.ShotVX, s.Boss.ShotVY)
		}
	}

	s.updateProjectiles()
	s.updatePickups()
	s.resolveContacts()
	s.pruneEnemies()

	if s.Boss != nil && s.Boss.Complete {
		s.complete("boss defeated")
	}
	if s.State == state.StatePlaying && s.allOut() {
		s.State = state.StateGameOver
		s.logger.Info("game over", "level", s.level.ID, "tick", s.Tick)
	}
}

// Complete reports whether the level has been cleared.
func (s *Simulation) Complete() bool {
	return s.State == state.StateStageClear
}

// GameOver reports whether every player is out of lives.
func (s *Simulation) GameOver() bool {
	return s.State == state.StateGameOver
}

func (s *Simulation) complete(reason string) {
	if s.State != state.StatePlaying {
		return
	}
	s.State = state.StateStageClear
	s.Events.LevelComplete = true
	s.logger.Info("level complete", "level", s.level.ID, "reason", reason, "tick", s.Tick)
}

func (s *Simulation) allOut() bool {
	if len(s.Players) == 0 {
		return false
	}
	for _, p := range s.Players {
		if p.Alive || p.Lives > 0 {
			return false
		}
	}
	return true
}

func (s *Simulation) handleReport(p *entity.Player, r TickReport) {
	if r.HazardHit {
		s.Events.HazardHit = true
	}
	s.applyHurt(p, r.Damage)
	if r.FellOut {
		s.Events.PlayerDied = true
		s.logger.Info("player fell out", "slot", p.Slot, "lives", p.Lives, "tick", s.Tick)
	}
	if r.Respawned {
		s.logger.Debug("player respawned", "slot", p.Slot, "x", p.X, "y", p.Y)
	}
}

func (s *Simulation) hurt(p *entity.Player, fromX float64) {
	s.applyHurt(p, s.characters.Hurt(p, fromX))
}

func (s *Simulation) applyHurt(p *entity.Player, r HurtResult) {
	if !r.Applied {
		return
	}
	if r.Scattered > 0 {
		s.scatterCurrency(p, r.Scattered)
	}
	if r.Died {
		s.Events.PlayerDied = true
		s.logger.Info("player died", "slot", p.Slot, "lives", p.Lives, "tick", s.Tick)
	}
}

// Poses returns the render snapshot of every live entity.
func (s *Simulation) Poses() []entity.Pose {
	poses := make([]entity.Pose, 0, len(s.Players)+len(s.Enemies)+len(s.Projectiles)+len(s.Pickups)+1)

	for _, p := range s.Players {
		tag := p.State.String()
		if !p.Alive {
			tag = "dead"
		}
		poses = append(poses, pose(entity.EntityID(p.Slot), entity.PosePlayer, &p.Body, tag))
	}
	for _, e := range s.Enemies {
		if !e.Alive {
			continue
		}
		poses = append(poses, pose(e.ID, entity.PoseEnemy, &e.Body, e.Kind.String()))
		for i := range e.Segments {
			seg := e.SegmentBody(i)
			seg.FacingRight = e.FacingRight
			poses = append(poses, pose(e.ID, entity.PoseSegment, &seg, e.Kind.String()))
		}
	}
	if s.Boss != nil && !s.Boss.Complete {
		poses = append(poses, pose(s.Boss.ID, entity.PoseBoss, &s.Boss.Body, s.Boss.Phase.String()))
	}
	for _, pr := range s.Projectiles {
		if pr.Active {
			poses = append(poses, pose(0, entity.PoseProjectile, &pr.Body, "shot"))
		}
	}
	for _, pk := range s.Pickups {
		if pk.Active {
			poses = append(poses, pose(pk.ID, entity.PosePickup, &pk.Body, pk.Kind.String()))
		}
	}
	return poses
}

func pose(id entity.EntityID, kind entity.PoseKind, b *entity.Body, tag string) entity.Pose {
	return entity.Pose{
		ID:          id,
		Kind:        kind,
		X:           b.X,
		Y:           b.Y,
		W:           b.W,
		H:           b.H,
		FacingRight: b.FacingRight,
		State:       tag,
	}
}

func (s *Simulation) newID() entity.EntityID {
	s.nextID++
	return s.nextID
}

// spawnAll creates every entity the level places. Unknown spawn types are
// logged and skipped.
func (s *Simulation) spawnAll() {
	var playerSpawns []config.SpawnConfig
	ts := s.level.TileSize

	for _, sc := range s.level.Spawns {
		if sc.Type == "player" {
			playerSpawns = append(playerSpawns, sc)
			continue
		}
		if kind, ok := entity.ParseEnemyKind(sc.Type); ok {
			s.spawnEnemy(kind, sc)
			continue
		}

		switch sc.Type {
		case "boss":
			if s.Boss != nil {
				s.logger.Warn("ignoring second boss spawn", "col", sc.Col, "row", sc.Row)
				continue
			}
			cfg := s.tuning.Boss
			x, y := SpawnPoint(sc, ts, cfg.Width, cfg.Height)
			s.Boss = s.bosses.Spawn(s.newID(), x, y)
		case "currency":
			s.spawnPickup(entity.PickupCurrency, sc, s.tuning.Pickups.Size, s.tuning.Pickups.Size)
		case "shield":
			s.spawnPickup(entity.PickupShield, sc, s.tuning.Pickups.Size*2, s.tuning.Pickups.Size*2)
		case "checkpoint":
			s.spawnPickup(entity.PickupCheckpoint, sc, float64(ts), float64(ts)*2)
		case "goal":
			s.spawnPickup(entity.PickupGoal, sc, float64(ts), float64(ts)*2)
		default:
			s.logger.Warn("ignoring unknown spawn", "type", sc.Type, "col", sc.Col, "row", sc.Row)
		}
	}

	s.spawnPlayers(playerSpawns)
}

func (s *Simulation) spawnPlayers(spawns []config.SpawnConfig) {
	if len(spawns) == 0 {
		s.logger.Warn("level has no player spawn", "level", s.level.ID)
		return
	}

	names := s.characterNames
	if len(names) == 0 {
		names = make([]string, len(spawns))
		for i, sc := range spawns {
			names[i] = sc.String("character", s.tuning.Simulation.DefaultCharacter)
		}
	}

	for slot, name := range names {
		cfg, err := s.tuning.Character(name)
		if err != nil {
			s.logger.Warn("unknown character, using default", "slot", slot, "character", name)
			name = s.tuning.Simulation.DefaultCharacter
			cfg, _ = s.tuning.Character(name)
		}
		power, _ := entity.ParsePower(cfg.Power)

		sc := spawns[min(slot, len(spawns)-1)]
		x, y := SpawnPoint(sc, s.level.TileSize, cfg.Width, cfg.Height)
		if extra := slot - (len(spawns) - 1); extra > 0 {
			x += float64(extra) * cfg.Width
		}

		p := entity.NewPlayer(slot, x, y, cfg.Width, cfg.Height, name, power, s.tuning.Simulation.Lives)
		p.FlyMeter = cfg.Fly.Meter
		s.Players = append(s.Players, p)
	}
}

func (s *Simulation) spawnEnemy(kind entity.EnemyKind, sc config.SpawnConfig) {
	cfg := s.tuning.Enemies[kind.String()]
	x, y := SpawnPoint(sc, s.level.TileSize, cfg.Width, cfg.Height)

	e := entity.NewEnemy(s.newID(), kind, x, y, cfg.Width, cfg.Height, sc.Float("speed", cfg.Speed))
	e.FacingRight = sc.String("facing", "left") == "right"
	if kind == entity.EnemyCrawler {
		e.AttachSegments(sc.Int("segments", cfg.Segments), sc.Int("spacing", cfg.Spacing))
	}
	s.Enemies = append(s.Enemies, e)
}

func (s *Simulation) spawnPickup(kind entity.PickupKind, sc config.SpawnConfig, w, h float64) {
	x, y := SpawnPoint(sc, s.level.TileSize, w, h)
	s.Pickups = append(s.Pickups, entity.NewPickup(s.newID(), kind, x, y, w, h))
}

// String summarizes the run for logs and the CLI.
func (s *Simulation) String() string {
	alive := 0
	for _, e := range s.Enemies {
		if e.Alive {
			alive++
		}
	}
	return fmt.Sprintf("level=%s tick=%d state=%s players=%d enemies=%d", s.level.ID, s.Tick, s.State, len(s.Players), alive)
}
