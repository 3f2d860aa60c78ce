package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/spinrun/internal/domain/entity"
)

// ErrUnknownCharacter is returned when a character name has no tuning entry.
var ErrUnknownCharacter = errors.New("config: unknown character")

// Tuning holds every simulation coefficient. All speeds are pixels per
// tick and all durations are ticks.
type Tuning struct {
	Simulation  SimulationConfig           `yaml:"simulation"`
	Display     DisplayConfig              `yaml:"display"`
	Collision   CollisionConfig            `yaml:"collision"`
	Characters  map[string]CharacterConfig `yaml:"characters"`
	Enemies     map[string]EnemyConfig     `yaml:"enemies"`
	Boss        BossConfig                 `yaml:"boss"`
	Damage      DamageConfig               `yaml:"damage"`
	Pickups     PickupConfig               `yaml:"pickups"`
	Projectiles ProjectileConfig           `yaml:"projectiles"`
}

type SimulationConfig struct {
	TickRate         int    `yaml:"tickRate"`
	MaxTicksPerFrame int    `yaml:"maxTicksPerFrame"`
	Seed             int64  `yaml:"seed"`
	Lives            int    `yaml:"lives"`
	DefaultCharacter string `yaml:"defaultCharacter"`
}

type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
	Scale        int `yaml:"scale"`
}

// CollisionConfig tunes the tile resolver.
type CollisionConfig struct {
	TileSize             int                       `yaml:"tileSize"`
	SubStepThreshold     float64                   `yaml:"subStepThreshold"`
	StepHeight           float64                   `yaml:"stepHeight"`
	ConveyorSpeed        float64                   `yaml:"conveyorSpeed"`
	PenetrationTolerance float64                   `yaml:"penetrationTolerance"`
	Profiles             map[string]ResolveProfile `yaml:"profiles"`
}

// ResolveProfile is the per-caller part of a resolve: how forgiving one-way
// platforms are, how far ground snapping reaches, and whether conveyors push.
type ResolveProfile struct {
	OneWayEpsilon float64 `yaml:"oneWayEpsilon"`
	SnapDistance  float64 `yaml:"snapDistance"`
	Conveyors     bool    `yaml:"conveyors"`
}

// Profile returns the named profile, or a zero profile when absent.
func (c CollisionConfig) Profile(name string) ResolveProfile {
	return c.Profiles[name]
}

// CharacterConfig holds one playable character's movement coefficients.
type CharacterConfig struct {
	Power  string  `yaml:"power"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	Accel          float64 `yaml:"accel"`
	Decel          float64 `yaml:"decel"`
	Friction       float64 `yaml:"friction"`
	IceFriction    float64 `yaml:"iceFriction"`
	RunSpeed       float64 `yaml:"runSpeed"`
	TopSpeed       float64 `yaml:"topSpeed"`
	AirAccel       float64 `yaml:"airAccel"`
	Gravity        float64 `yaml:"gravity"`
	MaxFall        float64 `yaml:"maxFall"`
	JumpForce      float64 `yaml:"jumpForce"`
	ShortJumpSpeed float64 `yaml:"shortJumpSpeed"`
	StopEpsilon    float64 `yaml:"stopEpsilon"`

	RollMinSpeed float64 `yaml:"rollMinSpeed"`
	RollFriction float64 `yaml:"rollFriction"`
	RollDecel    float64 `yaml:"rollDecel"`

	SlopeFactor    float64 `yaml:"slopeFactor"`
	RollUpFactor   float64 `yaml:"rollUpFactor"`
	RollDownFactor float64 `yaml:"rollDownFactor"`

	SpinDashBase   float64 `yaml:"spinDashBase"`
	SpinDashCharge float64 `yaml:"spinDashCharge"`
	SpinDashMax    float64 `yaml:"spinDashMax"`

	Fly    FlyConfig    `yaml:"fly"`
	Glide  GlideConfig  `yaml:"glide"`
	Warp   WarpConfig   `yaml:"warp"`
	Hammer HammerConfig `yaml:"hammer"`
}

type FlyConfig struct {
	Meter     int     `yaml:"meter"`
	Regen     int     `yaml:"regen"`
	Lift      float64 `yaml:"lift"`
	MaxRise   float64 `yaml:"maxRise"`
	Gravity   float64 `yaml:"gravity"`
	FallSpeed float64 `yaml:"fallSpeed"`
}

type GlideConfig struct {
	Speed      float64 `yaml:"speed"`
	Fall       float64 `yaml:"fall"`
	ClimbSpeed float64 `yaml:"climbSpeed"`
	ClimbHop   float64 `yaml:"climbHop"`
	WallJumpX  float64 `yaml:"wallJumpX"`
}

type WarpConfig struct {
	Distance   float64 `yaml:"distance"`
	Invincible int     `yaml:"invincible"`
	Cooldown   int     `yaml:"cooldown"`
}

type HammerConfig struct {
	Impulse  float64 `yaml:"impulse"`
	Ticks    int     `yaml:"ticks"`
	Cooldown int     `yaml:"cooldown"`
}

// Character returns the tuning of a named character.
func (t *Tuning) Character(name string) (CharacterConfig, error) {
	c, ok := t.Characters[name]
	if !ok {
		return CharacterConfig{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, name)
	}
	return c, nil
}

// Validate checks the coefficients the simulation divides by or dispatches on.
func (t *Tuning) Validate() error {
	if t.Collision.TileSize <= 0 {
		return fmt.Errorf("collision.tileSize must be positive, got %d", t.Collision.TileSize)
	}
	if t.Collision.SubStepThreshold <= 0 {
		return fmt.Errorf("collision.subStepThreshold must be positive, got %g", t.Collision.SubStepThreshold)
	}
	if len(t.Characters) == 0 {
		return errors.New("no characters configured")
	}
	for name, c := range t.Characters {
		if _, ok := entity.ParsePower(c.Power); !ok {
			return fmt.Errorf("character %s: unknown power %q", name, c.Power)
		}
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("character %s: size must be positive", name)
		}
	}
	if _, err := t.Character(t.Simulation.DefaultCharacter); err != nil {
		return fmt.Errorf("simulation.defaultCharacter: %w", err)
	}
	return nil
}
