package system

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/spinrun/internal/domain/entity"
	"github.com/younwookim/spinrun/internal/domain/tile"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
)

const floorTop = 112.0

func createTestTuning(t *testing.T) *config.Tuning {
	t.Helper()
	tuning, err := config.DefaultTuning()
	require.NoError(t, err)
	return tuning
}

func createTestController(t *testing.T, tuning *config.Tuning, rows ...string) *CharacterController {
	t.Helper()
	w, err := tile.NewWorld(rows, tuning.Collision.TileSize)
	require.NoError(t, err)
	return NewCharacterController(tuning, NewResolver(&tuning.Collision, w))
}

// flatRows is a long room whose floor top is at floorTop.
func flatRows(floor byte) []string {
	rows := make([]string, 0, 8)
	for i := 0; i < 7; i++ {
		rows = append(rows, strings.Repeat(".", 60))
	}
	return append(rows, strings.Repeat(string(floor), 60))
}

func createTestPlayer(t *testing.T, tuning *config.Tuning, character string, x float64) *entity.Player {
	t.Helper()
	cfg, err := tuning.Character(character)
	require.NoError(t, err)
	power, ok := entity.ParsePower(cfg.Power)
	require.True(t, ok)

	p := entity.NewPlayer(0, x, floorTop-cfg.Height, cfg.Width, cfg.Height, character, power, 3)
	p.OnGround = true
	p.State = entity.StateIdle
	p.GroundTile = tile.Lookup(tile.CodeSolid)
	p.FlyMeter = cfg.Fly.Meter
	return p
}

func assertGroundInvariant(t *testing.T, p *entity.Player) {
	t.Helper()
	if !p.OnGround {
		return
	}
	assert.InDelta(t, p.GroundSpeed*math.Cos(p.GroundAngle), p.VX, 1e-9)
	assert.InDelta(t, -p.GroundSpeed*math.Sin(p.GroundAngle), p.VY, 1e-9)
}

func TestCharacter_JumpLeavesGroundSameTick(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "runner", 64)
	cfg := c.Character(p)

	c.Update(p, InputState{JumpPressed: true, JumpHeld: true})

	assert.False(t, p.OnGround)
	assert.Equal(t, entity.StateJump, p.State)
	assert.Equal(t, cfg.JumpForce, p.VY)
	assert.InDelta(t, floorTop-cfg.Height+cfg.JumpForce, p.Y, 1e-9)
}

func TestCharacter_VariableJumpCutsOnce(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "runner", 64)
	cfg := c.Character(p)

	c.Update(p, InputState{JumpPressed: true, JumpHeld: true})
	c.Update(p, InputState{})

	assert.InDelta(t, -cfg.ShortJumpSpeed+cfg.Gravity, p.VY, 1e-9)
	assert.True(t, p.JumpCut)

	vy := p.VY
	c.Update(p, InputState{})
	assert.InDelta(t, vy+cfg.Gravity, p.VY, 1e-9)
}

func TestCharacter_HeldJumpRisesHigher(t *testing.T) {
	tuning := createTestTuning(t)

	peak := func(hold bool) float64 {
		c := createTestController(t, tuning, flatRows('#')...)
		p := createTestPlayer(t, tuning, "runner", 64)
		c.Update(p, InputState{JumpPressed: true, JumpHeld: true})
		top := p.Y
		for i := 0; i < 60 && !p.OnGround; i++ {
			c.Update(p, InputState{JumpHeld: hold})
			top = math.Min(top, p.Y)
		}
		return top
	}

	assert.Less(t, peak(true), peak(false))
}

func TestCharacter_GroundLocomotion(t *testing.T) {
	tuning := createTestTuning(t)
	cfg := tuning.Characters["runner"]

	tests := []struct {
		name      string
		floor     byte
		gs        float64
		in        InputState
		wantGS    float64
		wantState entity.AbilityState
	}{
		{"accelerate from rest", '#', 0, InputState{Right: true}, cfg.Accel, entity.StateRun},
		{"accelerate left", '#', 0, InputState{Left: true}, -cfg.Accel, entity.StateRun},
		{"faster than run speed is kept", '#', 10, InputState{Right: true}, 10, entity.StateRun},
		{"capped at run speed", '#', cfg.RunSpeed - cfg.Accel/2, InputState{Right: true}, cfg.RunSpeed, entity.StateRun},
		{"skid", '#', 3, InputState{Left: true}, 3 - cfg.Decel, entity.StateSkid},
		{"skid crosses zero", '#', 0.3, InputState{Left: true}, -cfg.Decel, entity.StateRun},
		{"friction", '#', 1, InputState{}, 1 - cfg.Friction, entity.StateRun},
		{"ice friction", 'i', 1, InputState{}, 1 - cfg.IceFriction, entity.StateRun},
		{"friction stops", '#', cfg.Friction / 2, InputState{}, 0, entity.StateIdle},
		{"down while fast rolls", '#', 3, InputState{Down: true}, 3, entity.StateRolling},
		{"down while slow crouches", '#', 0, InputState{Down: true}, 0, entity.StateCrouch},
		{"up at rest looks up", '#', 0, InputState{Up: true}, 0, entity.StateLookUp},
		{"top speed clamp", '#', 20, InputState{Right: true}, cfg.TopSpeed, entity.StateRun},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := createTestController(t, tuning, flatRows(tt.floor)...)
			p := createTestPlayer(t, tuning, "runner", 64)
			p.GroundTile = tile.Lookup(tt.floor)
			p.GroundSpeed = tt.gs
			p.AlignToGround()

			c.Update(p, tt.in)

			assert.True(t, p.OnGround)
			assert.InDelta(t, tt.wantGS, p.GroundSpeed, 1e-9)
			assert.Equal(t, tt.wantState, p.State)
			assertGroundInvariant(t, p)
		})
	}
}

func TestCharacter_ReachesRunSpeed(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "runner", 32)

	for i := 0; i < 200; i++ {
		c.Update(p, InputState{Right: true})
	}
	assert.Equal(t, c.Character(p).RunSpeed, p.GroundSpeed)
	assert.True(t, p.FacingRight)
}

func TestCharacter_ReleasingCrouchReturnsToIdle(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "runner", 64)

	c.Update(p, InputState{Down: true})
	require.Equal(t, entity.StateCrouch, p.State)
	c.Update(p, InputState{})
	assert.Equal(t, entity.StateIdle, p.State)
}

func TestCharacter_RollingSlowsAndUnrolls(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "runner", 64)
	cfg := c.Character(p)

	p.State = entity.StateRolling
	p.GroundSpeed = 2
	p.AlignToGround()

	c.Update(p, InputState{Right: true})
	assert.InDelta(t, 2-cfg.RollFriction, p.GroundSpeed, 1e-9, "same-direction input does nothing while rolling")

	c.Update(p, InputState{Left: true})
	assert.InDelta(t, 2-2*cfg.RollFriction-cfg.RollDecel, p.GroundSpeed, 1e-9)

	for i := 0; i < 200 && p.State == entity.StateRolling; i++ {
		c.Update(p, InputState{})
	}
	assert.Equal(t, entity.StateIdle, p.State)
	assert.Less(t, math.Abs(p.GroundSpeed), cfg.RollMinSpeed/2)
}

func TestCharacter_SpinDash(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "runner", 64)
	cfg := c.Character(p)

	c.Update(p, InputState{Down: true})
	require.Equal(t, entity.StateCrouch, p.State)

	c.Update(p, InputState{Down: true, JumpPressed: true, JumpHeld: true})
	require.Equal(t, entity.StateSpinDashCharging, p.State)
	assert.Zero(t, p.SpinCharge)
	assert.True(t, p.OnGround)

	for i := 0; i < 5; i++ {
		c.Update(p, InputState{Down: true, JumpPressed: true, JumpHeld: true})
	}
	assert.Equal(t, cfg.SpinDashMax-cfg.SpinDashBase, p.SpinCharge)
	assert.Zero(t, p.GroundSpeed)

	c.Update(p, InputState{})
	assert.Equal(t, entity.StateRolling, p.State)
	assert.Equal(t, cfg.SpinDashMax, p.GroundSpeed)
	assert.Zero(t, p.SpinCharge)
	assertGroundInvariant(t, p)
}

// slopeRows is a 45 degree ramp rising to the right from a floor at
// floorTop up to a plateau at 64, inside walls.
var slopeRows = []string{
	"#..........#",
	"#..........#",
	"#..........#",
	"#..........#",
	"#....../####",
	"#...../#####",
	"#..../######",
	"############",
}

func TestCharacter_RollingUphillLosesSlopeFactor(t *testing.T) {
	tests := []struct {
		name         string
		speed        float64
		keepFriction bool
	}{
		{"slope factor alone", 2, false},
		{"slope factor plus rolling friction", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := createTestTuning(t)
			cfg := tuning.Characters["runner"]
			if !tt.keepFriction {
				cfg.RollFriction = 0
				tuning.Characters["runner"] = cfg
			}
			c := createTestController(t, tuning, slopeRows...)

			// Spanning column 6 of the ramp, resting on its top corner.
			p := createTestPlayer(t, tuning, "runner", 6*16)
			p.Y = 5*16 - p.H
			p.GroundAngle = math.Pi / 4
			p.GroundTile = tile.Lookup(tile.CodeUp45)
			p.GroundSpeed = tt.speed
			p.State = entity.StateRolling
			p.AlignToGround()

			c.Update(p, InputState{})

			require.True(t, p.OnGround)
			assert.Equal(t, math.Pi/4, p.GroundAngle)
			loss := cfg.RollUpFactor*math.Sin(math.Pi/4) + cfg.RollFriction
			assert.InDelta(t, tt.speed-loss, p.GroundSpeed, 1e-9)
			assertGroundInvariant(t, p)
		})
	}
}

func TestCharacter_UprightDoesNotSlideAtRest(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, slopeRows...)

	p := createTestPlayer(t, tuning, "runner", 6*16)
	p.Y = 5*16 - p.H
	p.GroundAngle = math.Pi / 4
	p.GroundTile = tile.Lookup(tile.CodeUp45)

	x, y := p.X, p.Y
	for i := 0; i < 10; i++ {
		c.Update(p, InputState{})
	}
	assert.Equal(t, x, p.X)
	assert.Equal(t, y, p.Y)
	assert.Equal(t, entity.StateIdle, p.State)
}

func TestCharacter_GroundInvariantUnderRandomInput(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, slopeRows...)
	p := createTestPlayer(t, tuning, "runner", 32)
	rng := rand.New(rand.NewSource(3))

	var in InputState
	for i := 0; i < 2000; i++ {
		if i%15 == 0 {
			in = InputState{
				Left:  rng.Intn(3) == 0,
				Right: rng.Intn(2) == 0,
				Down:  rng.Intn(5) == 0,
				Up:    rng.Intn(8) == 0,
			}
		}
		in.JumpPressed = rng.Intn(40) == 0
		in.JumpHeld = in.JumpPressed || (in.JumpHeld && rng.Intn(10) != 0)

		c.Update(p, in)

		require.True(t, finite(p.X) && finite(p.Y), "tick %d", i)
		require.LessOrEqual(t, p.Bottom(), floorTop+1e-6, "tick %d", i)
		require.GreaterOrEqual(t, p.Left(), 16.0-1e-6, "tick %d", i)
		require.LessOrEqual(t, p.Right(), 176.0+1e-6, "tick %d", i)
		assertGroundInvariant(t, p)
	}
}

func TestCharacter_Fly(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "flyer", 64)
	cfg := c.Character(p)

	c.Update(p, InputState{JumpPressed: true, JumpHeld: true})
	c.Update(p, InputState{JumpPressed: true, JumpHeld: true})
	require.Equal(t, entity.StateFlying, p.State)

	for i := 0; i < 60; i++ {
		c.Update(p, InputState{JumpHeld: true})
		assert.GreaterOrEqual(t, p.VY, cfg.JumpForce)
	}
	assert.Less(t, p.FlyMeter, cfg.Fly.Meter)
	assert.InDelta(t, -cfg.Fly.MaxRise, p.VY, 1e-9)

	for i := 0; i < 120; i++ {
		c.Update(p, InputState{})
		assert.LessOrEqual(t, p.VY, cfg.Fly.FallSpeed)
	}

	for i := 0; i < 600 && !p.OnGround; i++ {
		c.Update(p, InputState{})
	}
	require.True(t, p.OnGround)
	meter := p.FlyMeter
	c.Update(p, InputState{})
	assert.Equal(t, min(meter+cfg.Fly.Regen, cfg.Fly.Meter), p.FlyMeter)
}

func TestCharacter_GlideIntoWallClimbsAndWallJumps(t *testing.T) {
	tuning := createTestTuning(t)
	rows := []string{
		"........#...",
		"........#...",
		"........#...",
		"........#...",
		"........#...",
		"........#...",
		"........#...",
		"############",
	}
	c := createTestController(t, tuning, rows...)
	p := createTestPlayer(t, tuning, "glider", 64)
	cfg := c.Character(p)
	p.Y = 8
	p.Detach()
	p.State = entity.StateAirborne

	c.Update(p, InputState{JumpPressed: true, JumpHeld: true})
	require.Equal(t, entity.StateGliding, p.State)
	assert.Equal(t, cfg.Glide.Speed, p.VX)

	for i := 0; i < 30 && p.State == entity.StateGliding; i++ {
		c.Update(p, InputState{JumpHeld: true})
	}
	require.Equal(t, entity.StateClimbing, p.State)
	assert.Equal(t, 1.0, p.ClimbSide)
	assert.Equal(t, 128.0, p.Right())

	y := p.Y
	c.Update(p, InputState{Up: true})
	assert.Equal(t, entity.StateClimbing, p.State)
	assert.InDelta(t, y-cfg.Glide.ClimbSpeed, p.Y, 1e-9)

	c.Update(p, InputState{JumpPressed: true, JumpHeld: true})
	assert.Equal(t, entity.StateJump, p.State)
	assert.Equal(t, -cfg.Glide.WallJumpX, p.VX)
	assert.False(t, p.FacingRight)
}

func TestCharacter_GlideReleaseFalls(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "glider", 64)
	p.Y = 8
	p.Detach()
	p.State = entity.StateAirborne

	c.Update(p, InputState{JumpPressed: true, JumpHeld: true})
	require.Equal(t, entity.StateGliding, p.State)
	c.Update(p, InputState{})
	assert.Equal(t, entity.StateAirborne, p.State)
}

func TestCharacter_Warp(t *testing.T) {
	tuning := createTestTuning(t)

	t.Run("open floor", func(t *testing.T) {
		c := createTestController(t, tuning, flatRows('#')...)
		p := createTestPlayer(t, tuning, "blinker", 32)
		cfg := c.Character(p)

		c.Update(p, InputState{SkillPressed: true})
		assert.Equal(t, 32+cfg.Warp.Distance, p.X)
		assert.Equal(t, cfg.Warp.Invincible, p.InvincibleTimer)
		assert.Equal(t, cfg.Warp.Cooldown, p.PowerCooldown)

		x := p.X
		c.Update(p, InputState{SkillPressed: true})
		assert.Equal(t, x, p.X, "cooldown blocks a second warp")
	})

	t.Run("stops before a wall", func(t *testing.T) {
		rows := flatRows('#')
		for r := 0; r < 7; r++ {
			rows[r] = rows[r][:5] + "#" + rows[r][6:]
		}
		c := createTestController(t, tuning, rows...)
		p := createTestPlayer(t, tuning, "blinker", 32)

		c.Update(p, InputState{SkillPressed: true})
		assert.Equal(t, 80.0, p.Right())
	})

	t.Run("other characters ignore skill", func(t *testing.T) {
		c := createTestController(t, tuning, flatRows('#')...)
		p := createTestPlayer(t, tuning, "runner", 32)
		c.Update(p, InputState{SkillPressed: true})
		assert.Equal(t, 32.0, p.X)
	})
}

func TestCharacter_Hammer(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "hammer", 64)
	cfg := c.Character(p)

	c.Update(p, InputState{SkillPressed: true})

	assert.False(t, p.OnGround)
	assert.Equal(t, cfg.Hammer.Impulse, p.VY)
	assert.Equal(t, cfg.Hammer.Ticks, p.HammerTimer)
	assert.True(t, p.Attacking())
	assert.True(t, p.IsInvincible())
}

func TestCharacter_DropThroughOneWay(t *testing.T) {
	tuning := createTestTuning(t)
	rows := flatRows('#')
	rows[4] = strings.Repeat("=", 60)
	c := createTestController(t, tuning, rows...)
	p := createTestPlayer(t, tuning, "runner", 64)
	p.Y = 64 - p.H
	p.GroundTile = tile.Lookup(tile.CodeOneWay)

	c.Update(p, InputState{})
	require.True(t, p.OnGround, "stands on the one-way top")

	c.Update(p, InputState{Down: true, JumpPressed: true, JumpHeld: true})
	for i := 0; i < 12; i++ {
		c.Update(p, InputState{})
	}
	assert.False(t, p.OnGround)
	assert.Greater(t, p.Bottom(), 64+tuning.Collision.Profile("player").OneWayEpsilon)
}

func TestCharacter_Hurt(t *testing.T) {
	tuning := createTestTuning(t)
	d := tuning.Damage

	t.Run("shield absorbs", func(t *testing.T) {
		c := createTestController(t, tuning, flatRows('#')...)
		p := createTestPlayer(t, tuning, "runner", 64)
		p.Shield = true
		p.Currency = 10

		res := c.Hurt(p, p.CenterX()+10)

		assert.Equal(t, HurtResult{Applied: true, ShieldLost: true}, res)
		assert.False(t, p.Shield)
		assert.Equal(t, 10, p.Currency)
		assert.Equal(t, 3, p.Lives)
		assert.Equal(t, entity.StateHurt, p.State)
		assert.Equal(t, -d.KnockbackX, p.VX, "knocked away from the source")
		assert.Equal(t, d.KnockbackY, p.VY)
		assert.Equal(t, d.InvincibleTicks, p.InvincibleTimer)

		assert.False(t, c.Hurt(p, 0).Applied, "invincible after a hit")
	})

	t.Run("currency scatters", func(t *testing.T) {
		c := createTestController(t, tuning, flatRows('#')...)
		p := createTestPlayer(t, tuning, "runner", 64)
		p.Currency = d.ScatterMax + 5

		res := c.Hurt(p, p.CenterX()-10)

		assert.Equal(t, d.ScatterMax, res.Scattered)
		assert.Zero(t, p.Currency)
		assert.True(t, p.Alive)
		assert.Equal(t, d.KnockbackX, p.VX)
	})

	t.Run("no protection dies", func(t *testing.T) {
		c := createTestController(t, tuning, flatRows('#')...)
		p := createTestPlayer(t, tuning, "runner", 64)

		res := c.Hurt(p, p.CenterX())

		assert.True(t, res.Died)
		assert.False(t, p.Alive)
		assert.Equal(t, 2, p.Lives)
		assert.Equal(t, d.DeathKick, p.VY)
		assert.Equal(t, d.RespawnTicks, p.RespawnTimer)
		assert.False(t, c.Hurt(p, 0).Applied, "dead players ignore damage")
	})
}

func TestCharacter_HurtStateLandsIdle(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "runner", 64)
	p.Shield = true
	c.Hurt(p, 0)

	for i := 0; i < 120 && !(p.OnGround && p.State != entity.StateHurt); i++ {
		c.Update(p, InputState{Right: true})
	}
	assert.Equal(t, entity.StateIdle, p.State)
	assert.Zero(t, p.GroundSpeed)
}

func TestCharacter_RespawnAtCheckpoint(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "runner", 64)
	p.SetCheckpoint(200, 40)
	c.Kill(p)

	ticks := 0
	for ; ticks < 1000; ticks++ {
		if c.Update(p, InputState{}).Respawned {
			ticks++
			break
		}
	}
	assert.Equal(t, tuning.Damage.RespawnTicks, ticks)
	assert.True(t, p.Alive)
	assert.Equal(t, 200.0, p.X)
	assert.Equal(t, 40.0, p.Y)
	assert.Equal(t, tuning.Damage.RespawnInvincible, p.InvincibleTimer)
	assert.Equal(t, entity.StateAirborne, p.State)
}

func TestCharacter_NoRespawnWithoutLives(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('#')...)
	p := createTestPlayer(t, tuning, "runner", 64)
	p.Lives = 1
	c.Kill(p)

	for i := 0; i < 500; i++ {
		assert.False(t, c.Update(p, InputState{}).Respawned)
	}
	assert.False(t, p.Alive)
	assert.Zero(t, p.Lives)
}

func TestCharacter_HazardHurts(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('^')...)
	p := createTestPlayer(t, tuning, "runner", 64)
	p.GroundTile = tile.Lookup(tile.CodeHazard)

	report := c.Update(p, InputState{})

	assert.True(t, report.HazardHit)
	assert.True(t, report.Died())
	assert.Equal(t, 2, p.Lives)
}

func TestCharacter_FallingOutOfTheLevelKills(t *testing.T) {
	tuning := createTestTuning(t)
	c := createTestController(t, tuning, flatRows('.')...)
	p := createTestPlayer(t, tuning, "runner", 64)
	p.Shield = true
	p.Detach()
	p.State = entity.StateAirborne

	var died bool
	for i := 0; i < 300 && !died; i++ {
		died = c.Update(p, InputState{}).FellOut
	}
	assert.True(t, died)
	assert.False(t, p.Alive)
	assert.False(t, p.Shield, "death clears the shield")
}

func TestScatterVelocities(t *testing.T) {
	assert.Empty(t, ScatterVelocities(0, 4))

	v := ScatterVelocities(20, 4)
	require.Len(t, v, 20)

	assert.Equal(t, v[0].X, -v[1].X, "pairs fly to opposite sides")
	assert.Equal(t, v[0].Y, v[1].Y)
	assert.Less(t, v[0].Y, 0.0, "first pieces fly upward")

	for i := 0; i < 16; i++ {
		assert.InDelta(t, 4, math.Hypot(v[i].X, v[i].Y), 1e-9)
	}
	for i := 16; i < 20; i++ {
		assert.InDelta(t, 2, math.Hypot(v[i].X, v[i].Y), 1e-9)
	}
	assert.Equal(t, ScatterVelocities(20, 4), v, "deterministic")
}
