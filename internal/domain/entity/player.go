package entity

// AbilityState is the movement state of a player character. Exactly one is
// active at a time.
type AbilityState uint8

const (
	StateIdle AbilityState = iota
	StateRun
	StateSkid
	StateCrouch
	StateLookUp
	StateRolling
	StateSpinDashCharging
	StateJump
	StateAirborne
	StateFlying
	StateGliding
	StateClimbing
	StateHurt
)

var abilityStateNames = [...]string{
	StateIdle:             "idle",
	StateRun:              "run",
	StateSkid:             "skid",
	StateCrouch:           "crouch",
	StateLookUp:           "lookUp",
	StateRolling:          "rolling",
	StateSpinDashCharging: "spinDashCharging",
	StateJump:             "jump",
	StateAirborne:         "airborne",
	StateFlying:           "flying",
	StateGliding:          "gliding",
	StateClimbing:         "climbing",
	StateHurt:             "hurt",
}

// String returns the state tag used in poses and logs
func (s AbilityState) String() string {
	if int(s) < len(abilityStateNames) {
		return abilityStateNames[s]
	}
	return "unknown"
}

// Grounded reports whether the state belongs to the on-ground group.
func (s AbilityState) Grounded() bool {
	switch s {
	case StateIdle, StateRun, StateSkid, StateCrouch, StateLookUp, StateRolling, StateSpinDashCharging:
		return true
	}
	return false
}

// Power is the special ability a character carries. A character has at
// most one.
type Power uint8

const (
	PowerNone Power = iota
	PowerFly
	PowerGlide
	PowerWarp
	PowerHammer
)

// ParsePower maps a config name to a Power.
func ParsePower(name string) (Power, bool) {
	switch name {
	case "", "none":
		return PowerNone, true
	case "fly":
		return PowerFly, true
	case "glide":
		return PowerGlide, true
	case "warp":
		return PowerWarp, true
	case "hammer":
		return PowerHammer, true
	}
	return PowerNone, false
}

// Player is a controllable character occupying one input slot.
type Player struct {
	Body

	Slot      int
	Character string
	Power     Power
	State     AbilityState

	Alive    bool
	Lives    int
	Currency int
	Shield   bool

	// Ability bookkeeping
	SpinCharge float64
	FlyMeter   int
	ClimbSide  float64 // +1 wall on the right, -1 on the left
	JumpCut    bool    // variable jump height already applied

	// Timers, in ticks
	InvincibleTimer int
	RespawnTimer    int
	PowerCooldown   int
	HammerTimer     int
	DropTimer       int // one-way platforms are ignored while positive

	CheckpointX, CheckpointY float64
}

// NewPlayer creates a player standing at (x, y) with its checkpoint there.
func NewPlayer(slot int, x, y, w, h float64, character string, power Power, lives int) *Player {
	return &Player{
		Body: Body{
			X:           x,
			Y:           y,
			W:           w,
			H:           h,
			FacingRight: true,
		},
		Slot:        slot,
		Character:   character,
		Power:       power,
		State:       StateAirborne,
		Alive:       true,
		Lives:       lives,
		CheckpointX: x,
		CheckpointY: y,
	}
}

// IsInvincible returns true if the player currently ignores damage
func (p *Player) IsInvincible() bool {
	return p.InvincibleTimer > 0
}

// Attacking reports whether touching an enemy defeats it.
func (p *Player) Attacking() bool {
	if p.HammerTimer > 0 {
		return true
	}
	switch p.State {
	case StateRolling, StateSpinDashCharging, StateJump, StateGliding:
		return true
	}
	return false
}

// SetCheckpoint moves the respawn point.
func (p *Player) SetCheckpoint(x, y float64) {
	p.CheckpointX, p.CheckpointY = x, y
}

// Respawn puts a dead player back at its checkpoint.
func (p *Player) Respawn(invincibleTicks int) {
	p.X, p.Y = p.CheckpointX, p.CheckpointY
	p.VX, p.VY = 0, 0
	p.Detach()
	p.State = StateAirborne
	p.Alive = true
	p.SpinCharge = 0
	p.JumpCut = false
	p.HammerTimer = 0
	p.DropTimer = 0
	p.InvincibleTimer = invincibleTicks
}
