package entity

import "github.com/tanema/gween"

// BossPhase is the current step of the boss state machine.
type BossPhase uint8

const (
	BossEntering BossPhase = iota
	BossHover
	BossAttack
	BossShoot
	BossRetreat
	BossDefeated
)

// String returns the phase tag used in poses and logs
func (p BossPhase) String() string {
	switch p {
	case BossEntering:
		return "entering"
	case BossHover:
		return "hover"
	case BossAttack:
		return "attack"
	case BossShoot:
		return "shoot"
	case BossRetreat:
		return "retreat"
	case BossDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// Boss is the multi-phase level boss.
type Boss struct {
	ID EntityID
	Body

	Phase BossPhase
	HP    int
	MaxHP int

	PhaseTimer      int
	ShotTimer       int
	InvincibleTimer int
	TeardownTimer   int
	Complete        bool

	HomeX, HoverY float64
	TargetX       float64
	Entrance      *gween.Tween

	WantsShot      bool
	ShotVX, ShotVY float64
}

// NewBoss creates a boss whose home hover point is (x, y).
func NewBoss(id EntityID, x, y, w, h float64, hp int) *Boss {
	return &Boss{
		ID: id,
		Body: Body{
			X: x,
			Y: y,
			W: w,
			H: h,
		},
		Phase:  BossEntering,
		HP:     hp,
		MaxHP:  hp,
		HomeX:  x,
		HoverY: y,
	}
}

// Enraged reports whether the boss is at half health or below.
func (b *Boss) Enraged() bool {
	return b.HP*2 <= b.MaxHP
}

// Vulnerable reports whether a hit would currently be accepted.
func (b *Boss) Vulnerable() bool {
	return b.Phase != BossEntering && b.Phase != BossDefeated && b.InvincibleTimer <= 0
}

// Active reports whether the boss still takes part in collisions.
func (b *Boss) Active() bool {
	return b.Phase != BossDefeated
}
