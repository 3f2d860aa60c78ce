package entity

// EntityID is a unique identifier for an entity
type EntityID uint32

// Events are this-tick flags and counters raised by the simulation. They
// are cleared at the start of every tick; consumers poll them after Step.
type Events struct {
	EnemyDefeated       int
	CurrencyCollected   int
	CheckpointActivated bool
	HazardHit           bool
	BossPhaseChanged    bool
	PlayerDied          bool
	LevelComplete       bool
}

// Reset clears all flags for a new tick.
func (e *Events) Reset() {
	*e = Events{}
}

// Any reports whether anything happened this tick.
func (e Events) Any() bool {
	return e != Events{}
}

// PoseKind tags what a pose describes.
type PoseKind string

const (
	PosePlayer     PoseKind = "player"
	PoseEnemy      PoseKind = "enemy"
	PoseSegment    PoseKind = "segment"
	PoseBoss       PoseKind = "boss"
	PoseProjectile PoseKind = "projectile"
	PosePickup     PoseKind = "pickup"
)

// Pose is the render-facing snapshot of one entity after a tick.
type Pose struct {
	ID          EntityID
	Kind        PoseKind
	X, Y, W, H  float64
	FacingRight bool
	State       string
}
