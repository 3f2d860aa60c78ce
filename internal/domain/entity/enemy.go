package entity

// EnemyKind is the behavior tag of an enemy. It is fixed at spawn and
// selects the AI routine for the enemy's whole life.
type EnemyKind uint8

const (
	EnemyPatrol EnemyKind = iota
	EnemyFlier
	EnemyShooter
	EnemyGrabber
	EnemyChaser
	EnemyCrawler
)

var enemyKindNames = map[EnemyKind]string{
	EnemyPatrol:  "patrol",
	EnemyFlier:   "flier",
	EnemyShooter: "shooter",
	EnemyGrabber: "grabber",
	EnemyChaser:  "chaser",
	EnemyCrawler: "crawler",
}

// String returns the spawn tag of the kind
func (k EnemyKind) String() string {
	if s, ok := enemyKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseEnemyKind maps a spawn tag to an EnemyKind.
func ParseEnemyKind(tag string) (EnemyKind, bool) {
	for k, s := range enemyKindNames {
		if s == tag {
			return k, true
		}
	}
	return 0, false
}

// GrabPhase is the tether cycle of a grabber.
type GrabPhase uint8

const (
	GrabWaiting GrabPhase = iota
	GrabDropping
	GrabRetracting
	GrabCooldown
)

// Enemy represents an enemy entity
type Enemy struct {
	ID EntityID
	Body

	Kind  EnemyKind
	Alive bool
	Speed float64

	// Behavior bookkeeping; which fields matter depends on Kind.
	Timer   int
	Phase   float64
	AnchorY float64
	Grab    GrabPhase
	Sliding bool

	// Shot request, polled and cleared by the simulation each tick.
	WantsShot      bool
	ShotVX, ShotVY float64

	History  *PositionRing
	Segments []Vec
}

// NewEnemy creates a new enemy
func NewEnemy(id EntityID, kind EnemyKind, x, y, w, h, speed float64) *Enemy {
	return &Enemy{
		ID: id,
		Body: Body{
			X: x,
			Y: y,
			W: w,
			H: h,
		},
		Kind:    kind,
		Alive:   true,
		Speed:   speed,
		AnchorY: y,
	}
}

// AttachSegments gives the enemy a trailing body of n segments spaced
// `spacing` ticks apart in the head's position history.
func (e *Enemy) AttachSegments(n, spacing int) {
	if n <= 0 || spacing <= 0 {
		return
	}
	e.History = NewPositionRing(n*spacing + 1)
	e.Segments = make([]Vec, n)
	for i := range e.Segments {
		e.Segments[i] = Vec{X: e.X, Y: e.Y}
	}
}

// SegmentBody returns the collision box of segment i.
func (e *Enemy) SegmentBody(i int) Body {
	s := e.Segments[i]
	return Body{X: s.X, Y: s.Y, W: e.W, H: e.H}
}
