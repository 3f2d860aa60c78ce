package entity

// PickupKind distinguishes what touching a pickup does.
type PickupKind uint8

const (
	PickupCurrency PickupKind = iota
	PickupShield
	PickupCheckpoint
	PickupGoal
)

// String returns the spawn tag of the kind
func (k PickupKind) String() string {
	switch k {
	case PickupCurrency:
		return "currency"
	case PickupShield:
		return "shield"
	case PickupCheckpoint:
		return "checkpoint"
	case PickupGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Pickup is a collectible. Scattered currency bounces and expires; placed
// pickups stay put.
type Pickup struct {
	ID EntityID
	Body

	Kind   PickupKind
	Active bool

	Scattered    bool
	TTL          int
	CollectDelay int
	Activated    bool // checkpoints fire once
}

// NewPickup creates a static pickup
func NewPickup(id EntityID, kind PickupKind, x, y, w, h float64) *Pickup {
	return &Pickup{
		ID:     id,
		Body:   Body{X: x, Y: y, W: w, H: h},
		Kind:   kind,
		Active: true,
	}
}

// NewScatteredCurrency creates a bouncing currency pickup thrown from (x, y).
func NewScatteredCurrency(id EntityID, x, y, w, h, vx, vy float64, ttl, collectDelay int) *Pickup {
	return &Pickup{
		ID:           id,
		Body:         Body{X: x, Y: y, W: w, H: h, VX: vx, VY: vy},
		Kind:         PickupCurrency,
		Active:       true,
		Scattered:    true,
		TTL:          ttl,
		CollectDelay: collectDelay,
	}
}

// CanCollect returns true if the pickup can be collected
func (p *Pickup) CanCollect() bool {
	return p.Active && p.CollectDelay <= 0
}
