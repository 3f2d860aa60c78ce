package entity

// PositionRing is a fixed-capacity history of positions. Pushing into a
// full ring overwrites the oldest entry.
type PositionRing struct {
	buf   []Vec
	head  int // index of the next write
	count int
}

// NewPositionRing creates a ring holding up to capacity positions.
func NewPositionRing(capacity int) *PositionRing {
	if capacity < 1 {
		capacity = 1
	}
	return &PositionRing{buf: make([]Vec, capacity)}
}

// Push records the newest position.
func (r *PositionRing) Push(v Vec) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// At returns the position recorded age pushes ago (0 is the newest).
// Ages beyond the recorded history clamp to the oldest entry.
func (r *PositionRing) At(age int) (Vec, bool) {
	if r.count == 0 {
		return Vec{}, false
	}
	if age < 0 {
		age = 0
	}
	if age >= r.count {
		age = r.count - 1
	}
	i := (r.head - 1 - age + 2*len(r.buf)) % len(r.buf)
	return r.buf[i], true
}

// Len returns the number of recorded positions.
func (r *PositionRing) Len() int { return r.count }

// Cap returns the ring capacity.
func (r *PositionRing) Cap() int { return len(r.buf) }
