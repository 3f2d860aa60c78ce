package game

import "time"

// Clock turns elapsed wall time into whole simulation ticks and carries
// the remainder to the next frame.
type Clock struct {
	tick     time.Duration
	maxTicks int
	acc      time.Duration
}

// NewClock creates a clock running tickRate ticks per second that never
// asks for more than maxTicks in one frame.
func NewClock(tickRate, maxTicks int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxTicks <= 0 {
		maxTicks = 1
	}
	return &Clock{
		tick:     time.Second / time.Duration(tickRate),
		maxTicks: maxTicks,
	}
}

// Advance adds elapsed time and returns how many ticks are due. A backlog
// beyond the per-frame cap is dropped.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		c.acc += elapsed
	}
	n := int(c.acc / c.tick)
	c.acc -= time.Duration(n) * c.tick
	if n > c.maxTicks {
		n = c.maxTicks
		c.acc = 0
	}
	return n
}

// Alpha is the fraction of a tick left in the accumulator, for render
// interpolation.
func (c *Clock) Alpha() float64 {
	return float64(c.acc) / float64(c.tick)
}

// TickDuration returns the length of one tick.
func (c *Clock) TickDuration() time.Duration {
	return c.tick
}
