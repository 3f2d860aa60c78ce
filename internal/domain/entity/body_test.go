package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBody_Edges(t *testing.T) {
	b := Body{X: 10, Y: 20, W: 16, H: 32}

	assert.Equal(t, 10.0, b.Left())
	assert.Equal(t, 26.0, b.Right())
	assert.Equal(t, 20.0, b.Top())
	assert.Equal(t, 52.0, b.Bottom())
	assert.Equal(t, 18.0, b.CenterX())
	assert.Equal(t, 36.0, b.CenterY())
}

func TestBody_Overlaps(t *testing.T) {
	a := Body{X: 0, Y: 0, W: 16, H: 16}

	tests := []struct {
		name  string
		other Body
		want  bool
	}{
		{"same box", Body{X: 0, Y: 0, W: 16, H: 16}, true},
		{"partial", Body{X: 8, Y: 8, W: 16, H: 16}, true},
		{"touching edge", Body{X: 16, Y: 0, W: 16, H: 16}, false},
		{"far away", Body{X: 100, Y: 100, W: 16, H: 16}, false},
		{"contained", Body{X: 4, Y: 4, W: 2, H: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(&tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(&a))
		})
	}
}

func TestBody_AlignToGround(t *testing.T) {
	tests := []struct {
		name   string
		angle  float64
		speed  float64
		wantVX float64
		wantVY float64
	}{
		{"flat right", 0, 4, 4, 0},
		{"uphill right", math.Pi / 4, 4, 4 * math.Sqrt2 / 2, -4 * math.Sqrt2 / 2},
		{"downhill right", -math.Pi / 4, 4, 4 * math.Sqrt2 / 2, 4 * math.Sqrt2 / 2},
		{"uphill left", math.Pi / 4, -2, -math.Sqrt2, math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Body{OnGround: true, GroundAngle: tt.angle, GroundSpeed: tt.speed}
			b.AlignToGround()
			assert.InDelta(t, tt.wantVX, b.VX, 1e-9)
			assert.InDelta(t, tt.wantVY, b.VY, 1e-9)
		})
	}
}

func TestBody_ProjectToGround(t *testing.T) {
	// Landing on a 45° up slope while falling straight down: only the
	// tangent component survives.
	b := Body{VX: 3, VY: 0, GroundAngle: math.Pi / 4}
	b.ProjectToGround()

	assert.InDelta(t, 3*math.Cos(math.Pi/4), b.GroundSpeed, 1e-9)
	assert.InDelta(t, b.GroundSpeed*math.Cos(b.GroundAngle), b.VX, 1e-9)
	assert.InDelta(t, -b.GroundSpeed*math.Sin(b.GroundAngle), b.VY, 1e-9)
}

func TestBody_Detach(t *testing.T) {
	b := Body{OnGround: true, GroundAngle: math.Pi / 8, GroundSpeed: 3, VX: 1, VY: -2}
	b.Detach()

	assert.False(t, b.OnGround)
	assert.Zero(t, b.GroundAngle)
	assert.Zero(t, b.GroundSpeed)
	assert.Equal(t, 1.0, b.VX, "velocity is left to the caller")
	assert.Equal(t, -2.0, b.VY)
}

func TestBody_Facing(t *testing.T) {
	assert.Equal(t, 1.0, (&Body{FacingRight: true}).Facing())
	assert.Equal(t, -1.0, (&Body{}).Facing())
}
